package knowledge

import "github.com/highmark/consult-copilot/internal/types"

// ReferralSliceSize is how many referral openings a diagnosis carries.
const ReferralSliceSize = 6

var referralResources = []types.ReferralResource{
	{Company: "叮咚买菜", Position: "供应链/运营管培", Location: "上海", Type: "校招"},
	{Company: "中国商飞", Position: "软件开发/机载系统", Location: "上海", Type: "校招"},
	{Company: "路特斯", Position: "市场/采购/结构工程", Location: "深圳/武汉", Type: "校招"},
	{Company: "奥海科技", Position: "研发/运营/职能", Location: "东莞/全球", Type: "校招"},
	{Company: "字节跳动", Position: "推荐产品运营/电商", Location: "北京/上海", Type: "校招"},
	{Company: "StarThing", Position: "全栈开发/门店管理", Location: "广州", Type: "社招"},
	{Company: "叠纸游戏", Position: "3D特效/场景/原画", Location: "上海", Type: "校招"},
	{Company: "立景创新", Position: "研发/工程/职能", Location: "广州/深圳", Type: "校招"},
	{Company: "大疆创新", Position: "嵌入式/算法", Location: "深圳", Type: "实习"},
	{Company: "蔚来汽车", Position: "区域营销/产品", Location: "武汉/上海", Type: "校招"},
	{Company: "普华永道", Position: "审计/咨询", Location: "北京/上海", Type: "校招"},
	{Company: "中信证券", Position: "投行/主要部门", Location: "北京/深圳", Type: "实习"},
	{Company: "网易游戏", Position: "游戏策划/开发", Location: "广州/杭州", Type: "校招"},
	{Company: "米哈游", Position: "HRBP/社区运营", Location: "上海", Type: "社招"},
}

// ReferralResources returns the full curated referral list.
func ReferralResources() []types.ReferralResource {
	refs := make([]types.ReferralResource, len(referralResources))
	copy(refs, referralResources)
	return refs
}

// SelectReferrals returns the referral slice attached to a diagnosis: a
// fixed-size prefix of the curated list. No personalization beyond truncation.
func SelectReferrals() []types.ReferralResource {
	n := min(ReferralSliceSize, len(referralResources))
	refs := make([]types.ReferralResource, n)
	copy(refs, referralResources[:n])
	return refs
}
