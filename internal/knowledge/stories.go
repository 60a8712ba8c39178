package knowledge

import (
	"strings"

	"github.com/highmark/consult-copilot/internal/types"
)

// successStories are curated real outcomes used as social proof. Order
// matters: the first entry is the fixed fallback when nothing matches.
var successStories = []types.SuccessCase{
	{
		ID:       "01",
		Profile:  "24届 本科毕业生",
		Major:    "物流/供应链",
		Before:   "方向摇摆，简历缺乏针对性，面试转化率低",
		After:    "斩获 贝法易 (14k+) Offer",
		Strategy: "挖掘实习中150柜物流方案优化经历，改写为量化成果；模拟SHEIN面试。",
	},
	{
		ID:       "19",
		Profile:  "26届 硕士",
		Major:    "计算机/后端",
		Before:   "目标明确但竞争激烈，需硬核技术加持",
		After:    "斩获 字节跳动/游戏大厂 实习Offer",
		Strategy: "大厂技术总监1v1规划八股文+中间件项目，内推加速筛选。",
	},
	{
		ID:       "34",
		Profile:  "25届 毕业生",
		Major:    "车辆工程/市场营销",
		Before:   "不想做研发，纯市场岗卷不过文商科",
		After:    "斩获 理想汽车 产品运营 Offer",
		Strategy: "打造'懂技术的市场人'人设，突出三电系统理解，降维打击纯文科生。",
	},
	{
		ID:       "89",
		Profile:  "25届 毕业生",
		Major:    "管理/经济",
		Before:   "投递中金屡屡受挫，想做一级市场无门路",
		After:    "斩获 普华永道 ESG咨询 Offer",
		Strategy: "锁定ESG新赛道，挂载实战项目，避开传统红海竞争。",
	},
	{
		ID:       "105",
		Profile:  "25届 毕业生",
		Major:    "人力资源",
		Before:   "担心回国只能做基础HR，容易被替代",
		After:    "斩获 京东 HR管培生 Offer",
		Strategy: "定位拔高至OD/HRBP方向，面试展示业务思维和组织架构调整逻辑。",
	},
	{
		ID:       "144",
		Profile:  "25届 毕业生",
		Major:    "工业工程",
		Before:   "未知专业背景",
		After:    "斩获 Apple 制造设计工程师 (MDE) Offer",
		Strategy: "全英实战模拟，重点强化Influence without Authority软技能。",
	},
}

// SuccessStories returns the curated success cases in priority order.
func SuccessStories() []types.SuccessCase {
	stories := make([]types.SuccessCase, len(successStories))
	copy(stories, successStories)
	return stories
}

// SelectSuccessCase picks the curated case shown alongside a diagnosis.
// Major matches take precedence: the first story whose major overlaps the
// student's major (substring in either direction) wins. Failing that, the
// first story whose strategy mentions one of the student's target industries;
// failing that, the first curated story. The selection is deliberately simple
// so the result is reproducible independent of the model.
func SelectSuccessCase(profile *types.StudentProfile) types.SuccessCase {
	if major := strings.TrimSpace(profile.Major); major != "" {
		for _, story := range successStories {
			if strings.Contains(major, story.Major) || strings.Contains(story.Major, major) {
				return story
			}
		}
	}
	for _, story := range successStories {
		for _, industry := range profile.TargetIndustry {
			if industry != "" && strings.Contains(story.Strategy, industry) {
				return story
			}
		}
	}
	return successStories[0]
}
