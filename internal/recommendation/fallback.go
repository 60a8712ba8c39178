package recommendation

import (
	"github.com/highmark/consult-copilot/internal/knowledge"
	"github.com/highmark/consult-copilot/internal/types"
)

// Fallback builds the fixed proposal substituted when generation fails.
// The payload never varies, so repeated failures produce identical results.
func Fallback() *types.RecommendationResult {
	return &types.RecommendationResult{
		CoreStrategy: "背景提升与精准投递并行。",
		InitialRecommendedProducts: []string{
			knowledge.ProductPTA,
			knowledge.ProductCareerPlan,
		},
		SalesLogic: types.SalesLogic{
			ValueProp: []string{"独家内推网络", "大厂导师1v1辅导", "全流程结果保障"},
			Timing:    []string{"秋招补录黄金期", "春招提前批即将开启", "错峰竞争最佳时机"},
			Scarcity:  []string{"热门岗位内推名额仅剩个位数", "导师排期紧张"},
		},
		ClosingScript: "求职是一场概率游戏，海马职加不能保证100%成功，但我们能用系统的打法，将您进入名企的概率从自然投递的5%提升至85%以上。",
	}
}
