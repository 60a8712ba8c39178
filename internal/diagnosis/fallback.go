package diagnosis

import (
	"github.com/highmark/consult-copilot/internal/knowledge"
	"github.com/highmark/consult-copilot/internal/types"
)

// Fallback values substituted when the generation call fails. The payload is
// fixed so repeated failures produce byte-identical results for the same
// profile, and it satisfies every structural invariant a real diagnosis does:
// downstream consumers never need nil checks.
const (
	fallbackScore     = 60
	fallbackBenchmark = 85
	fallbackSummary   = "系统繁忙，暂时无法完成智能诊断，以下为保守评估结果，请稍后重试。"
)

// Fallback builds the deterministic minimal-but-valid diagnosis used when
// generation fails. The locally selected success case and referrals are still
// attached: the sales conversation continues even with a degraded backend.
func Fallback(selections Selections) *types.DiagnosisResult {
	subjects := types.RadarSubjects()
	radar := make([]types.RadarMetric, 0, len(subjects))
	for _, subject := range subjects {
		radar = append(radar, types.RadarMetric{
			Subject:   subject,
			Candidate: fallbackScore,
			Benchmark: fallbackBenchmark,
			FullMark:  100,
		})
	}

	return &types.DiagnosisResult{
		OverallScore:       fallbackScore,
		PassLine:           knowledge.PassLine,
		ATSDetails:         []types.ATSScoreDetail{},
		RadarData:          radar,
		Timeline:           []types.TimelineItem{},
		HardCriteria:       defaultHardCriteria(),
		TargetCompanies:    []types.CompanyTier{},
		SuccessCase:        selections.SuccessCase,
		MatchedReferrals:   selections.Referrals,
		SalaryProjection:   []types.SalaryProjection{},
		CompetitorAnalysis: "",
		RiskAnalysis:       "",
		Summary:            fallbackSummary,
	}
}
