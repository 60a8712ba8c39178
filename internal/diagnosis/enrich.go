package diagnosis

import (
	"github.com/highmark/consult-copilot/internal/knowledge"
	"github.com/highmark/consult-copilot/internal/types"
)

// Enrich merges the locally computed selections into a model-sourced result
// and fills the defaults the model is allowed to omit. It mutates result in
// place and touches nothing the model scored, keeping model output and local
// computation independently testable.
func Enrich(result *types.DiagnosisResult, selections Selections) {
	result.SuccessCase = selections.SuccessCase
	result.MatchedReferrals = selections.Referrals

	if result.PassLine == 0 {
		result.PassLine = knowledge.PassLine
	}

	// The schema leaves hard_criteria optional; an empty result string means
	// the model omitted the block entirely.
	if result.HardCriteria.Result == "" {
		result.HardCriteria = defaultHardCriteria()
	}

	for i := range result.RadarData {
		if result.RadarData[i].FullMark == 0 {
			result.RadarData[i].FullMark = 100
		}
	}
}

func defaultHardCriteria() types.HardCriteria {
	return types.HardCriteria{
		Education: true,
		Major:     true,
		English:   false,
		Result:    "PASS",
	}
}
