// Package diagnosis produces the structured competitiveness diagnosis for a
// student profile. The model scores the candidate against the ATS rubric;
// the success case and referral slice are selected locally before the call
// and merged in afterwards, so they never vary with the model.
package diagnosis

import (
	"context"
	"encoding/json"

	"github.com/highmark/consult-copilot/internal/knowledge"
	"github.com/highmark/consult-copilot/internal/llm"
	"github.com/highmark/consult-copilot/internal/prompts"
	"github.com/highmark/consult-copilot/internal/schemas"
	"github.com/highmark/consult-copilot/internal/types"
)

// Engine runs the diagnosis generation call.
type Engine struct {
	client llm.Client
}

// NewEngine creates a diagnosis engine on top of a generation client.
func NewEngine(client llm.Client) *Engine {
	return &Engine{client: client}
}

// Selections are the locally computed parts of a diagnosis. They are decided
// before the generation call and are deterministic for a given profile.
type Selections struct {
	SuccessCase types.SuccessCase
	Referrals   []types.ReferralResource
}

// SelectLocal computes the success case and referral slice for a profile.
func SelectLocal(profile *types.StudentProfile) Selections {
	return Selections{
		SuccessCase: knowledge.SelectSuccessCase(profile),
		Referrals:   knowledge.SelectReferrals(),
	}
}

// Diagnose runs the single diagnosis generation call and returns a complete
// DiagnosisResult. The result is always structurally valid: on any transport,
// schema or parse failure the fixed fallback payload is substituted and a
// *Failure is returned alongside it so the caller can branch explicitly.
func (e *Engine) Diagnose(ctx context.Context, profile *types.StudentProfile) (*types.DiagnosisResult, error) {
	selections := SelectLocal(profile)

	candidate, err := json.Marshal(profile)
	if err != nil {
		return Fallback(selections), &Failure{Message: "failed to encode profile", Cause: err}
	}

	req := llm.Request{
		System: prompts.Format(prompts.MustGet("diagnosis.json", "system"), map[string]string{
			"Rubric": knowledge.ATSCriteriaText,
		}),
		Prompt: prompts.Format(prompts.MustGet("diagnosis.json", "user"), map[string]string{
			"Candidate": string(candidate),
		}),
		Tier: llm.TierAdvanced,
	}

	text, err := e.client.GenerateJSON(ctx, req)
	if err != nil {
		return Fallback(selections), &Failure{Message: "generation call failed", Cause: err}
	}

	if err := schemas.Validate(schemas.Diagnosis, []byte(text)); err != nil {
		return Fallback(selections), &Failure{Message: "response failed schema validation", Cause: err}
	}

	var result types.DiagnosisResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return Fallback(selections), &Failure{Message: "response is not valid JSON", Cause: err}
	}

	if !radarCovers(result.RadarData) {
		return Fallback(selections), &Failure{Message: "response radar does not name each subject exactly once"}
	}

	Enrich(&result, selections)
	return &result, nil
}

// radarCovers reports whether metrics name every radar subject exactly once.
// The schema pins the subject enum and entry count but cannot require
// distinctness, so duplicated subjects are rejected here.
func radarCovers(metrics []types.RadarMetric) bool {
	subjects := types.RadarSubjects()
	if len(metrics) != len(subjects) {
		return false
	}
	seen := make(map[string]bool, len(subjects))
	for _, metric := range metrics {
		if seen[metric.Subject] {
			return false
		}
		seen[metric.Subject] = true
	}
	return true
}
