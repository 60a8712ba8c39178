// Package recommendation drafts the sales proposal from a finished diagnosis:
// a core strategy line, the initially selected catalog items, the three
// persuasion buckets, and a closing script.
package recommendation

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/highmark/consult-copilot/internal/knowledge"
	"github.com/highmark/consult-copilot/internal/llm"
	"github.com/highmark/consult-copilot/internal/prompts"
	"github.com/highmark/consult-copilot/internal/schemas"
	"github.com/highmark/consult-copilot/internal/types"
)

// Engine runs the proposal generation call.
type Engine struct {
	client llm.Client
}

// NewEngine creates a recommendation engine on top of a generation client.
func NewEngine(client llm.Client) *Engine {
	return &Engine{client: client}
}

// Recommend runs the single proposal generation call, parameterized by the
// diagnosis score. The result is always structurally valid: on any failure
// the canned fallback proposal is substituted and a *Failure is returned
// alongside it so the caller can branch explicitly.
func (e *Engine) Recommend(ctx context.Context, profile *types.StudentProfile, diag *types.DiagnosisResult) (*types.RecommendationResult, error) {
	candidate, err := json.Marshal(profile)
	if err != nil {
		return Fallback(), &Failure{Message: "failed to encode profile", Cause: err}
	}

	req := llm.Request{
		Prompt: prompts.Format(prompts.MustGet("recommendation.json", "proposal"), map[string]string{
			"Score":      strconv.Itoa(diag.OverallScore),
			"Candidate":  string(candidate),
			"CatalogIDs": strings.Join(knowledge.CatalogIDs(), ", "),
		}),
		Tier: llm.TierStandard,
	}

	text, err := e.client.GenerateJSON(ctx, req)
	if err != nil {
		return Fallback(), &Failure{Message: "generation call failed", Cause: err}
	}

	if err := schemas.Validate(schemas.Recommendation, []byte(text)); err != nil {
		return Fallback(), &Failure{Message: "response failed schema validation", Cause: err}
	}

	var result types.RecommendationResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return Fallback(), &Failure{Message: "response is not valid JSON", Cause: err}
	}

	normalize(&result)
	return &result, nil
}

// normalize drops recommended ids that are not known catalog keys. The cart
// tolerates unknown ids, but the proposal should not advertise items the
// catalog cannot price.
func normalize(result *types.RecommendationResult) {
	known := result.InitialRecommendedProducts[:0]
	for _, id := range result.InitialRecommendedProducts {
		if _, ok := knowledge.LookupCatalogItem(id); ok {
			known = append(known, id)
		}
	}
	result.InitialRecommendedProducts = known
}
