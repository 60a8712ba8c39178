// Package extraction turns an uploaded résumé document into a best-effort
// partial student profile via a vision-capable model. Extraction failure
// never blocks the consulting flow: callers always get a usable patch.
package extraction

import (
	"context"
	"encoding/json"

	"github.com/highmark/consult-copilot/internal/llm"
	"github.com/highmark/consult-copilot/internal/prompts"
	"github.com/highmark/consult-copilot/internal/schemas"
	"github.com/highmark/consult-copilot/internal/types"
)

// PlaceholderName labels a student whose name could not be read.
const PlaceholderName = "未知学员"

// fallbackPreScore is the neutral pre-score substituted on failure.
const fallbackPreScore = 60

// Engine extracts profile fields from résumé documents.
type Engine struct {
	client llm.Client
}

// NewEngine creates an extraction engine on top of a generation client.
func NewEngine(client llm.Client) *Engine {
	return &Engine{client: client}
}

// Extract sends the document to the model and returns the extracted partial
// profile. On any transport, schema or parse failure it returns the degraded
// placeholder patch together with a *Failure describing the cause, so the
// caller can log the degradation and continue.
func (e *Engine) Extract(ctx context.Context, document []byte, mimeType string) (*types.ProfilePatch, error) {
	req := llm.Request{
		Prompt: prompts.MustGet("extraction.json", "parse-resume"),
		Attachment: &llm.Attachment{
			MIMEType: mimeType,
			Data:     document,
		},
		Tier: llm.TierStandard,
	}

	text, err := e.client.GenerateJSON(ctx, req)
	if err != nil {
		return fallbackPatch(), &Failure{Message: "generation call failed", Cause: err}
	}

	if err := schemas.Validate(schemas.ProfilePatch, []byte(text)); err != nil {
		return fallbackPatch(), &Failure{Message: "response failed schema validation", Cause: err}
	}

	var patch types.ProfilePatch
	if err := json.Unmarshal([]byte(text), &patch); err != nil {
		return fallbackPatch(), &Failure{Message: "response is not valid JSON", Cause: err}
	}

	return &patch, nil
}

// fallbackPatch is the degraded-but-valid result substituted when the
// document cannot be read: a placeholder name and a neutral pre-score.
func fallbackPatch() *types.ProfilePatch {
	score := fallbackPreScore
	return &types.ProfilePatch{
		Name:        PlaceholderName,
		ATSPreScore: &score,
	}
}
