package pipeline

import (
	"github.com/highmark/consult-copilot/internal/quote"
	"github.com/highmark/consult-copilot/internal/types"
)

// SessionView is the render-friendly serialization of a session. The export
// collaborator (PDF report, dashboard) consumes this shape; it carries no
// engine or transport state.
type SessionView struct {
	ID             string                      `json:"id"`
	State          State                       `json:"state"`
	ParseStatus    ParseStatus                 `json:"parse_status"`
	Profile        types.StudentProfile        `json:"profile"`
	Diagnosis      *types.DiagnosisResult      `json:"diagnosis,omitempty"`
	Recommendation *types.RecommendationResult `json:"recommendation,omitempty"`
	Quote          *quote.Snapshot             `json:"quote,omitempty"`
}

// View serializes the current session state.
func (s *Session) View() SessionView {
	view := SessionView{
		ID:             s.ID.String(),
		State:          s.state,
		ParseStatus:    s.parseStatus,
		Profile:        s.profile,
		Diagnosis:      s.diagnosis,
		Recommendation: s.recommendation,
	}
	if s.cart != nil {
		snapshot := s.cart.Snapshot(s.proposal)
		view.Quote = &snapshot
	}
	return view
}
