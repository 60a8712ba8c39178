package quote

import "github.com/highmark/consult-copilot/internal/types"

// Proposal is the editable copy of the AI-drafted sales proposal. The
// recommendation result itself stays read-only; the operator edits this copy
// during the conversation.
type Proposal struct {
	CoreStrategy  string           `json:"core_strategy"`
	SalesLogic    types.SalesLogic `json:"sales_logic"`
	ClosingScript string           `json:"closing_script"`
}

// NewProposal seeds the editable proposal copy from a recommendation.
func NewProposal(rec *types.RecommendationResult) *Proposal {
	if rec == nil {
		return &Proposal{}
	}
	return &Proposal{
		CoreStrategy:  rec.CoreStrategy,
		SalesLogic:    copySalesLogic(rec.SalesLogic),
		ClosingScript: rec.ClosingScript,
	}
}

// Snapshot is the render-friendly serialization of a quote: the line set,
// the derived totals, and the operator-edited proposal copy. The export
// collaborator consumes this shape directly.
type Snapshot struct {
	Lines    []Line    `json:"lines"`
	Totals   Totals    `json:"totals"`
	Proposal *Proposal `json:"proposal,omitempty"`
}

// Snapshot serializes the cart and an optional proposal for export.
func (c *Cart) Snapshot(proposal *Proposal) Snapshot {
	return Snapshot{
		Lines:    c.Lines(),
		Totals:   c.Totals(),
		Proposal: proposal,
	}
}

func copySalesLogic(logic types.SalesLogic) types.SalesLogic {
	out := types.SalesLogic{
		ValueProp: make([]string, len(logic.ValueProp)),
		Timing:    make([]string, len(logic.Timing)),
		Scarcity:  make([]string, len(logic.Scarcity)),
	}
	copy(out.ValueProp, logic.ValueProp)
	copy(out.Timing, logic.Timing)
	copy(out.Scarcity, logic.Scarcity)
	return out
}
