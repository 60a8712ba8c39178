package quote

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/highmark/consult-copilot/internal/knowledge"
	"github.com/highmark/consult-copilot/internal/types"
)

func TestNewProposal_CopiesRecommendation(t *testing.T) {
	rec := &types.RecommendationResult{
		CoreStrategy: "以 PTA 项目补齐实习短板。",
		SalesLogic: types.SalesLogic{
			ValueProp: []string{"独家内推网络"},
			Timing:    []string{"秋招补录黄金期"},
			Scarcity:  []string{"导师排期紧张"},
		},
		ClosingScript: "现在锁定名额。",
	}

	proposal := NewProposal(rec)
	require.NotNil(t, proposal)
	assert.Equal(t, rec.CoreStrategy, proposal.CoreStrategy)
	assert.Equal(t, rec.ClosingScript, proposal.ClosingScript)

	// Edits to the proposal copy never leak back into the recommendation
	proposal.SalesLogic.ValueProp[0] = "edited"
	proposal.CoreStrategy = "edited"
	assert.Equal(t, "独家内推网络", rec.SalesLogic.ValueProp[0])
	assert.Equal(t, "以 PTA 项目补齐实习短板。", rec.CoreStrategy)
}

func TestNewProposal_NilRecommendation(t *testing.T) {
	proposal := NewProposal(nil)
	require.NotNil(t, proposal)
	assert.Empty(t, proposal.CoreStrategy)
}

func TestSnapshot(t *testing.T) {
	cart := NewCart(knowledge.Catalog(), &types.RecommendationResult{
		InitialRecommendedProducts: []string{knowledge.ProductPTA},
	})
	proposal := &Proposal{CoreStrategy: "策略"}

	snapshot := cart.Snapshot(proposal)
	assert.Len(t, snapshot.Lines, len(knowledge.Catalog()))
	assert.Equal(t, cart.Totals(), snapshot.Totals)
	assert.Same(t, proposal, snapshot.Proposal)
}
