package server

import (
	"encoding/json"
	"net/http"

	"github.com/highmark/consult-copilot/internal/pipeline"
	"github.com/highmark/consult-copilot/internal/quote"
)

// withCart is like withSession but additionally requires the session to hold
// a quote, which only exists in the result state.
func (s *Server) withCart(w http.ResponseWriter, r *http.Request, fn func(session *pipeline.Session, cart *quote.Cart)) {
	s.withSession(w, r, func(session *pipeline.Session) {
		cart := session.Cart()
		if cart == nil {
			s.errorResponse(w, http.StatusConflict, "No quote yet; run the analysis first")
			return
		}
		fn(session, cart)
	})
}

func (s *Server) quoteResponse(w http.ResponseWriter, session *pipeline.Session) {
	s.jsonResponse(w, http.StatusOK, session.Cart().Snapshot(session.Proposal()))
}

func (s *Server) handleGetQuote(w http.ResponseWriter, r *http.Request) {
	s.withCart(w, r, func(session *pipeline.Session, cart *quote.Cart) {
		s.quoteResponse(w, session)
	})
}

func (s *Server) handleAddCustomLine(w http.ResponseWriter, r *http.Request) {
	s.withCart(w, r, func(session *pipeline.Session, cart *quote.Cart) {
		line := cart.AddCustomLine()
		s.jsonResponse(w, http.StatusCreated, map[string]any{
			"line":  line,
			"quote": cart.Snapshot(session.Proposal()),
		})
	})
}

func (s *Server) handleToggleLine(w http.ResponseWriter, r *http.Request) {
	s.withCart(w, r, func(session *pipeline.Session, cart *quote.Cart) {
		if !cart.ToggleSelection(r.PathValue("line_id")) {
			s.errorResponse(w, http.StatusNotFound, "Quote line not found")
			return
		}
		s.quoteResponse(w, session)
	})
}

// LineUpdateRequest edits a quote line. Price applies to any line; name and
// description only to custom lines.
type LineUpdateRequest struct {
	Price       *float64 `json:"price"`
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
}

func (s *Server) handleUpdateLine(w http.ResponseWriter, r *http.Request) {
	var req LineUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	s.withCart(w, r, func(session *pipeline.Session, cart *quote.Cart) {
		lineID := r.PathValue("line_id")

		// Name and description go first: they are the only edits that can be
		// rejected for a standard line, and a rejected request mutates nothing.
		if req.Name != nil || req.Description != nil {
			line, ok := cart.Line(lineID)
			if !ok {
				s.errorResponse(w, http.StatusNotFound, "Quote line not found")
				return
			}
			name, description := line.Name, line.Description
			if req.Name != nil {
				name = *req.Name
			}
			if req.Description != nil {
				description = *req.Description
			}
			if err := cart.SetDetails(lineID, name, description); err != nil {
				s.errorResponse(w, httpStatus(err), err.Error())
				return
			}
		}
		if req.Price != nil {
			if !cart.SetPrice(lineID, *req.Price) {
				s.errorResponse(w, http.StatusNotFound, "Quote line not found")
				return
			}
		}

		s.quoteResponse(w, session)
	})
}

func (s *Server) handleRemoveLine(w http.ResponseWriter, r *http.Request) {
	s.withCart(w, r, func(session *pipeline.Session, cart *quote.Cart) {
		if err := cart.RemoveLine(r.PathValue("line_id")); err != nil {
			s.errorResponse(w, httpStatus(err), err.Error())
			return
		}
		s.quoteResponse(w, session)
	})
}

// DiscountRequest sets the quote-level discount amount.
type DiscountRequest struct {
	Discount float64 `json:"discount" validate:"gte=0"`
}

func (s *Server) handleSetDiscount(w http.ResponseWriter, r *http.Request) {
	var req DiscountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "discount must be non-negative")
		return
	}

	s.withCart(w, r, func(session *pipeline.Session, cart *quote.Cart) {
		cart.SetDiscount(req.Discount)
		s.quoteResponse(w, session)
	})
}

// ProposalUpdateRequest edits the operator-facing proposal copy. Only
// present fields are applied.
type ProposalUpdateRequest struct {
	CoreStrategy  *string   `json:"core_strategy"`
	ValueProp     *[]string `json:"value_prop"`
	Timing        *[]string `json:"timing"`
	Scarcity      *[]string `json:"scarcity"`
	ClosingScript *string   `json:"closing_script"`
}

func (s *Server) handleUpdateProposal(w http.ResponseWriter, r *http.Request) {
	var req ProposalUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	s.withCart(w, r, func(session *pipeline.Session, cart *quote.Cart) {
		proposal := session.Proposal()
		if req.CoreStrategy != nil {
			proposal.CoreStrategy = *req.CoreStrategy
		}
		if req.ValueProp != nil {
			proposal.SalesLogic.ValueProp = *req.ValueProp
		}
		if req.Timing != nil {
			proposal.SalesLogic.Timing = *req.Timing
		}
		if req.Scarcity != nil {
			proposal.SalesLogic.Scarcity = *req.Scarcity
		}
		if req.ClosingScript != nil {
			proposal.ClosingScript = *req.ClosingScript
		}
		s.quoteResponse(w, session)
	})
}
