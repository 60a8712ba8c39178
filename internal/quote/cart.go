// Package quote maintains the editable, derived pricing model for one
// consulting session: catalog lines seeded from the recommendation, operator
// price edits, ad-hoc custom lines, and live total computation. Totals are
// always recomputed from the line set; nothing derived is stored.
package quote

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/highmark/consult-copilot/internal/knowledge"
	"github.com/highmark/consult-copilot/internal/types"
)

// Placeholder copy for a freshly added custom line, awaiting operator edit.
const (
	customLinePlaceholderName = "新增服务项 (Custom)"
	customLinePlaceholderDesc = "点击编辑描述"
)

// Cart mutation errors.
var (
	// ErrLineNotFound is returned when a mutation names an id the cart does not hold.
	ErrLineNotFound = errors.New("quote: line not found")
	// ErrStandardLine is returned when removal targets a catalog line.
	// Catalog lines can be deselected but never removed.
	ErrStandardLine = errors.New("quote: standard catalog lines cannot be removed")
)

// Line is one row of the quote: a catalog item or an operator-added custom
// service, with the list price and the (possibly discounted) agreed price.
type Line struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	OriginalPrice float64 `json:"original_price"`
	FinalPrice    float64 `json:"final_price"`
	IsSelected    bool    `json:"is_selected"`
	IsCustom      bool    `json:"is_custom"`
}

// Totals are the derived money values of the cart. GrandTotal is not clamped:
// an operator who over-discounts sees a negative total.
type Totals struct {
	StandardTotal float64 `json:"standard_total"`
	FinalTotal    float64 `json:"final_total"`
	Discount      float64 `json:"discount"`
	GrandTotal    float64 `json:"grand_total"`
}

// Cart is the quote state for one session. It is not safe for concurrent
// use; the owning session serializes access.
type Cart struct {
	lines          []Line
	manualDiscount float64
}

// NewCart builds a cart from the catalog and a recommendation: one line per
// catalog item, selected when the recommendation suggests it. Initialization
// is a pure function of its inputs, so seeding twice from the same
// recommendation yields an identical line set.
func NewCart(catalog []knowledge.CatalogItem, rec *types.RecommendationResult) *Cart {
	c := &Cart{}
	c.Init(catalog, rec)
	return c
}

// Init replaces the entire line set from the catalog and recommendation.
// The manual discount is an independent operator-set scalar and survives
// re-initialization.
func (c *Cart) Init(catalog []knowledge.CatalogItem, rec *types.RecommendationResult) {
	recommended := make(map[string]bool)
	if rec != nil {
		for _, id := range rec.InitialRecommendedProducts {
			recommended[id] = true
		}
	}

	lines := make([]Line, 0, len(catalog))
	for _, item := range catalog {
		lines = append(lines, Line{
			ID:            item.ID,
			Name:          item.Name,
			Description:   item.Description,
			OriginalPrice: item.Price,
			FinalPrice:    item.Price,
			IsSelected:    recommended[item.ID],
			IsCustom:      false,
		})
	}
	c.lines = lines
}

// Lines returns a copy of the current line set in display order.
func (c *Cart) Lines() []Line {
	lines := make([]Line, len(c.lines))
	copy(lines, c.lines)
	return lines
}

// Line returns the line with the given id.
func (c *Cart) Line(id string) (Line, bool) {
	for _, line := range c.lines {
		if line.ID == id {
			return line, true
		}
	}
	return Line{}, false
}

// ToggleSelection flips the selected flag of a line. Unknown ids are a no-op.
func (c *Cart) ToggleSelection(id string) bool {
	for i := range c.lines {
		if c.lines[i].ID == id {
			c.lines[i].IsSelected = !c.lines[i].IsSelected
			return true
		}
	}
	return false
}

// SetPrice overwrites a line's final price. Negative or non-finite input is
// normalized to zero so bad operator input can never corrupt the totals.
// Unknown ids are a no-op.
func (c *Cart) SetPrice(id string, price float64) bool {
	for i := range c.lines {
		if c.lines[i].ID == id {
			c.lines[i].FinalPrice = sanitizePrice(price)
			return true
		}
	}
	return false
}

// SetDetails renames a custom line. Catalog lines keep their catalog copy.
func (c *Cart) SetDetails(id, name, description string) error {
	for i := range c.lines {
		if c.lines[i].ID == id {
			if !c.lines[i].IsCustom {
				return ErrStandardLine
			}
			if name != "" {
				c.lines[i].Name = name
			}
			if description != "" {
				c.lines[i].Description = description
			}
			return nil
		}
	}
	return ErrLineNotFound
}

// AddCustomLine appends a selected, zero-priced custom line with a freshly
// generated unique id and placeholder copy, and returns it.
func (c *Cart) AddCustomLine() Line {
	line := Line{
		ID:          fmt.Sprintf("CUSTOM_%s", uuid.NewString()),
		Name:        customLinePlaceholderName,
		Description: customLinePlaceholderDesc,
		IsSelected:  true,
		IsCustom:    true,
	}
	c.lines = append(c.lines, line)
	return line
}

// RemoveLine deletes a custom line. Removing a catalog line is rejected with
// ErrStandardLine and leaves the cart unchanged; operators can only deselect
// catalog lines, never delete them.
func (c *Cart) RemoveLine(id string) error {
	for i := range c.lines {
		if c.lines[i].ID == id {
			if !c.lines[i].IsCustom {
				return ErrStandardLine
			}
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return nil
		}
	}
	return ErrLineNotFound
}

// SetDiscount sets the manual discount. The discount itself is kept
// non-negative; non-finite input resets it to zero.
func (c *Cart) SetDiscount(discount float64) {
	c.manualDiscount = sanitizePrice(discount)
}

// Discount returns the current manual discount.
func (c *Cart) Discount() float64 {
	return c.manualDiscount
}

// Totals recomputes the derived money values from the current line set.
func (c *Cart) Totals() Totals {
	t := Totals{Discount: c.manualDiscount}
	for _, line := range c.lines {
		if !line.IsSelected {
			continue
		}
		t.StandardTotal += line.OriginalPrice
		t.FinalTotal += line.FinalPrice
	}
	t.GrandTotal = t.FinalTotal - t.Discount
	return t
}

// sanitizePrice coerces operator input to a safe non-negative number.
func sanitizePrice(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
