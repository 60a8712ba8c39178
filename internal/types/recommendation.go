package types

// SalesLogic holds the three persuasion buckets of the proposal, each as a
// list of bullet points the consultant can edit before presenting.
type SalesLogic struct {
	ValueProp []string `json:"value_prop"`
	Timing    []string `json:"timing"`
	Scarcity  []string `json:"scarcity"`
}

// RecommendationResult is the AI-drafted sales proposal. It seeds the quote
// cart and the editable proposal copy; once handed to the quote session the
// text here is no longer authoritative.
type RecommendationResult struct {
	CoreStrategy               string     `json:"core_strategy"`
	InitialRecommendedProducts []string   `json:"initial_recommended_products"`
	SalesLogic                 SalesLogic `json:"sales_logic"`
	ClosingScript              string     `json:"closing_script"`
}
