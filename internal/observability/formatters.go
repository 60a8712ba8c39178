// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/highmark/consult-copilot/internal/quote"
	"github.com/highmark/consult-copilot/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintDiagnosis outputs a human-readable summary of a diagnosis.
func (p *Printer) PrintDiagnosis(result *types.DiagnosisResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score:     %d / 100 (pass line %d)\n", result.OverallScore, result.PassLine))
	sb.WriteString(fmt.Sprintf("Hard gate: %s\n", result.HardCriteria.Result))
	sb.WriteString("\n")

	if len(result.RadarData) > 0 {
		sb.WriteString("Radar:\n")
		for _, metric := range result.RadarData {
			sb.WriteString(fmt.Sprintf("  • %s: %d (benchmark %d)\n", metric.Subject, metric.Candidate, metric.Benchmark))
		}
	}

	if len(result.TargetCompanies) > 0 {
		sb.WriteString("Target companies:\n")
		for _, tier := range result.TargetCompanies {
			count := min(len(tier.Companies), maxItemsToShow)
			sb.WriteString(fmt.Sprintf("  • %s (%s): %s\n", tier.Type, tier.SuccessRate,
				strings.Join(tier.Companies[:count], ", ")))
		}
	}

	if result.SuccessCase.Major != "" {
		sb.WriteString(fmt.Sprintf("Success case: %s (%s)\n", result.SuccessCase.Profile, result.SuccessCase.Major))
	}

	p.printBox("Competitiveness Diagnosis", sb.String())
}

// PrintRecommendation outputs a human-readable summary of a proposal.
func (p *Printer) PrintRecommendation(result *types.RecommendationResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Strategy: %s\n", result.CoreStrategy))
	sb.WriteString(fmt.Sprintf("Products: %s\n", strings.Join(result.InitialRecommendedProducts, ", ")))

	if len(result.SalesLogic.ValueProp) > 0 {
		sb.WriteString("Value props:\n")
		for _, point := range result.SalesLogic.ValueProp {
			sb.WriteString(fmt.Sprintf("  • %s\n", point))
		}
	}

	p.printBox("Sales Proposal", sb.String())
}

// PrintQuote outputs the quote lines and derived totals.
func (p *Printer) PrintQuote(snapshot quote.Snapshot) {
	var sb strings.Builder
	for _, line := range snapshot.Lines {
		marker := " "
		if line.IsSelected {
			marker = "x"
		}
		sb.WriteString(fmt.Sprintf("[%s] %-24s ¥%.0f\n", marker, line.Name, line.FinalPrice))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Standard: ¥%.0f\n", snapshot.Totals.StandardTotal))
	sb.WriteString(fmt.Sprintf("Final:    ¥%.0f\n", snapshot.Totals.FinalTotal))
	sb.WriteString(fmt.Sprintf("Discount: ¥%.0f\n", snapshot.Totals.Discount))
	sb.WriteString(fmt.Sprintf("Total:    ¥%.0f\n", snapshot.Totals.GrandTotal))

	p.printBox("Quote", sb.String())
}
