package studio

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// PhaseLabel renders a server phase constant as a human heading, e.g.
// IN_PROGRESS becomes "In Progress".
func PhaseLabel(p Phase) string {
	lower := strings.ToLower(strings.ReplaceAll(string(p), "_", " "))
	return cases.Title(language.Und).String(lower)
}

// RenderText formats a result bundle the way the dashboards present it:
// theme and style first, then each asset's generations with their prompts
// and URLs, then the cost breakdown. A bundle without cost renders a
// "no cost info" line instead of failing, and prompt-less results simply
// skip the prompt line.
func RenderText(b *ResultBundle) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Theme: %s\n", strings.TrimSpace(b.Theme))
	fmt.Fprintf(&sb, "Style: %s\n", strings.TrimSpace(b.Style))

	for _, asset := range b.Assets {
		fmt.Fprintf(&sb, "\nAsset %s\n", asset.ID)
		for i, result := range asset.Results {
			fmt.Fprintf(&sb, "  Result %d\n", i+1)
			if result.Prompt != "" {
				fmt.Fprintf(&sb, "    Prompt: %s\n", result.Prompt)
			}
			for _, u := range result.URLs {
				fmt.Fprintf(&sb, "    %s\n", u)
			}
		}
	}

	sb.WriteString("\n")
	sb.WriteString(RenderCost(b.Cost))
	return sb.String()
}

// RenderCost formats a cost block, tolerating its absence.
func RenderCost(c *Cost) string {
	if c == nil {
		return "Cost: no cost info\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Cost: %.4f %s\n", c.TotalCost, c.Currency)
	for _, item := range sortedKeys(c.CostBreakdown) {
		fmt.Fprintf(&sb, "  %s: %v\n", item, c.CostBreakdown[item])
	}
	return sb.String()
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// RenderValidation formats a compliance verdict for terminal output.
func RenderValidation(v *ValidationResult) string {
	var sb strings.Builder
	if v.Compliant {
		sb.WriteString("Image is COMPLIANT with brand guidelines\n")
	} else {
		sb.WriteString("Image is NOT COMPLIANT with brand guidelines\n")
	}
	if v.Compliance != nil {
		fmt.Fprintf(&sb, "Compliance: %.0f%%\n", *v.Compliance)
	}
	for i, reason := range v.Reasons {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, reason)
	}
	if !v.Compliant && len(v.Reasons) == 0 {
		sb.WriteString("  No specific reasons provided.\n")
	}
	return sb.String()
}
