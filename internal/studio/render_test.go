package studio

import (
	"strings"
	"testing"
)

func TestRenderTextFullBundle(t *testing.T) {
	bundle := &ResultBundle{
		Theme: "wild west",
		Style: "cartoon",
		Assets: []AssetResult{
			{ID: "fdsj2", Results: []Generation{
				{Prompt: "a dusty saloon", URLs: []string{"https://cdn.test/1.png", "https://cdn.test/2.png"}},
			}},
		},
		Cost: &Cost{
			TotalCost: 1.25,
			Currency:  "USD",
			CostBreakdown: map[string]any{
				"images": 1.0,
				"text":   0.25,
			},
		},
	}

	out := RenderText(bundle)
	for _, want := range []string{
		"Theme: wild west",
		"Style: cartoon",
		"Asset fdsj2",
		"Prompt: a dusty saloon",
		"https://cdn.test/2.png",
		"Cost: 1.2500 USD",
		"images: 1",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderTextMissingCost(t *testing.T) {
	bundle := &ResultBundle{Theme: "space", Style: "pixel"}
	out := RenderText(bundle)
	if !strings.Contains(out, "no cost info") {
		t.Fatalf("output missing no-cost line:\n%s", out)
	}
}

func TestRenderTextPromptlessResult(t *testing.T) {
	bundle := &ResultBundle{
		Theme: "space",
		Style: "pixel",
		Assets: []AssetResult{
			{ID: "a1", Results: []Generation{{URLs: []string{"https://cdn.test/only.png"}}}},
		},
	}
	out := RenderText(bundle)
	if strings.Contains(out, "Prompt:") {
		t.Fatalf("prompt line rendered for image-only result:\n%s", out)
	}
	if !strings.Contains(out, "https://cdn.test/only.png") {
		t.Fatalf("url missing:\n%s", out)
	}
}

func TestPhaseLabel(t *testing.T) {
	tests := []struct {
		phase Phase
		want  string
	}{
		{PhaseInProgress, "In Progress"},
		{PhaseCompleted, "Completed"},
		{PhaseFailed, "Failed"},
	}
	for _, tc := range tests {
		if got := PhaseLabel(tc.phase); got != tc.want {
			t.Fatalf("PhaseLabel(%q) = %q, want %q", tc.phase, got, tc.want)
		}
	}
}

func TestRenderValidationNotCompliantWithoutReasons(t *testing.T) {
	out := RenderValidation(&ValidationResult{Compliant: false})
	if !strings.Contains(out, "NOT COMPLIANT") {
		t.Fatalf("verdict missing:\n%s", out)
	}
	if !strings.Contains(out, "No specific reasons provided.") {
		t.Fatalf("placeholder missing:\n%s", out)
	}
}
