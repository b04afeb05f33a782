package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/theirongolddev/perftrack/internal/tui/theme"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestLayoutRowSumsToWidth(t *testing.T) {
	for _, tc := range []struct{ width, n int }{{100, 3}, {81, 4}, {10, 1}} {
		widths := LayoutRow(tc.width, tc.n)
		sum := 0
		for _, w := range widths {
			sum += w
		}
		if len(widths) != tc.n || sum != tc.width {
			t.Errorf("LayoutRow(%d, %d) = %v", tc.width, tc.n, widths)
		}
	}
	if LayoutRow(10, 0) != nil {
		t.Error("LayoutRow with n=0 should be nil")
	}
}

func TestMetricCardRowWidth(t *testing.T) {
	theme.SetActive("flexoki-dark")

	row := MetricCardRow([]Metric{
		{Label: "Cumulative profit", Value: "1,200,000.00"},
		{Label: "Distance to annual target", Value: "1,100,000.00", Delta: "-1,100,000.00", DeltaColor: theme.Active.Loss},
		{Label: "Total deductions", Value: "0.00"},
	}, 90)

	for i, line := range strings.Split(row, "\n") {
		if w := lipgloss.Width(line); w != 90 {
			t.Errorf("line %d width = %d, want 90", i, w)
		}
	}
	if !strings.Contains(row, "-1,100,000.00") {
		t.Error("delta not rendered")
	}
}

func TestCardRowHeightMatchesTallest(t *testing.T) {
	theme.SetActive("flexoki-dark")

	shortCard := ContentCard("Short", "Content", 22)
	tallCard := FocusCard("Tall", "Line 1\nLine 2\nLine 3\nLine 4\nLine 5", 22)

	shortLines := len(strings.Split(shortCard, "\n"))
	tallLines := len(strings.Split(tallCard, "\n"))
	if shortLines >= tallLines {
		t.Fatal("short card should be shorter than tall card")
	}

	joined := CardRow([]string{tallCard, shortCard})
	if got := len(strings.Split(joined, "\n")); got != tallLines {
		t.Errorf("joined height = %d, want %d", got, tallLines)
	}
}

func TestCardInnerWidth(t *testing.T) {
	if got := CardInnerWidth(60); got != 56 {
		t.Errorf("CardInnerWidth(60) = %d, want 56", got)
	}
	if got := CardInnerWidth(8); got != 10 {
		t.Errorf("CardInnerWidth(8) = %d, want floor of 10", got)
	}
}

func TestSparklineScalesToRange(t *testing.T) {
	got := Sparkline([]float64{-5, 0, 5})
	for _, r := range []string{"▁", "█"} {
		if !strings.Contains(got, r) {
			t.Errorf("sparkline %q missing %q", got, r)
		}
	}
	if Sparkline(nil) != "" {
		t.Error("empty sparkline should render nothing")
	}
}

func TestStatusBarShowsMessage(t *testing.T) {
	bar := RenderStatusBar(60, "[q]uit", Status{Text: "Feb (2) saved."})
	if lipgloss.Width(bar) != 60 {
		t.Errorf("status bar width = %d, want 60", lipgloss.Width(bar))
	}
	if !strings.Contains(bar, "Feb (2) saved.") {
		t.Error("status text missing")
	}
}
