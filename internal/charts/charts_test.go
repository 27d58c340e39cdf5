package charts

import (
	"errors"
	"strings"
	"testing"

	"pitchdeck/internal/deck"
)

func barSpec() deck.ChartSpec {
	return deck.ChartSpec{
		Kind:  deck.ChartBar,
		Title: "Enrollment by year",
		Series: []deck.Series{
			{Label: "2024", Values: []float64{120}},
			{Label: "2025", Values: []float64{340}},
			{Label: "2026", Values: []float64{560}, Color: "#4db6ac"},
		},
	}
}

func TestRenderChart_BarContainsLabelsAndTitle(t *testing.T) {
	out, err := NewRenderer().RenderChart(barSpec(), 60)
	if err != nil {
		t.Fatalf("RenderChart: %v", err)
	}
	for _, want := range []string{"Enrollment by year", "2024", "2025", "2026", "█"} {
		if !strings.Contains(out, want) {
			t.Errorf("bar chart missing %q:\n%s", want, out)
		}
	}
}

func TestRenderChart_DonutSharesSumSensibly(t *testing.T) {
	spec := deck.ChartSpec{
		Kind: deck.ChartDonut,
		Series: []deck.Series{
			{Label: "Capital", Values: []float64{50}},
			{Label: "Operating", Values: []float64{30}},
			{Label: "Reserve", Values: []float64{20}},
		},
	}
	out, err := NewRenderer().RenderChart(spec, 50)
	if err != nil {
		t.Fatalf("RenderChart: %v", err)
	}
	for _, want := range []string{"Capital", "50%", "Operating", "30%", "Reserve", "20%"} {
		if !strings.Contains(out, want) {
			t.Errorf("donut missing %q:\n%s", want, out)
		}
	}
}

func TestRenderChart_Sparkline(t *testing.T) {
	spec := deck.ChartSpec{
		Kind: deck.ChartSparkline,
		Series: []deck.Series{
			{Label: "visits", Values: []float64{1, 4, 2, 8, 5, 8, 1}},
		},
	}
	out, err := NewRenderer().RenderChart(spec, 40)
	if err != nil {
		t.Fatalf("RenderChart: %v", err)
	}
	if !strings.Contains(out, "visits") {
		t.Errorf("sparkline missing label:\n%s", out)
	}
	if !strings.ContainsRune(out, '█') || !strings.ContainsRune(out, '▁') {
		t.Errorf("sparkline missing extremes for max/min values:\n%s", out)
	}
}

func TestRenderChart_UnavailableCases(t *testing.T) {
	r := NewRenderer()

	if _, err := r.RenderChart(barSpec(), 10); !errors.Is(err, deck.ErrUnavailable) {
		t.Errorf("narrow width: err = %v, want ErrUnavailable", err)
	}
	if _, err := r.RenderChart(deck.ChartSpec{Kind: "scatter3d"}, 60); !errors.Is(err, deck.ErrUnavailable) {
		t.Errorf("unknown kind: err = %v, want ErrUnavailable", err)
	}
	if _, err := r.RenderChart(deck.ChartSpec{Kind: deck.ChartBar}, 60); !errors.Is(err, deck.ErrUnavailable) {
		t.Errorf("no series: err = %v, want ErrUnavailable", err)
	}
}

func TestRenderDiagram(t *testing.T) {
	d := NewDiagramRenderer()

	out, err := d.RenderDiagram("[students] --> [campus] --> [employers]", 50)
	if err != nil {
		t.Fatalf("RenderDiagram: %v", err)
	}
	if !strings.Contains(out, "students") {
		t.Errorf("diagram lost its content:\n%s", out)
	}

	if _, err := d.RenderDiagram("   ", 50); !errors.Is(err, deck.ErrUnavailable) {
		t.Errorf("blank source: err = %v, want ErrUnavailable", err)
	}
	if _, err := d.RenderDiagram("x", 4); !errors.Is(err, deck.ErrUnavailable) {
		t.Errorf("narrow width: err = %v, want ErrUnavailable", err)
	}
}
