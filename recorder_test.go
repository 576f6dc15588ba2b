package barchart

import (
	"strings"
	"testing"

	"github.com/go-test/deep"
)

func TestRecorderSamples(t *testing.T) {
	c := NewChart(nil, DefaultChartOptions())
	rec := NewRecorder(c, 1)
	if _, err := c.Join(demoRecords()); err != nil {
		t.Fatal(err)
	}
	rec.Sample()
	settle(c)
	rec.Sample()

	if rec.Len() != 2 {
		t.Fatalf("Len = %d, want 2", rec.Len())
	}
	if diff := deep.Equal(rec.Keys(), []string{"USA", "France", "Japan"}); diff != nil {
		t.Error(diff)
	}
	usa := rec.Series("USA")
	if usa[0] != 0 || usa[1] != 1 {
		t.Errorf("USA series = %v, want [0 1]", usa)
	}
}

func TestRecorderBackfillsAndZeroesMissing(t *testing.T) {
	c := NewChart(nil, DefaultChartOptions())
	rec := NewRecorder(c, 1)

	if _, err := c.Join([]Record{{Key: "a", Color: "red", Value: 1}}); err != nil {
		t.Fatal(err)
	}
	settle(c)
	rec.Sample()

	if _, err := c.Join([]Record{{Key: "b", Color: "red", Value: 1}}); err != nil {
		t.Fatal(err)
	}
	settle(c)
	rec.Sample()

	if diff := deep.Equal(rec.Series("a"), []float64{1, 0}); diff != nil {
		t.Error("a:", diff)
	}
	if diff := deep.Equal(rec.Series("b"), []float64{0, 1}); diff != nil {
		t.Error("b:", diff)
	}
}

func TestRecorderEvery(t *testing.T) {
	c := NewChart(nil, DefaultChartOptions())
	rec := NewRecorder(c, 3)
	for range 7 {
		rec.Sample()
	}
	if rec.Len() != 3 {
		t.Errorf("Len = %d, want 3 samples (frames 1, 4, 7)", rec.Len())
	}
}

func TestRecorderPlot(t *testing.T) {
	c := NewChart(nil, DefaultChartOptions())
	rec := NewRecorder(c, 1)
	if got := rec.Plot(40, 5); got != "" {
		t.Errorf("empty recorder plotted %q", got)
	}

	if _, err := c.Join(demoRecords()); err != nil {
		t.Fatal(err)
	}
	for range 8 {
		c.Update(0.25)
		rec.Sample()
	}
	plot := rec.Plot(40, 5)
	if !strings.Contains(plot, "1=USA, 2=France, 3=Japan") {
		t.Errorf("plot caption missing:\n%s", plot)
	}
	if lines := strings.Count(plot, "\n"); lines < 5 {
		t.Errorf("plot has %d lines, want at least 5:\n%s", lines, plot)
	}
}
