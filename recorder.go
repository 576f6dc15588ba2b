package barchart

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"
)

// Recorder is a headless render surface: it samples every bar's height each
// frame and plots the history as ASCII line graphs, one series per key.
type Recorder struct {
	chart  *Chart
	every  int
	frame  int
	keys   []string
	series map[string][]float64
	length int
}

// NewRecorder creates a recorder sampling chart once every `every` calls to
// Sample. every < 1 samples every call.
func NewRecorder(chart *Chart, every int) *Recorder {
	return &Recorder{
		chart:  chart,
		every:  max(every, 1),
		series: make(map[string][]float64),
	}
}

// Sample records the current height of every non-exiting bar. Keys not
// present in this sample record 0.
func (r *Recorder) Sample() {
	r.frame++
	if (r.frame-1)%r.every != 0 {
		return
	}
	for _, b := range r.chart.Bars() {
		if b.Exiting() {
			continue
		}
		if _, ok := r.series[b.Key]; !ok {
			r.keys = append(r.keys, b.Key)
			r.series[b.Key] = make([]float64, r.length)
		}
	}
	for _, k := range r.keys {
		h := 0.0
		if b, ok := r.chart.Bar(k); ok {
			h = b.Height()
		}
		r.series[k] = append(r.series[k], h)
	}
	r.length++
}

// Keys returns the recorded keys in order of first appearance.
func (r *Recorder) Keys() []string {
	return r.keys
}

// Series returns the recorded heights for key.
func (r *Recorder) Series(key string) []float64 {
	return r.series[key]
}

// Len returns the number of samples taken.
func (r *Recorder) Len() int {
	return r.length
}

// Plot renders the recorded series. The caption lists keys in series order.
// Returns an empty string when nothing was recorded.
func (r *Recorder) Plot(width, height int) string {
	if r.length == 0 || len(r.keys) == 0 {
		return ""
	}
	data := make([][]float64, 0, len(r.keys))
	names := make([]string, 0, len(r.keys))
	for i, k := range r.keys {
		data = append(data, r.series[k])
		names = append(names, fmt.Sprintf("%d=%s", i+1, k))
	}
	return asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption("bar heights ("+strings.Join(names, ", ")+")"),
	)
}
