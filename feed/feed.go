// Package feed provides data sources for a barchart.App.
//
// Random mimics a live source: every batch gets fresh values and a
// shuffled order. Script replays batches read from YAML or JSON.
package feed

import (
	"fmt"
	"math/rand/v2"

	"github.com/phanxgames/barchart"
	"gopkg.in/yaml.v3"
)

// MaxValue is the exclusive upper bound of Random's values.
const MaxValue = 300

// Random mutates a fixed set of records: each call to Next assigns every
// record a new value in [0, MaxValue) and shuffles the order.
type Random struct {
	// Churn is the probability that a record is left out of a batch, which
	// makes its bar exit and a later batch bring it back. Zero keeps every key.
	Churn float64

	rng     *rand.Rand
	records []barchart.Record
}

// NewRandom creates a random feed over records, seeded with seed. The records
// are copied.
func NewRandom(seed uint64, records []barchart.Record) *Random {
	return &Random{
		rng:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		records: append([]barchart.Record(nil), records...),
	}
}

// Next returns the next batch. The returned slice is owned by the caller.
func (r *Random) Next() []barchart.Record {
	data := r.records
	for i := range data {
		data[i].Value = r.rng.Float64() * MaxValue
		j := r.rng.IntN(i + 1)
		data[i], data[j] = data[j], data[i]
	}

	out := make([]barchart.Record, 0, len(data))
	for _, rec := range data {
		if r.Churn > 0 && r.rng.Float64() < r.Churn {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// Script replays a fixed list of batches, starting over after the last one.
type Script struct {
	batches [][]barchart.Record
	cursor  int
	// Loop restarts from the first batch after the last. When false, Next
	// keeps returning the last batch.
	Loop bool
}

type scriptFile struct {
	Batches [][]barchart.Record `yaml:"batches"`
}

// LoadScript parses a YAML or JSON document of the form
//
//	batches:
//	  - [{key: USA, color: red, value: 320}, {key: Japan, color: blue, value: 127}]
//	  - [{key: Japan, color: blue, value: 200}]
func LoadScript(data []byte) (*Script, error) {
	var f scriptFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse feed script: %w", err)
	}
	if len(f.Batches) == 0 {
		return nil, fmt.Errorf("parse feed script: no batches")
	}
	return &Script{batches: f.Batches, Loop: true}, nil
}

// NewScript creates a looping script over batches.
func NewScript(batches ...[]barchart.Record) *Script {
	return &Script{batches: batches, Loop: true}
}

// Len returns the number of batches.
func (s *Script) Len() int { return len(s.batches) }

// Next returns a copy of the next batch, or nil for an empty script.
func (s *Script) Next() []barchart.Record {
	if len(s.batches) == 0 {
		return nil
	}
	b := s.batches[s.cursor]
	switch {
	case s.cursor+1 < len(s.batches):
		s.cursor++
	case s.Loop:
		s.cursor = 0
	}
	return append([]barchart.Record(nil), b...)
}
