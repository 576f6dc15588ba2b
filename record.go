package barchart

import (
	"errors"
	"fmt"
	"math"
)

// Record is one data point of a batch. Key identifies the record within the
// batch and is the join key; Value drives the bar's height.
type Record struct {
	Key   string  `yaml:"key" json:"key"`
	Color string  `yaml:"color" json:"color"`
	Value float64 `yaml:"value" json:"value"`
}

var (
	// ErrInvalidRecord reports a record with an empty key, an unusable color,
	// or a value that is negative, NaN, or infinite.
	ErrInvalidRecord = errors.New("barchart: invalid record")
	// ErrDuplicateKey reports two records sharing a key in one batch.
	ErrDuplicateKey = errors.New("barchart: duplicate key")
	// ErrSurfaceUnavailable reports that the render surface could not be
	// started. It is fatal.
	ErrSurfaceUnavailable = errors.New("barchart: render surface unavailable")
)

// RecordError describes a problem with a single record of a batch.
type RecordError struct {
	Index  int    // position in the batch as passed to Join
	Key    string // record key, possibly empty
	Reason string
	Err    error // ErrInvalidRecord or ErrDuplicateKey
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("%v: record %d (key %q): %s", e.Err, e.Index, e.Key, e.Reason)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// DuplicatePolicy selects how a batch with repeated keys is handled.
type DuplicatePolicy uint8

const (
	// DuplicateLastWins drops earlier records with a repeated key; the last
	// one keeps its own position in the batch.
	DuplicateLastWins DuplicatePolicy = iota
	// DuplicateReject rejects the whole batch.
	DuplicateReject
)

// String returns the config spelling of the policy.
func (p DuplicatePolicy) String() string {
	switch p {
	case DuplicateReject:
		return "reject"
	default:
		return "last-wins"
	}
}

// ParseDuplicatePolicy parses "last-wins" or "reject".
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch s {
	case "", "last-wins":
		return DuplicateLastWins, nil
	case "reject":
		return DuplicateReject, nil
	}
	return 0, fmt.Errorf("unknown duplicate policy %q", s)
}

// checkRecord reports why r is invalid, or "" if it is usable.
func checkRecord(r Record) (Color, string) {
	if r.Key == "" {
		return Color{}, "empty key"
	}
	if math.IsNaN(r.Value) || math.IsInf(r.Value, 0) {
		return Color{}, "value is not finite"
	}
	if r.Value < 0 {
		return Color{}, "value is negative"
	}
	c, err := ParseColor(r.Color)
	if err != nil {
		return Color{}, err.Error()
	}
	return c, ""
}

// validRecord is a record that passed validation with its parsed color.
type validRecord struct {
	Record
	color Color
}

// cleanRecords validates a batch. Invalid records are dropped; duplicate keys
// follow policy. The returned error joins one *RecordError per problem. When
// policy is DuplicateReject and a duplicate exists, the returned slice is nil
// and rejected is true.
func cleanRecords(records []Record, policy DuplicatePolicy) (out []validRecord, rejected bool, err error) {
	var errs []error
	valid := make([]validRecord, 0, len(records))
	origin := make([]int, 0, len(records))
	for i, r := range records {
		c, reason := checkRecord(r)
		if reason != "" {
			errs = append(errs, &RecordError{Index: i, Key: r.Key, Reason: reason, Err: ErrInvalidRecord})
			continue
		}
		valid = append(valid, validRecord{Record: r, color: c})
		origin = append(origin, i)
	}

	last := make(map[string]int, len(valid))
	for i, r := range valid {
		last[r.Key] = i
	}
	if len(last) == len(valid) {
		return valid, false, errors.Join(errs...)
	}

	out = make([]validRecord, 0, len(last))
	for i, r := range valid {
		if last[r.Key] != i {
			errs = append(errs, &RecordError{
				Index:  origin[i],
				Key:    r.Key,
				Reason: fmt.Sprintf("repeated at record %d", origin[last[r.Key]]),
				Err:    ErrDuplicateKey,
			})
			continue
		}
		out = append(out, r)
	}
	if policy == DuplicateReject {
		return nil, true, errors.Join(errs...)
	}
	return out, false, errors.Join(errs...)
}
