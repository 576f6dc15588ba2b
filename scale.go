package barchart

// LinearScale maps a value domain onto a visual range linearly. It is a plain
// value; build a new one whenever the domain changes.
type LinearScale struct {
	Domain [2]float64
	Range  [2]float64
}

// NewLinearScale returns a scale mapping [d0, d1] onto [r0, r1].
func NewLinearScale(d0, d1, r0, r1 float64) LinearScale {
	return LinearScale{Domain: [2]float64{d0, d1}, Range: [2]float64{r0, r1}}
}

// HeightScale returns the scale used for bar heights: [0, max value] onto
// [0, 1]. An empty record set yields the degenerate domain [0, 0].
func HeightScale(records []Record) LinearScale {
	return NewLinearScale(0, MaxValue(records), 0, 1)
}

// Map applies the scale to v. Values outside the domain extrapolate. A
// degenerate domain maps every input to the start of the range.
func (s LinearScale) Map(v float64) float64 {
	d0, d1 := s.Domain[0], s.Domain[1]
	if d1 == d0 {
		return s.Range[0]
	}
	return Lerp(s.Range[0], s.Range[1], (v-d0)/(d1-d0))
}

// MaxValue returns the largest Value in records, or 0 when records is empty.
func MaxValue(records []Record) float64 {
	if len(records) == 0 {
		return 0
	}
	m := records[0].Value
	for _, r := range records[1:] {
		if r.Value > m {
			m = r.Value
		}
	}
	return m
}
