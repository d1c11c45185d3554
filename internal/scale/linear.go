// Package scale maps data domains onto pixel ranges for the dashboard charts.
//
// All scales are values: every method is pure, so the same domain, range and
// tick count always produce the same mapping and tick set.
package scale

import "math"

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// Linear maps the continuous domain [D0, D1] onto the range [R0, R1].
type Linear struct {
	D0, D1 float64
	R0, R1 float64
}

// NewLinear builds a linear scale.
func NewLinear(d0, d1, r0, r1 float64) Linear {
	return Linear{D0: d0, D1: d1, R0: r0, R1: r1}
}

// Map converts a domain value into range coordinates.
// A zero-width domain maps every value to the middle of the range.
func (s Linear) Map(v float64) float64 {
	span := s.D1 - s.D0
	if span == 0 || math.IsNaN(span) {
		return (s.R0 + s.R1) / 2
	}
	return s.R0 + (v-s.D0)/span*(s.R1-s.R0)
}

// Nice extends the domain outward to round tick values, aiming at about count ticks.
func (s Linear) Nice(count int) Linear {
	start, stop := s.D0, s.D1
	reversed := stop < start
	if reversed {
		start, stop = stop, start
	}

	var prestep float64
loop:
	for iter := 0; iter < 10; iter++ {
		step := tickIncrement(start, stop, count)
		if step == prestep {
			break
		}
		switch {
		case step > 0:
			start = math.Floor(start/step) * step
			stop = math.Ceil(stop/step) * step
		case step < 0:
			start = math.Ceil(start*step) / step
			stop = math.Floor(stop*step) / step
		default:
			break loop
		}
		prestep = step
	}

	if reversed {
		start, stop = stop, start
	}
	out := s
	out.D0, out.D1 = normZero(start), normZero(stop)
	return out
}

// Ticks returns about count round values inside the domain, ascending.
func (s Linear) Ticks(count int) []float64 {
	return ticks(s.D0, s.D1, count)
}

func ticks(start, stop float64, count int) []float64 {
	if count <= 0 {
		return nil
	}
	if stop < start {
		start, stop = stop, start
	}
	if start == stop {
		return []float64{start}
	}

	step := tickIncrement(start, stop, count)
	if step == 0 || math.IsInf(step, 0) || math.IsNaN(step) {
		return nil
	}

	var out []float64
	if step > 0 {
		r0, r1 := math.Ceil(start/step), math.Floor(stop/step)
		for i := r0; i <= r1; i++ {
			out = append(out, normZero(i*step))
		}
		return out
	}

	inv := -step
	r0, r1 := math.Ceil(start*inv), math.Floor(stop*inv)
	for i := r0; i <= r1; i++ {
		out = append(out, normZero(i/inv))
	}
	return out
}

// tickIncrement returns a power-of-ten multiple of 1, 2 or 5 close to
// (stop-start)/count. Negative results are inverted increments (-10 means 0.1),
// which keeps fractional ticks exact.
func tickIncrement(start, stop float64, count int) float64 {
	if count <= 0 || stop <= start {
		return 0
	}
	step := (stop - start) / float64(count)
	power := math.Floor(math.Log10(step))
	err := step / math.Pow(10, power)

	factor := 1.0
	switch {
	case err >= e10:
		factor = 10
	case err >= e5:
		factor = 5
	case err >= e2:
		factor = 2
	}

	if power >= 0 {
		return factor * math.Pow(10, power)
	}
	return -math.Pow(10, -power) / factor
}

// normZero turns -0 into 0 so labels never print "-0".
func normZero(v float64) float64 {
	if v == 0 {
		return 0
	}
	return v
}
