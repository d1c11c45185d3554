package scale

import "time"

// MonthLabelLayout formats time ticks as "Jan 2006".
const MonthLabelLayout = "Jan 2006"

// monthSteps are the tick intervals, in months, a Time scale may choose from.
var monthSteps = []int{1, 2, 3, 6, 12, 24, 60, 120}

// Time maps the instant domain [D0, D1] onto the range [R0, R1].
type Time struct {
	D0, D1 time.Time
	R0, R1 float64
}

// NewTime builds a time scale.
func NewTime(d0, d1 time.Time, r0, r1 float64) Time {
	return Time{D0: d0, D1: d1, R0: r0, R1: r1}
}

// Map converts an instant into range coordinates.
// A zero-width domain maps every instant to the middle of the range.
func (s Time) Map(t time.Time) float64 {
	span := s.D1.Sub(s.D0)
	if span == 0 {
		return (s.R0 + s.R1) / 2
	}
	return s.R0 + float64(t.Sub(s.D0))/float64(span)*(s.R1-s.R0)
}

// Ticks returns first-of-month instants inside the domain, using the smallest
// month interval that yields at most count ticks. Ticks align on calendar
// boundaries (e.g. quarters start in Jan/Apr/Jul/Oct).
func (s Time) Ticks(count int) []time.Time {
	if count <= 0 {
		return nil
	}
	lo, hi := s.D0, s.D1
	if hi.Before(lo) {
		lo, hi = hi, lo
	}
	if lo.Equal(hi) {
		return []time.Time{lo}
	}

	var out []time.Time
	for _, step := range monthSteps {
		out = monthTicks(lo, hi, step)
		if len(out) <= count {
			return out
		}
	}
	return out
}

// Label formats a tick.
func (s Time) Label(t time.Time) string {
	return t.Format(MonthLabelLayout)
}

func monthTicks(lo, hi time.Time, step int) []time.Time {
	y, m, _ := lo.Date()
	t := time.Date(y, m, 1, 0, 0, 0, 0, lo.Location())
	if t.Before(lo) {
		t = t.AddDate(0, 1, 0)
	}

	var out []time.Time
	for ; !t.After(hi); t = t.AddDate(0, 1, 0) {
		if monthIndex(t)%step == 0 {
			out = append(out, t)
		}
	}
	return out
}

// monthIndex counts months since year 0 so intervals align across years.
func monthIndex(t time.Time) int {
	return t.Year()*12 + int(t.Month()) - 1
}
