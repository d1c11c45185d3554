package scale

import "math"

// Band places the categories of Domain as equal-width bands across [R0, R1].
// Padding is the fraction of a step left empty between bands and, split in
// half, before the first and after the last band.
type Band struct {
	Domain  []string
	R0, R1  float64
	Padding float64

	index map[string]int
}

// NewBand builds a band scale; padding is clamped to [0, 1].
func NewBand(domain []string, r0, r1, padding float64) Band {
	padding = math.Max(0, math.Min(1, padding))
	index := make(map[string]int, len(domain))
	for i, d := range domain {
		if _, ok := index[d]; !ok {
			index[d] = i
		}
	}
	return Band{Domain: domain, R0: r0, R1: r1, Padding: padding, index: index}
}

// Step is the distance between the starts of adjacent bands.
func (s Band) Step() float64 {
	n := float64(len(s.Domain))
	if n == 0 {
		return 0
	}
	return (s.R1 - s.R0) / math.Max(1, n-s.Padding+2*s.Padding)
}

// Bandwidth is the width of each band.
func (s Band) Bandwidth() float64 {
	return s.Step() * (1 - s.Padding)
}

// Position returns the start of the band for name.
func (s Band) Position(name string) (float64, bool) {
	i, ok := s.index[name]
	if !ok {
		return 0, false
	}
	n := float64(len(s.Domain))
	step := s.Step()
	start := s.R0 + (s.R1-s.R0-step*(n-s.Padding))/2
	return start + step*float64(i), true
}

// Center returns the middle of the band for name.
func (s Band) Center(name string) (float64, bool) {
	x, ok := s.Position(name)
	if !ok {
		return 0, false
	}
	return x + s.Bandwidth()/2, true
}
