package scale

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinear_Map(t *testing.T) {
	s := NewLinear(0, 100, 240, 0)
	assert.Equal(t, 240.0, s.Map(0))
	assert.Equal(t, 0.0, s.Map(100))
	assert.Equal(t, 120.0, s.Map(50))
}

func TestLinear_ZeroWidthDomainMapsToMiddle(t *testing.T) {
	s := NewLinear(25000, 25000, 0, 710)
	assert.Equal(t, 355.0, s.Map(25000))
	assert.False(t, math.IsNaN(s.Map(1)))
}

func TestLinear_Nice(t *testing.T) {
	cases := []struct {
		name     string
		d0, d1   float64
		w0, w1   float64
		wantTick []float64
	}{
		{name: "counts", d0: 0, d1: 347, w0: 0, w1: 350, wantTick: []float64{0, 50, 100, 150, 200, 250, 300, 350}},
		{name: "small counts", d0: 0, d1: 2, w0: 0, w1: 2, wantTick: []float64{0, 0.2, 0.4, 0.6, 0.8, 1, 1.2, 1.4, 1.6, 1.8, 2}},
		{name: "prices", d0: 0, d1: 27433.5, w0: 0, w1: 28000},
		{name: "fraction", d0: 0.12, d1: 0.87, w0: 0.1, w1: 0.9},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n := NewLinear(tc.d0, tc.d1, 240, 0).Nice(10)
			assert.InDelta(t, tc.w0, n.D0, 1e-9)
			assert.InDelta(t, tc.w1, n.D1, 1e-9)
			assert.Equal(t, 240.0, n.R0, "range must be untouched")
			if tc.wantTick != nil {
				got := n.Ticks(10)
				require.Len(t, got, len(tc.wantTick))
				for i := range got {
					assert.InDelta(t, tc.wantTick[i], got[i], 1e-9)
				}
			}
		})
	}
}

func TestLinear_Deterministic(t *testing.T) {
	a := NewLinear(3, 9876, 0, 500).Nice(10)
	b := NewLinear(3, 9876, 0, 500).Nice(10)
	assert.Equal(t, a, b)
	assert.Equal(t, a.Ticks(10), b.Ticks(10))
	assert.Equal(t, a.Map(1234), b.Map(1234))
}

func TestLinear_DegenerateTicks(t *testing.T) {
	s := NewLinear(0, 0, 0, 100).Nice(10)
	assert.Equal(t, 0.0, s.D0)
	assert.Equal(t, 0.0, s.D1)
	assert.Equal(t, []float64{0}, s.Ticks(10))
	assert.Nil(t, s.Ticks(0))
}

func TestTime_MapAndTicks(t *testing.T) {
	d0 := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	d1 := time.Date(2021, 7, 1, 0, 0, 0, 0, time.UTC)
	s := NewTime(d0, d1, 0, 600)

	assert.Equal(t, 0.0, s.Map(d0))
	assert.Equal(t, 600.0, s.Map(d1))

	ticks := s.Ticks(10)
	require.Len(t, ticks, 7)
	assert.Equal(t, "Jan 2021", s.Label(ticks[0]))
	assert.Equal(t, "Jul 2021", s.Label(ticks[6]))
}

func TestTime_TicksWidenInterval(t *testing.T) {
	d0 := time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)
	d1 := time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC)
	ticks := NewTime(d0, d1, 0, 800).Ticks(10)

	assert.LessOrEqual(t, len(ticks), 10)
	assert.NotEmpty(t, ticks)
	for _, tk := range ticks {
		assert.Equal(t, 1, tk.Day())
		assert.True(t, !tk.Before(d0) && !tk.After(d1))
	}
	// 59 months at most 10 ticks -> 6 month interval, aligned on Jan/Jul
	assert.Equal(t, time.January, ticks[0].Month())
	assert.Equal(t, time.July, ticks[1].Month())
}

func TestTime_SinglePoint(t *testing.T) {
	d := time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC)
	s := NewTime(d, d, 0, 400)
	assert.Equal(t, 200.0, s.Map(d))
	assert.Equal(t, []time.Time{d}, s.Ticks(10))
}

func TestBand_Layout(t *testing.T) {
	s := NewBand([]string{"Acme", "Beta"}, 0, 100, 0.2)

	assert.InDelta(t, 100/2.2, s.Step(), 1e-9)
	assert.InDelta(t, 100/2.2*0.8, s.Bandwidth(), 1e-9)

	a, ok := s.Position("Acme")
	require.True(t, ok)
	b, ok := s.Position("Beta")
	require.True(t, ok)
	assert.InDelta(t, s.Step(), b-a, 1e-9)

	// outer padding is symmetric
	assert.InDelta(t, a-s.R0, s.R1-(b+s.Bandwidth()), 1e-9)

	c, ok := s.Center("Acme")
	require.True(t, ok)
	assert.InDelta(t, a+s.Bandwidth()/2, c, 1e-9)

	_, ok = s.Position("Gamma")
	assert.False(t, ok)
}

func TestBand_Empty(t *testing.T) {
	s := NewBand(nil, 0, 100, 0.2)
	assert.Zero(t, s.Step())
	assert.Zero(t, s.Bandwidth())
}
