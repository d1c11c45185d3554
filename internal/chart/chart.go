// Package chart lays out the three dashboard charts: it turns aggregates into
// scales, axis ticks and marks in plot coordinates. Nothing here draws; the
// render package paints a Chart onto a surface.
package chart

// Colors shared by every chart (hex, no leading '#').
const (
	ColorCount = "4682b4" // steelblue
	ColorPrice = "ffa500" // orange
	ColorAxis  = "333333"
	ColorText  = "222222"
)

// DefaultHeight matches the dashboard chart containers.
const (
	DefaultWidth  = 800
	DefaultHeight = 300
	defaultTicks  = 10
)

// Size is the outer size of a chart in pixels.
type Size struct {
	Width  int
	Height int
}

// Margin surrounds the plot area.
type Margin struct {
	Top, Right, Bottom, Left int
}

// Orient tells on which side of the plot an axis sits.
type Orient int

const (
	Bottom Orient = iota
	Left
	Right
)

// Tick is one labelled position on an axis, in plot coordinates.
type Tick struct {
	Pos   float64
	Label string
}

// Axis is a laid-out axis.
type Axis struct {
	Orient Orient
	Ticks  []Tick
}

// Point is a plot-space coordinate.
type Point struct {
	X, Y float64
}

// Line is a polyline mark.
type Line struct {
	Name   string
	Color  string
	Width  float64
	Points []Point
}

// Rect is a bar mark.
type Rect struct {
	X, Y, W, H float64
	Color      string
}

// Dot is a point mark.
type Dot struct {
	X, Y, R float64
	Color   string
}

// LegendItem maps a color to a metric name.
type LegendItem struct {
	Label string
	Color string
}

// Chart is a fully laid-out chart. Coordinates of marks and ticks are relative
// to the plot origin (Margin.Left, Margin.Top).
type Chart struct {
	Name       string
	Title      string
	Width      int
	Height     int
	Margin     Margin
	PlotWidth  float64
	PlotHeight float64
	Axes       []Axis
	Lines      []Line
	Bars       []Rect
	Dots       []Dot
	Legend     []LegendItem
	// Empty is set when there was nothing to lay out; renderers paint nothing.
	Empty bool
}

func newChart(name, title string, size Size, m Margin) Chart {
	if size.Width <= 0 {
		size.Width = DefaultWidth
	}
	if size.Height <= 0 {
		size.Height = DefaultHeight
	}
	w := float64(size.Width - m.Left - m.Right)
	h := float64(size.Height - m.Top - m.Bottom)
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Chart{
		Name:       name,
		Title:      title,
		Width:      size.Width,
		Height:     size.Height,
		Margin:     m,
		PlotWidth:  w,
		PlotHeight: h,
	}
}
