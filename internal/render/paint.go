package render

import (
	"math"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/guttosm/salespulse/internal/chart"
)

// Surface is the part of gochart.Renderer the painter draws with.
type Surface interface {
	ResetStyle()
	SetStrokeColor(drawing.Color)
	SetFillColor(drawing.Color)
	SetStrokeWidth(width float64)
	MoveTo(x, y int)
	LineTo(x, y int)
	Close()
	Stroke()
	Fill()
	FillStroke()
	Circle(radius float64, x, y int)
	SetFontColor(drawing.Color)
	SetFontSize(size float64)
	Text(body string, x, y int)
	MeasureText(body string) gochart.Box
}

const (
	tickSize      = 6
	labelPad      = 3
	fontSize      = 10.0
	titleFontSize = 12.0
	legendX       = 150
	legendY       = 20
	legendRow     = 20
	legendSwatch  = 12
)

// Paint draws c onto s. An empty chart leaves the surface blank.
func Paint(s Surface, c chart.Chart) {
	if c.Empty {
		return
	}
	p := painter{s: s, ox: float64(c.Margin.Left), oy: float64(c.Margin.Top), w: c.PlotWidth, h: c.PlotHeight}

	p.background(c.Width, c.Height)
	for _, b := range c.Bars {
		p.bar(b)
	}
	for _, l := range c.Lines {
		p.line(l)
	}
	for _, d := range c.Dots {
		p.dot(d)
	}
	for _, a := range c.Axes {
		p.axis(a)
	}
	p.legend(c.Width, c.Legend)
	p.title(c.Width, c.Title)
}

type painter struct {
	s      Surface
	ox, oy float64
	w, h   float64
}

// pt converts plot coordinates to surface pixels.
func (p painter) pt(x, y float64) (int, int) {
	return int(math.Round(p.ox + x)), int(math.Round(p.oy + y))
}

func (p painter) rect(x0, y0, x1, y1 int, fill drawing.Color) {
	p.s.ResetStyle()
	p.s.SetFillColor(fill)
	p.s.SetStrokeColor(drawing.ColorTransparent)
	p.s.MoveTo(x0, y0)
	p.s.LineTo(x1, y0)
	p.s.LineTo(x1, y1)
	p.s.LineTo(x0, y1)
	p.s.Close()
	p.s.Fill()
}

func (p painter) segment(x0, y0, x1, y1 int) {
	p.s.ResetStyle()
	p.s.SetStrokeColor(color(chart.ColorAxis))
	p.s.SetStrokeWidth(1)
	p.s.MoveTo(x0, y0)
	p.s.LineTo(x1, y1)
	p.s.Stroke()
}

func (p painter) text(body string, x, y int, size float64) {
	p.s.SetFontColor(color(chart.ColorText))
	p.s.SetFontSize(size)
	p.s.Text(body, x, y)
}

func (p painter) background(w, h int) {
	p.rect(0, 0, w, h, drawing.ColorWhite)
}

func (p painter) bar(b chart.Rect) {
	if b.W <= 0 || b.H <= 0 {
		return
	}
	x0, y0 := p.pt(b.X, b.Y)
	x1, y1 := p.pt(b.X+b.W, b.Y+b.H)
	p.rect(x0, y0, x1, y1, color(b.Color))
}

func (p painter) line(l chart.Line) {
	if len(l.Points) == 0 {
		return
	}
	p.s.ResetStyle()
	p.s.SetStrokeColor(color(l.Color))
	p.s.SetStrokeWidth(l.Width)
	p.s.SetFillColor(drawing.ColorTransparent)
	x, y := p.pt(l.Points[0].X, l.Points[0].Y)
	p.s.MoveTo(x, y)
	for _, pt := range l.Points[1:] {
		x, y = p.pt(pt.X, pt.Y)
		p.s.LineTo(x, y)
	}
	p.s.Stroke()
}

func (p painter) dot(d chart.Dot) {
	p.s.ResetStyle()
	p.s.SetFillColor(color(d.Color))
	p.s.SetStrokeColor(color(d.Color))
	p.s.SetStrokeWidth(1)
	x, y := p.pt(d.X, d.Y)
	p.s.Circle(d.R, x, y)
	p.s.FillStroke()
}

func (p painter) axis(a chart.Axis) {
	switch a.Orient {
	case chart.Bottom:
		x0, y := p.pt(0, p.h)
		x1, _ := p.pt(p.w, p.h)
		p.segment(x0, y, x1, y)
		for _, t := range a.Ticks {
			x, _ := p.pt(t.Pos, p.h)
			p.segment(x, y, x, y+tickSize)
			p.s.SetFontSize(fontSize)
			box := p.s.MeasureText(t.Label)
			p.text(t.Label, x-box.Width()/2, y+tickSize+labelPad+box.Height(), fontSize)
		}
	case chart.Left, chart.Right:
		var x int
		dir := -1
		if a.Orient == chart.Right {
			x, _ = p.pt(p.w, 0)
			dir = 1
		} else {
			x, _ = p.pt(0, 0)
		}
		_, y0 := p.pt(0, 0)
		_, y1 := p.pt(0, p.h)
		p.segment(x, y0, x, y1)
		for _, t := range a.Ticks {
			_, y := p.pt(0, t.Pos)
			p.segment(x, y, x+dir*tickSize, y)
			p.s.SetFontSize(fontSize)
			box := p.s.MeasureText(t.Label)
			lx := x + tickSize + labelPad
			if dir < 0 {
				lx = x - tickSize - labelPad - box.Width()
			}
			p.text(t.Label, lx, y+box.Height()/2, fontSize)
		}
	}
}

func (p painter) legend(width int, items []chart.LegendItem) {
	x := width - legendX
	for i, item := range items {
		y := legendY + i*legendRow
		p.rect(x, y, x+legendSwatch, y+legendSwatch, color(item.Color))
		p.text(item.Label, x+legendSwatch+6, y+legendSwatch-1, fontSize)
	}
}

func (p painter) title(width int, title string) {
	if title == "" {
		return
	}
	p.s.SetFontSize(titleFontSize)
	box := p.s.MeasureText(title)
	p.text(title, (width-box.Width())/2, box.Height()+2, titleFontSize)
}
