package chart

import (
	"math"

	"github.com/guttosm/salespulse/internal/domain/models"
	"github.com/guttosm/salespulse/internal/scale"
)

// Chart names, also used in URLs and file names.
const (
	NameTrend   = "trend"
	NameCompany = "company"
	NamePrice   = "price"
)

// Names lists the charts in dashboard order.
var Names = []string{NameTrend, NameCompany, NamePrice}

// Trend lays out monthly sales count (left axis, steelblue line) and average
// price (right axis, orange line) over time.
func Trend(months []models.MonthlyAggregate, size Size) Chart {
	c := newChart(NameTrend, "Sales Trend Over Time", size, Margin{Top: 20, Right: 40, Bottom: 40, Left: 50})
	if len(months) == 0 {
		c.Empty = true
		return c
	}
	w, h := c.PlotWidth, c.PlotHeight

	x := scale.NewTime(months[0].Date, months[len(months)-1].Date, 0, w)
	var maxCount, maxAvg float64
	for _, m := range months {
		maxCount = math.Max(maxCount, float64(m.Count))
		maxAvg = math.Max(maxAvg, m.AvgPrice.InexactFloat64())
	}
	y := scale.NewLinear(0, maxCount, h, 0).Nice(defaultTicks)
	yRight := scale.NewLinear(0, maxAvg, h, 0).Nice(defaultTicks)

	var xTicks []Tick
	for _, t := range x.Ticks(defaultTicks) {
		xTicks = append(xTicks, Tick{Pos: x.Map(t), Label: x.Label(t)})
	}
	c.Axes = []Axis{
		{Orient: Bottom, Ticks: xTicks},
		{Orient: Left, Ticks: countTicks(y)},
		{Orient: Right, Ticks: currencyTicks(yRight)},
	}

	count := Line{Name: "Sales Count", Color: ColorCount, Width: 2}
	avg := Line{Name: "Avg Price", Color: ColorPrice, Width: 2}
	for _, m := range months {
		px := x.Map(m.Date)
		count.Points = append(count.Points, Point{X: px, Y: y.Map(float64(m.Count))})
		avg.Points = append(avg.Points, Point{X: px, Y: yRight.Map(m.AvgPrice.InexactFloat64())})
	}
	c.Lines = []Line{count, avg}
	c.Legend = []LegendItem{{Label: count.Name, Color: count.Color}, {Label: avg.Name, Color: avg.Color}}
	return c
}

// Company lays out one bar per company (sales count) with a dot for the
// company's average price, companies ordered as given.
func Company(companies []models.CompanyAggregate, size Size) Chart {
	c := newChart(NameCompany, "Sales by Company (Bars = Count, Dots = Avg Price)", size, Margin{Top: 20, Right: 30, Bottom: 40, Left: 50})
	if len(companies) == 0 {
		c.Empty = true
		return c
	}
	w, h := c.PlotWidth, c.PlotHeight

	names := make([]string, len(companies))
	var maxCount, maxAvg float64
	for i, co := range companies {
		names[i] = co.Company
		maxCount = math.Max(maxCount, float64(co.Count))
		maxAvg = math.Max(maxAvg, co.AvgPrice.InexactFloat64())
	}
	x := scale.NewBand(names, 0, w, 0.2)
	y := scale.NewLinear(0, maxCount, h, 0).Nice(defaultTicks)
	yRight := scale.NewLinear(0, maxAvg, h, 0).Nice(defaultTicks)

	var xTicks []Tick
	for _, co := range companies {
		cx, _ := x.Center(co.Company)
		xTicks = append(xTicks, Tick{Pos: cx, Label: co.Company})

		bx, _ := x.Position(co.Company)
		top := y.Map(float64(co.Count))
		c.Bars = append(c.Bars, Rect{X: bx, Y: top, W: x.Bandwidth(), H: h - top, Color: ColorCount})
		c.Dots = append(c.Dots, Dot{X: cx, Y: yRight.Map(co.AvgPrice.InexactFloat64()), R: 5, Color: ColorPrice})
	}
	c.Axes = []Axis{
		{Orient: Bottom, Ticks: xTicks},
		{Orient: Left, Ticks: countTicks(y)},
	}
	c.Legend = []LegendItem{{Label: "Sales Count", Color: ColorCount}, {Label: "Avg Price", Color: ColorPrice}}
	return c
}

// Price lays out the price histogram. The X domain is taken from the bin edges
// so axis ticks and bars always agree.
func Price(bins []models.PriceBin, size Size) Chart {
	c := newChart(NamePrice, "Price Distribution", size, Margin{Top: 20, Right: 30, Bottom: 40, Left: 50})
	if len(bins) == 0 {
		c.Empty = true
		return c
	}
	w, h := c.PlotWidth, c.PlotHeight

	x := scale.NewLinear(bins[0].X0, bins[len(bins)-1].X1, 0, w)
	var maxCount float64
	for _, b := range bins {
		maxCount = math.Max(maxCount, float64(b.Count))
	}
	y := scale.NewLinear(0, maxCount, h, 0).Nice(defaultTicks)

	var xTicks []Tick
	for _, v := range x.Ticks(defaultTicks) {
		xTicks = append(xTicks, Tick{Pos: x.Map(v), Label: FormatCurrency(v)})
	}
	c.Axes = []Axis{
		{Orient: Bottom, Ticks: xTicks},
		{Orient: Left, Ticks: countTicks(y)},
	}

	for _, b := range bins {
		x0, x1 := x.Map(b.X0), x.Map(b.X1)
		top := y.Map(float64(b.Count))
		c.Bars = append(c.Bars, Rect{X: x0 + 1, Y: top, W: math.Max(0, x1-x0-1), H: h - top, Color: ColorCount})
	}
	return c
}

// countTicks keeps only whole-number ticks; fractional sales counts are noise.
func countTicks(s scale.Linear) []Tick {
	var out []Tick
	for _, v := range s.Ticks(defaultTicks) {
		if v != math.Trunc(v) {
			continue
		}
		out = append(out, Tick{Pos: s.Map(v), Label: FormatCount(v)})
	}
	return out
}

func currencyTicks(s scale.Linear) []Tick {
	var out []Tick
	for _, v := range s.Ticks(defaultTicks) {
		out = append(out, Tick{Pos: s.Map(v), Label: FormatCurrency(v)})
	}
	return out
}
