// Package aggregate groups normalized sale records into the summaries behind
// the dashboard charts. Every function is pure and treats an empty input as
// "nothing to render" by returning an empty, non-nil slice.
package aggregate

import (
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/guttosm/salespulse/internal/domain/models"
)

// DefaultBinCount is the number of histogram bins used when none is given.
const DefaultBinCount = 10

type monthKey struct {
	year  int
	month time.Month
}

// ByMonth groups records by (year, month) and returns them in ascending date order.
func ByMonth(records []models.SaleRecord) []models.MonthlyAggregate {
	groups := make(map[monthKey]*models.MonthlyAggregate)
	for _, r := range records {
		y, m, _ := r.DateOfSale.Date()
		k := monthKey{year: y, month: m}
		g, ok := groups[k]
		if !ok {
			g = &models.MonthlyAggregate{
				Year:  y,
				Month: m,
				Date:  time.Date(y, m, 1, 0, 0, 0, 0, time.UTC),
			}
			groups[k] = g
		}
		g.Count++
		g.TotalPrice = g.TotalPrice.Add(decimal.NewFromFloat(r.Price))
	}

	out := make([]models.MonthlyAggregate, 0, len(groups))
	for _, g := range groups {
		g.AvgPrice = average(g.TotalPrice, g.Count)
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// ByCompany groups records by company and orders them by descending count.
// Companies with equal counts keep the order in which they were first seen.
func ByCompany(records []models.SaleRecord) []models.CompanyAggregate {
	index := make(map[string]int)
	out := make([]models.CompanyAggregate, 0)
	for _, r := range records {
		i, ok := index[r.Company]
		if !ok {
			i = len(out)
			index[r.Company] = i
			out = append(out, models.CompanyAggregate{Company: r.Company})
		}
		out[i].Count++
		out[i].TotalPrice = out[i].TotalPrice.Add(decimal.NewFromFloat(r.Price))
	}

	for i := range out {
		out[i].AvgPrice = average(out[i].TotalPrice, out[i].Count)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// ByPriceBin splits [min(price), max(price)] into binCount equal-width bins and
// counts every record into exactly one of them. Bins are half-open except the
// last, which also holds the maximum. When every price is equal the domain is
// widened to [min, min+1] so no bin has zero width.
func ByPriceBin(records []models.SaleRecord, binCount int) []models.PriceBin {
	if len(records) == 0 {
		return []models.PriceBin{}
	}
	if binCount < 1 {
		binCount = DefaultBinCount
	}

	lo, hi := PriceExtent(records)
	if hi-lo <= 0 {
		hi = lo + 1
	}
	width := (hi - lo) / float64(binCount)

	bins := make([]models.PriceBin, binCount)
	for i := range bins {
		bins[i].X0 = lo + float64(i)*width
		bins[i].X1 = lo + float64(i+1)*width
	}
	bins[binCount-1].X1 = hi

	for _, r := range records {
		bins[binIndex(bins, r.Price, lo, width)].Count++
	}
	return bins
}

// PriceExtent returns the minimum and maximum price of records.
// It returns (0, 0) for an empty input.
func PriceExtent(records []models.SaleRecord) (lo, hi float64) {
	if len(records) == 0 {
		return 0, 0
	}
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, r := range records {
		lo = math.Min(lo, r.Price)
		hi = math.Max(hi, r.Price)
	}
	return lo, hi
}

// binIndex estimates the bin by division, then corrects the estimate against
// the stored edges so the chosen bin always satisfies X0 <= price < X1.
func binIndex(bins []models.PriceBin, price, lo, width float64) int {
	n := len(bins)
	i := int(math.Floor((price - lo) / width))
	if i < 0 {
		i = 0
	}
	if i >= n {
		i = n - 1
	}
	for i < n-1 && price >= bins[i].X1 {
		i++
	}
	for i > 0 && price < bins[i].X0 {
		i--
	}
	return i
}

func average(total decimal.Decimal, count int) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(count)))
}
