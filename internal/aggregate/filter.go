package aggregate

import (
	"sort"

	"github.com/guttosm/salespulse/internal/domain/models"
)

// Predicate selects records.
type Predicate func(models.SaleRecord) bool

// YearIs keeps records sold in year.
func YearIs(year int) Predicate {
	return func(r models.SaleRecord) bool { return r.DateOfSale.Year() == year }
}

// CompanyIs keeps records of company.
func CompanyIs(company string) Predicate {
	return func(r models.SaleRecord) bool { return r.Company == company }
}

// Filter returns the records matching every predicate, in input order.
func Filter(records []models.SaleRecord, preds ...Predicate) []models.SaleRecord {
	out := make([]models.SaleRecord, 0, len(records))
next:
	for _, r := range records {
		for _, p := range preds {
			if !p(r) {
				continue next
			}
		}
		out = append(out, r)
	}
	return out
}

// Predicates translates a FilterState into predicates. "all" dimensions add none.
func Predicates(fs models.FilterState) []Predicate {
	var preds []Predicate
	if fs.Year != 0 {
		preds = append(preds, YearIs(fs.Year))
	}
	if fs.Company != "" {
		preds = append(preds, CompanyIs(fs.Company))
	}
	return preds
}

// Apply filters records by the intersection of the year and company selections.
func Apply(records []models.SaleRecord, fs models.FilterState) []models.SaleRecord {
	if fs.IsAll() {
		return records
	}
	return Filter(records, Predicates(fs)...)
}

// Options lists the distinct years and companies present in records, ascending.
func Options(records []models.SaleRecord) models.FilterOptions {
	years := make(map[int]struct{})
	companies := make(map[string]struct{})
	for _, r := range records {
		years[r.DateOfSale.Year()] = struct{}{}
		companies[r.Company] = struct{}{}
	}

	opts := models.FilterOptions{
		Years:     make([]int, 0, len(years)),
		Companies: make([]string, 0, len(companies)),
	}
	for y := range years {
		opts.Years = append(opts.Years, y)
	}
	for c := range companies {
		opts.Companies = append(opts.Companies, c)
	}
	sort.Ints(opts.Years)
	sort.Strings(opts.Companies)
	return opts
}
