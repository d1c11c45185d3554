package normalize

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/guttosm/salespulse/internal/domain/models"
	"github.com/guttosm/salespulse/internal/logger"
)

// Policy selects what happens to a batch when one of its records cannot be parsed.
type Policy string

const (
	// PolicySkip drops offending records and reports how many were skipped.
	PolicySkip Policy = "skip"
	// PolicyAbort fails the whole batch on the first offending record.
	PolicyAbort Policy = "abort"
)

// ParsePolicy maps a config value to a Policy. Empty means PolicySkip.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicySkip:
		return PolicySkip, nil
	case PolicyAbort:
		return PolicyAbort, nil
	default:
		return "", fmt.Errorf("unknown normalize policy %q (want skip or abort)", s)
	}
}

// ErrMissingField is wrapped by ParseError when a required field is absent or empty.
var ErrMissingField = errors.New("missing field")

// ParseError describes why a single raw record was rejected.
type ParseError struct {
	Index int    // position of the record in the batch
	Field string // offending field
	Value any    // raw value, nil when missing
	Err   error
}

func (e *ParseError) Error() string {
	if errors.Is(e.Err, ErrMissingField) {
		return fmt.Sprintf("record %d: %s: %v", e.Index, e.Field, e.Err)
	}
	return fmt.Sprintf("record %d: invalid %s %v: %v", e.Index, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Report summarizes one normalization run.
type Report struct {
	Total    int
	Accepted int
	Skipped  int
	Errors   []*ParseError
}

// dateLayouts are tried in order for date_of_sale.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// Records converts raw records into SaleRecords, preserving order.
//
// Behavior:
//   - date_of_sale must parse with one of dateLayouts; the time of day is dropped.
//   - company must be a non-empty string.
//   - price must be a non-negative number or numeric string.
//   - every raw field is kept in SaleRecord.Raw.
//
// With PolicyAbort the first ParseError is returned and no records are produced.
// With PolicySkip rejected records are counted in the Report and a warning is logged.
func Records(raw []models.RawRecord, policy Policy) ([]models.SaleRecord, Report, error) {
	report := Report{Total: len(raw)}
	out := make([]models.SaleRecord, 0, len(raw))

	for i, r := range raw {
		rec, perr := record(i, r)
		if perr != nil {
			if policy == PolicyAbort {
				return nil, Report{Total: len(raw)}, perr
			}
			report.Skipped++
			report.Errors = append(report.Errors, perr)
			continue
		}
		out = append(out, rec)
	}
	report.Accepted = len(out)

	if report.Skipped > 0 {
		logger.L().Warn().
			Int("total", report.Total).
			Int("skipped", report.Skipped).
			Str("first_error", report.Errors[0].Error()).
			Msg("skipped malformed sale records")
	}

	return out, report, nil
}

func record(i int, r models.RawRecord) (models.SaleRecord, *ParseError) {
	var rec models.SaleRecord

	// date_of_sale
	v, ok := r[models.FieldDateOfSale]
	s, isStr := v.(string)
	if !ok || v == nil || (isStr && strings.TrimSpace(s) == "") {
		return rec, &ParseError{Index: i, Field: models.FieldDateOfSale, Err: ErrMissingField}
	}
	if !isStr {
		return rec, &ParseError{Index: i, Field: models.FieldDateOfSale, Value: v, Err: fmt.Errorf("expected string, got %T", v)}
	}
	d, err := ParseDate(s)
	if err != nil {
		return rec, &ParseError{Index: i, Field: models.FieldDateOfSale, Value: v, Err: err}
	}
	rec.DateOfSale = d

	// company
	company, _ := r[models.FieldCompany].(string)
	company = strings.TrimSpace(company)
	if company == "" {
		return rec, &ParseError{Index: i, Field: models.FieldCompany, Value: r[models.FieldCompany], Err: ErrMissingField}
	}
	rec.Company = company

	// price
	pv, ok := r[models.FieldPrice]
	if !ok || pv == nil {
		return rec, &ParseError{Index: i, Field: models.FieldPrice, Err: ErrMissingField}
	}
	price, err := ParsePrice(pv)
	if err != nil {
		return rec, &ParseError{Index: i, Field: models.FieldPrice, Value: pv, Err: err}
	}
	rec.Price = price.InexactFloat64()

	// optional descriptive fields
	rec.Source, _ = r[models.FieldSource].(string)
	rec.CarModel, _ = r[models.FieldCarModel].(string)
	rec.Raw = r

	return rec, nil
}

// ParseDate parses a sale date and truncates it to midnight UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// ParsePrice accepts json.Number, float64, int and numeric strings.
// Negative amounts are rejected.
func ParsePrice(v any) (decimal.Decimal, error) {
	var (
		d   decimal.Decimal
		err error
	)
	switch p := v.(type) {
	case json.Number:
		d, err = decimal.NewFromString(p.String())
	case string:
		d, err = decimal.NewFromString(strings.TrimSpace(p))
	case float64:
		d = decimal.NewFromFloat(p)
	case int:
		d = decimal.NewFromInt(int64(p))
	case int64:
		d = decimal.NewFromInt(p)
	default:
		return decimal.Zero, fmt.Errorf("unsupported price type %T", v)
	}
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative price %s", d.String())
	}
	return d, nil
}
