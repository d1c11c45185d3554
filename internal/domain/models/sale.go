package models

import "time"

// Well-known keys of a raw sale record as served by GET /api/tasks/{id}/data.
const (
	FieldDateOfSale = "date_of_sale"
	FieldCompany    = "company"
	FieldPrice      = "price"
	FieldSource     = "source"
	FieldCarModel   = "car_model"
)

// RawRecord is a JSON-decoded record before normalization.
type RawRecord map[string]any

// SaleRecord is a normalized record with a parsed sale date.
//
// Fields:
//   - DateOfSale: calendar date of the sale (UTC).
//   - Company: seller name, never empty.
//   - Price: non-negative amount.
//   - Source / CarModel: optional descriptive fields.
//   - Raw: every field of the original record, unchanged.
type SaleRecord struct {
	DateOfSale time.Time `json:"date_of_sale"`
	Company    string    `json:"company"`
	Price      float64   `json:"price"`
	Source     string    `json:"source,omitempty"`
	CarModel   string    `json:"car_model,omitempty"`
	Raw        RawRecord `json:"-"`
}
