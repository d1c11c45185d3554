package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyAggregate summarizes the sales of one calendar month.
//
// Fields:
//   - Year / Month: grouping key.
//   - Date: first day of the month (UTC), used as the X position on the trend chart.
//   - Count: number of sales (always > 0 when emitted).
//   - TotalPrice / AvgPrice: sum and mean price of the month.
//
// swagger:model MonthlyAggregate
type MonthlyAggregate struct {
	Year       int             `json:"year" example:"2021"`
	Month      time.Month      `json:"month" example:"1"`
	Date       time.Time       `json:"date"`
	Count      int             `json:"count" example:"2"`
	TotalPrice decimal.Decimal `json:"total_price" swaggertype:"string" example:"300"`
	AvgPrice   decimal.Decimal `json:"avg_price" swaggertype:"string" example:"150"`
}

// CompanyAggregate summarizes the sales of one company.
//
// swagger:model CompanyAggregate
type CompanyAggregate struct {
	Company    string          `json:"company" example:"Acme"`
	Count      int             `json:"count" example:"2"`
	TotalPrice decimal.Decimal `json:"total_price" swaggertype:"string" example:"300"`
	AvgPrice   decimal.Decimal `json:"avg_price" swaggertype:"string" example:"150"`
}

// PriceBin is the half-open interval [X0, X1) of a price histogram.
// The last bin of a histogram also includes X1.
//
// swagger:model PriceBin
type PriceBin struct {
	X0    float64 `json:"x0" example:"10000"`
	X1    float64 `json:"x1" example:"15000"`
	Count int     `json:"count" example:"4"`
}
