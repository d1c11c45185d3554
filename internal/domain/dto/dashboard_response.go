package dto

import (
	"time"

	"github.com/guttosm/salespulse/internal/domain/models"
)

// CreateTaskRequest is the body of POST /api/v1/tasks (and of the upstream POST /api/tasks).
type CreateTaskRequest struct {
	Filters models.TaskFilters `json:"filters"`
}

// LoadResponse is returned after a task dataset has been fetched and normalized.
type LoadResponse struct {
	TaskID   int       `json:"task_id" example:"3"`
	Records  int       `json:"records" example:"120"`
	Skipped  int       `json:"skipped" example:"2"`
	Stale    bool      `json:"stale" example:"false"`
	Cached   bool      `json:"cached" example:"false"`
	LoadedAt time.Time `json:"loaded_at"`
}

// DashboardResponse carries the aggregates behind the three charts for the
// currently loaded dataset and the requested filter.
type DashboardResponse struct {
	TaskID    int                       `json:"task_id" example:"3"`
	Year      string                    `json:"year" example:"all"`
	Company   string                    `json:"company" example:"all"`
	Records   int                       `json:"records" example:"120"`
	Monthly   []models.MonthlyAggregate `json:"monthly"`
	Companies []models.CompanyAggregate `json:"companies"`
	PriceBins []models.PriceBin         `json:"price_bins"`
	Options   models.FilterOptions      `json:"options"`
}
