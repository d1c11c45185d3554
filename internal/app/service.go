package app

import (
	"github.com/guttosm/salespulse/config"
	"github.com/guttosm/salespulse/internal/cache"
	"github.com/guttosm/salespulse/internal/chart"
	"github.com/guttosm/salespulse/internal/service"
	"github.com/guttosm/salespulse/internal/taskclient"
)

// NewDashboardService builds the dashboard service from configuration: a task
// API client at TASK_API_URL, the given dataset cache and the chart settings.
func NewDashboardService(cfg config.Config, c cache.DatasetCache) service.DashboardService {
	client := taskclient.New(cfg.TaskAPI.URL, cfg.TaskAPI.Timeout)
	return service.NewDashboardService(client, c, service.Options{
		Policy:    cfg.Dashboard.Policy,
		Bins:      cfg.Dashboard.HistogramBins,
		ChartSize: chart.Size{Width: cfg.Dashboard.ChartWidth, Height: cfg.Dashboard.ChartHeight},
	})
}
