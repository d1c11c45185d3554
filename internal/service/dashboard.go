package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/guttosm/salespulse/internal/aggregate"
	"github.com/guttosm/salespulse/internal/cache"
	"github.com/guttosm/salespulse/internal/chart"
	"github.com/guttosm/salespulse/internal/domain/dto"
	"github.com/guttosm/salespulse/internal/domain/models"
	"github.com/guttosm/salespulse/internal/logger"
	"github.com/guttosm/salespulse/internal/normalize"
	"github.com/guttosm/salespulse/internal/render"
	"github.com/guttosm/salespulse/internal/taskclient"
)

// ErrUnknownChart is returned for chart names other than trend, company and price.
var ErrUnknownChart = errors.New("unknown chart")

// TaskAPI is the part of the task API the dashboard uses.
type TaskAPI interface {
	ListTasks(ctx context.Context) ([]models.Task, error)
	CreateTask(ctx context.Context, filters models.TaskFilters) (models.Task, error)
	FetchTaskData(ctx context.Context, taskID int) ([]models.RawRecord, error)
	Ping(ctx context.Context) error
}

// DashboardService drives the dashboard: task submission, dataset loading and
// the filtered views rendered from the loaded dataset.
type DashboardService interface {
	ListTasks(ctx context.Context) ([]models.Task, error)
	CreateTask(ctx context.Context, filters models.TaskFilters) (models.Task, error)
	LoadTask(ctx context.Context, taskID int) (dto.LoadResponse, error)
	LoadRecords(source string, raw []models.RawRecord) (dto.LoadResponse, error)
	Dashboard(fs models.FilterState) dto.DashboardResponse
	Chart(name string, fs models.FilterState) (chart.Chart, error)
	RenderChart(w io.Writer, name string, fs models.FilterState, f render.Format) error
	RenderAll(ctx context.Context, fs models.FilterState, f render.Format, open OpenFunc) error
	Current() (Snapshot, bool)
	Ready(ctx context.Context) error
}

// OpenFunc returns the destination of one rendered chart.
type OpenFunc func(name string) (io.WriteCloser, error)

// Options tune the dashboard.
type Options struct {
	Policy    normalize.Policy
	Bins      int
	ChartSize chart.Size
}

type dashboardService struct {
	api   TaskAPI
	cache cache.DatasetCache
	opts  Options
	state *State
	group singleflight.Group
	now   func() time.Time
}

// NewDashboardService wires the dashboard to the task API and the dataset cache.
// A nil cache disables caching.
func NewDashboardService(api TaskAPI, c cache.DatasetCache, opts Options) DashboardService {
	if c == nil {
		c = cache.Noop{}
	}
	if opts.Policy == "" {
		opts.Policy = normalize.PolicySkip
	}
	if opts.Bins < 1 {
		opts.Bins = aggregate.DefaultBinCount
	}
	return &dashboardService{api: api, cache: c, opts: opts, state: &State{}, now: time.Now}
}

func (s *dashboardService) ListTasks(ctx context.Context) ([]models.Task, error) {
	return s.api.ListTasks(ctx)
}

func (s *dashboardService) CreateTask(ctx context.Context, filters models.TaskFilters) (models.Task, error) {
	if err := filters.Validate(); err != nil {
		return models.Task{}, err
	}
	task, err := s.api.CreateTask(ctx, filters)
	if err != nil {
		return models.Task{}, err
	}
	log := logger.ForTask(task.ID)
	log.Info().Str("status", string(task.Status)).Msg("task created")
	return task, nil
}

type fetched struct {
	raw    []models.RawRecord
	cached bool
}

// LoadTask fetches a task's dataset, normalizes it and makes it the current
// dataset, unless a newer load was started meanwhile (Stale in the response).
// Concurrent loads of the same task share one upstream fetch. A load whose
// context ends before the data arrives withdraws its token, so it does not
// mark older loads stale.
func (s *dashboardService) LoadTask(ctx context.Context, taskID int) (dto.LoadResponse, error) {
	token := s.state.Begin()
	log := logger.ForTask(taskID)

	ch := s.group.DoChan(strconv.Itoa(taskID), func() (any, error) {
		return s.fetch(context.WithoutCancel(ctx), taskID)
	})
	var res singleflight.Result
	select {
	case <-ctx.Done():
		s.state.Withdraw(token)
		return dto.LoadResponse{}, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		log.Warn().Err(res.Err).Msg("task data fetch failed")
		return dto.LoadResponse{}, res.Err
	}
	f := res.Val.(fetched)

	return s.commit(token, taskID, fmt.Sprintf("task #%d", taskID), f.raw, f.cached)
}

// LoadRecords makes an already-read dataset (e.g. a local export) current.
func (s *dashboardService) LoadRecords(source string, raw []models.RawRecord) (dto.LoadResponse, error) {
	return s.commit(s.state.Begin(), 0, source, raw, false)
}

func (s *dashboardService) fetch(ctx context.Context, taskID int) (fetched, error) {
	log := logger.ForTask(taskID)

	raw, hit, err := s.cache.Get(ctx, taskID)
	if err != nil {
		log.Warn().Err(err).Msg("dataset cache read failed")
	}
	if hit {
		log.Debug().Int("records", len(raw)).Msg("dataset cache hit")
		return fetched{raw: raw, cached: true}, nil
	}

	raw, err = s.api.FetchTaskData(ctx, taskID)
	if err != nil {
		return fetched{}, err
	}

	if len(raw) == 0 {
		// The task API answers an empty list for tasks still being collected.
		if err := s.checkCompleted(ctx, taskID); err != nil {
			return fetched{}, err
		}
		return fetched{raw: raw}, nil
	}

	if err := s.cache.Set(ctx, taskID, raw); err != nil {
		log.Warn().Err(err).Msg("dataset cache write failed")
	}
	return fetched{raw: raw}, nil
}

func (s *dashboardService) checkCompleted(ctx context.Context, taskID int) error {
	tasks, err := s.api.ListTasks(ctx)
	if err != nil {
		return err
	}
	for _, t := range tasks {
		if t.ID == taskID && t.Status != models.TaskCompleted {
			return &taskclient.DataNotReadyError{TaskID: taskID, Status: t.Status}
		}
	}
	return nil
}

func (s *dashboardService) commit(token uint64, taskID int, source string, raw []models.RawRecord, cached bool) (dto.LoadResponse, error) {
	log := logger.ForTask(taskID)

	records, report, err := normalize.Records(raw, s.opts.Policy)
	if err != nil {
		log.Warn().Err(err).Msg("dataset rejected")
		return dto.LoadResponse{}, err
	}

	snap := Snapshot{
		TaskID:   taskID,
		Source:   source,
		Records:  records,
		Options:  aggregate.Options(records),
		Report:   report,
		Cached:   cached,
		LoadedAt: s.now().UTC(),
	}
	resp := dto.LoadResponse{
		TaskID:   taskID,
		Records:  report.Accepted,
		Skipped:  report.Skipped,
		Cached:   cached,
		LoadedAt: snap.LoadedAt,
	}

	if !s.state.Commit(token, snap) {
		log.Info().Uint64("token", token).Msg("discarding stale dataset, a newer load was started")
		resp.Stale = true
		return resp, nil
	}
	log.Info().Str("source", source).Int("records", report.Accepted).Int("skipped", report.Skipped).Bool("cached", cached).Msg("dataset loaded")
	return resp, nil
}

func (s *dashboardService) Current() (Snapshot, bool) {
	return s.state.Current()
}

// view holds the aggregates of the current dataset under one filter.
type view struct {
	snap      Snapshot
	records   []models.SaleRecord
	monthly   []models.MonthlyAggregate
	companies []models.CompanyAggregate
	bins      []models.PriceBin
}

func (s *dashboardService) view(fs models.FilterState) view {
	snap, _ := s.state.Current()
	records := aggregate.Apply(snap.Records, fs)
	return view{
		snap:      snap,
		records:   records,
		monthly:   aggregate.ByMonth(records),
		companies: aggregate.ByCompany(records),
		bins:      aggregate.ByPriceBin(records, s.opts.Bins),
	}
}

// Dashboard recomputes the aggregates of the current dataset for fs. With no
// dataset loaded every aggregate is empty.
func (s *dashboardService) Dashboard(fs models.FilterState) dto.DashboardResponse {
	v := s.view(fs)
	opts := v.snap.Options
	if opts.Years == nil {
		opts = models.FilterOptions{Years: []int{}, Companies: []string{}}
	}
	return dto.DashboardResponse{
		TaskID:    v.snap.TaskID,
		Year:      fs.YearValue(),
		Company:   fs.CompanyValue(),
		Records:   len(v.records),
		Monthly:   v.monthly,
		Companies: v.companies,
		PriceBins: v.bins,
		Options:   opts,
	}
}

// Chart lays out one chart of the current dataset under fs.
func (s *dashboardService) Chart(name string, fs models.FilterState) (chart.Chart, error) {
	v := s.view(fs)
	switch name {
	case chart.NameTrend:
		return chart.Trend(v.monthly, s.opts.ChartSize), nil
	case chart.NameCompany:
		return chart.Company(v.companies, s.opts.ChartSize), nil
	case chart.NamePrice:
		return chart.Price(v.bins, s.opts.ChartSize), nil
	}
	return chart.Chart{}, fmt.Errorf("%w %q", ErrUnknownChart, name)
}

// RenderChart lays out and encodes one chart.
func (s *dashboardService) RenderChart(w io.Writer, name string, fs models.FilterState, f render.Format) error {
	c, err := s.Chart(name, fs)
	if err != nil {
		return err
	}
	return render.Render(w, c, f)
}

// RenderAll renders the three charts concurrently, each into the writer open
// returns for its name. The first failure cancels the others.
func (s *dashboardService) RenderAll(ctx context.Context, fs models.FilterState, f render.Format, open OpenFunc) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, name := range chart.Names {
		name := name
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			w, err := open(name)
			if err != nil {
				return fmt.Errorf("open %s: %w", name, err)
			}
			if err := s.RenderChart(w, name, fs, f); err != nil {
				_ = w.Close()
				return fmt.Errorf("render %s: %w", name, err)
			}
			return w.Close()
		})
	}
	return g.Wait()
}

// Ready reports whether the task API and the dataset cache answer.
func (s *dashboardService) Ready(ctx context.Context) error {
	if err := s.api.Ping(ctx); err != nil {
		return err
	}
	if err := s.cache.Ping(ctx); err != nil {
		return fmt.Errorf("dataset cache: %w", err)
	}
	return nil
}
