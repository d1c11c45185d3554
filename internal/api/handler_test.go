package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/salespulse/internal/chart"
	"github.com/guttosm/salespulse/internal/domain/dto"
	"github.com/guttosm/salespulse/internal/domain/models"
	"github.com/guttosm/salespulse/internal/middleware"
	"github.com/guttosm/salespulse/internal/normalize"
	"github.com/guttosm/salespulse/internal/render"
	"github.com/guttosm/salespulse/internal/service"
	"github.com/guttosm/salespulse/internal/taskclient"
)

// mockService implements service.DashboardService for handler tests.
type mockService struct {
	tasks    []models.Task
	listErr  error
	created  models.Task
	createFn func(models.TaskFilters)
	err      error
	load     dto.LoadResponse
	loadErr  error
	loadedID int
	dash     dto.DashboardResponse
	lastFS   models.FilterState
	snap     *service.Snapshot
	renderFn func(w io.Writer, name string, f render.Format) error
	readyErr error
}

func (m *mockService) ListTasks(context.Context) ([]models.Task, error) {
	return m.tasks, m.listErr
}

func (m *mockService) CreateTask(_ context.Context, f models.TaskFilters) (models.Task, error) {
	if m.createFn != nil {
		m.createFn(f)
	}
	return m.created, m.err
}

func (m *mockService) LoadTask(_ context.Context, id int) (dto.LoadResponse, error) {
	m.loadedID = id
	return m.load, m.loadErr
}

func (m *mockService) LoadRecords(string, []models.RawRecord) (dto.LoadResponse, error) {
	return m.load, m.loadErr
}

func (m *mockService) Dashboard(fs models.FilterState) dto.DashboardResponse {
	m.lastFS = fs
	return m.dash
}

func (m *mockService) Chart(string, models.FilterState) (chart.Chart, error) {
	return chart.Chart{}, nil
}

func (m *mockService) RenderChart(w io.Writer, name string, fs models.FilterState, f render.Format) error {
	m.lastFS = fs
	if m.renderFn != nil {
		return m.renderFn(w, name, f)
	}
	_, err := io.WriteString(w, "<svg>"+name+"</svg>")
	return err
}

func (m *mockService) RenderAll(context.Context, models.FilterState, render.Format, service.OpenFunc) error {
	return nil
}

func (m *mockService) Current() (service.Snapshot, bool) {
	if m.snap == nil {
		return service.Snapshot{}, false
	}
	return *m.snap, true
}

func (m *mockService) Ready(context.Context) error { return m.readyErr }

var _ service.DashboardService = (*mockService)(nil)

func setupRouterWithMock(s service.DashboardService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s)
	r := gin.New()
	r.Use(middleware.ErrorHandler)
	v1 := r.Group("/api/v1")
	v1.GET("/tasks", h.ListTasks)
	v1.POST("/tasks", h.CreateTask)
	v1.POST("/tasks/:id/load", h.LoadTask)
	v1.GET("/dashboard", h.GetDashboard)
	return r
}

func TestHandler_TableDriven(t *testing.T) {
	created := models.Task{ID: 7, Status: models.TaskPending}
	cases := []struct {
		name   string
		svc    *mockService
		method string
		path   string
		body   string
		status int
		assert func(t *testing.T, svc *mockService, body []byte)
	}{
		{
			name:   "list tasks",
			svc:    &mockService{tasks: []models.Task{{ID: 1, Status: models.TaskCompleted}, {ID: 2, Status: models.TaskInProgress}}},
			method: http.MethodGet,
			path:   "/api/v1/tasks",
			status: http.StatusOK,
			assert: func(t *testing.T, _ *mockService, body []byte) {
				var out []models.Task
				if err := json.Unmarshal(body, &out); err != nil {
					t.Fatalf("invalid json: %v", err)
				}
				if len(out) != 2 || out[1].Status != models.TaskInProgress {
					t.Fatalf("unexpected body: %+v", out)
				}
			},
		},
		{
			name:   "list tasks upstream down",
			svc:    &mockService{listErr: &taskclient.NetworkError{Op: "list tasks", Err: errors.New("connection refused")}},
			method: http.MethodGet,
			path:   "/api/v1/tasks",
			status: http.StatusBadGateway,
			assert: func(t *testing.T, _ *mockService, body []byte) {
				if !strings.Contains(string(body), middleware.MsgNetwork) {
					t.Fatalf("expected network message, got %s", body)
				}
			},
		},
		{
			name:   "create task",
			svc:    &mockService{created: created},
			method: http.MethodPost,
			path:   "/api/v1/tasks",
			body:   `{"filters":{"sources":["source_a"],"year_from":2020,"year_to":2022}}`,
			status: http.StatusCreated,
			assert: func(t *testing.T, _ *mockService, body []byte) {
				var out models.Task
				if err := json.Unmarshal(body, &out); err != nil {
					t.Fatalf("invalid json: %v", err)
				}
				if out.ID != 7 {
					t.Fatalf("unexpected body: %+v", out)
				}
			},
		},
		{
			name:   "create task malformed body",
			svc:    &mockService{},
			method: http.MethodPost,
			path:   "/api/v1/tasks",
			body:   `{"filters":`,
			status: http.StatusBadRequest,
		},
		{
			name:   "create task invalid filters",
			svc:    &mockService{},
			method: http.MethodPost,
			path:   "/api/v1/tasks",
			body:   `{"filters":{"sources":[],"year_from":2020,"year_to":2022}}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "load task",
			svc:    &mockService{load: dto.LoadResponse{TaskID: 3, Records: 120, Skipped: 2}},
			method: http.MethodPost,
			path:   "/api/v1/tasks/3/load",
			status: http.StatusOK,
			assert: func(t *testing.T, svc *mockService, body []byte) {
				var out dto.LoadResponse
				if err := json.Unmarshal(body, &out); err != nil {
					t.Fatalf("invalid json: %v", err)
				}
				if svc.loadedID != 3 || out.Records != 120 || out.Skipped != 2 {
					t.Fatalf("unexpected body: %+v (loaded %d)", out, svc.loadedID)
				}
			},
		},
		{
			name:   "load task bad id",
			svc:    &mockService{},
			method: http.MethodPost,
			path:   "/api/v1/tasks/abc/load",
			status: http.StatusBadRequest,
		},
		{
			name:   "load task not ready",
			svc:    &mockService{loadErr: &taskclient.DataNotReadyError{TaskID: 3, Status: models.TaskInProgress}},
			method: http.MethodPost,
			path:   "/api/v1/tasks/3/load",
			status: http.StatusConflict,
		},
		{
			name:   "load task malformed dataset",
			svc:    &mockService{loadErr: &normalize.ParseError{Index: 1, Field: "date_of_sale", Err: errors.New("bad")}},
			method: http.MethodPost,
			path:   "/api/v1/tasks/3/load",
			status: http.StatusUnprocessableEntity,
		},
		{
			name:   "load task timeout",
			svc:    &mockService{loadErr: context.DeadlineExceeded},
			method: http.MethodPost,
			path:   "/api/v1/tasks/3/load",
			status: http.StatusGatewayTimeout,
		},
		{
			name:   "dashboard with filter",
			svc:    &mockService{dash: dto.DashboardResponse{TaskID: 3, Year: "2021", Company: "Acme", Records: 2}},
			method: http.MethodGet,
			path:   "/api/v1/dashboard?year=2021&company=Acme",
			status: http.StatusOK,
			assert: func(t *testing.T, svc *mockService, body []byte) {
				if svc.lastFS != (models.FilterState{Year: 2021, Company: "Acme"}) {
					t.Fatalf("unexpected filter %+v", svc.lastFS)
				}
				var out dto.DashboardResponse
				if err := json.Unmarshal(body, &out); err != nil {
					t.Fatalf("invalid json: %v", err)
				}
				if out.Records != 2 || out.Year != "2021" {
					t.Fatalf("unexpected body: %+v", out)
				}
			},
		},
		{
			name:   "dashboard bad year",
			svc:    &mockService{},
			method: http.MethodGet,
			path:   "/api/v1/dashboard?year=twenty",
			status: http.StatusBadRequest,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := setupRouterWithMock(tc.svc)
			var body io.Reader
			if tc.body != "" {
				body = strings.NewReader(tc.body)
			}
			req := httptest.NewRequest(tc.method, tc.path, body)
			if tc.body != "" {
				req.Header.Set("Content-Type", "application/json")
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d (%s)", tc.status, w.Code, w.Body.String())
			}
			if tc.assert != nil {
				tc.assert(t, tc.svc, w.Body.Bytes())
			}
		})
	}
}

func TestHandler_CreateTaskPassesFilters(t *testing.T) {
	var got models.TaskFilters
	svc := &mockService{created: models.Task{ID: 1}, createFn: func(f models.TaskFilters) { got = f }}
	r := setupRouterWithMock(svc)

	body := `{"filters":{"sources":["source_a","source_b"],"year_from":2019,"year_to":2021,"companies":["Acme"]}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	if len(got.Sources) != 2 || got.YearFrom != 2019 || got.YearTo != 2021 || got.Companies[0] != "Acme" {
		t.Fatalf("unexpected filters: %+v", got)
	}
}

func testSnapshot() *service.Snapshot {
	return &service.Snapshot{
		TaskID:   3,
		Source:   "task #3",
		Report:   normalize.Report{Total: 3, Accepted: 3},
		LoadedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}
