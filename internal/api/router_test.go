package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/salespulse/internal/domain/dto"
	"github.com/guttosm/salespulse/internal/domain/models"
)

func TestNewRouter_WiringAndMiddlewares(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &mockService{dash: dto.DashboardResponse{TaskID: 3, Year: "all", Company: "all", Records: 3}}
	r := NewRouter(NewHandler(svc), NewDashboard(svc), RouterOptions{CORSOrigins: []string{"*"}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	req.Header.Set("Origin", "http://example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	// Ensure RequestID middleware injected header
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected X-Request-ID header to be set")
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("expected CORS header, got %q", w.Header().Get("Access-Control-Allow-Origin"))
	}

	var out dto.DashboardResponse
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}
	if out.TaskID != 3 || out.Records != 3 {
		t.Fatalf("unexpected body: %+v", out)
	}
}

func TestNewRouter_Routes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &mockService{tasks: []models.Task{{ID: 1, Status: models.TaskCompleted}}}
	r := NewRouter(NewHandler(svc), NewDashboard(svc), RouterOptions{})

	cases := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/", http.StatusOK},
		{http.MethodGet, "/api/v1/tasks", http.StatusOK},
		{http.MethodGet, "/charts/trend.svg", http.StatusOK},
		{http.MethodPost, "/tasks/1/load", http.StatusSeeOther},
		{http.MethodPost, "/api/v1/tasks/1/load", http.StatusOK},
		{http.MethodGet, "/nope", http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
			if w.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, w.Code)
			}
		})
	}
}

func TestNewRouter_RateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &mockService{}
	r := NewRouter(NewHandler(svc), NewDashboard(svc), RouterOptions{RateLimit: 2})

	var codes []int
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil))
		codes = append(codes, w.Code)
	}
	if codes[0] != 200 || codes[1] != 200 || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("unexpected codes %v", codes)
	}
}

func TestNewRouter_RequestTimeout(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &mockService{}
	r := NewRouter(NewHandler(svc), NewDashboard(svc), RouterOptions{RequestTimeout: 50 * time.Millisecond})

	var deadline time.Time
	var ok bool
	r.GET("/probe", func(c *gin.Context) {
		deadline, ok = c.Request.Context().Deadline()
		c.Status(http.StatusNoContent)
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/probe", nil))

	if !ok || time.Until(deadline) > 50*time.Millisecond {
		t.Fatalf("expected a request deadline within 50ms, got %v (set=%v)", deadline, ok)
	}
}

func TestCorsConfig(t *testing.T) {
	if cfg := corsConfig([]string{"*"}); !cfg.AllowAllOrigins {
		t.Fatalf("expected wildcard to allow all origins")
	}
	cfg := corsConfig([]string{"http://a.example"})
	if cfg.AllowAllOrigins || len(cfg.AllowOrigins) != 1 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("invalid cors config: %v", err)
	}
}
