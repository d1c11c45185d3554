package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/salespulse/internal/domain/dto"
	"github.com/guttosm/salespulse/internal/domain/models"
	"github.com/guttosm/salespulse/internal/service"
)

// Handler provides the JSON API of the dashboard.
//
// Responsibilities:
//   - Validate incoming path, query and body parameters
//   - Delegate to the dashboard service
//   - Hand service errors to middleware.ErrorHandler via c.Error
//   - Return structured JSON responses with appropriate HTTP status codes
type Handler struct {
	svc service.DashboardService
}

// NewHandler constructs a new Handler instance.
//
// Parameters:
//   - svc (service.DashboardService): Service owning tasks and the loaded dataset.
//
// Returns:
//   - *Handler: A handler ready to be registered with the router.
func NewHandler(svc service.DashboardService) *Handler {
	return &Handler{svc: svc}
}

// ListTasks godoc
// @Summary      List tasks
// @Description  Returns every task known to the task API with its status
// @Tags         tasks
// @Produce      json
// @Success      200  {array}   models.Task
// @Failure      502  {object}  dto.ErrorResponse  "Task API unreachable"
// @Router       /api/v1/tasks [get]
func (h *Handler) ListTasks(c *gin.Context) {
	tasks, err := h.svc.ListTasks(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// CreateTask godoc
// @Summary      Create task
// @Description  Submits a data-collection task with the given filters
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        request  body      dto.CreateTaskRequest  true  "Task filters"
// @Success      201      {object}  models.Task
// @Failure      400      {object}  dto.ErrorResponse  "Bad Request"
// @Failure      502      {object}  dto.ErrorResponse  "Task API unreachable"
// @Router       /api/v1/tasks [post]
func (h *Handler) CreateTask(c *gin.Context) {
	// ─── Bind and validate body ───────────────────────────────
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid request body", err))
		return
	}
	if err := req.Filters.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid filters", err))
		return
	}

	task, err := h.svc.CreateTask(c.Request.Context(), req.Filters)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

// LoadTask godoc
// @Summary      Load task dataset
// @Description  Fetches the dataset of a completed task and makes it the one the dashboard shows
// @Tags         tasks
// @Produce      json
// @Param        id   path      int  true  "Task id" example(3)
// @Success      200  {object}  dto.LoadResponse
// @Failure      400  {object}  dto.ErrorResponse  "Bad Request"
// @Failure      409  {object}  dto.ErrorResponse  "Task data not ready"
// @Failure      422  {object}  dto.ErrorResponse  "Malformed records"
// @Failure      502  {object}  dto.ErrorResponse  "Task API unreachable"
// @Failure      504  {object}  dto.ErrorResponse  "Timeout"
// @Router       /api/v1/tasks/{id}/load [post]
func (h *Handler) LoadTask(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("task id must be a positive integer", nil))
		return
	}

	resp, err := h.svc.LoadTask(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetDashboard godoc
// @Summary      Dashboard aggregates
// @Description  Aggregates of the loaded dataset (by month, by company, by price bin) under the given filter
// @Tags         dashboard
// @Produce      json
// @Param        year     query     string  false  "Year or 'all'" example(2021)
// @Param        company  query     string  false  "Company or 'all'" example(Acme)
// @Success      200      {object}  dto.DashboardResponse
// @Failure      400      {object}  dto.ErrorResponse  "Bad Request"
// @Router       /api/v1/dashboard [get]
func (h *Handler) GetDashboard(c *gin.Context) {
	fs, err := models.ParseFilterState(c.Query("year"), c.Query("company"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid filter", err))
		return
	}
	c.JSON(http.StatusOK, h.svc.Dashboard(fs))
}

func taskID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
