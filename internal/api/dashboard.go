package api

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/salespulse/internal/chart"
	"github.com/guttosm/salespulse/internal/domain/dto"
	"github.com/guttosm/salespulse/internal/domain/models"
	"github.com/guttosm/salespulse/internal/middleware"
	"github.com/guttosm/salespulse/internal/render"
	"github.com/guttosm/salespulse/internal/service"
)

//go:embed templates/dashboard.html
var templatesFS embed.FS

var dashboardTmpl = template.Must(
	template.New("dashboard.html").
		Funcs(template.FuncMap{"when": formatWhen}).
		ParseFS(templatesFS, "templates/dashboard.html"),
)

// Sources offered by the task form.
var Sources = []string{"source_a", "source_b"}

const flashCookie = "salespulse_flash"

var chartTitles = map[string]string{
	chart.NameTrend:   "Sales trend",
	chart.NameCompany: "Sales by company",
	chart.NamePrice:   "Price distribution",
}

// Dashboard serves the server-rendered HTML dashboard and the chart images it
// embeds.
type Dashboard struct {
	svc service.DashboardService
	now func() time.Time
}

// NewDashboard constructs the HTML dashboard handlers.
func NewDashboard(svc service.DashboardService) *Dashboard {
	return &Dashboard{svc: svc, now: time.Now}
}

type flash struct {
	Kind    string
	Message string
}

type chartLink struct {
	Title string
	URL   string
}

type page struct {
	Flash      *flash
	Sources    []string
	YearFrom   int
	YearTo     int
	Tasks      []models.Task
	TasksError string

	Loaded   bool
	Source   string
	Records  int
	Skipped  int
	Cached   bool
	Filtered bool
	Year     string
	Company  string
	Options  models.FilterOptions
	Charts   []chartLink
}

// Index handles GET /.
//
// Behavior:
//   - Lists the tasks; a task API failure is shown in place of the list.
//   - When a dataset is loaded, shows the filter selects and the three charts
//     for the year/company query parameters.
//   - Consumes the flash message left by the previous form submission.
func (d *Dashboard) Index(c *gin.Context) {
	p := page{
		Flash:    d.takeFlash(c),
		Sources:  Sources,
		YearFrom: d.now().Year() - 3,
		YearTo:   d.now().Year(),
	}

	tasks, err := d.svc.ListTasks(c.Request.Context())
	if err != nil {
		_, p.TasksError = middleware.Classify(err)
		_ = c.Error(err)
	}
	p.Tasks = tasks

	fs, err := models.ParseFilterState(c.Query("year"), c.Query("company"))
	if err != nil && p.Flash == nil {
		p.Flash = &flash{Kind: "warning", Message: err.Error()}
	}

	if snap, ok := d.svc.Current(); ok {
		view := d.svc.Dashboard(fs)
		p.Loaded = true
		p.Source = snap.Source
		p.Records = snap.Report.Accepted
		p.Skipped = snap.Report.Skipped
		p.Cached = snap.Cached
		p.Filtered = view.Records > 0
		p.Year = view.Year
		p.Company = view.Company
		p.Options = view.Options
		p.Charts = chartLinks(fs)
	}

	var buf bytes.Buffer
	if err := dashboardTmpl.Execute(&buf, p); err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, middleware.MsgInternal, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// SubmitTask handles the task form (POST /tasks) and redirects back to the
// dashboard with the outcome as a flash message.
func (d *Dashboard) SubmitTask(c *gin.Context) {
	filters, err := parseTaskForm(c)
	if err == nil {
		err = filters.Validate()
	}
	if err != nil {
		d.redirect(c, "danger", "Invalid task: "+err.Error())
		return
	}

	task, err := d.svc.CreateTask(c.Request.Context(), filters)
	if err != nil {
		_ = c.Error(err)
		_, msg := middleware.Classify(err)
		d.redirect(c, "danger", "Failed to create task: "+msg)
		return
	}
	d.redirect(c, "success", fmt.Sprintf("Task #%d created successfully!", task.ID))
}

// LoadTask handles POST /tasks/:id/load.
func (d *Dashboard) LoadTask(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		d.redirect(c, "danger", "Invalid task id")
		return
	}

	resp, err := d.svc.LoadTask(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		_, msg := middleware.Classify(err)
		d.redirect(c, "warning", fmt.Sprintf("Task #%d: %s", id, msg))
		return
	}

	switch {
	case resp.Stale:
		d.redirect(c, "info", fmt.Sprintf("Task #%d was superseded by a newer load", id))
	case resp.Skipped > 0:
		d.redirect(c, "success", fmt.Sprintf("Loaded task #%d: %d records, %d malformed skipped", id, resp.Records, resp.Skipped))
	default:
		d.redirect(c, "success", fmt.Sprintf("Loaded task #%d: %d records", id, resp.Records))
	}
}

// Chart handles GET /charts/:name where name is e.g. "trend.svg" or
// "price.png" (no extension means SVG), filtered by the year and company
// query parameters.
func (d *Dashboard) Chart(c *gin.Context) {
	name, ext, _ := strings.Cut(c.Param("name"), ".")
	format, err := render.ParseFormat(ext)
	if ext == "" {
		format, err = render.FormatSVG, nil
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("unsupported chart format", err))
		return
	}
	fs, err := models.ParseFilterState(c.Query("year"), c.Query("company"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid filter", err))
		return
	}

	var buf bytes.Buffer
	if err := d.svc.RenderChart(&buf, name, fs, format); err != nil {
		if errors.Is(err, service.ErrUnknownChart) {
			c.JSON(http.StatusNotFound, dto.NewErrorResponse("unknown chart", err))
			return
		}
		_ = c.Error(err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

func (d *Dashboard) redirect(c *gin.Context, kind, msg string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, kind+"|"+msg, 60, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/")
}

func (d *Dashboard) takeFlash(c *gin.Context) *flash {
	v, err := c.Cookie(flashCookie)
	if err != nil || v == "" {
		return nil
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)
	kind, msg, ok := strings.Cut(v, "|")
	if !ok {
		return nil
	}
	return &flash{Kind: kind, Message: msg}
}

// parseTaskForm reads sources, year_from, year_to and companies. Companies may
// come as repeated fields or as one comma separated field.
func parseTaskForm(c *gin.Context) (models.TaskFilters, error) {
	from, err := strconv.Atoi(strings.TrimSpace(c.PostForm("year_from")))
	if err != nil {
		return models.TaskFilters{}, fmt.Errorf("year_from must be a number")
	}
	to, err := strconv.Atoi(strings.TrimSpace(c.PostForm("year_to")))
	if err != nil {
		return models.TaskFilters{}, fmt.Errorf("year_to must be a number")
	}

	var companies []string
	for _, field := range c.PostFormArray("companies") {
		for _, name := range strings.Split(field, ",") {
			if name = strings.TrimSpace(name); name != "" {
				companies = append(companies, name)
			}
		}
	}

	return models.TaskFilters{
		Sources:   c.PostFormArray("sources"),
		YearFrom:  from,
		YearTo:    to,
		Companies: companies,
	}, nil
}

func chartLinks(fs models.FilterState) []chartLink {
	q := url.Values{}
	if !fs.IsAll() {
		q.Set("year", fs.YearValue())
		q.Set("company", fs.CompanyValue())
	}
	links := make([]chartLink, 0, len(chart.Names))
	for _, name := range chart.Names {
		u := "/charts/" + name + ".svg"
		if len(q) > 0 {
			u += "?" + q.Encode()
		}
		links = append(links, chartLink{Title: chartTitles[name], URL: u})
	}
	return links
}

func formatWhen(t models.Timestamp) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format("2006-01-02 15:04 UTC")
}
