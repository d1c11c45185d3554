package main

//
//  @title           salespulse API
//  @version         1.0
//  @description     Sales dashboard over a data-collection task API.
//  @termsOfService  https://github.com/guttosm/salespulse
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/salespulse
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        tasks
//  @tag.description Submitting and loading data-collection tasks
//
//  @tag.name        dashboard
//  @tag.description Aggregates behind the dashboard charts
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/guttosm/salespulse/config"
	_ "github.com/guttosm/salespulse/docs" // swagger docs
	"github.com/guttosm/salespulse/internal/app"
	"github.com/guttosm/salespulse/internal/batch"
	"github.com/guttosm/salespulse/internal/chart"
	"github.com/guttosm/salespulse/internal/dataset"
	"github.com/guttosm/salespulse/internal/domain/dto"
	"github.com/guttosm/salespulse/internal/domain/models"
	"github.com/guttosm/salespulse/internal/logger"
	"github.com/guttosm/salespulse/internal/render"
	"github.com/guttosm/salespulse/internal/service"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown gracefully terminates the HTTP server and cleans up resources
// when an OS interrupt signal (SIGINT, SIGTERM) is received.
//
// Parameters:
//   - ctx (context.Context): A context with timeout for graceful shutdown.
//   - server (*http.Server): The HTTP server instance to shut down.
//   - cleanup (func()): Cleanup callback to release resources (e.g., the Redis connection).
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// renderOptions are the flags of render mode.
type renderOptions struct {
	TaskID   int
	File     string
	Dir      string
	OutDir   string
	Format   string
	Year     string
	Company  string
	Parallel int

	// Dashboard applies to --dir runs, which build one dashboard per file.
	Dashboard config.DashboardConfig
}

// runRender loads one dataset (a task through the service, or a local export)
// and writes the three charts to OutDir as <name>.<format>. With Dir set, every
// export in that directory is rendered into its own subdirectory instead.
//
// Returns:
//   - error: on invalid options, a failed load or a failed render. A stale load
//     cannot happen here since render mode issues exactly one load.
func runRender(ctx context.Context, svc service.DashboardService, opts renderOptions) error {
	format, err := render.ParseFormat(opts.Format)
	if err != nil {
		return err
	}
	fs, err := models.ParseFilterState(opts.Year, opts.Company)
	if err != nil {
		return err
	}

	sources := 0
	for _, set := range []bool{opts.TaskID > 0, opts.File != "", opts.Dir != ""} {
		if set {
			sources++
		}
	}
	if sources > 1 {
		return errors.New("use only one of --task, --file or --dir")
	}

	var resp dto.LoadResponse
	switch {
	case opts.Dir != "":
		results, err := batch.ProcessDirectory(ctx, opts.Dir, batch.Options{
			OutDir:    opts.OutDir,
			Format:    format,
			Filter:    fs,
			Policy:    opts.Dashboard.Policy,
			Bins:      opts.Dashboard.HistogramBins,
			ChartSize: chart.Size{Width: opts.Dashboard.ChartWidth, Height: opts.Dashboard.ChartHeight},
			Parallel:  opts.Parallel,
		})
		if err != nil {
			return err
		}
		logger.L().Info().Int("datasets", len(results)).Msg("batch rendered")
		return nil
	case opts.File != "":
		raw, err := dataset.LoadFile(ctx, opts.File)
		if err != nil {
			return err
		}
		resp, err = svc.LoadRecords(filepath.Base(opts.File), raw)
		if err != nil {
			return err
		}
	case opts.TaskID > 0:
		resp, err = svc.LoadTask(ctx, opts.TaskID)
		if err != nil {
			return err
		}
	default:
		return errors.New("render mode needs --task, --file or --dir")
	}
	logger.L().Info().Int("records", resp.Records).Int("skipped", resp.Skipped).Msg("dataset ready")

	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	open := func(name string) (io.WriteCloser, error) {
		path := filepath.Join(opts.OutDir, name+"."+string(format))
		logger.L().Info().Str("chart", name).Str("path", path).Msg("rendering chart")
		return os.Create(path)
	}
	return svc.RenderAll(ctx, fs, format, open)
}

// main is the entry point of the salespulse application.
//
// Modes (selected via --mode flag):
//   - serve:  Starts the HTML dashboard and the JSON API.
//   - render: Writes the three charts of one dataset to files and exits.
//
// Flags:
//   - --mode:    Execution mode ("serve" or "render"). Default: "serve".
//   - --port:    Port for serve mode. Defaults to value from config (SERVER_PORT).
//   - --task:    Task id whose dataset is rendered (render mode).
//   - --file:    Local .json or .csv dataset rendered instead of a task (render mode).
//   - --dir:     Directory of .json/.csv exports, each rendered to its own subdirectory.
//   - --parallel: How many --dir files to render concurrently (0=auto up to CPU, max 8).
//   - --out:     Output directory for rendered charts. Default: "./charts".
//   - --format:  svg or png. Default: "svg".
//   - --year, --company: Filter applied before rendering. Default: "all".
func main() {
	ctx := context.Background()

	// Load configuration from environment or .env file
	config.LoadConfig()
	cfg := config.AppConfig

	// Initialize JSON logger
	logger.Init(logger.Options{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})

	// Parse CLI flags (override config defaults if provided)
	mode := flag.String("mode", "serve", "Mode: serve or render")
	port := flag.String("port", cfg.Server.Port, "Port for serve mode")
	taskID := flag.Int("task", 0, "Task id to render (render mode)")
	file := flag.String("file", "", "Local .json or .csv dataset to render (render mode)")
	dir := flag.String("dir", "", "Directory of .json/.csv datasets to render (render mode)")
	parallel := flag.Int("parallel", 0, "How many --dir files to render concurrently (0=auto up to CPU, max 8)")
	out := flag.String("out", "./charts", "Output directory for rendered charts")
	format := flag.String("format", string(render.FormatSVG), "Chart format: svg or png")
	year := flag.String("year", models.FilterAll, "Year filter for render mode")
	company := flag.String("company", models.FilterAll, "Company filter for render mode")
	flag.Parse()

	switch *mode {
	case "serve":
		// Serve mode: start the HTTP server
		logger.L().Info().Str("task_api", cfg.TaskAPI.URL).Msg("starting dashboard server")

		router, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, *port)
		gracefulShutdown(ctx, server, cleanup)

	case "render":
		// Render mode: one dataset, three chart files
		ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		datasets, err := app.InitCache(ctx, cfg)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("cache init error")
		}
		defer func() { _ = datasets.Close() }()

		svc := app.NewDashboardService(cfg, datasets)
		opts := renderOptions{
			TaskID:    *taskID,
			File:      *file,
			Dir:       *dir,
			OutDir:    *out,
			Format:    *format,
			Year:      *year,
			Company:   *company,
			Parallel:  *parallel,
			Dashboard: cfg.Dashboard,
		}
		if err := runRender(ctx, svc, opts); err != nil {
			logger.L().Error().Err(err).Msg("render failed")
			_ = datasets.Close()
			os.Exit(1)
		}
		logger.L().Info().Str("out", *out).Msg("charts rendered successfully")

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
