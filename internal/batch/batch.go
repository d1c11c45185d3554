// Package batch renders the charts of every dataset export in a directory.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/salespulse/internal/chart"
	"github.com/guttosm/salespulse/internal/dataset"
	"github.com/guttosm/salespulse/internal/domain/models"
	"github.com/guttosm/salespulse/internal/logger"
	"github.com/guttosm/salespulse/internal/normalize"
	"github.com/guttosm/salespulse/internal/render"
	"github.com/guttosm/salespulse/internal/service"
)

const maxParallelCap = 8

// ErrNoDatasets is returned when the directory holds no .json or .csv file.
var ErrNoDatasets = errors.New("no dataset files found")

// Options configure a batch run.
type Options struct {
	OutDir    string
	Format    render.Format
	Filter    models.FilterState
	Policy    normalize.Policy
	Bins      int
	ChartSize chart.Size
	Parallel  int // 0 = min(8, NumCPU)
}

// Result describes one rendered dataset.
type Result struct {
	File    string
	OutDir  string
	Records int
	Skipped int
}

// ProcessDirectory renders every dataset export found in dir.
//
// Parameters:
//   - dir: directory containing .json or .csv exports (not recursive).
//   - opts: output directory, format, filter and chart settings.
//
// Behavior:
//   - Files are processed concurrently, bounded by opts.Parallel (clamped to 1..8).
//   - Charts of "<dir>/sales-2021.csv" go to "<OutDir>/sales-2021/<chart>.<format>".
//   - If any file fails, the rest are cancelled and that error is returned.
//
// Returns:
//   - []Result: one entry per file, in file name order.
//   - error: first error encountered (if any).
func ProcessDirectory(ctx context.Context, dir string, opts Options) ([]Result, error) {
	files, err := datasetFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoDatasets, dir)
	}

	if opts.Format == "" {
		opts.Format = render.FormatSVG
	}

	maxParallel := maxParallelCap
	if opts.Parallel > 0 {
		maxParallel = min(opts.Parallel, maxParallelCap)
	} else if c := runtime.NumCPU(); c < maxParallel {
		maxParallel = c
	}
	logger.L().Info().Int("files", len(files)).Str("dir", dir).Int("max_parallel", maxParallel).Msg("batch render start")

	results := make([]Result, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)

	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			start := time.Now()
			base := filepath.Base(f)

			res, err := processFile(gctx, f, opts)
			if err != nil {
				logger.L().Error().Str("file", base).Dur("elapsed", time.Since(start)).Err(err).Msg("file failed")
				return fmt.Errorf("file %s: %w", base, err)
			}
			results[i] = res
			logger.L().Info().Int("idx", i+1).Int("total", len(files)).Str("file", base).
				Int("records", res.Records).Int("skipped", res.Skipped).Dur("elapsed", time.Since(start)).Msg("file done")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func processFile(ctx context.Context, path string, opts Options) (Result, error) {
	raw, err := dataset.LoadFile(ctx, path)
	if err != nil {
		return Result{}, err
	}

	// Each file gets its own dashboard state.
	svc := service.NewDashboardService(nil, nil, service.Options{
		Policy:    opts.Policy,
		Bins:      opts.Bins,
		ChartSize: opts.ChartSize,
	})
	resp, err := svc.LoadRecords(filepath.Base(path), raw)
	if err != nil {
		return Result{}, err
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	out := filepath.Join(opts.OutDir, stem)
	if err := os.MkdirAll(out, 0o755); err != nil {
		return Result{}, fmt.Errorf("create output dir: %w", err)
	}

	open := func(name string) (io.WriteCloser, error) {
		return os.Create(filepath.Join(out, name+"."+string(opts.Format)))
	}
	if err := svc.RenderAll(ctx, opts.Filter, opts.Format, open); err != nil {
		return Result{}, err
	}
	return Result{File: path, OutDir: out, Records: resp.Records, Skipped: resp.Skipped}, nil
}

// datasetFiles lists the .json and .csv files of dir, sorted by name.
func datasetFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".json", ".csv":
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
