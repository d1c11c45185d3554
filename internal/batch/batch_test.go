package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/guttosm/salespulse/internal/chart"
	"github.com/guttosm/salespulse/internal/domain/models"
	"github.com/guttosm/salespulse/internal/normalize"
	"github.com/guttosm/salespulse/internal/render"
)

func writeFile(t *testing.T, dir, name string, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

const sampleJSON = `[
  {"date_of_sale": "2021-01-15", "company": "Acme", "price": 10000},
  {"date_of_sale": "2021-02-03", "company": "Beta", "price": 30000}
]`

const sampleCSV = "date_of_sale,company,price\n" +
	"2022-03-01,Acme,12000\n" +
	"not-a-date,Acme,13000\n" +
	"2022-04-01,Gamma,9000\n"

func TestProcessDirectory_RendersEveryFile(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	writeFile(t, in, "a.json", sampleJSON)
	writeFile(t, in, "b.csv", sampleCSV)
	writeFile(t, in, "notes.txt", "ignored")
	if err := os.Mkdir(filepath.Join(in, "nested.json"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	res, err := ProcessDirectory(context.Background(), in, Options{OutDir: out, Format: render.FormatSVG, Policy: normalize.PolicySkip, Parallel: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res) != 2 {
		t.Fatalf("expected 2 results, got %d", len(res))
	}
	if res[0].Records != 2 || res[0].Skipped != 0 {
		t.Fatalf("unexpected json result %+v", res[0])
	}
	if res[1].Records != 2 || res[1].Skipped != 1 {
		t.Fatalf("unexpected csv result %+v", res[1])
	}

	for _, stem := range []string{"a", "b"} {
		for _, name := range chart.Names {
			b, err := os.ReadFile(filepath.Join(out, stem, name+".svg"))
			if err != nil {
				t.Fatalf("missing %s/%s: %v", stem, name, err)
			}
			if !strings.Contains(string(b), "<svg") {
				t.Fatalf("%s/%s is not an svg", stem, name)
			}
		}
	}
}

func TestProcessDirectory_DefaultsToSVG(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	writeFile(t, in, "a.json", sampleJSON)

	if _, err := ProcessDirectory(context.Background(), in, Options{OutDir: out, Filter: models.FilterState{Company: "Acme"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "a", "trend.svg")); err != nil {
		t.Fatalf("expected svg output: %v", err)
	}
}

func TestProcessDirectory_Errors(t *testing.T) {
	cases := []struct {
		name  string
		setup func(t *testing.T) string
		opts  Options
		check func(t *testing.T, err error)
	}{
		{
			name:  "missing dir",
			setup: func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope") },
			check: func(t *testing.T, err error) {
				if !errors.Is(err, os.ErrNotExist) {
					t.Fatalf("expected not-exist error, got %v", err)
				}
			},
		},
		{
			name:  "no datasets",
			setup: func(t *testing.T) string { return t.TempDir() },
			check: func(t *testing.T, err error) {
				if !errors.Is(err, ErrNoDatasets) {
					t.Fatalf("expected ErrNoDatasets, got %v", err)
				}
			},
		},
		{
			name:  "malformed file",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "a.json", sampleJSON)
				writeFile(t, dir, "broken.json", `{"not":"a list"`)
				return dir
			},
			check: func(t *testing.T, err error) {
				if err == nil || !strings.Contains(err.Error(), "broken.json") {
					t.Fatalf("expected error naming broken.json, got %v", err)
				}
			},
		},
		{
			name:  "abort policy",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "b.csv", sampleCSV)
				return dir
			},
			opts:  Options{Policy: normalize.PolicyAbort},
			check: func(t *testing.T, err error) {
				var pe *normalize.ParseError
				if !errors.As(err, &pe) {
					t.Fatalf("expected ParseError, got %v", err)
				}
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir := tc.setup(t)
			tc.opts.OutDir = t.TempDir()
			_, err := ProcessDirectory(context.Background(), dir, tc.opts)
			tc.check(t, err)
		})
	}
}

func TestProcessDirectory_Cancelled(t *testing.T) {
	in := t.TempDir()
	writeFile(t, in, "b.csv", sampleCSV)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := ProcessDirectory(ctx, in, Options{OutDir: t.TempDir()}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
