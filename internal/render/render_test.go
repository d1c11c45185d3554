package render

import (
	"bytes"
	"strings"
	"testing"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/guttosm/salespulse/internal/chart"
	"github.com/guttosm/salespulse/internal/domain/models"
)

// recorder is a Surface that keeps what was drawn.
type recorder struct {
	texts   []string
	circles int
	fills   int
	strokes int
	fillCol drawing.Color
	filled  []drawing.Color
}

func (r *recorder) ResetStyle()                  {}
func (r *recorder) SetStrokeColor(drawing.Color) {}
func (r *recorder) SetFillColor(c drawing.Color) { r.fillCol = c }
func (r *recorder) SetStrokeWidth(float64)       {}
func (r *recorder) MoveTo(int, int)              {}
func (r *recorder) LineTo(int, int)              {}
func (r *recorder) Close()                       {}
func (r *recorder) Stroke()                      { r.strokes++ }
func (r *recorder) Fill()                        { r.fills++; r.filled = append(r.filled, r.fillCol) }
func (r *recorder) FillStroke()                  {}
func (r *recorder) Circle(float64, int, int)     { r.circles++ }
func (r *recorder) SetFontColor(drawing.Color)   {}
func (r *recorder) SetFontSize(float64)          {}
func (r *recorder) Text(body string, _, _ int)   { r.texts = append(r.texts, body) }
func (r *recorder) MeasureText(body string) gochart.Box {
	return gochart.Box{Right: 6 * len(body), Bottom: 10}
}

var _ Surface = (*recorder)(nil)
var _ Surface = gochart.Renderer(nil)

func companyChart() chart.Chart {
	return chart.Company([]models.CompanyAggregate{
		{Company: "Acme", Count: 2},
		{Company: "Beta", Count: 1},
	}, chart.Size{Width: 800, Height: 300})
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"svg", FormatSVG, false},
		{".PNG", FormatPNG, false},
		{"gif", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Fatalf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if FormatPNG.ContentType() != "image/png" || FormatSVG.ContentType() != "image/svg+xml" {
		t.Fatalf("unexpected content types")
	}
}

func TestPaint_EmptyChartDrawsNothing(t *testing.T) {
	r := &recorder{}
	Paint(r, chart.Trend(nil, chart.Size{}))
	if len(r.texts) != 0 || r.fills != 0 || r.strokes != 0 || r.circles != 0 {
		t.Fatalf("empty chart painted something: %+v", r)
	}
}

func TestPaint_CompanyChart(t *testing.T) {
	r := &recorder{}
	c := companyChart()
	Paint(r, c)

	if r.circles != 2 {
		t.Fatalf("circles = %d, want 2", r.circles)
	}
	for _, want := range []string{c.Title, "Acme", "Beta", "Sales Count", "Avg Price", "0", "2"} {
		if !contains(r.texts, want) {
			t.Fatalf("missing text %q in %v", want, r.texts)
		}
	}

	bars := 0
	steel := drawing.ColorFromHex(chart.ColorCount)
	for _, c := range r.filled {
		if c == steel {
			bars++
		}
	}
	// two bars plus the legend swatch
	if bars != 3 {
		t.Fatalf("steelblue fills = %d, want 3", bars)
	}
}

func TestPaint_RepaintIsIdentical(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	Paint(a, companyChart())
	Paint(b, companyChart())
	if strings.Join(a.texts, "|") != strings.Join(b.texts, "|") || a.fills != b.fills {
		t.Fatalf("repaint differs")
	}
}

func TestRender_SVG(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, companyChart(), FormatSVG); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "<svg") {
		t.Fatalf("output is not svg: %.80s", out)
	}
	if !strings.Contains(out, "Acme") {
		t.Fatalf("svg misses company label")
	}
}

func TestRender_PNG(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, companyChart(), FormatPNG); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Fatalf("output is not png")
	}
}

func TestRender_EmptyChartStillEncodes(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, chart.Price(nil, chart.Size{}), FormatSVG); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(buf.String(), "<svg") {
		t.Fatalf("empty chart did not produce an svg document")
	}
}
