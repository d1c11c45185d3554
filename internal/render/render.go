// Package render paints laid-out charts onto go-chart drawing surfaces and
// encodes them as SVG or PNG.
package render

import (
	"fmt"
	"io"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/guttosm/salespulse/internal/chart"
)

// Format is an output encoding.
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// ParseFormat accepts "svg" or "png" (case-insensitive, optional leading dot).
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimPrefix(s, "."))) {
	case FormatSVG:
		return FormatSVG, nil
	case FormatPNG:
		return FormatPNG, nil
	}
	return "", fmt.Errorf("unsupported chart format %q", s)
}

// ContentType is the HTTP media type of the encoding.
func (f Format) ContentType() string {
	if f == FormatPNG {
		return "image/png"
	}
	return "image/svg+xml"
}

func (f Format) provider() gochart.RendererProvider {
	if f == FormatPNG {
		return gochart.PNG
	}
	return gochart.SVG
}

// Render paints c onto a fresh surface of the given format and writes the
// encoded image to w.
//
// Parameters:
//   - w: destination of the encoded image.
//   - c: chart laid out by the chart package.
//   - f: output encoding.
//
// Returns:
//   - error: if the surface, the font or the encoder fails.
func Render(w io.Writer, c chart.Chart, f Format) error {
	r, err := f.provider()(c.Width, c.Height)
	if err != nil {
		return fmt.Errorf("create %s surface: %w", f, err)
	}
	font, err := gochart.GetDefaultFont()
	if err != nil {
		return fmt.Errorf("load font: %w", err)
	}
	r.SetFont(font)

	Paint(r, c)

	if err := r.Save(w); err != nil {
		return fmt.Errorf("encode %s: %w", f, err)
	}
	return nil
}

func color(hex string) drawing.Color {
	return drawing.ColorFromHex(hex)
}
