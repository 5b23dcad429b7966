// Package export renders a layout to raster (PNG) or vector (PDF) output.
//
// Shapes are painted in stored order: fill, then border at the shape's
// thickness, then a blue outline of width 2 when the shape is selected.
// The background is white.
package export

import (
	"errors"
	"fmt"
	"image"
	"io"
	"path/filepath"
	"strings"

	"github.com/gogpu/gg"
	"github.com/jung-kurt/gofpdf"

	"github.com/mesh-intelligence/furnish/pkg/furnish"
	"github.com/mesh-intelligence/furnish/pkg/types"
)

// Default output size in pixels (PNG) or points (PDF).
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

const selectionWidth = 2.0

// Export errors.
var (
	ErrInvalidSize   = errors.New("export size must be positive")
	ErrUnknownFormat = errors.New("unknown export format")
)

// Format names an output encoding.
type Format string

const (
	FormatPNG Format = "png"
	FormatPDF Format = "pdf"
)

// FormatFor picks a format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FormatPNG, nil
	case ".pdf":
		return FormatPDF, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
}

func checkSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	return nil
}

// draw paints d onto a fresh context. The caller must Close it.
func draw(d types.Design, width, height int) (*gg.Context, error) {
	dc := gg.NewContext(width, height)
	dc.ClearWithColor(gg.White)

	for i, s := range d {
		trace := func() {
			x, y, w, h := s.Bounds()
			if s.Kind() == types.KindRectangle {
				dc.DrawRectangle(x, y, w, h)
			} else {
				dc.DrawEllipse(x+w/2, y+h/2, w/2, h/2)
			}
		}

		trace()
		dc.SetColor(s.FillColor())
		if err := dc.FillPreserve(); err != nil {
			dc.Close()
			return nil, fmt.Errorf("filling shape %d: %w", i, err)
		}
		if s.BorderThickness() > 0 {
			dc.SetColor(s.BorderColor())
			dc.SetLineWidth(float64(s.BorderThickness()))
			if err := dc.Stroke(); err != nil {
				dc.Close()
				return nil, fmt.Errorf("stroking shape %d: %w", i, err)
			}
		} else {
			dc.ClearPath()
		}
		if s.Selected() {
			trace()
			dc.SetColor(types.Blue)
			dc.SetLineWidth(selectionWidth)
			if err := dc.Stroke(); err != nil {
				dc.Close()
				return nil, fmt.Errorf("outlining shape %d: %w", i, err)
			}
		}
	}
	_ = dc.FlushGPU()
	return dc, nil
}

// Render rasterizes d into an image of the given size.
func Render(d types.Design, width, height int) (image.Image, error) {
	if err := checkSize(width, height); err != nil {
		return nil, err
	}
	dc, err := draw(d, width, height)
	if err != nil {
		return nil, err
	}
	defer dc.Close()
	return dc.Image(), nil
}

// EncodePNG writes d as a PNG image to w.
func EncodePNG(w io.Writer, d types.Design, width, height int) error {
	if err := checkSize(width, height); err != nil {
		return err
	}
	dc, err := draw(d, width, height)
	if err != nil {
		return err
	}
	defer dc.Close()
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

// PNG writes d as a PNG file at path.
func PNG(path string, d types.Design, width, height int) error {
	if err := checkSize(width, height); err != nil {
		return err
	}
	dc, err := draw(d, width, height)
	if err != nil {
		return err
	}
	defer dc.Close()
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("saving png %s: %w", path, err)
	}
	return nil
}

func newPDF(d types.Design, width, height int) *gofpdf.Fpdf {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: float64(width), Ht: float64(height)},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	for _, s := range d {
		x, y, w, h := s.Bounds()
		trace := func(style string) {
			if s.Kind() == types.KindRectangle {
				pdf.Rect(x, y, w, h, style)
			} else {
				pdf.Ellipse(x+w/2, y+h/2, w/2, h/2, 0, style)
			}
		}

		fill, border := s.FillColor(), s.BorderColor()
		pdf.SetFillColor(int(fill.R), int(fill.G), int(fill.B))
		pdf.SetDrawColor(int(border.R), int(border.G), int(border.B))
		if s.BorderThickness() > 0 {
			pdf.SetLineWidth(float64(s.BorderThickness()))
			trace("FD")
		} else {
			trace("F")
		}

		if s.Selected() {
			pdf.SetDrawColor(int(types.Blue.R), int(types.Blue.G), int(types.Blue.B))
			pdf.SetLineWidth(selectionWidth)
			trace("D")
		}
	}
	return pdf
}

// WritePDF writes d as a single-page PDF to w. The page is width by height
// points and layout coordinates map one to one onto it.
func WritePDF(w io.Writer, d types.Design, width, height int) error {
	if err := checkSize(width, height); err != nil {
		return err
	}
	if err := newPDF(d, width, height).Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}

// PDF writes d as a PDF file at path.
func PDF(path string, d types.Design, width, height int) error {
	if err := checkSize(width, height); err != nil {
		return err
	}
	if err := newPDF(d, width, height).OutputFileAndClose(path); err != nil {
		return fmt.Errorf("saving pdf %s: %w", path, err)
	}
	return nil
}

// File writes d to path in the format implied by its extension.
func File(path string, d types.Design, width, height int) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	switch format {
	case FormatPDF:
		err = PDF(path, d, width, height)
	default:
		err = PNG(path, d, width, height)
	}
	if err != nil {
		return err
	}
	furnish.Logger().Info("exported layout", "path", path, "format", string(format), "shapes", len(d))
	return nil
}
