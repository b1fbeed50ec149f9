package infrastructure

import (
	"bytes"
	"fmt"
	"image/png"
	"math"

	"github.com/go-pdf/fpdf"
)

// A4 in points, and the margin kept around the embedded bitmap.
const (
	a4Width     = 595.28
	a4Height    = 841.89
	pageMargin  = 32.0
	rasterImage = "resume"
)

// rasterLayout scales a bitmap to the printable width of an A4 page and
// reports how many pages the scaled height needs.
func rasterLayout(pxWidth, pxHeight int) (w, h float64, pages int) {
	w = a4Width - 2*pageMargin
	h = float64(pxHeight) * w / float64(pxWidth)
	usable := a4Height - 2*pageMargin
	pages = int(math.Ceil(h / usable))
	if pages < 1 {
		pages = 1
	}
	return w, h, pages
}

// RasterPDF embeds a PNG into an A4 portrait PDF at a fixed width. A bitmap
// taller than one page continues on the next page, clipped to the margins.
func RasterPDF(img []byte) ([]byte, error) {
	cfg, err := png.DecodeConfig(bytes.NewReader(img))
	if err != nil {
		return nil, fmt.Errorf("decode png: %w", err)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return nil, fmt.Errorf("empty image")
	}
	w, h, pages := rasterLayout(cfg.Width, cfg.Height)
	usable := a4Height - 2*pageMargin

	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle("Resume", true)
	opts := fpdf.ImageOptions{ImageType: "PNG", AllowNegativePosition: true}
	pdf.RegisterImageOptionsReader(rasterImage, opts, bytes.NewReader(img))

	for p := 0; p < pages; p++ {
		pdf.AddPage()
		pdf.ClipRect(pageMargin, pageMargin, w, usable, false)
		pdf.ImageOptions(rasterImage, pageMargin, pageMargin-float64(p)*usable, w, h, false, opts, 0, "")
		pdf.ClipEnd()
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
