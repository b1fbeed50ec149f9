package infrastructure

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestRasterLayout(t *testing.T) {
	w, h, pages := rasterLayout(1000, 1000)
	assert.InDelta(t, a4Width-64, w, 1e-9)
	assert.InDelta(t, w, h, 1e-9)
	assert.Equal(t, 1, pages)

	_, h, pages = rasterLayout(1000, 3000)
	assert.InDelta(t, 3*(a4Width-64), h, 1e-9)
	assert.Equal(t, 3, pages)
}

func TestRasterPDF(t *testing.T) {
	out, err := RasterPDF(testPNG(t, 40, 120))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestRasterPDFRejectsNonPNG(t *testing.T) {
	_, err := RasterPDF([]byte("not an image"))
	assert.ErrorContains(t, err, "decode png")
}
