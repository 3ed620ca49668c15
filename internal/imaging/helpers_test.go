package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	red   = color.NRGBA{255, 0, 0, 255}
	green = color.NRGBA{0, 255, 0, 255}
	blue  = color.NRGBA{0, 0, 255, 255}
	white = color.NRGBA{255, 255, 255, 255}
)

// createPatternImage builds a quadrant image: red top-left, green top-right,
// blue bottom-left, white bottom-right.
func createPatternImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c color.NRGBA
			switch {
			case x < width/2 && y < height/2:
				c = red
			case x >= width/2 && y < height/2:
				c = green
			case x < width/2:
				c = blue
			default:
				c = white
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// createGradientImage builds an opaque image with a unique-ish colour per
// pixel, useful for exact round-trip checks.
func createGradientImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{uint8(x * 7), uint8(y * 13), uint8(x*y + 31), 255})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}))
	return buf.Bytes()
}

func encodeGIF(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, gif.Encode(&buf, img, nil))
	return buf.Bytes()
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func writePNG(t *testing.T, width, height int) string {
	t.Helper()
	return writeFile(t, t.TempDir(), "image.png", encodePNG(t, createPatternImage(width, height)))
}

func writeJPEG(t *testing.T, width, height int) string {
	t.Helper()
	return writeFile(t, t.TempDir(), "image.jpg", encodeJPEG(t, createPatternImage(width, height)))
}

func newTestProcessor() *Processor {
	return NewProcessor(Options{Limiter: &fakeLimiter{limit: 1 << 40}})
}

func loadPath(t *testing.T, p *Processor, path string) *Image {
	t.Helper()
	im, err := p.LoadFromPath(path)
	require.NoError(t, err)
	return im
}

// fakeLimiter records raise requests instead of touching the runtime.
type fakeLimiter struct {
	limit  int64
	setErr error
	sets   []int64
}

func (f *fakeLimiter) MemoryLimit() int64 { return f.limit }

func (f *fakeLimiter) SetMemoryLimit(limit int64) error {
	f.sets = append(f.sets, limit)
	if f.setErr != nil {
		return f.setErr
	}
	f.limit = limit
	return nil
}
