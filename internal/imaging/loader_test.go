package imaging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromPath(t *testing.T) {
	tests := []struct {
		name       string
		path       func(t *testing.T) string
		wantFormat Format
		wantMime   string
	}{
		{"png", func(t *testing.T) string { return writePNG(t, 120, 80) }, FormatPNG, "image/png"},
		{"jpeg", func(t *testing.T) string { return writeJPEG(t, 120, 80) }, FormatJPEG, "image/jpeg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.path(t)
			im, err := newTestProcessor().LoadFromPath(path)
			require.NoError(t, err)

			w, h := im.Size()
			assert.Equal(t, 120, w)
			assert.Equal(t, 80, h)
			assert.Equal(t, tt.wantFormat, im.Format())
			assert.Equal(t, path, im.Path())

			mime, err := im.MimeType()
			require.NoError(t, err)
			assert.Equal(t, tt.wantMime, mime)
			assert.True(t, im.buf.live())
		})
	}
}

func TestLoadFromPath_FormatFromContentNotExtension(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "really-a-png.jpg", encodePNG(t, createPatternImage(10, 10)))

	im := loadPath(t, newTestProcessor(), path)
	assert.Equal(t, FormatPNG, im.Format())
}

func TestLoadFromPath_Errors(t *testing.T) {
	dir := t.TempDir()
	pngBytes := encodePNG(t, createPatternImage(40, 40))

	tests := []struct {
		name     string
		path     string
		wantKind Kind
	}{
		{"missing file", "/nonexistent/path/to/image.png", KindIO},
		{"directory", dir, KindIO},
		{"text file", writeFile(t, dir, "notes.txt", []byte("not an image")), KindUnsupportedFormat},
		{"gif", writeFile(t, dir, "anim.gif", encodeGIF(t, createPatternImage(10, 10))), KindUnsupportedFormat},
		{"truncated png", writeFile(t, dir, "short.png", pngBytes[:40]), KindUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			im, err := newTestProcessor().LoadFromPath(tt.path)
			require.Error(t, err)
			assert.Nil(t, im)
			assert.True(t, IsKind(err, tt.wantKind), "got %v", err)
		})
	}
}

func TestLoadFromBytes(t *testing.T) {
	src := createPatternImage(64, 48)

	tests := []struct {
		name string
		data []byte
	}{
		{"png", encodePNG(t, src)},
		{"jpeg", encodeJPEG(t, src)},
		{"gif", encodeGIF(t, src)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			im, err := newTestProcessor().LoadFromBytes(tt.data)
			require.NoError(t, err)

			w, h := im.Size()
			assert.Equal(t, 64, w)
			assert.Equal(t, 48, h)
			assert.Equal(t, FormatPNG, im.Format(), "byte input is always treated as png")
			assert.Empty(t, im.Path())
		})
	}
}

func TestLoadFromBytes_Errors(t *testing.T) {
	for name, data := range map[string][]byte{
		"empty":   nil,
		"garbage": []byte("definitely not pixels"),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := newTestProcessor().LoadFromBytes(data)
			require.Error(t, err)
			assert.Equal(t, KindUnsupportedFormat, KindOf(err))
		})
	}
}

func TestLoadImageInfo(t *testing.T) {
	path := writeJPEG(t, 200, 150)

	info, err := newTestProcessor().LoadImageInfo(path)
	require.NoError(t, err)
	assert.Equal(t, 200, info.Width)
	assert.Equal(t, 150, info.Height)
	assert.Equal(t, "jpeg", info.Format)
	assert.Equal(t, "image/jpeg", info.MimeType)
	assert.Positive(t, info.FileSizeBytes)
}

func TestLoadImageInfo_NonExistent(t *testing.T) {
	_, err := newTestProcessor().LoadImageInfo("/nonexistent/image.png")
	assert.True(t, IsKind(err, KindIO))
}

func TestGetDimensions(t *testing.T) {
	dims, err := GetDimensions(writePNG(t, 300, 200))
	require.NoError(t, err)
	assert.Equal(t, 300, dims.Width)
	assert.Equal(t, 200, dims.Height)

	_, err = GetDimensions("/nonexistent/image.png")
	assert.True(t, IsKind(err, KindIO))
}
