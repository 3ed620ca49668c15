package imaging

import (
	"bytes"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io"
	"os"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// LoadFromPath decodes the JPEG or PNG file at path into a new handle.
//
// The file header is probed first, the way the pixels would be described
// without decoding them; only when the probe reports JPEG or PNG are the
// pixels decoded. Decoding is eager: the returned handle owns a fully
// materialised buffer and keeps path as its default output target.
//
// # Errors
//
//   - KindIO if path does not name a readable regular file
//   - KindUnsupportedFormat if the header cannot be probed, the probed type
//     is neither JPEG nor PNG, or the pixel data is corrupt
func (p *Processor) LoadFromPath(path string) (*Image, error) {
	const op = "load from path"

	f, _, format, err := openProbed(op, path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	pix, err := decodeNRGBA(f)
	if err != nil {
		return nil, newError(KindUnsupportedFormat, op, errors.Wrapf(err, "decode %s", path))
	}

	im := &Image{proc: p, format: format, path: path}
	im.replace(newBuffer(pix))
	p.debugf("decoded %s %dx%d from %s", format, im.width, im.height, path)
	return im, nil
}

// LoadFromBytes decodes data into a new handle. Any registered raster format
// (JPEG, PNG, GIF, BMP, TIFF, WebP) is accepted, but the handle's format is
// always PNG: byte-sourced images are written back losslessly unless the
// caller switches format with SetFormat. The handle has no path.
func (p *Processor) LoadFromBytes(data []byte) (*Image, error) {
	const op = "load from bytes"

	if len(data) == 0 {
		return nil, newError(KindUnsupportedFormat, op, ErrEmptyInput)
	}
	pix, err := decodeNRGBA(bytes.NewReader(data))
	if err != nil {
		return nil, newError(KindUnsupportedFormat, op, errors.Wrap(err, "decode"))
	}

	im := &Image{proc: p, format: FormatPNG}
	im.replace(newBuffer(pix))
	p.debugf("decoded %d bytes as %dx%d", len(data), im.width, im.height)
	return im, nil
}

// openProbed opens path, probes its header and rewinds it. The caller owns
// the returned file.
func openProbed(op, path string) (*os.File, image.Config, Format, error) {
	var cfg image.Config

	stat, err := os.Stat(path)
	if err != nil {
		return nil, cfg, FormatUnknown, newError(KindIO, op, errors.Wrap(err, "stat"))
	}
	if !stat.Mode().IsRegular() {
		return nil, cfg, FormatUnknown, newError(KindIO, op, errors.Wrap(ErrNotRegular, path))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, cfg, FormatUnknown, newError(KindIO, op, errors.Wrap(err, "open"))
	}

	cfg, name, err := image.DecodeConfig(f)
	if err != nil {
		f.Close()
		return nil, cfg, FormatUnknown, newError(KindUnsupportedFormat, op, errors.Wrapf(err, "probe %s", path))
	}
	format := formatFromProbe(name)
	if format == FormatUnknown {
		f.Close()
		return nil, cfg, FormatUnknown, newError(KindUnsupportedFormat, op, errors.Errorf("%s is %s, want jpeg or png", path, name))
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return nil, cfg, FormatUnknown, newError(KindIO, op, errors.Wrap(err, "rewind"))
	}
	return f, cfg, format, nil
}

func decodeNRGBA(r io.Reader) (*image.NRGBA, error) {
	img, err := imaging.Decode(r)
	if err != nil {
		return nil, err
	}
	return imaging.Clone(img), nil
}

// ImageInfo contains metadata about an image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the probed format: "jpeg" or "png".
	Format string `json:"format"`

	// MimeType is the media type matching Format.
	MimeType string `json:"mime_type"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo decodes the image at path and reports its metadata. The
// handle used for decoding is released before returning.
func (p *Processor) LoadImageInfo(path string) (*ImageInfo, error) {
	im, err := p.LoadFromPath(path)
	if err != nil {
		return nil, err
	}
	defer im.Release()

	stat, err := os.Stat(path)
	if err != nil {
		return nil, newError(KindIO, "image info", errors.Wrap(err, "stat"))
	}
	mime, err := im.MimeType()
	if err != nil {
		return nil, err
	}

	w, h := im.Size()
	return &ImageInfo{
		Width:         w,
		Height:        h,
		Format:        im.Format().String(),
		MimeType:      mime,
		FileSizeBytes: stat.Size(),
	}, nil
}

// DimensionsResult contains the width and height of an image.
type DimensionsResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// GetDimensions probes the header of the JPEG or PNG file at path without
// decoding its pixels.
func GetDimensions(path string) (*DimensionsResult, error) {
	const op = "dimensions"

	f, cfg, _, err := openProbed(op, path)
	if err != nil {
		return nil, err
	}
	f.Close()

	return &DimensionsResult{Width: cfg.Width, Height: cfg.Height}, nil
}
