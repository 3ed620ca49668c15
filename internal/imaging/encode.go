package imaging

import (
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// EncodeToFile writes the image to path in the handle's format. An empty
// path means the handle's own path. quality applies to JPEG only and is
// clamped to 1..100.
//
// The bytes are written to a temporary file next to path and renamed into
// place, so a failed encode leaves any existing file intact.
func (im *Image) EncodeToFile(path string, quality int) error {
	const op = "encode to file"

	if err := im.checkLive(op); err != nil {
		return err
	}
	if path == "" {
		path = im.path
	}
	if path == "" {
		return newError(KindInvalidArgument, op, ErrNoPath)
	}
	return im.encodeFile(im.buf.pix, path, quality)
}

// EncodeToStream writes the encoded image to w. Callers delivering the
// bytes to a client should announce MimeType before writing.
func (im *Image) EncodeToStream(w io.Writer, quality int) error {
	const op = "encode to stream"

	if err := im.checkLive(op); err != nil {
		return err
	}
	if w == nil {
		return newError(KindInvalidArgument, op, errors.New("nil writer"))
	}
	format, err := im.encodingFormat(op)
	if err != nil {
		return err
	}
	return im.encode(op, w, im.buf.pix, format, quality)
}

func (im *Image) encodeFile(pix *image.NRGBA, path string, quality int) error {
	const op = "encode to file"

	format, err := im.encodingFormat(op)
	if err != nil {
		return err
	}

	mode := os.FileMode(0o644)
	if stat, err := os.Stat(path); err == nil {
		mode = stat.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return newError(KindIO, op, errors.Wrap(err, "create"))
	}
	defer os.Remove(tmp.Name())

	if err := im.encode(op, tmp, pix, format, quality); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return newError(KindIO, op, errors.Wrap(err, "chmod"))
	}
	if err := tmp.Close(); err != nil {
		return newError(KindIO, op, errors.Wrap(err, "close"))
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return newError(KindIO, op, errors.Wrapf(err, "rename to %s", path))
	}
	return nil
}

func (im *Image) encodingFormat(op string) (Format, error) {
	switch im.format {
	case FormatJPEG, FormatPNG:
		return im.format, nil
	default:
		return FormatUnknown, newError(KindUnsupportedFormat, op, ErrNoFormat)
	}
}

func (im *Image) encode(op string, w io.Writer, pix *image.NRGBA, format Format, quality int) error {
	var err error
	switch format {
	case FormatJPEG:
		var src image.Image = pix
		if bg := im.proc.background; bg != nil && !pix.Opaque() {
			src = flatten(pix, bg)
		}
		err = imaging.Encode(w, src, imaging.JPEG, imaging.JPEGQuality(clampQuality(quality)))
	case FormatPNG:
		err = imaging.Encode(w, pix, imaging.PNG)
	default:
		return newError(KindUnsupportedFormat, op, ErrNoFormat)
	}
	if err != nil {
		return newError(KindEncode, op, errors.Wrapf(err, "encode %s", format))
	}
	return nil
}

// flatten composites pix over a solid background, since JPEG has no alpha.
func flatten(pix *image.NRGBA, bg color.Color) *image.NRGBA {
	r := pix.Bounds()
	dst := imaging.New(r.Dx(), r.Dy(), bg)
	return imaging.Overlay(dst, pix, image.Pt(0, 0), 1.0)
}

func clampQuality(q int) int {
	switch {
	case q < 1:
		return 1
	case q > 100:
		return 100
	default:
		return q
	}
}
