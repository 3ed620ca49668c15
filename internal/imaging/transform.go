package imaging

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// Scale resizes the image to width x height.
//
// With preserveAspectRatio the image is fitted inside the box instead: if it
// already fits on both axes nothing happens and Scale returns false.
// Otherwise the axis whose constraint is tighter is set to its target and
// the other is derived from the current aspect ratio, rounded half away
// from zero. The resample itself always runs exactly once.
//
// Scale returns true when the pixels were resampled. On error the handle is
// left untouched.
func (im *Image) Scale(width, height int, preserveAspectRatio bool) (bool, error) {
	const op = "scale"

	if err := im.checkTransformable(op); err != nil {
		return false, err
	}
	if width <= 0 || height <= 0 {
		return false, newError(KindInvalidArgument, op, errors.Wrapf(ErrBadDimension, "target %dx%d", width, height))
	}

	if preserveAspectRatio {
		if width >= im.width && height >= im.height {
			return false, nil
		}
		width, height = fitWithin(im.width, im.height, width, height)
	}

	if err := im.resample(op, width, height); err != nil {
		return false, err
	}
	return true, nil
}

// ScaleLargerSide shrinks the image so its longer side is maxSize, keeping
// the aspect ratio. Images whose sides are both within maxSize are left
// alone and false is returned.
func (im *Image) ScaleLargerSide(maxSize int) (bool, error) {
	const op = "scale larger side"

	if err := im.checkTransformable(op); err != nil {
		return false, err
	}
	if maxSize <= 0 {
		return false, newError(KindInvalidArgument, op, errors.Wrapf(ErrBadDimension, "max size %d", maxSize))
	}
	if maxSize >= im.width && maxSize >= im.height {
		return false, nil
	}

	width, height := boundLargerSide(im.width, im.height, maxSize)
	if err := im.resample(op, width, height); err != nil {
		return false, err
	}
	return true, nil
}

// fitWithin returns the largest size with the aspect ratio of w x h that
// fits inside maxW x maxH.
func fitWithin(w, h, maxW, maxH int) (int, int) {
	ratio := float64(w) / float64(h)
	if ratio > float64(maxW)/float64(maxH) {
		return maxW, roundPixels(float64(maxW) / ratio)
	}
	return roundPixels(float64(maxH) * ratio), maxH
}

// boundLargerSide sets the longer side of w x h to maxSize. Square images
// are bounded by their height.
func boundLargerSide(w, h, maxSize int) (int, int) {
	ratio := float64(w) / float64(h)
	if w > h {
		return maxSize, roundPixels(float64(maxSize) / ratio)
	}
	return roundPixels(float64(maxSize) * ratio), maxSize
}

// roundPixels rounds half away from zero and never returns less than one
// pixel.
func roundPixels(v float64) int {
	n := int(math.Round(v))
	if n < 1 {
		return 1
	}
	return n
}

// resample replaces the buffer with one of exactly width x height.
func (im *Image) resample(op string, width, height int) error {
	if err := im.proc.ensureWorkingMemory(width, height); err != nil {
		return err
	}

	pix := im.proc.resampler.Resample(im.buf.pix, width, height)
	if pix == nil || pix.Bounds().Dx() != width || pix.Bounds().Dy() != height {
		return newError(KindEncode, op, errors.Errorf("resampler did not produce %dx%d", width, height))
	}

	im.proc.debugf("%s %dx%d -> %dx%d", op, im.width, im.height, width, height)
	im.replace(newBuffer(pix))
	return nil
}

// Rotate turns the image by a quarter or half turn and writes the result to
// the handle's path. Left is counter-clockwise, right is clockwise, so a
// left after a right restores the original, as does flipping twice.
//
// The rotated pixels become the handle's buffer only after they have been
// persisted; if writing fails the handle keeps its previous buffer. A handle
// without a path cannot be rotated.
func (im *Image) Rotate(direction Direction) (bool, error) {
	const op = "rotate"

	if err := im.checkLive(op); err != nil {
		return false, err
	}

	var rotate func(image.Image) *image.NRGBA
	switch direction {
	case RotateLeft:
		rotate = imaging.Rotate90
	case RotateRight:
		rotate = imaging.Rotate270
	case RotateFlip:
		rotate = imaging.Rotate180
	default:
		return false, newError(KindInvalidArgument, op, errors.Errorf("unknown rotate direction %q", direction))
	}
	if im.path == "" {
		return false, newError(KindInvalidState, op, ErrNoPath)
	}

	next := newBuffer(rotate(im.buf.pix))
	if err := im.encodeFile(next.pix, im.path, im.proc.quality); err != nil {
		next.release()
		return false, err
	}

	im.proc.debugf("rotated %s by %d degrees", im.path, direction.angle())
	im.replace(next)
	return true, nil
}

func (im *Image) checkTransformable(op string) error {
	if err := im.checkLive(op); err != nil {
		return err
	}
	if im.width <= 0 || im.height <= 0 {
		return newError(KindInvalidState, op, errors.Errorf("empty %dx%d image", im.width, im.height))
	}
	return nil
}
