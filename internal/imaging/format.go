package imaging

import (
	"github.com/pkg/errors"
)

// Format is the encoding the handle is read from and written back to.
type Format int

const (
	FormatUnknown Format = iota
	FormatJPEG
	FormatPNG
)

// String returns the lower-case format token ("jpeg", "png").
func (f Format) String() string {
	switch f {
	case FormatJPEG:
		return "jpeg"
	case FormatPNG:
		return "png"
	default:
		return "unknown"
	}
}

// MimeType returns the media type for the format.
func (f Format) MimeType() (string, error) {
	switch f {
	case FormatJPEG:
		return "image/jpeg", nil
	case FormatPNG:
		return "image/png", nil
	default:
		return "", ErrNoFormat
	}
}

// ParseFormat maps a format token to a Format. Only "jpeg" and "png" are
// accepted.
func ParseFormat(name string) (Format, error) {
	switch name {
	case "jpeg":
		return FormatJPEG, nil
	case "png":
		return FormatPNG, nil
	default:
		return FormatUnknown, newError(KindInvalidArgument, "parse format",
			errors.Errorf("unsupported format token %q", name))
	}
}

// formatFromProbe maps the name registered with the image package by a
// decoder to a Format. Anything other than jpeg or png is unknown.
func formatFromProbe(name string) Format {
	switch name {
	case "jpeg":
		return FormatJPEG
	case "png":
		return FormatPNG
	default:
		return FormatUnknown
	}
}

// Direction selects a 90 degree step rotation.
type Direction string

const (
	RotateLeft  Direction = "left"
	RotateRight Direction = "right"
	RotateFlip  Direction = "flip"
)

// ParseDirection validates a direction token.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(s); d {
	case RotateLeft, RotateRight, RotateFlip:
		return d, nil
	default:
		return "", newError(KindInvalidArgument, "parse direction",
			errors.Errorf("unknown rotate direction %q", s))
	}
}

// angle is the counter-clockwise rotation in degrees.
func (d Direction) angle() int {
	switch d {
	case RotateLeft:
		return 90
	case RotateRight:
		return -90
	case RotateFlip:
		return 180
	default:
		return 0
	}
}
