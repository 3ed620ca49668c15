package imaging

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies engine failures so callers can react without parsing
// error strings.
type Kind string

const (
	// KindIO means a path could not be read or written.
	KindIO Kind = "io"
	// KindUnsupportedFormat means the input is not a supported raster format,
	// or the handle's format is not one the encoder knows.
	KindUnsupportedFormat Kind = "unsupported_format"
	// KindInvalidArgument means a caller-supplied token or dimension is malformed.
	KindInvalidArgument Kind = "invalid_argument"
	// KindInvalidState means the handle cannot perform the operation, usually
	// because it has been released.
	KindInvalidState Kind = "invalid_state"
	// KindEncode means serialisation or resampling failed.
	KindEncode Kind = "encode"
	// KindOutOfMemory means the working-memory budget cannot hold the
	// destination buffer.
	KindOutOfMemory Kind = "out_of_memory"
)

// Error is the structured error returned by every exported operation.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("imaging %s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// KindOf returns the Kind carried by err, or "" when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

var (
	ErrReleased     = errors.New("image has been released")
	ErrNoFormat     = errors.New("image format is not set")
	ErrNoPath       = errors.New("no output path")
	ErrNotRegular   = errors.New("not a regular file")
	ErrEmptyInput   = errors.New("empty input")
	ErrBadDimension = errors.New("dimensions must be positive")
)
