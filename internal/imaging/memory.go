package imaging

import (
	"math"
	"runtime/debug"

	"github.com/pkg/errors"
)

// DefaultMemoryFloor is the working-memory budget guaranteed before a resample.
const DefaultMemoryFloor int64 = 50 << 20

// bytesPerPixel matches the NRGBA layout every buffer is kept in.
const bytesPerPixel = 4

// MemoryLimiter is the host's working-memory budget. The engine reads it
// before resampling and asks for it to be raised when it is below the
// configured floor.
type MemoryLimiter interface {
	MemoryLimit() int64
	SetMemoryLimit(limit int64) error
}

// RuntimeMemoryLimiter adjusts the Go runtime soft memory limit (GOMEMLIMIT).
type RuntimeMemoryLimiter struct{}

// MemoryLimit returns the current runtime limit without changing it.
func (RuntimeMemoryLimiter) MemoryLimit() int64 {
	return debug.SetMemoryLimit(-1)
}

// SetMemoryLimit installs a new runtime limit.
func (RuntimeMemoryLimiter) SetMemoryLimit(limit int64) error {
	if limit < 0 {
		return errors.Errorf("negative memory limit %d", limit)
	}
	debug.SetMemoryLimit(limit)
	return nil
}

// bufferBytes is the size of an NRGBA buffer of the given dimensions,
// saturating instead of overflowing.
func bufferBytes(width, height int) int64 {
	w, h := int64(width), int64(height)
	if w > 0 && h > math.MaxInt64/bytesPerPixel/w {
		return math.MaxInt64
	}
	return w * h * bytesPerPixel
}

// ensureWorkingMemory raises the budget to the floor when it is lower and
// then checks that a width x height buffer fits. A failed raise is only
// logged; the size check is the real gate.
func (p *Processor) ensureWorkingMemory(width, height int) error {
	limit := p.limiter.MemoryLimit()
	if limit < p.floor {
		if err := p.limiter.SetMemoryLimit(p.floor); err != nil {
			p.debugf("raise memory limit to %d bytes: %v", p.floor, err)
		} else {
			limit = p.limiter.MemoryLimit()
		}
	}

	need := bufferBytes(width, height)
	if need > limit {
		return newError(KindOutOfMemory, "scale",
			errors.Errorf("%dx%d buffer needs %d bytes, limit is %d", width, height, need, limit))
	}
	return nil
}
