package imaging

import (
	"image/color"
	"io"
	"log"
)

// DefaultQuality is the JPEG quality used when the caller has no preference.
const DefaultQuality = 95

// Options configures a Processor. The zero value is usable: every unset
// field falls back to its default.
type Options struct {
	// MemoryFloor is the working-memory budget requested before a resample.
	// Zero means DefaultMemoryFloor.
	MemoryFloor int64

	// Limiter reads and raises the budget. Nil means RuntimeMemoryLimiter.
	Limiter MemoryLimiter

	// Resampler performs the pixel resize. Nil means imaging with Lanczos.
	Resampler Resampler

	// Quality is the JPEG quality Rotate writes with. Zero means DefaultQuality.
	Quality int

	// JPEGBackground, when set, is composited under images with transparency
	// before JPEG encoding. Nil leaves pixels as they are.
	JPEGBackground color.Color

	// Logger receives debug output. Nil discards it.
	Logger *log.Logger
}

// Processor creates image handles that share one configuration. It holds no
// per-image state and may be used from several goroutines; the handles it
// returns may not.
type Processor struct {
	floor      int64
	limiter    MemoryLimiter
	resampler  Resampler
	quality    int
	background color.Color
	logger     *log.Logger
}

// NewProcessor returns a Processor for opts.
func NewProcessor(opts Options) *Processor {
	p := &Processor{
		floor:      opts.MemoryFloor,
		limiter:    opts.Limiter,
		resampler:  opts.Resampler,
		quality:    opts.Quality,
		background: opts.JPEGBackground,
		logger:     opts.Logger,
	}
	if p.floor <= 0 {
		p.floor = DefaultMemoryFloor
	}
	if p.limiter == nil {
		p.limiter = RuntimeMemoryLimiter{}
	}
	if p.resampler == nil {
		p.resampler = imagingResampler{filter: imagingFilters[FilterLanczos]}
	}
	if p.quality <= 0 {
		p.quality = DefaultQuality
	}
	if p.logger == nil {
		p.logger = log.New(io.Discard, "", 0)
	}
	return p
}

// Quality returns the default JPEG quality of handles created by p.
func (p *Processor) Quality() int { return p.quality }

func (p *Processor) debugf(format string, args ...interface{}) {
	p.logger.Printf("imaging: "+format, args...)
}
