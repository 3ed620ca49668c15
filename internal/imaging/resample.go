package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/transform"
	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// Resampler produces a new buffer of exactly width x height from src. It
// must not modify src.
type Resampler interface {
	Resample(src *image.NRGBA, width, height int) *image.NRGBA
}

// Filter names a resampling kernel understood by both backends.
type Filter string

const (
	FilterLanczos    Filter = "lanczos"
	FilterCatmullRom Filter = "catmullrom"
	FilterMitchell   Filter = "mitchell"
	FilterLinear     Filter = "linear"
	FilterGaussian   Filter = "gaussian"
	FilterBox        Filter = "box"
	FilterNearest    Filter = "nearest"
)

// Backend names a Resampler implementation.
type Backend string

const (
	BackendImaging Backend = "imaging"
	BackendBild    Backend = "bild"
)

// NewResampler returns the resampler for backend using filter.
func NewResampler(backend Backend, filter Filter) (Resampler, error) {
	switch backend {
	case BackendImaging, "":
		f, ok := imagingFilters[filter]
		if !ok {
			return nil, newError(KindInvalidArgument, "resampler", errors.Errorf("unknown filter %q", filter))
		}
		return imagingResampler{filter: f}, nil
	case BackendBild:
		f, ok := bildFilters[filter]
		if !ok {
			return nil, newError(KindInvalidArgument, "resampler", errors.Errorf("unknown filter %q", filter))
		}
		return bildResampler{filter: f}, nil
	default:
		return nil, newError(KindInvalidArgument, "resampler", errors.Errorf("unknown backend %q", backend))
	}
}

var imagingFilters = map[Filter]imaging.ResampleFilter{
	FilterLanczos:    imaging.Lanczos,
	FilterCatmullRom: imaging.CatmullRom,
	FilterMitchell:   imaging.MitchellNetravali,
	FilterLinear:     imaging.Linear,
	FilterGaussian:   imaging.Gaussian,
	FilterBox:        imaging.Box,
	FilterNearest:    imaging.NearestNeighbor,
}

var bildFilters = map[Filter]transform.ResampleFilter{
	FilterLanczos:    transform.Lanczos,
	FilterCatmullRom: transform.CatmullRom,
	FilterMitchell:   transform.MitchellNetravali,
	FilterLinear:     transform.Linear,
	FilterGaussian:   transform.Gaussian,
	FilterBox:        transform.Box,
	FilterNearest:    transform.NearestNeighbor,
}

type imagingResampler struct {
	filter imaging.ResampleFilter
}

func (r imagingResampler) Resample(src *image.NRGBA, width, height int) *image.NRGBA {
	return imaging.Resize(src, width, height, r.filter)
}

type bildResampler struct {
	filter transform.ResampleFilter
}

// bild works in premultiplied RGBA; the result is converted back so every
// buffer stays NRGBA.
func (r bildResampler) Resample(src *image.NRGBA, width, height int) *image.NRGBA {
	return imaging.Clone(transform.Resize(src, width, height, r.filter))
}
