package dataset

import (
	"errors"
	"fmt"

	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/frame"
	"github.com/suyashkumar/dicom/pkg/tag"
	"gonum.org/v1/gonum/stat"
)

// ErrNoPixelData reports a record that carries no image payload, e.g. a
// metadata-only export. Callers record an absent value for it instead of
// failing the batch.
var ErrNoPixelData = errors.New("record has no pixel data")

// MeanIntensity computes the arithmetic mean over every sample of every
// native frame of the record's pixel payload. Samples keep the payload's
// native range, promoted to float64: no windowing, clipping or
// normalization.
func (r *Record) MeanIntensity() (float64, error) {
	elem, err := r.ds.FindElementByTag(tag.PixelData)
	if err != nil || elem == nil {
		return 0, ErrNoPixelData
	}

	info, ok := elem.Value.GetValue().(dicom.PixelDataInfo)
	if !ok {
		return 0, fmt.Errorf("unexpected pixel data value type %T", elem.Value.GetValue())
	}
	if len(info.Frames) == 0 {
		return 0, ErrNoPixelData
	}

	var samples []float64
	for i, fr := range info.Frames {
		if fr == nil || fr.Encapsulated || fr.NativeData == nil {
			return 0, fmt.Errorf("frame %d: only native pixel data is supported", i)
		}
		switch nf := fr.NativeData.(type) {
		case *frame.NativeFrame[uint8]:
			samples = appendSamples(samples, nf.RawData)
		case *frame.NativeFrame[uint16]:
			samples = appendSamples(samples, nf.RawData)
		case *frame.NativeFrame[uint32]:
			samples = appendSamples(samples, nf.RawData)
		default:
			return 0, fmt.Errorf("frame %d: unsupported native frame type %T", i, fr.NativeData)
		}
	}
	if len(samples) == 0 {
		return 0, ErrNoPixelData
	}

	return stat.Mean(samples, nil), nil
}

func appendSamples[T ~uint8 | ~uint16 | ~uint32](dst []float64, raw []T) []float64 {
	for _, v := range raw {
		dst = append(dst, float64(v))
	}
	return dst
}
