package rawhdr

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Options tune BlendCaptures. The zero value is usable.
type Options struct {
	Workers   int              // Size of the worker pool; <= 0 means GOMAXPROCS
	ChunkSize int              // Pixels per blend task; <= 0 picks one from the image size
	Policy    ExclusionPolicy  // What to do with pixels that clipped everywhere
}

func (o Options)workers() int {
	if o.Workers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return o.Workers
}

func (o Options)chunkSize(nPixels, workers int) int {
	if o.ChunkSize > 0 {
		return o.ChunkSize
	}
	// A few chunks per worker, so a slow chunk doesn't hold up the rest
	n := nPixels / (workers * 4)
	if n < 4096 {
		n = 4096
	}
	return n
}

// BlendCaptures fuses the captures into one image. evs[i] is the
// exposure offset of captures[i], in stops, relative to whichever
// exposure the output should be expressed in. The black and white
// levels of captures[0] are used for every capture.
//
// It runs in two phases on a pool of workers: first each capture is
// normalized into its own buffer, then (once they are all done) each
// chunk of output pixels is blended from those buffers. Nothing is
// shared for writing, so nothing is locked.
func BlendCaptures(captures []RawCapture, evs []float64, opts Options) (*BlendedImage, error) {
	if err := validateCaptures(captures, evs); err != nil {
		return nil, err
	}

	ref     := captures[0]
	nPixels := len(ref.Pixels)
	workers := opts.workers()

	factors := make([]float64, len(evs))
	for i, ev := range evs {
		factors[i] = ExposureFactor(ev)
	}

	// Phase 1: per capture
	normalized := make([][]Sample, len(captures))
	g := errgroup.Group{}
	g.SetLimit(workers)
	for i := range captures {
		g.Go(func() error {
			normalized[i] = Normalize(captures[i], ref.BlackLevel, ref.WhiteLevel, evs[i])
			return nil
		})
	}
	g.Wait() // the barrier; phase 1 tasks can't fail

	// Phase 2: per chunk of pixels
	out := NewBlendedImage(ref.Width, ref.Height())
	out.BlackLevel, out.WhiteLevel = ref.BlackLevel, ref.WhiteLevel
	chunk := opts.chunkSize(nPixels, workers)

	g2, ctx := errgroup.WithContext(context.Background())
	g2.SetLimit(workers)
	for start := 0; start < nPixels; start += chunk {
		start, end := start, min(start+chunk, nPixels)
		g2.Go(func() error {
			return blendRange(ctx, out.Pix[start:end], start, normalized, factors, opts.Policy)
		})
	}
	if err := g2.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// blendRange fills dst, which holds the output pixels starting at `first`.
func blendRange(ctx context.Context, dst []float32, first int, normalized [][]Sample, factors []float64, policy ExclusionPolicy) error {
	scratch := make([]Sample, len(normalized))

	for k := range dst {
		if ctx.Err() != nil {
			return nil // some other chunk failed, and its error is the one reported
		}

		i := first + k
		for c := range normalized {
			scratch[c] = normalized[c][i]
		}

		v, ok := WeightedMean(scratch)
		switch {
		case ok:
			dst[k] = float32(v)
		case policy == PolicyError:
			return &AllSamplesExcludedError{Pixel: i}
		default:
			// WeightedMean shuffled scratch; refill it so it lines up with factors again
			for c := range normalized {
				scratch[c] = normalized[c][i]
			}
			dst[k] = darkestValue(scratch, factors)
		}
	}

	return nil
}

// MaxExposureValue bounds the exposure offset of any capture, in stops.
const MaxExposureValue = 64

func validateCaptures(captures []RawCapture, evs []float64) error {
	if len(captures) == 0 {
		return &ShapeMismatchError{Capture: -1, Reason: "no captures"}
	}
	if len(evs) != len(captures) {
		return &ShapeMismatchError{Capture: -1,
			Reason: fmt.Sprintf("%d exposure values for %d captures", len(evs), len(captures))}
	}

	ref := captures[0]
	if ref.Width <= 0 || ref.Width%2 != 0 {
		return &ShapeMismatchError{Capture: 0, Reason: fmt.Sprintf("width %d is not a positive even number", ref.Width)}
	}
	if len(ref.Pixels)%ref.Width != 0 || ref.Height()%2 != 0 {
		return &ShapeMismatchError{Capture: 0,
			Reason: fmt.Sprintf("%d pixels don't make whole 2x2 blocks at width %d", len(ref.Pixels), ref.Width)}
	}

	for i, c := range captures {
		if c.Width != ref.Width || len(c.Pixels) != len(ref.Pixels) {
			return &ShapeMismatchError{Capture: i,
				Reason: fmt.Sprintf("%dx%d, but capture 0 is %dx%d", c.Width, c.Height(), ref.Width, ref.Height())}
		}
		// Samples are float32; beyond this a 16 bit value or its weight overflows
		if !(math.Abs(evs[i]) <= MaxExposureValue) {
			return &ShapeMismatchError{Capture: i, Reason: fmt.Sprintf("exposure value %v is out of range", evs[i])}
		}
	}

	return nil
}
