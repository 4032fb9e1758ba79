package rawhdr

import(
	"fmt"
	"math"
	"sort"

	"github.com/codahale/hdrhistogram"
	"github.com/skypies/util/histogram"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/abworrall/raw-hdr/pkg/emath"
)

// CaptureStats summarizes the raw values of one capture; mostly to
// see whether the bracket actually spans the scene's range.
type CaptureStats struct {
	P1, P50, P99    int64    // Raw value percentiles
	Max             int64
	ClippedBlocks   float64  // Fraction of 2x2 blocks at or above the white level
}

func (cs CaptureStats)String() string {
	return fmt.Sprintf("p1=%d p50=%d p99=%d max=%d clipped=%.2f%%", cs.P1, cs.P50, cs.P99, cs.Max, 100*cs.ClippedBlocks)
}

func NewCaptureStats(c RawCapture) (CaptureStats, error) {
	h := hdrhistogram.New(1, 0xFFFF, 3)
	for i, p := range c.Pixels {
		if err := h.RecordValue(int64(p)); err != nil {
			return CaptureStats{}, fmt.Errorf("capture stats '%s', pixel %d: %v", c.Filename(), i, err)
		}
	}

	clipped, n := 0, NumBlocks(len(c.Pixels))
	for i := 0; i < n; i++ {
		if IsSaturated(c.Pixels, BlockToIndices(c.Width, i), c.WhiteLevel) {
			clipped++
		}
	}

	cs := CaptureStats{
		P1:  h.ValueAtQuantile(1),
		P50: h.ValueAtQuantile(50),
		P99: h.ValueAtQuantile(99),
		Max: h.Max(),
	}
	if n > 0 {
		cs.ClippedBlocks = float64(clipped) / float64(n)
	}
	return cs, nil
}

// BlendedStats summarizes a blended image, in values relative to the
// reference white level (so 1.0 is where the reference capture clipped).
type BlendedStats struct {
	Min, Max, Mean, StdDev  float64
	DynamicRangeStops       float64           // log2(p99.9/p0.1), over the values above black
	Stops                   histogram.Histogram // Values by log2, in tenths of a stop below/above reference white
}

func (bs BlendedStats)String() string {
	return fmt.Sprintf("min=%.4f max=%.4f mean=%.4f sd=%.4f range=%.1f stops",
		bs.Min, bs.Max, bs.Mean, bs.StdDev, bs.DynamicRangeStops)
}

func NewBlendedStats(bi *BlendedImage) BlendedStats {
	bs := BlendedStats{
		Stops: histogram.Histogram{NumBuckets:200, ValMin:-160, ValMax:40},
	}
	if len(bi.Pix) == 0 {
		return bs
	}

	vals := make([]float64, len(bi.Pix))
	positive := []float64{}
	for i, v := range bi.Pix {
		vals[i] = bi.relative(v)
		if vals[i] > 0 {
			positive = append(positive, vals[i])
			bs.Stops.Add(histogram.ScalarVal(int(math.Round(10 * math.Log2(vals[i])))))
		}
	}

	bs.Min = floats.Min(vals)
	bs.Max = floats.Max(vals)
	bs.Mean, bs.StdDev = stat.MeanStdDev(vals, nil)

	if len(positive) > 1 {
		sort.Float64s(positive)
		lo := stat.Quantile(0.001, stat.Empirical, positive, nil)
		hi := stat.Quantile(0.999, stat.Empirical, positive, nil)
		bs.DynamicRangeStops = emath.Log2Stops(hi, lo)
	}

	return bs
}
