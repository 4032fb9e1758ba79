package rawhdr

import "math"

// ExposureFactor is how much more light a capture received than the
// reference, given its exposure offset in stops.
func ExposureFactor(ev float64) float64 {
	return math.Exp2(ev)
}

// Normalize rescales one capture into the exposure of the reference
// capture, returning a Sample per photosite.
//
// The black level is taken off (floored at zero), the remainder is
// divided by the exposure factor, and the black level is put back. Each
// sample is weighted by the exposure factor, since more light means
// less noise; but if any photosite in a 2x2 block clipped, the whole
// block gets weight 0, as the CFA channels of a cell clip together.
func Normalize(c RawCapture, blackLevel uint16, whiteLevel uint32, ev float64) []Sample {
	factor := ExposureFactor(ev)
	bl     := float64(blackLevel)
	out    := make([]Sample, len(c.Pixels))

	for i := 0; i < NumBlocks(len(c.Pixels)); i++ {
		block := BlockToIndices(c.Width, i)

		weight := float32(factor)
		if IsSaturated(c.Pixels, block, whiteLevel) {
			weight = 0
		}

		for _, j := range block {
			v := float64(satSub(c.Pixels[j], blackLevel)) / factor + bl
			out[j] = Sample{Value: float32(v), Weight: weight}
		}
	}

	return out
}
