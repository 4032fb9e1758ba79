package emath

import "math"

// Some functions that only operate on basic types, that are useful

// https://www.sjbrown.co.uk/posts/gamma-correct-rendering/ - "linear RGB to sRGB"
// `f` is assumed to be in the range [0,1]
func GammaExpand_F64(f float64) float64 {
	if f <= 0.0031308 {
		return 12.92 * f
	}
	return 1.055 * math.Pow(f, 1.0/2.4) - 0.055
}

// Log2Stops is how many stops `v` sits above `ref`; non-positive
// values have no meaningful answer and come back as -Inf.
func Log2Stops(v, ref float64) float64 {
	if v <= 0 || ref <= 0 {
		return math.Inf(-1)
	}
	return math.Log2(v / ref)
}
