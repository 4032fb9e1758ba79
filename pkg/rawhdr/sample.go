package rawhdr

import (
	"cmp"
	"fmt"
	"slices"
)

// A Sample is one capture's observation of one photosite, rescaled to
// the reference exposure. Weight 0 means the observation is excluded.
type Sample struct {
	Value  float32
	Weight float32
}

// WeightedMean returns sum(v*w)/sum(w). The bool is false if every
// sample had zero weight, in which case there is no mean to return.
//
// The samples are reordered in place, so that the sums are always
// accumulated in the same order regardless of how the captures were
// ordered; float addition isn't associative, and we want permuted
// inputs to give bit-identical outputs.
func WeightedMean(samples []Sample) (float64, bool) {
	slices.SortFunc(samples, compareSamples)

	sum, totalWeight := 0.0, 0.0
	nUsed, last := 0, Sample{}
	for _, s := range samples {
		if s.Weight == 0 {
			continue
		}
		sum         += float64(s.Value) * float64(s.Weight)
		totalWeight += float64(s.Weight)
		nUsed++
		last = s
	}

	switch nUsed {
	case 0:
		return 0, false
	case 1:
		return float64(last.Value), true // v*w/w can be off by an ulp
	}
	return sum / totalWeight, true
}

func compareSamples(a, b Sample) int {
	if c := cmp.Compare(a.Weight, b.Weight); c != 0 {
		return c
	}
	return cmp.Compare(a.Value, b.Value)
}

// An ExclusionPolicy decides what a pixel becomes when it clipped in
// every single capture, leaving WeightedMean with nothing to average.
type ExclusionPolicy int

const(
	// PolicyDarkest uses the observation from the capture with the
	// smallest exposure factor; it is the least clipped reading we have.
	PolicyDarkest ExclusionPolicy = iota

	// PolicyError fails the whole blend.
	PolicyError
)

func ParseExclusionPolicy(s string) (ExclusionPolicy, error) {
	switch s {
	case "", "darkest": return PolicyDarkest, nil
	case "error":       return PolicyError, nil
	default:
		return PolicyDarkest, fmt.Errorf("no exclusion policy named '%s'", s)
	}
}

func (p ExclusionPolicy)String() string {
	switch p {
	case PolicyDarkest: return "darkest"
	case PolicyError:   return "error"
	}
	return fmt.Sprintf("ExclusionPolicy(%d)", int(p))
}

// darkestValue picks the fallback for PolicyDarkest. factors[i] is the
// exposure factor of the capture that produced samples[i]; samples must
// not have been reordered yet. Ties go to the smaller value, so the
// result doesn't depend on capture order.
func darkestValue(samples []Sample, factors []float64) float32 {
	best := 0
	for i := 1; i < len(samples); i++ {
		if factors[i] < factors[best] || (factors[i] == factors[best] && samples[i].Value < samples[best].Value) {
			best = i
		}
	}
	return samples[best].Value
}
