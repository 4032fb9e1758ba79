package rawhdr

import (
	"fmt"
	"math"
	"sort"
)

type rat64 [2]int64

// ExposureSettings is how a capture was exposed, as read from its EXIF.
// The only thing we need from it downstream is the exposure offset
// between captures, in stops.
type ExposureSettings struct {
	ISO          int    // 100, 800, etc.
	ApertureX10  int    // f/5.6 is the integer 56.
	ShutterSpeed rat64  // 1/500, 1/1000, etc.
}

func (es ExposureSettings)IsZero() bool { return es == ExposureSettings{} }

func (es ExposureSettings)String() string {
	if es.IsZero() {
		return "no exposure info"
	}
	s := fmt.Sprintf("f/%.1f", float32(es.ApertureX10)/10.0)
	if es.ShutterSpeed[1] != 1 {
		s += fmt.Sprintf(", %d/%d", es.ShutterSpeed[0], es.ShutterSpeed[1])
	} else {
		s += fmt.Sprintf(", %d", es.ShutterSpeed[0])
	}
	return s + fmt.Sprintf(", ISO%d", es.ISO)
}

func (es ExposureSettings)seconds() float64 {
	if es.ShutterSpeed[1] == 0 {
		return 0
	}
	return float64(es.ShutterSpeed[0]) / float64(es.ShutterSpeed[1])
}

func (es ExposureSettings)fNumber() float64 { return float64(es.ApertureX10) / 10.0 }

func (es ExposureSettings)Validate() error {
	switch {
	case es.ISO <= 0:
		return fmt.Errorf("(%s) has no ISO", es)
	case es.ApertureX10 <= 0:
		return fmt.Errorf("(%s) has no aperture", es)
	case es.ShutterSpeed[0] <= 0 || es.ShutterSpeed[1] <= 0:
		return fmt.Errorf("(%s) has no shutter speed", es)
	}

	// Anything outside f/1 - f/32 or 1/8000s - 64s is probably a garbled tag
	if es.ApertureX10 < 10 || es.ApertureX10 > 320 {
		return fmt.Errorf("exposure info looks suspicious, aperture: %v", es)
	}
	if s := es.seconds(); s < 1.0/8000 || s > 64 {
		return fmt.Errorf("exposure info looks suspicious, shutter: %v", es)
	}

	return nil
}

// Stops is how much light the capture gathered, in stops, on an
// arbitrary scale: each doubling of the exposure time or the ISO, or
// each halving of the aperture area, adds one. Only differences between
// two of these mean anything.
func (es ExposureSettings)Stops() float64 {
	n := es.fNumber()
	return math.Log2(es.seconds() * float64(es.ISO) / (n * n))
}

// Which capture the relative exposure values are measured from.
const(
	BaselineMedian = "median"
	BaselineFirst  = "first"
)

// RelativeExposureValues turns a set of absolute exposures into the
// per-capture offsets BlendCaptures wants, such that the baseline
// capture gets 0, a capture that gathered twice the light gets +1, etc.
//
// The median baseline picks the middle capture of the sorted set (the
// lower of the two middles, for an even count).
func RelativeExposureValues(settings []ExposureSettings, baseline string) ([]float64, error) {
	if len(settings) == 0 {
		return nil, nil
	}

	stops := make([]float64, len(settings))
	for i, es := range settings {
		if err := es.Validate(); err != nil {
			return nil, fmt.Errorf("capture %d: %v", i, err)
		}
		stops[i] = es.Stops()
	}

	var base float64
	switch baseline {
	case BaselineFirst:
		base = stops[0]
	case BaselineMedian, "":
		sorted := append([]float64{}, stops...)
		sort.Float64s(sorted)
		base = sorted[(len(sorted)-1)/2]
	default:
		return nil, fmt.Errorf("no baseline named '%s'", baseline)
	}

	evs := make([]float64, len(stops))
	for i := range stops {
		evs[i] = stops[i] - base
	}
	return evs, nil
}
