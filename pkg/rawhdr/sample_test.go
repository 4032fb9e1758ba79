package rawhdr

import (
	"math"
	"testing"
)

func TestWeightedMean(t *testing.T) {
	tests := []struct {
		name    string
		samples []Sample
		want    float64
		wantOK  bool
	}{
		{"single", []Sample{{Value: 123.5, Weight: 4}}, 123.5, true},
		{"equal weights", []Sample{{10, 1}, {20, 1}}, 15, true},
		{"weighted", []Sample{{2000, 0.25}, {500, 1}}, 800, true},
		{"excluded ignored", []Sample{{10, 1}, {99999, 0}, {20, 1}}, 15, true},
		{"one left", []Sample{{0.1, 0}, {0.3, 0.7}}, float64(float32(0.3)), true},
		{"all excluded", []Sample{{10, 0}, {20, 0}}, 0, false},
		{"empty", nil, 0, false},
	}

	for _, test := range tests {
		got, ok := WeightedMean(test.samples)
		if ok != test.wantOK {
			t.Errorf("%s: ok = %v, want %v", test.name, ok, test.wantOK)
			continue
		}
		if ok && got != test.want {
			t.Errorf("%s: WeightedMean = %v, want %v", test.name, got, test.want)
		}
	}
}

func TestWeightedMeanOrderIndependent(t *testing.T) {
	a := []Sample{{0.1, 0.3}, {0.7, 1.1}, {123.456, 4}, {1e-3, 0.5}, {42, 0}}
	b := []Sample{a[3], a[4], a[2], a[0], a[1]}

	va, _ := WeightedMean(a)
	vb, _ := WeightedMean(b)
	if math.Float64bits(va) != math.Float64bits(vb) {
		t.Errorf("permuted samples gave %v and %v", va, vb)
	}
}

func TestParseExclusionPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    ExclusionPolicy
		wantErr bool
	}{
		{"", PolicyDarkest, false},
		{"darkest", PolicyDarkest, false},
		{"error", PolicyError, false},
		{"nan", PolicyDarkest, true},
	}

	for _, test := range tests {
		got, err := ParseExclusionPolicy(test.in)
		if (err != nil) != test.wantErr {
			t.Errorf("ParseExclusionPolicy(%q) err = %v, wantErr %v", test.in, err, test.wantErr)
		}
		if got != test.want {
			t.Errorf("ParseExclusionPolicy(%q) = %v, want %v", test.in, got, test.want)
		}
	}

	for _, p := range []ExclusionPolicy{PolicyDarkest, PolicyError} {
		if got, _ := ParseExclusionPolicy(p.String()); got != p {
			t.Errorf("ParseExclusionPolicy(%q) = %v, want %v", p.String(), got, p)
		}
	}
}

func TestDarkestValue(t *testing.T) {
	samples := []Sample{{300, 0}, {100, 0}, {200, 0}}

	if got := darkestValue(samples, []float64{4, 0.25, 1}); got != 100 {
		t.Errorf("darkestValue = %v, want 100", got)
	}
	if got := darkestValue(samples, []float64{1, 1, 1}); got != 100 {
		t.Errorf("darkestValue with tied factors = %v, want 100", got)
	}
}
