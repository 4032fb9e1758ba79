package rawhdr

import (
	"math"
	"testing"
)

func es(iso, apX10 int, num, denom int64) ExposureSettings {
	return ExposureSettings{ISO: iso, ApertureX10: apX10, ShutterSpeed: rat64{num, denom}}
}

func TestExposureSettingsValidate(t *testing.T) {
	tests := []struct {
		es      ExposureSettings
		wantErr bool
	}{
		{es(100, 56, 1, 2000), false},
		{es(6400, 10, 30, 1), false},
		{es(0, 56, 1, 2000), true},
		{es(100, 0, 1, 2000), true},
		{es(100, 56, 1, 0), true},
		{es(100, 5, 1, 2000), true},   // f/0.5
		{es(100, 56, 1, 16000), true},
		{es(100, 56, 120, 1), true},
	}

	for _, test := range tests {
		if err := test.es.Validate(); (err != nil) != test.wantErr {
			t.Errorf("(%s).Validate() = %v, wantErr %v", test.es, err, test.wantErr)
		}
	}
}

func TestExposureSettingsString(t *testing.T) {
	if got, want := es(800, 56, 1, 2000).String(), "f/5.6, 1/2000, ISO800"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got, want := es(100, 80, 2, 1).String(), "f/8.0, 2, ISO100"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestRelativeExposureValues(t *testing.T) {
	settings := []ExposureSettings{
		es(100, 56, 1, 2000),
		es(100, 56, 1,  500),
		es(200, 56, 1,  250),  // shutter and ISO both double
		es(100, 28, 1, 2000),  // two stops wider
	}

	tests := []struct {
		baseline string
		want     []float64
	}{
		{BaselineFirst,  []float64{0, 2, 4, 2}},
		{BaselineMedian, []float64{-2, 0, 2, 0}},
		{"",             []float64{-2, 0, 2, 0}},
	}

	for _, test := range tests {
		got, err := RelativeExposureValues(settings, test.baseline)
		if err != nil {
			t.Fatal(err)
		}
		for i := range test.want {
			if math.Abs(got[i]-test.want[i]) > 1e-9 {
				t.Errorf("baseline %q: ev[%d] = %v, want %v", test.baseline, i, got[i], test.want[i])
			}
		}
	}

	if _, err := RelativeExposureValues(settings, "brightest"); err == nil {
		t.Errorf("unknown baseline: expected an error")
	}
	if _, err := RelativeExposureValues([]ExposureSettings{{}}, BaselineFirst); err == nil {
		t.Errorf("empty settings: expected an error")
	}
}
