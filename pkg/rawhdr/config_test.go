package rawhdr

import "testing"

func TestNewConfigFromYaml(t *testing.T) {
	c, err := newConfigFromYaml([]byte("verbosity: 2\nexposure_values: [-2, 0, 2]\nwhite_level: 4000\n"))
	if err != nil {
		t.Fatal(err)
	}

	if c.Verbosity != 2 || c.WhiteLevel != 4000 || len(c.ExposureValues) != 3 || c.ExposureValues[0] != -2 {
		t.Errorf("fields not read: %+v", c)
	}
	// Untouched fields keep their defaults
	if c.BlackLevel != -1 || c.Baseline != BaselineMedian || c.OutputFilename != "out.exr" || c.Policy != "darkest" {
		t.Errorf("defaults lost: %+v", c)
	}
}

func TestConfigAsYamlRoundTrip(t *testing.T) {
	c1 := NewConfig()
	c1.ExposureValues = []float64{-1, 0.5}
	c1.Policy = "error"
	c1.PreviewFilename = "p.png"

	c2, err := newConfigFromYaml([]byte(c1.AsYaml()))
	if err != nil {
		t.Fatal(err)
	}
	if c2.AsYaml() != c1.AsYaml() {
		t.Errorf("round trip changed the config:\n%s\nvs\n%s", c1.AsYaml(), c2.AsYaml())
	}
}

func TestConfigGetOptions(t *testing.T) {
	c := NewConfig()
	c.Workers = 3
	c.Policy = "error"

	opts, err := c.GetOptions()
	if err != nil {
		t.Fatal(err)
	}
	if opts.Workers != 3 || opts.Policy != PolicyError {
		t.Errorf("GetOptions() = %+v", opts)
	}

	c.Policy = "average"
	if _, err := c.GetOptions(); err == nil {
		t.Errorf("bad policy: expected an error")
	}
}

func TestConfigApplyLevelOverrides(t *testing.T) {
	rc := RawCapture{BlackLevel: 10, WhiteLevel: 1000}

	c := NewConfig()
	if err := c.applyLevelOverrides(&rc); err != nil {
		t.Fatal(err)
	}
	if rc.BlackLevel != 10 || rc.WhiteLevel != 1000 {
		t.Errorf("defaults changed the levels: %d/%d", rc.BlackLevel, rc.WhiteLevel)
	}

	c.BlackLevel, c.WhiteLevel = 0, 4095
	if err := c.applyLevelOverrides(&rc); err != nil {
		t.Fatal(err)
	}
	if rc.BlackLevel != 0 || rc.WhiteLevel != 4095 {
		t.Errorf("levels %d/%d, want 0/4095", rc.BlackLevel, rc.WhiteLevel)
	}

	c.BlackLevel = 70000
	if err := c.applyLevelOverrides(&rc); err == nil {
		t.Errorf("black level 70000: expected an error")
	}
}
