package rawhdr

import(
	"fmt"
	"log"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Verbosity           int       `yaml:"verbosity"`
	Workers             int       `yaml:"workers"`   // <= 0 means GOMAXPROCS

	ExposureValues    []float64   `yaml:"exposure_values,omitempty"` // Overrides EXIF, parallel to Bracket.Captures
	Baseline            string    `yaml:"baseline"`  // Which capture EXIF EVs are relative to: median, first

	BlackLevel          int       `yaml:"black_level"` // Overrides the first capture's, if >= 0
	WhiteLevel          int       `yaml:"white_level"` // Overrides the first capture's, if > 0

	Policy              string    `yaml:"policy"`    // What to do with pixels clipped everywhere: darkest, error

	OutputFilename      string    `yaml:"output"`    // EXR; the main output
	HDRFilename         string    `yaml:"hdr,omitempty"`
	PreviewFilename     string    `yaml:"preview,omitempty"`
	MosaicFilename      string    `yaml:"mosaic,omitempty"` // Linear gray PNG of the full mosaic, for checking the blend
	Tonemapper          string    `yaml:"tonemapper"`
}

func newConfigFromYaml(b []byte) (Config, error) {
	c := NewConfig()
	err := yaml.Unmarshal(b, &c)
	return c, err
}

func (c Config)AsYaml() string {
	b, err := yaml.Marshal(c)
	if err != nil {
		log.Fatalf("Can't marshal config yaml: %v\n", err)
	}
	return string(b)
}

func NewConfig() Config {
	return Config{
		Baseline:       BaselineMedian,
		BlackLevel:     -1,
		Policy:         PolicyDarkest.String(),
		OutputFilename: "out.exr",
		Tonemapper:     "reinhard05",
	}
}

func (c Config)GetPolicy() (ExclusionPolicy, error) {
	return ParseExclusionPolicy(c.Policy)
}

func (c Config)GetOptions() (Options, error) {
	p, err := c.GetPolicy()
	if err != nil {
		return Options{}, err
	}
	return Options{Workers: c.Workers, Policy: p}, nil
}

// applyLevelOverrides puts any configured levels onto the capture.
func (c Config)applyLevelOverrides(rc *RawCapture) error {
	if c.BlackLevel > 0xFFFF {
		return fmt.Errorf("black level %d doesn't fit in 16 bits", c.BlackLevel)
	}
	if c.BlackLevel >= 0 {
		rc.BlackLevel = uint16(c.BlackLevel)
	}
	if c.WhiteLevel > 0 {
		rc.WhiteLevel = uint32(c.WhiteLevel)
	}
	return nil
}
