package rawhdr

import(
	"fmt"
	"log"
	"sort"
)

// A Bracket holds a set of captures of the same scene, and the config
// for blending them.
type Bracket struct {
	Captures     []RawCapture  // Ordered, ascending exposure (if known)
	Config

	EVs          []float64     // Filled in by AssignExposureValues, parallel to Captures
}

func NewBracket() Bracket {
	return Bracket{
		Captures: []RawCapture{},
		Config:   NewConfig(),
	}
}

func (b Bracket)String() string {
	str := fmt.Sprintf("Bracket, %d captures [\n", len(b.Captures))
	for i, c := range b.Captures {
		if i < len(b.EVs) {
			str += fmt.Sprintf("  %+5.2f EV  %s\n", b.EVs[i], c)
		} else {
			str += fmt.Sprintf("  %s\n", c)
		}
	}
	return str + "]\n"
}

// AddCapture keeps the captures sorted by how much light they gathered.
// Captures without exposure info keep their load order, after the rest.
func (b *Bracket)AddCapture(c RawCapture) {
	b.Captures = append(b.Captures, c)
	sort.SliceStable(b.Captures, func(i, j int) bool {
		ci, cj := b.Captures[i].ExposureSettings, b.Captures[j].ExposureSettings
		if ci.IsZero() || cj.IsZero() {
			return !ci.IsZero() && cj.IsZero()
		}
		return ci.Stops() < cj.Stops()
	})
}

// AssignExposureValues figures out the EV of each capture; from the
// config if it lists them, otherwise from the EXIF data.
func (b *Bracket)AssignExposureValues() error {
	if len(b.Config.ExposureValues) > 0 {
		if len(b.Config.ExposureValues) != len(b.Captures) {
			return &ShapeMismatchError{Capture: -1,
				Reason: fmt.Sprintf("%d exposure values configured for %d captures", len(b.Config.ExposureValues), len(b.Captures))}
		}
		b.EVs = append([]float64{}, b.Config.ExposureValues...)
		return nil
	}

	settings := make([]ExposureSettings, len(b.Captures))
	for i, c := range b.Captures {
		if c.ExposureSettings.IsZero() {
			return fmt.Errorf("'%s' has no exposure info; list exposure values in the config", c.Filename())
		}
		settings[i] = c.ExposureSettings
	}

	evs, err := RelativeExposureValues(settings, b.Config.Baseline)
	if err != nil {
		return err
	}
	b.EVs = evs
	return nil
}

// Blend runs the blend over the captures, and returns the result.
func (b *Bracket)Blend() (*BlendedImage, error) {
	if len(b.Captures) == 0 {
		return nil, &ShapeMismatchError{Capture: -1, Reason: "no captures loaded"}
	}
	if err := b.AssignExposureValues(); err != nil {
		return nil, err
	}

	opts, err := b.Config.GetOptions()
	if err != nil {
		return nil, err
	}

	// The first capture sets the levels; apply overrides to a copy
	captures := append([]RawCapture{}, b.Captures...)
	if err := b.Config.applyLevelOverrides(&captures[0]); err != nil {
		return nil, err
	}

	if hasContainerWhiteLevel(captures[0]) {
		log.Printf("Warning: white level %d is just the file's maximum; sensors with fewer bits never reach it, so clipping won't be found (set white_level)\n", captures[0].WhiteLevel)
	}

	if b.Config.Verbosity > 0 {
		for i, c := range captures {
			log.Printf("Adding image %d/%d: %s (%+.2f EV)\n", i+1, len(captures), c.Filename(), b.EVs[i])
		}
	}
	log.Printf("Blending %d captures, policy %s\n", len(captures), opts.Policy)

	out, err := BlendCaptures(captures, b.EVs, opts)
	if err != nil {
		return nil, fmt.Errorf("blend: %w", err)
	}

	if b.Config.Verbosity > 0 {
		log.Printf("Blended: %s\n", out)
	}
	return out, nil
}

// ReferenceExposure is the exposure of the capture the blended values
// are expressed in (the one with EV 0), if there is one and it had EXIF.
func (b *Bracket)ReferenceExposure() ExposureSettings {
	for i, ev := range b.EVs {
		if ev == 0 && i < len(b.Captures) {
			return b.Captures[i].ExposureSettings
		}
	}
	return ExposureSettings{}
}

// WriteOutputs writes each output the config names a file for.
func (b *Bracket)WriteOutputs(bi *BlendedImage) error {
	if b.Config.OutputFilename != "" {
		log.Printf("Writing %s\n", b.Config.OutputFilename)
		if err := WriteEXR(bi, b.Config.OutputFilename, b.ReferenceExposure()); err != nil {
			return err
		}
	}

	if b.Config.HDRFilename != "" {
		log.Printf("Writing %s\n", b.Config.HDRFilename)
		if err := WriteHDR(bi, b.Config.HDRFilename); err != nil {
			return err
		}
	}

	if b.Config.MosaicFilename != "" {
		log.Printf("Writing %s\n", b.Config.MosaicFilename)
		if err := WriteMosaicPNG(bi, b.Config.MosaicFilename); err != nil {
			return err
		}
	}

	if b.Config.PreviewFilename != "" {
		if err := WritePreviewPNG(bi, b.Config.PreviewFilename, b.Config.Tonemapper); err != nil {
			return err
		}
	}

	return nil
}

// LogStats logs a summary of each capture, and of the blended result.
func (b *Bracket)LogStats(bi *BlendedImage) {
	for _, c := range b.Captures {
		cs, err := NewCaptureStats(c)
		if err != nil {
			log.Printf("  %-24s %v\n", c.Filename(), err)
			continue
		}
		log.Printf("  %-24s %s\n", c.Filename(), cs)
	}
	if bi != nil {
		bs := NewBlendedStats(bi)
		log.Printf("  %-24s %s\n", "blended", bs)
		if b.Config.Verbosity > 1 {
			fg := bi.FloatGrid()
			log.Printf("Blended values %s, tenths of a stop from reference white:\n%v\n", fg.Stats(), bs.Stops)
		}
	}
}

// hasContainerWhiteLevel is true if the white level is still the one
// NewRawCaptureFromImage guessed from the sample width.
func hasContainerWhiteLevel(c RawCapture) bool {
	return c.WhiteLevel == 0xFFFF || c.WhiteLevel == 0xFF
}
