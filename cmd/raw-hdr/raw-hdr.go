package main

import(
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/maruel/interrupt"

	"github.com/abworrall/raw-hdr/pkg/rawhdr"
)

var(
	fVerbosity int
	fWorkers int
	fEVs string
	fBaseline string
	fBlackLevel int
	fWhiteLevel int
	fPolicy string
	fOutput string
	fHDR string
	fPreview string
	fMosaic string
	fTonemapper string
)

func init() {
	flag.IntVar(&fVerbosity, "v", 0, "how verbose to get")
	flag.IntVar(&fWorkers, "workers", 0, "how many goroutines to blend with (0 means one per CPU)")
	flag.StringVar(&fEVs, "evs", "", "comma separated exposure values, one per capture in bracket order: ascending exposure if the files have EXIF, else load order (e.g. -2,0,2); default is to read EXIF")
	flag.StringVar(&fBaseline, "baseline", rawhdr.BaselineMedian, "which capture EXIF exposure values are relative to: median, first")
	flag.IntVar(&fBlackLevel, "black", -1, "override the black level of the first capture")
	flag.IntVar(&fWhiteLevel, "white", 0, "override the white level of the first capture; 16 bit TIFFs default to 65535, which a 12 or 14 bit sensor never reaches")
	flag.StringVar(&fPolicy, "policy", rawhdr.PolicyDarkest.String(), "what to do with pixels clipped in every capture: darkest, error")
	flag.StringVar(&fOutput, "o", "out.exr", "filename for the blended EXR")
	flag.StringVar(&fHDR, "hdr", "", "if set, also write a Radiance .hdr file here")
	flag.StringVar(&fPreview, "png", "", "if set, also write a tonemapped preview PNG here")
	flag.StringVar(&fMosaic, "mosaic", "", "if set, also write the blended mosaic as a linear gray PNG here")
	flag.StringVar(&fTonemapper, "tonemapper", "reinhard05", "how to tonemap the preview: all, or one of "+rawhdr.ListTonemappers())
	flag.Parse()

	log.Printf("raw-hdr starting\n")
}

func parseEVs(s string) ([]float64, error) {
	evs := []float64{}
	for _, str := range strings.Split(s, ",") {
		ev, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
		if err != nil {
			return nil, fmt.Errorf("bad exposure value '%s': %v", str, err)
		}
		evs = append(evs, ev)
	}
	return evs, nil
}

// applyFlags copies the flags that were set on the command line over
// the config, which may have come from a yaml file.
func applyFlags(cfg *rawhdr.Config) error {
	var err error
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "v":          cfg.Verbosity = fVerbosity
		case "workers":    cfg.Workers = fWorkers
		case "baseline":   cfg.Baseline = fBaseline
		case "black":      cfg.BlackLevel = fBlackLevel
		case "white":      cfg.WhiteLevel = fWhiteLevel
		case "policy":     cfg.Policy = fPolicy
		case "o":          cfg.OutputFilename = fOutput
		case "hdr":        cfg.HDRFilename = fHDR
		case "png":        cfg.PreviewFilename = fPreview
		case "mosaic":     cfg.MosaicFilename = fMosaic
		case "tonemapper": cfg.Tonemapper = fTonemapper
		case "evs":
			cfg.ExposureValues, err = parseEVs(fEVs)
		}
	})
	return err
}

func main() {
	interrupt.HandleCtrlC()

	b := rawhdr.NewBracket()
	b.Config.Verbosity = fVerbosity
	if err := b.LoadFilesAndDirs(flag.Args()...); err != nil {
		log.Fatal(err)
	}
	if err := applyFlags(&b.Config); err != nil {
		log.Fatal(err)
	}

	if b.Verbosity > 0 {
		log.Printf("Final configuration:-\n\n%s\n", b.Config.AsYaml())
	}

	if interrupt.IsSet() {
		log.Fatal("interrupted")
	}
	out, err := b.Blend()
	if err != nil {
		log.Fatal(err)
	}
	if b.Verbosity > 0 {
		log.Printf("%s", b)
		b.LogStats(out)
	}

	if interrupt.IsSet() {
		log.Fatal("interrupted")
	}
	if err := b.WriteOutputs(out); err != nil {
		log.Fatal(err)
	}
}
