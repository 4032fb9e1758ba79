package rawhdr

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
	"golang.org/x/image/tiff"
)

// LoadFilesAndDirs loads every TIFF (as a capture) and YAML (as the
// base config) it finds in the args, recursing into dirs. Other files
// are skipped.
func (b *Bracket)LoadFilesAndDirs(args ...string) (error) {
	for _, arg := range args {
		item, err := os.Stat(arg)

		switch {

		case err != nil:
			return fmt.Errorf("load %s: %w", arg, err)

		case item.IsDir():
			contents, err := os.ReadDir(arg)
			if err != nil {
				return fmt.Errorf("readdir %s: %w", arg, err)
			}
			for _, content := range contents {
				if err := b.LoadFilesAndDirs(filepath.Join(arg, content.Name())); err != nil {
					return err
				}
			}

		default:
			if err := b.loadFile(arg); err != nil {
				return fmt.Errorf("loadfile %s: %w", arg, err)
			}
		}
	}

	return nil
}

func (b *Bracket)loadFile(filename string) error {
	switch strings.ToLower(filepath.Ext(filename)) {

	case ".tif", ".tiff":
		c, err := LoadRawCapture(filename)
		if err != nil {
			return err
		}
		b.AddCapture(c)
		if b.Config.Verbosity > 0 {
			log.Printf("Loaded %s\n", c)
		}

	case ".yaml", ".yml":
		cfg, err := loadConfig(filename)
		if err != nil {
			return fmt.Errorf("Loading %s as config YAML failed: %w", filename, err)
		}
		b.Config = cfg
		log.Printf("Loaded base configuration from %s\n", filename)
	}

	return nil
}

func loadConfig(filename string) (Config, error) {
	contents, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("config read %s: %w", filename, err)
	}

	return newConfigFromYaml(contents)
}

// LoadRawCapture decodes a single-channel TIFF holding an undemosaiced
// sensor dump. If the file carries EXIF exposure tags they are read
// too; if it doesn't, ExposureSettings is left zero and the caller has
// to supply the exposure values some other way.
func LoadRawCapture(filename string) (RawCapture, error) {
	f, err := os.Open(filename)
	if err != nil {
		return RawCapture{}, fmt.Errorf("open+r img '%s': %w", filename, err)
	}
	defer f.Close()

	img, err := tiff.Decode(f)
	if err != nil {
		return RawCapture{}, fmt.Errorf("tiff loading '%s': %w", filename, err)
	}

	c, err := NewRawCaptureFromImage(img)
	if err != nil {
		var layoutErr *UnsupportedSampleLayoutError
		if errors.As(err, &layoutErr) {
			layoutErr.Filename = filename
		}
		return RawCapture{}, err
	}
	c.LoadFilename = filename

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return RawCapture{}, fmt.Errorf("seek '%s': %w", filename, err)
	}
	if es, err := readExposureSettings(f); err == nil {
		c.ExposureSettings = es
	}

	return c, nil
}

func readExposureSettings(r io.Reader) (ExposureSettings, error) {
	es := ExposureSettings{}

	ex, err := exif.Decode(r)
	if err != nil {
		return es, fmt.Errorf("exif parsing: %v", err)
	}

	if tag,err := ex.Get(exif.ISOSpeedRatings); err != nil {
		return es, fmt.Errorf("exif ISO: %v", err)
	} else if val,err := tag.Int64(0); err != nil {
		return es, fmt.Errorf("exif ISO: %v", err)
	} else {
		es.ISO = int(val)
	}

	if tag,err := ex.Get(exif.FNumber); err != nil {
		return es, fmt.Errorf("exif FNumber: %v", err)
	} else if num,denom,err := tag.Rat2(0); err != nil {
		return es, fmt.Errorf("exif FNumber: %v", err)
	} else if denom == 0 {
		return es, fmt.Errorf("exif FNumber has zero denominator")
	} else {
		es.ApertureX10 = int(num * 10 / denom)
	}

	if tag,err := ex.Get(exif.ExposureTime); err != nil {
		return es, fmt.Errorf("exif ExposureTime: %v", err)
	} else if num,denom,err := tag.Rat2(0); err != nil {
		return es, fmt.Errorf("exif ExposureTime: %v", err)
	} else {
		es.ShutterSpeed = rat64{num, denom}
	}

	// Exposure compensation is ignored; it is informational. The
	// fstop/speed/ISO triple fully defines how much light hit the sensor.

	return es, es.Validate()
}
