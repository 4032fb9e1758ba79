package rawhdr

import (
	"fmt"
	"image"
	"path/filepath"
)

// A RawCapture is one decoded sensor readout: a CFA mosaic of
// unsigned photosite values, plus the levels needed to interpret them.
// Treat it as immutable once loaded.
type RawCapture struct {
	LoadFilename     string
	ExposureSettings                  // From EXIF, if the file had it

	Width            int              // Row stride, in photosites
	Pixels         []uint16           // Row-major, len == Width * Height
	BlackLevel       uint16           // Sensor value for "no light"
	WhiteLevel       uint32           // Photosites reading >= this have clipped
}

// NewRawCaptureFromImage copies a grayscale image into a RawCapture.
// Only unsigned integer gray layouts are accepted; anything else (RGB,
// paletted, float) means the file wasn't a raw mosaic dump.
func NewRawCaptureFromImage(img image.Image) (RawCapture, error) {
	b := img.Bounds()
	c := RawCapture{
		Width:      b.Dx(),
		Pixels:     make([]uint16, b.Dx() * b.Dy()),
		WhiteLevel: 0xFFFF,
	}

	switch src := img.(type) {
	case *image.Gray16:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c.Pixels[(y-b.Min.Y)*c.Width + (x-b.Min.X)] = src.Gray16At(x, y).Y
			}
		}

	case *image.Gray:
		c.WhiteLevel = 0xFF
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c.Pixels[(y-b.Min.Y)*c.Width + (x-b.Min.X)] = uint16(src.GrayAt(x, y).Y)
			}
		}

	default:
		return c, &UnsupportedSampleLayoutError{Layout: fmt.Sprintf("%T", img)}
	}

	return c, nil
}

func (c RawCapture)Height() int {
	if c.Width == 0 {
		return 0
	}
	return len(c.Pixels) / c.Width
}

func (c RawCapture)Filename() string {
	return filepath.Base(c.LoadFilename)
}

func (c RawCapture)String() string {
	return fmt.Sprintf("%s: %dx%d, black %d, white %d, %s",
		c.Filename(), c.Width, c.Height(), c.BlackLevel, c.WhiteLevel, c.ExposureSettings)
}
