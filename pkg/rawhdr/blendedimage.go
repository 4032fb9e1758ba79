package rawhdr

import (
	"fmt"
	"image"
	"image/color"

	"github.com/mdouchement/hdr/hdrcolor"

	"github.com/abworrall/raw-hdr/pkg/emath"
)

// BlendedImage is the fused output: still a CFA mosaic, one float per
// photosite, in the sensor units of the reference capture. It
// implements image.Image and hdr.Image (as a gray image, relative to
// the reference white level) so the hdr codecs and tonemappers can
// consume it.
type BlendedImage struct {
	Width        int
	Pix        []float32

	BlackLevel   uint16  // Copied from the reference capture
	WhiteLevel   uint32
}

func NewBlendedImage(width, height int) *BlendedImage {
	return &BlendedImage{
		Width: width,
		Pix:   make([]float32, width * height),
	}
}

func (bi *BlendedImage)Height() int {
	if bi.Width == 0 {
		return 0
	}
	return len(bi.Pix) / bi.Width
}

// Implement image.Image
func (bi *BlendedImage)ColorModel() color.Model { return hdrcolor.RGBModel }
func (bi *BlendedImage)Bounds() image.Rectangle { return image.Rect(0, 0, bi.Width, bi.Height()) }
func (bi *BlendedImage)At(x, y int) color.Color { return bi.HDRAt(x, y) }

// Implement hdr.Image
func (bi *BlendedImage)HDRAt(x, y int) hdrcolor.Color {
	v := bi.Relative(x, y)
	return hdrcolor.RGB{R: v, G: v, B: v}
}
func (bi *BlendedImage)Size() int { return len(bi.Pix) }

// Value is the raw blended value at a photosite.
func (bi *BlendedImage)Value(x, y int) float32 { return bi.Pix[y*bi.Width + x] }

// Relative maps the value at a photosite so that the black level is
// 0.0 and the reference white level is 1.0. HDR content goes above 1.
func (bi *BlendedImage)Relative(x, y int) float64 {
	return bi.relative(bi.Value(x, y))
}

func (bi *BlendedImage)relative(v float32) float64 {
	bl, wl := float64(bi.BlackLevel), float64(bi.WhiteLevel)
	if wl <= bl {
		return float64(v)
	}
	return (float64(v) - bl) / (wl - bl)
}

// FloatGrid copies the relative values into a grid.
func (bi *BlendedImage)FloatGrid() emath.FloatGrid {
	fg := emath.NewFloatGrid(bi.Width, bi.Height())
	for y := 0; y < bi.Height(); y++ {
		for x := 0; x < bi.Width; x++ {
			fg.Set(x, y, bi.Relative(x, y))
		}
	}
	return fg
}

func (bi *BlendedImage)String() string {
	return fmt.Sprintf("BlendedImage[%dx%d, black %d, white %d]", bi.Width, bi.Height(), bi.BlackLevel, bi.WhiteLevel)
}
