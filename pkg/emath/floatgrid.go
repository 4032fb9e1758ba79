package emath

import(
	"fmt"
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/fogleman/gg"
)

// A FloatGrid is a row-major grid of floats, with some operations
type FloatGrid struct {
	stride int
	values []float64
}

func NewFloatGrid(w, h int) FloatGrid {
	return FloatGrid{
		stride: w,
		values: make([]float64, w*h),
	}
}

func (fg *FloatGrid)Set(x, y int, v float64) { fg.values[fg.stride*y + x] = v }
func (fg *FloatGrid)Get(x, y int) float64    { return fg.values[fg.stride*y + x] }
func (fg *FloatGrid)Dx() int                 { return fg.stride }
func (fg *FloatGrid)Values() []float64       { return fg.values }

func (fg *FloatGrid)Dy() int {
	if fg.stride == 0 {
		return 0
	}
	return len(fg.values) / fg.stride
}

// DownSample returns a grid that is 1/4 of the size, averaging each
// 2x2 block of the original. On a CFA mosaic this bins each cell into
// one gray value, which hides the mosaic pattern in previews.
func (g1 *FloatGrid)DownSample() FloatGrid {
	width := g1.Dx() / 2
	height := g1.Dy() / 2
	g2 := NewFloatGrid(width, height)

	for y:=0; y<height; y++ {
		for x:=0; x<width; x++ {
			p := g1.Get(2*x,   2*y)
			p += g1.Get(2*x+1, 2*y)
			p += g1.Get(2*x,   2*y+1)
			p += g1.Get(2*x+1, 2*y+1)
			g2.Set(x, y, p/4.0)
		}
	}

	return g2
}

// FindMinMaxAtPercentile returns the values at the two percentiles
// (as fractions, e.g. 0.01 and 0.99), ignoring exact zeros.
func (I *FloatGrid)FindMinMaxAtPercentile(minPrct, maxPrct float64) (float64, float64) {
	vI := []float64{}

	for i:=0 ; i<len(I.values) ; i++ {
		if val := I.values[i]; val != 0.0 {
			vI = append(vI, val)
		}
	}
	if len(vI) == 0 {
		return 0, 0
	}

	sort.Float64s(vI)

	iMin := int(minPrct * float64(len(vI)))
	iMax := int(maxPrct * float64(len(vI)))
	if iMin < 0        { iMin = 0 }
	if iMax >= len(vI) { iMax = len(vI)-1 }

	return vI[iMin], vI[iMax]
}

func (fg *FloatGrid)Stats() string {
	min := math.MaxFloat64
	max := -1.0  * min

	for i:=0 ; i<len(fg.values) ; i++ {
		if fg.values[i] > max { max = fg.values[i] }
		if fg.values[i] < min { min = fg.values[i] }
	}
	return fmt.Sprintf("fg[%dx%d, vals{%f,%f}]", fg.Dx(), fg.Dy(), min, max)
}

// ToImg renders a simple grayscale, mapping [lo,hi] onto black-white
// and gamma scaling the gray to look normal for human vision. Values
// outside the range are clipped.
func (fg *FloatGrid)ToImg(lo, hi float64) *image.RGBA64 {
	img := image.NewRGBA64(image.Rectangle{Max:image.Point{fg.Dx(), fg.Dy()}})
	if hi <= lo {
		hi = lo + 1
	}

	for x:=0; x<fg.Dx(); x++ {
		for y:=0; y<fg.Dy(); y++ {
			lum := (fg.Get(x,y) - lo) / (hi - lo)
			if lum < 0.0 { lum = 0.0 }
			if lum > 1.0 { lum = 1.0 }
			gray := uint16(GammaExpand_F64(lum) * 65535.0)
			img.Set(x, y, color.RGBA64{gray, gray, gray, 0xFFFF})
		}
	}

	return img
}

// SavePNG writes the grid as a grayscale PNG, scaled so the 1st-99th
// percentile range fills the gray scale, with a title written on top.
func (fg *FloatGrid)SavePNG(title, filename string) error {
	lo, hi := fg.FindMinMaxAtPercentile(0.01, 0.99)
	return SaveAnnotatedPNG(fg.ToImg(lo, hi), title, filename)
}

// SaveAnnotatedPNG draws the title in the top left corner and writes the result.
func SaveAnnotatedPNG(img image.Image, title, filename string) error {
	dc := gg.NewContextForImage(img)
	if title != "" {
		dc.SetRGB(1,1,1)
		dc.DrawString(title, 10, 20)
	}
	if err := dc.SavePNG(filename); err != nil {
		return fmt.Errorf("save png '%s': %v", filename, err)
	}
	return nil
}
