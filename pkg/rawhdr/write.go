package rawhdr

import(
	"fmt"
	"image"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/mdouchement/hdr"
	"github.com/mdouchement/hdr/codec/rgbe"
	"github.com/mdouchement/hdr/hdrcolor"
	"github.com/mdouchement/hdr/tmo"
	"github.com/mrjoshuak/go-openexr/exr"
	"github.com/mrjoshuak/go-openexr/exrmeta"

	"github.com/abworrall/raw-hdr/pkg/emath"
)

var(
	Tonemappers = []string{"drago03", "durand", "icam06", "linear", "reinhard05"}

	_ hdr.Image = (*BlendedImage)(nil)
	_ hdr.Image = (*grayGrid)(nil)
)

func ListTonemappers() string {
	return fmt.Sprintf("%v", Tonemappers)
}

// WriteEXR writes the blended mosaic as a single 32-bit float channel
// "Y", in sensor units, with the levels needed to interpret it in the
// comments. If es isn't zero, it is recorded as the exposure of the
// capture the values are relative to.
func WriteEXR(bi *BlendedImage, filename string, es ExposureSettings) error {
	w, h := bi.Width, bi.Height()

	header := exr.NewScanlineHeader(w, h)
	header.SetCompression(exr.CompressionZIP)
	channels := exr.NewChannelList()
	channels.Add(exr.Channel{Name: "Y", Type: exr.PixelTypeFloat, XSampling: 1, YSampling: 1})
	header.SetChannels(channels)

	exrmeta.SetOwner(header, "raw-hdr")
	exrmeta.SetComments(header, fmt.Sprintf("undemosaiced CFA mosaic; black=%d white=%d", bi.BlackLevel, bi.WhiteLevel))
	if !es.IsZero() {
		exrmeta.SetISOSpeed(header, float32(es.ISO))
		exrmeta.SetAperture(header, float32(es.fNumber()))
		exrmeta.SetExpTime(header, float32(es.seconds()))
	}

	fb := exr.NewFrameBuffer()
	fb.Set("Y", exr.NewSliceFromFloat32(bi.Pix, w, h))

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("WriteEXR, open+w '%s': %w", filename, err)
	}
	defer f.Close()

	sw, err := exr.NewScanlineWriter(f, header)
	if err != nil {
		return fmt.Errorf("WriteEXR, '%s': %w", filename, err)
	}
	sw.SetFrameBuffer(fb)
	if err := sw.WritePixels(0, h-1); err != nil {
		return fmt.Errorf("WriteEXR, pixels '%s': %w", filename, err)
	}
	if err := sw.Close(); err != nil {
		return fmt.Errorf("WriteEXR, close '%s': %w", filename, err)
	}

	return f.Close()
}

// WriteHDR outputs a Radiance RGBE file, gray, scaled so the reference
// white level is 1.0. You can load this into photoshop or other HDR tools.
func WriteHDR(bi *BlendedImage, filename string) error {
	writer, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("WriteHDR, open+w '%s': %w", filename, err)
	}
	defer writer.Close()

	if err := rgbe.Encode(writer, bi); err != nil {
		return fmt.Errorf("WriteHDR, encoding RGBE file '%s': %w", filename, err)
	}
	return writer.Close()
}

// WritePreviewPNG bins each 2x2 CFA cell into one gray value, tonemaps
// the result, and writes it as a PNG captioned with the tonemapper
// name. The name "all" writes one PNG per tonemapper, with the name
// added before the extension.
func WritePreviewPNG(bi *BlendedImage, filename, tonemapper string) error {
	fg := bi.FloatGrid()
	binned := &grayGrid{fg.DownSample()}

	names := []string{tonemapper}
	if tonemapper == "all" {
		names = Tonemappers
	}

	for _, name := range names {
		op, err := NewTonemapper(name, binned)
		if err != nil {
			return err
		}

		out := filename
		if tonemapper == "all" {
			out = suffixFilename(filename, name)
		}

		log.Printf("Tonemapping: %s -> %s\n", name, out)
		if err := emath.SaveAnnotatedPNG(op.Perform(), name, out); err != nil {
			return err
		}
	}

	return nil
}

// WriteMosaicPNG writes the mosaic as is, one gray pixel per photosite,
// linearly scaled so the 1st-99th percentile range fills the gray scale.
func WriteMosaicPNG(bi *BlendedImage, filename string) error {
	fg := bi.FloatGrid()
	return fg.SavePNG(fmt.Sprintf("%dx%d mosaic", bi.Width, bi.Height()), filename)
}

// NewTonemapper sets up the named operator. The parameters lean towards
// keeping the small bright areas of a scene from blowing out, as that
// is usually what an exposure bracket was shot for.
func NewTonemapper(name string, img hdr.Image) (tmo.ToneMappingOperator, error) {
	switch name {
	case "drago03":
		op := tmo.NewDefaultDrago03(img)
		op.Bias = 1.0
		return op, nil

	case "durand":
		return tmo.NewDefaultDurand(img), nil

	case "icam06":
		op := tmo.NewDefaultICam06(img)
		op.Contrast    = 0.65
		op.MaxClipping = 0.99999
		return op, nil

	case "linear":
		return tmo.NewLinear(img), nil

	case "reinhard05":
		op := tmo.NewDefaultReinhard05(img)
		op.Chromatic  = 0.005
		op.Light      = 0.005
		return op, nil
	}

	return nil, fmt.Errorf("no tonemapper named '%s', pick from %s", name, ListTonemappers())
}

func suffixFilename(filename, suffix string) string {
	ext := filepath.Ext(filename)
	return strings.TrimSuffix(filename, ext) + "-" + suffix + ext
}

// grayGrid lets the hdr tonemappers read a FloatGrid.
type grayGrid struct {
	emath.FloatGrid
}

func (g *grayGrid)ColorModel() color.Model { return hdrcolor.RGBModel }
func (g *grayGrid)Bounds() image.Rectangle { return image.Rect(0, 0, g.Dx(), g.Dy()) }
func (g *grayGrid)At(x, y int) color.Color { return g.HDRAt(x, y) }
func (g *grayGrid)Size() int               { return g.Dx() * g.Dy() }

func (g *grayGrid)HDRAt(x, y int) hdrcolor.Color {
	v := g.Get(x, y)
	if v < 0 {
		v = 0
	}
	return hdrcolor.RGB{R: v, G: v, B: v}
}
