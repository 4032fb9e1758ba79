package rawhdr

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mrjoshuak/go-openexr/exr"
	"github.com/mrjoshuak/go-openexr/exrmeta"
)

func testBlendedImage() *BlendedImage {
	bi := NewBlendedImage(8, 6)
	bi.BlackLevel, bi.WhiteLevel = 64, 1023
	for i := range bi.Pix {
		bi.Pix[i] = 64 + float32(i*40)
	}
	return bi
}

func TestWriteEXR(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "out.exr")
	if err := WriteEXR(testBlendedImage(), filename, es(100, 56, 1, 500)); err != nil {
		t.Fatal(err)
	}

	f, err := exr.OpenFile(filename)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	h := f.Header(0)
	if h == nil {
		t.Fatal("no header")
	}
	if w, ht := int(h.DataWindow().Width()), int(h.DataWindow().Height()); w != 8 || ht != 6 {
		t.Errorf("data window %dx%d, want 8x6", w, ht)
	}
	if c := exrmeta.Comments(h); !strings.Contains(c, "black=64 white=1023") {
		t.Errorf("comments = %q, want the levels in them", c)
	}
	if iso := exrmeta.ISOSpeed(h); iso != 100 {
		t.Errorf("ISO = %v, want 100", iso)
	}
}

func TestWriteHDR(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "out.hdr")
	if err := WriteHDR(testBlendedImage(), filename); err != nil {
		t.Fatal(err)
	}
	if st, err := os.Stat(filename); err != nil || st.Size() == 0 {
		t.Errorf("stat %s: %v, %v", filename, st, err)
	}
}

func TestWritePreviewPNG(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "preview.png")
	if err := WritePreviewPNG(testBlendedImage(), filename, "linear"); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(filename)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	// Each 2x2 CFA cell becomes one pixel
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 3 {
		t.Errorf("preview is %v, want 4x3", b)
	}

	if err := WritePreviewPNG(testBlendedImage(), filename, "fattal02"); err == nil {
		t.Errorf("unknown tonemapper: expected an error")
	}
}

func TestSuffixFilename(t *testing.T) {
	tests := []struct{ in, suffix, want string }{
		{"preview.png", "linear", "preview-linear.png"},
		{"out/a.b/p.png", "icam06", "out/a.b/p-icam06.png"},
		{"preview", "durand", "preview-durand"},
	}
	for _, test := range tests {
		if got := suffixFilename(test.in, test.suffix); got != test.want {
			t.Errorf("suffixFilename(%q, %q) = %q, want %q", test.in, test.suffix, got, test.want)
		}
	}
}

func TestBlendedImageRelative(t *testing.T) {
	bi := testBlendedImage()
	if got := bi.Relative(0, 0); got != 0 {
		t.Errorf("Relative at black = %v, want 0", got)
	}
	bi.Pix[1] = 1023
	if got := bi.Relative(1, 0); got != 1 {
		t.Errorf("Relative at white = %v, want 1", got)
	}
	if bi.Bounds().Dx() != 8 || bi.Bounds().Dy() != 6 || bi.Size() != 48 {
		t.Errorf("bounds %v, size %d", bi.Bounds(), bi.Size())
	}
}
