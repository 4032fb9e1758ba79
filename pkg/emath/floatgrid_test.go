package emath

import (
	"path/filepath"
	"testing"
)

func TestDownSample(t *testing.T) {
	fg := NewFloatGrid(4, 2)
	vals := []float64{
		1, 3,  10, 10,
		5, 7,  20, 40,
	}
	for i, v := range vals {
		fg.Set(i%4, i/4, v)
	}

	ds := fg.DownSample()
	if ds.Dx() != 2 || ds.Dy() != 1 {
		t.Fatalf("DownSample is %dx%d, want 2x1", ds.Dx(), ds.Dy())
	}
	if ds.Get(0, 0) != 4 || ds.Get(1, 0) != 20 {
		t.Errorf("DownSample = %v, want [4 20]", ds.Values())
	}
}

func TestFindMinMaxAtPercentile(t *testing.T) {
	fg := NewFloatGrid(10, 10)
	for i := 0; i < 100; i++ {
		fg.Set(i%10, i/10, float64(i))
	}

	lo, hi := fg.FindMinMaxAtPercentile(0.1, 0.9)
	if lo != 10 || hi != 90 {
		t.Errorf("FindMinMaxAtPercentile = %v,%v, want 10,90", lo, hi)
	}
}

func TestSavePNG(t *testing.T) {
	fg := NewFloatGrid(3, 2)
	fg.Set(2, 1, 1.0)

	img := fg.ToImg(0, 1)
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
		t.Errorf("ToImg bounds %v", img.Bounds())
	}
	if r, _, _, _ := img.At(2, 1).RGBA(); r < 0xFF00 {
		t.Errorf("white pixel is %v", img.At(2, 1))
	}

	if err := fg.SavePNG("t", filepath.Join(t.TempDir(), "fg.png")); err != nil {
		t.Fatal(err)
	}
}

func TestLog2Stops(t *testing.T) {
	if got := Log2Stops(8, 1); got != 3 {
		t.Errorf("Log2Stops(8, 1) = %v, want 3", got)
	}
	if got := Log2Stops(0, 1); got > -1e300 {
		t.Errorf("Log2Stops(0, 1) = %v, want -Inf", got)
	}
}
