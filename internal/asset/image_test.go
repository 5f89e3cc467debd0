package asset

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadImage(t *testing.T) {
	dir := t.TempDir()

	src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	src.Set(2, 1, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	pngPath := filepath.Join(dir, "bg.png")
	f, err := os.Create(pngPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, src); err != nil {
		t.Fatal(err)
	}
	f.Close()

	img, err := LoadImage(pngPath)
	if err != nil {
		t.Fatalf("LoadImage(png): %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 3, 2) {
		t.Errorf("bounds = %v", img.Bounds())
	}
	if got, want := img.RGBAAt(2, 1), (color.RGBA{10, 20, 30, 255}); got != want {
		t.Errorf("pixel = %v; want %v", got, want)
	}

	svgPath := filepath.Join(dir, "bg.svg")
	if err := os.WriteFile(svgPath, []byte(layeredSVG), 0644); err != nil {
		t.Fatal(err)
	}
	img, err = LoadImage(svgPath)
	if err != nil {
		t.Fatalf("LoadImage(svg): %v", err)
	}
	if img.Bounds().Dx() != 200 || img.Bounds().Dy() != 100 {
		t.Errorf("svg bounds = %v; want viewBox size 200x100", img.Bounds())
	}
}

func TestLoadImageErrors(t *testing.T) {
	if _, err := LoadImage("/nonexistent/file.png"); err == nil {
		t.Error("LoadImage should return error for non-existent file")
	}
	if _, err := LoadImage("background.tiff"); err == nil || err.Error() != "unsupported image format: .tiff" {
		t.Errorf("unsupported format error = %v", err)
	}

	bad := filepath.Join(t.TempDir(), "bad.jpg")
	if err := os.WriteFile(bad, []byte("not a jpeg"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadImage(bad); err == nil {
		t.Error("LoadImage should fail to decode garbage")
	}
}

func TestSupportedExtensions(t *testing.T) {
	for _, ext := range []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp"} {
		if _, ok := decoders[ext]; !ok {
			t.Errorf("extension %s should be supported", ext)
		}
	}
}
