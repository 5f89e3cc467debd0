package asset

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/webp"
)

// LoadImage decodes a background image. SVG files are rasterized at their
// native size.
func LoadImage(filePath string) (*image.RGBA, error) {
	ext := strings.ToLower(filepath.Ext(filePath))
	if ext == ".svg" {
		return loadSVGImage(filePath)
	}

	decode, ok := decoders[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported image format: %s", ext)
	}

	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filePath, err)
	}
	return toRGBA(img), nil
}

var decoders = map[string]func(f *os.File) (image.Image, error){
	".png":  func(f *os.File) (image.Image, error) { return png.Decode(f) },
	".jpg":  func(f *os.File) (image.Image, error) { return jpeg.Decode(f) },
	".jpeg": func(f *os.File) (image.Image, error) { return jpeg.Decode(f) },
	".gif":  func(f *os.File) (image.Image, error) { return gif.Decode(f) },
	".bmp":  func(f *os.File) (image.Image, error) { return bmp.Decode(f) },
	".webp": func(f *os.File) (image.Image, error) { return webp.Decode(f) },
}

func loadSVGImage(filePath string) (*image.RGBA, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	icon, err := oksvg.ReadIconStream(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filePath, err)
	}
	w := int(icon.ViewBox.W)
	h := int(icon.ViewBox.H)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%s: %w", filePath, ErrNoDimension)
	}
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	icon.SetTarget(0, 0, float64(w), float64(h))
	scanner := rasterx.NewScannerGV(w, h, rgba, rgba.Bounds())
	dasher := rasterx.NewDasher(w, h, scanner)
	icon.Draw(dasher, 1.0)
	return rgba, nil
}

// toRGBA copies img into a zero-origin RGBA.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Copy(rgba, image.Point{}, img, b, xdraw.Src, nil)
	return rgba
}
