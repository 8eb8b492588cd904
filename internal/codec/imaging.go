package codec

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"photosync/internal/gallery"

	// Register webp decoding; imaging's own decoders cover jpeg/png/gif/bmp/tiff.
	_ "golang.org/x/image/webp"
)

// ImagingCodec compresses images via github.com/disintegration/imaging:
// Lanczos downscale to a longest-edge cap (never upscaling), transparency
// flattened onto white, JPEG output.
type ImagingCodec struct{}

// NewImagingCodec creates the codec.
func NewImagingCodec() *ImagingCodec {
	return &ImagingCodec{}
}

// Encode reads the image at inputPath and returns the compressed JPEG bytes.
func (c *ImagingCodec) Encode(inputPath string, maxSize, quality int) ([]byte, error) {
	img, err := imaging.Open(inputPath, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", inputPath, err)
	}

	img = flatten(img)

	// Resize only when the image exceeds the cap; Fit preserves aspect ratio.
	bounds := img.Bounds()
	if bounds.Dx() > maxSize || bounds.Dy() > maxSize {
		img = imaging.Fit(img, maxSize, maxSize, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("encoding %s: %w", inputPath, err)
	}
	return buf.Bytes(), nil
}

// flatten composites non-opaque images (alpha or transparent palette) onto
// a white background. JPEG has no transparency.
func flatten(img image.Image) image.Image {
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return img
	}
	// Overlay alpha-composites; Paste would copy transparent pixels as-is.
	bg := imaging.New(img.Bounds().Dx(), img.Bounds().Dy(), color.White)
	return imaging.Overlay(bg, img, image.Pt(0, 0), 1.0)
}

// Compile-time check that ImagingCodec implements gallery.ImageCodec
var _ gallery.ImageCodec = (*ImagingCodec)(nil)
