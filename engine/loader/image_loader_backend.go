package loader

import (
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/Carmen-Shannon/chipview/common"
	"golang.org/x/image/bmp"
	"golang.org/x/image/webp"
)

// imageLoaderBackend decodes PNG, JPEG, BMP and WebP.
type imageLoaderBackend struct {
	decoders map[string]func(io.Reader) (image.Image, error)
}

var _ loaderBackend = &imageLoaderBackend{}

func newImageLoaderBackend() *imageLoaderBackend {
	return &imageLoaderBackend{
		decoders: map[string]func(io.Reader) (image.Image, error){
			".png":  png.Decode,
			".jpg":  jpeg.Decode,
			".jpeg": jpeg.Decode,
			".bmp":  bmp.Decode,
			".webp": webp.Decode,
		},
	}
}

func (b *imageLoaderBackend) Decode(format string, r io.Reader) (*common.TextureStagingData, error) {
	decode, ok := b.decoders[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	img, err := decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s image: %w", format, err)
	}

	// Re-base at the origin so Pix is tightly packed from (0, 0).
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	return &common.TextureStagingData{
		Pixels: rgba.Pix,
		Width:  uint32(bounds.Dx()),
		Height: uint32(bounds.Dy()),
	}, nil
}
