package glint

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/glintui/glint/internal/tga"
)

// decodeImage decodes an encoded image into tightly packed premultiplied
// RGBA pixels, top row first. Formats with magic bytes go through the
// registered image decoders; anything unrecognized is attempted as TGA,
// which has no signature.
func decodeImage(data []byte) (pix []byte, width, height int, err error) {
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, 0, 0, fmt.Errorf("decoding image: %w", err)
		}
		b := img.Bounds()
		// image.RGBA stores premultiplied alpha, so a plain draw performs
		// the conversion.
		rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
		return rgba.Pix, b.Dx(), b.Dy(), nil
	}

	pix, width, height, err = tga.Decode(data)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("decoding TGA: %w", err)
	}
	return pix, width, height, nil
}
