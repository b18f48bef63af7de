package glint

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDecodeImagePNGPremultiplies(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 0, B: 0, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{R: 255, G: 0, B: 0, A: 128})

	pix, w, h, err := decodeImage(encodePNG(t, img))
	if err != nil {
		t.Fatal(err)
	}
	if w != 2 || h != 1 {
		t.Fatalf("dimensions %dx%d", w, h)
	}
	if got := pix[0:4]; !bytes.Equal(got, []byte{255, 0, 0, 255}) {
		t.Errorf("opaque pixel = %v", got)
	}
	// 255 * 128/255 rounds to 128.
	if pix[4] != 128 || pix[7] != 128 {
		t.Errorf("translucent pixel = %v, want premultiplied red", pix[4:8])
	}
}

func TestDecodeImageTGAFallback(t *testing.T) {
	// 1x1 top-down 24-bit TGA, blue-green-red pixel order.
	data := make([]byte, 18+3)
	data[2] = 2
	binary.LittleEndian.PutUint16(data[12:], 1)
	binary.LittleEndian.PutUint16(data[14:], 1)
	data[16] = 24
	data[17] = 1 << 5
	copy(data[18:], []byte{0, 0, 255})

	pix, w, h, err := decodeImage(data)
	if err != nil {
		t.Fatal(err)
	}
	if w != 1 || h != 1 {
		t.Fatalf("dimensions %dx%d", w, h)
	}
	if !bytes.Equal(pix, []byte{255, 0, 0, 255}) {
		t.Errorf("pixel = %v, want opaque red", pix)
	}
}

func TestDecodeImageGarbage(t *testing.T) {
	if _, _, _, err := decodeImage([]byte{0x00, 0x01}); err == nil {
		t.Error("expected error for undecodable data")
	}
}
