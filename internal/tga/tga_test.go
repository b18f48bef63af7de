package tga

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

// encode builds an uncompressed TGA file from BGR(A) pixel rows given
// top-down, optionally marking the file as top-down in the descriptor.
func encode(t *testing.T, w, h, bpp int, topDown bool, rows [][]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	hdr := make([]byte, HeaderSize)
	hdr[2] = 2 // uncompressed true-color
	binary.LittleEndian.PutUint16(hdr[12:], uint16(w))
	binary.LittleEndian.PutUint16(hdr[14:], uint16(h))
	hdr[16] = uint8(bpp)
	if topDown {
		hdr[17] = 0x20
	}
	buf.Write(hdr)
	if topDown {
		for _, row := range rows {
			buf.Write(row)
		}
	} else {
		for i := len(rows) - 1; i >= 0; i-- {
			buf.Write(rows[i])
		}
	}
	return buf.Bytes()
}

func TestDecode24BitBGRSwap(t *testing.T) {
	// One red pixel, one blue pixel (stored as BGR).
	file := encode(t, 2, 1, 24, true, [][]byte{
		{0, 0, 255 /* red */, 255, 0, 0 /* blue */},
	})
	pix, w, h, err := Decode(file)
	if err != nil {
		t.Fatal(err)
	}
	if w != 2 || h != 1 {
		t.Fatalf("dimensions = %dx%d", w, h)
	}
	want := []byte{255, 0, 0, 255, 0, 0, 255, 255}
	if !bytes.Equal(pix, want) {
		t.Errorf("pix = %v, want %v", pix, want)
	}
}

func TestDecodeBottomUpFlip(t *testing.T) {
	// Two rows: white on top, black below, stored bottom-up.
	file := encode(t, 1, 2, 24, false, [][]byte{
		{255, 255, 255},
		{0, 0, 0},
	})
	pix, _, _, err := Decode(file)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{255, 255, 255, 255, 0, 0, 0, 255}
	if !bytes.Equal(pix, want) {
		t.Errorf("pix = %v, want %v", pix, want)
	}
}

func TestDecode32BitPremultiplies(t *testing.T) {
	// Half-transparent pure white.
	file := encode(t, 1, 1, 32, true, [][]byte{
		{255, 255, 255, 128},
	})
	pix, _, _, err := Decode(file)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{128, 128, 128, 128}
	if !bytes.Equal(pix, want) {
		t.Errorf("pix = %v, want %v", pix, want)
	}
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name string
		file []byte
		want error
	}{
		{"short", make([]byte, 10), ErrTooShort},
		{"rle", func() []byte {
			f := encode(t, 1, 1, 24, true, [][]byte{{0, 0, 0}})
			f[2] = 10 // RLE true-color
			return f
		}(), ErrCompressed},
		{"grayscale", func() []byte {
			f := encode(t, 1, 1, 24, true, [][]byte{{0, 0, 0}})
			f[16] = 8
			return f
		}(), ErrColorDepth},
		{"truncated", func() []byte {
			f := encode(t, 4, 4, 32, true, [][]byte{make([]byte, 64)})
			return f[:HeaderSize+8]
		}(), ErrTruncated},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, _, err := Decode(tc.file)
			if !errors.Is(err, tc.want) {
				t.Errorf("err = %v, want %v", err, tc.want)
			}
		})
	}
}
