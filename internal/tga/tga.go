// Package tga decodes the subset of the TGA format the renderer supports as
// its built-in fallback: uncompressed true-color images with 24 or 32 bits
// per pixel. Decoded pixels are returned as RGBA with premultiplied alpha,
// top row first, ready for texture upload.
package tga

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// HeaderSize is the size of the fixed TGA file header.
const HeaderSize = 18

var (
	ErrTooShort   = errors.New("tga: file smaller than header")
	ErrCompressed = errors.New("tga: only uncompressed true-color images are supported")
	ErrColorDepth = errors.New("tga: only 24 and 32 bits per pixel are supported")
	ErrTruncated  = errors.New("tga: pixel data truncated")
)

type header struct {
	idLength        uint8
	colorMapType    uint8
	dataType        uint8
	colorMapOrigin  uint16
	colorMapLength  uint16
	colorMapDepth   uint8
	xOrigin         uint16
	yOrigin         uint16
	width           uint16
	height          uint16
	bitsPerPixel    uint8
	imageDescriptor uint8
}

func parseHeader(b []byte) header {
	return header{
		idLength:        b[0],
		colorMapType:    b[1],
		dataType:        b[2],
		colorMapOrigin:  binary.LittleEndian.Uint16(b[3:]),
		colorMapLength:  binary.LittleEndian.Uint16(b[5:]),
		colorMapDepth:   b[7],
		xOrigin:         binary.LittleEndian.Uint16(b[8:]),
		yOrigin:         binary.LittleEndian.Uint16(b[10:]),
		width:           binary.LittleEndian.Uint16(b[12:]),
		height:          binary.LittleEndian.Uint16(b[14:]),
		bitsPerPixel:    b[16],
		imageDescriptor: b[17],
	}
}

// Decode parses an uncompressed true-color TGA file. The returned pixels are
// 4 bytes per pixel, premultiplied, with the top image row first regardless
// of the file's row order (bit 5 of the image descriptor).
func Decode(data []byte) (pix []byte, width, height int, err error) {
	if len(data) <= HeaderSize {
		return nil, 0, 0, ErrTooShort
	}
	h := parseHeader(data)

	if h.dataType != 2 {
		return nil, 0, 0, fmt.Errorf("%w (data type %d)", ErrCompressed, h.dataType)
	}
	colorMode := int(h.bitsPerPixel) / 8
	if colorMode < 3 {
		return nil, 0, 0, fmt.Errorf("%w (%d bpp)", ErrColorDepth, h.bitsPerPixel)
	}

	width = int(h.width)
	height = int(h.height)
	src := data[HeaderSize:]
	if len(src) < width*height*colorMode {
		return nil, 0, 0, ErrTruncated
	}

	// TGA stores BGR(A) rows bottom-up unless the descriptor's top-down bit
	// is set. Swap to RGB, flip to top-down, and premultiply.
	topDown := h.imageDescriptor&0x20 != 0
	pix = make([]byte, width*height*4)
	for y := range height {
		read := y * width * colorMode
		write := (height - y - 1) * width * 4
		if topDown {
			write = y * width * 4
		}
		for range width {
			pix[write+0] = src[read+2]
			pix[write+1] = src[read+1]
			pix[write+2] = src[read+0]
			if colorMode == 4 {
				alpha := src[read+3]
				for j := range 3 {
					pix[write+j] = uint8(int(pix[write+j]) * int(alpha) / 255)
				}
				pix[write+3] = alpha
			} else {
				pix[write+3] = 255
			}
			write += 4
			read += colorMode
		}
	}
	return pix, width, height, nil
}
