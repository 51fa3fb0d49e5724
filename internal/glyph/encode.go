package glyph

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/png"
)

// EncodePNG serializes img as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// icoDir and icoEntry mirror the on-disk ICO header layout.
type icoDir struct {
	Reserved uint16
	Type     uint16
	Count    uint16
}

type icoEntry struct {
	Width, Height uint8
	Colors        uint8
	Reserved      uint8
	Planes        uint16
	BitCount      uint16
	Size          uint32
	Offset        uint32
}

const icoHeaderLen = 6 + 16

// EncodeICO wraps a PNG rendition of img in a single-image ICO container,
// the format the Windows notification area expects.
func EncodeICO(img image.Image) ([]byte, error) {
	b := img.Bounds()
	if b.Dx() > 256 || b.Dy() > 256 {
		return nil, fmt.Errorf("encode ico: %dx%d exceeds 256x256", b.Dx(), b.Dy())
	}
	payload, err := EncodePNG(img)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Grow(icoHeaderLen + len(payload))
	_ = binary.Write(&buf, binary.LittleEndian, icoDir{Type: 1, Count: 1})
	_ = binary.Write(&buf, binary.LittleEndian, icoEntry{
		// 0 encodes 256.
		Width:    uint8(b.Dx()),
		Height:   uint8(b.Dy()),
		Planes:   1,
		BitCount: 32,
		Size:     uint32(len(payload)),
		Offset:   icoHeaderLen,
	})
	buf.Write(payload)
	return buf.Bytes(), nil
}
