// Package blocktest decodes single BC1/BC2/BC3 blocks to 4x4 RGBA pixel
// grids, for use only by tests exercising spec.md §8 property 2 ("pixel
// preservation"): the core itself never decodes pixels. Grounded on the
// reference BC1/BC3 decoders in the example imageset-packer tooling.
package blocktest

import "encoding/binary"

// Pixel is one decoded RGBA texel.
type Pixel struct {
	R, G, B, A uint8
}

// DecodeBC1Block decodes one 8-byte BC1 block into its 16 pixels, raster
// order (row-major, top-left first).
func DecodeBC1Block(block []byte) [16]Pixel {
	return decodeColourBlock(block[0:8])
}

// DecodeBC2Block decodes one 16-byte BC2 block: 8 bytes of explicit 4-bit
// alpha followed by the BC1-shaped colour half.
func DecodeBC2Block(block []byte) [16]Pixel {
	px := decodeColourBlock(block[8:16])
	alphaBits := binary.LittleEndian.Uint64(block[0:8])
	for i := range px {
		nibble := uint8((alphaBits >> (i * 4)) & 0xF)
		px[i].A = (nibble << 4) | nibble
	}
	return px
}

// DecodeBC3Block decodes one 16-byte BC3 block: interpolated alpha (2
// endpoints + 6 bytes of 3-bit indices) followed by the BC1-shaped colour
// half.
func DecodeBC3Block(block []byte) [16]Pixel {
	alpha := decodeAlphaBlock(block[0:8])
	px := decodeColourBlock(block[8:16])
	for i := range px {
		px[i].A = alpha[i]
	}
	return px
}

// decodeColourBlock decodes the shared BC1/BC2/BC3 colour half: color0,
// color1, and the 2-bit-per-pixel index field.
func decodeColourBlock(block []byte) [16]Pixel {
	colour0 := binary.LittleEndian.Uint16(block[0:2])
	colour1 := binary.LittleEndian.Uint16(block[2:4])
	indices := binary.LittleEndian.Uint32(block[4:8])

	c0 := rgb565To888(colour0)
	c1 := rgb565To888(colour1)

	var refs [4]Pixel
	refs[0] = c0
	refs[1] = c1
	if colour0 > colour1 {
		refs[2] = lerp2over3(c0, c1)
		refs[3] = lerp2over3(c1, c0)
	} else {
		refs[2] = lerpHalf(c0, c1)
		refs[3] = Pixel{0, 0, 0, 0}
	}

	var out [16]Pixel
	for i := range out {
		idx := (indices >> (uint(i) * 2)) & 0x3
		out[i] = refs[idx]
		out[i].A = 0xFF
	}
	return out
}

// decodeAlphaBlock decodes BC3's 8-byte interpolated alpha field into 16
// 8-bit alpha values.
func decodeAlphaBlock(field []byte) [16]uint8 {
	a0, a1 := field[0], field[1]
	var indexBits uint64
	for i := 0; i < 6; i++ {
		indexBits |= uint64(field[2+i]) << (8 * i)
	}

	var refs [8]uint8
	refs[0] = a0
	refs[1] = a1
	if a0 > a1 {
		for i := 1; i <= 6; i++ {
			refs[1+i] = uint8((uint16(a0)*uint16(7-i) + uint16(a1)*uint16(i)) / 7)
		}
	} else {
		for i := 1; i <= 4; i++ {
			refs[1+i] = uint8((uint16(a0)*uint16(5-i) + uint16(a1)*uint16(i)) / 5)
		}
		refs[6] = 0
		refs[7] = 255
	}

	var out [16]uint8
	for i := range out {
		idx := (indexBits >> (uint(i) * 3)) & 0x7
		out[i] = refs[idx]
	}
	return out
}

func rgb565To888(c uint16) Pixel {
	r5 := (c >> 11) & 0x1F
	g6 := (c >> 5) & 0x3F
	b5 := c & 0x1F
	r := uint8((r5 << 3) | (r5 >> 2))
	g := uint8((g6 << 2) | (g6 >> 4))
	b := uint8((b5 << 3) | (b5 >> 2))
	return Pixel{R: r, G: g, B: b, A: 0xFF}
}

func lerpHalf(a, b Pixel) Pixel {
	return Pixel{
		R: uint8((uint16(a.R) + uint16(b.R)) / 2),
		G: uint8((uint16(a.G) + uint16(b.G)) / 2),
		B: uint8((uint16(a.B) + uint16(b.B)) / 2),
		A: 0xFF,
	}
}

func lerp2over3(a, b Pixel) Pixel {
	return Pixel{
		R: uint8((2*uint16(a.R) + uint16(b.R)) / 3),
		G: uint8((2*uint16(a.G) + uint16(b.G)) / 3),
		B: uint8((2*uint16(a.B) + uint16(b.B)) / 3),
		A: 0xFF,
	}
}
