// Package header implements the embeddable 32-bit transform header of
// spec.md §3.5/§4.5: a compact record of which transform was applied,
// written in place of a container's 4-byte magic so untransform needs no
// out-of-band metadata.
package header

import (
	"encoding/binary"

	"github.com/dxtlt/dxt-lossless-transform-go/bc1"
	"github.com/dxtlt/dxt-lossless-transform-go/bc2"
	"github.com/dxtlt/dxt-lossless-transform-go/bc3"
	"github.com/dxtlt/dxt-lossless-transform-go/color565"
	"github.com/dxtlt/dxt-lossless-transform-go/dxterrors"
)

// FormatTag identifies which codec a header describes, encoded in bits 0-3
// of the packed word.
type FormatTag uint8

const (
	FormatBC1      FormatTag = 0
	FormatBC2      FormatTag = 1
	FormatBC3      FormatTag = 2
	FormatBC7      FormatTag = 3
	FormatBC6H     FormatTag = 4
	FormatRGBA8888 FormatTag = 5
	FormatBGRA8888 FormatTag = 6
	FormatBGR888   FormatTag = 7
)

func (t FormatTag) String() string {
	switch t {
	case FormatBC1:
		return "BC1"
	case FormatBC2:
		return "BC2"
	case FormatBC3:
		return "BC3"
	case FormatBC7:
		return "BC7"
	case FormatBC6H:
		return "BC6H"
	case FormatRGBA8888:
		return "RGBA8888"
	case FormatBGRA8888:
		return "BGRA8888"
	case FormatBGR888:
		return "BGR888"
	default:
		return "Unknown"
	}
}

const (
	formatTagBits  = 4
	formatTagMask  = (1 << formatTagBits) - 1
	headerVersion0 = 0
)

// variantCode maps color565.Variant to the 2-bit encoding of §3.5: this is
// deliberately distinct from color565.Variant's own iota ordering (which
// puts None first) because the header's wire format fixes None to the
// highest code, 3.
func variantCode(v color565.Variant) uint32 {
	switch v {
	case color565.Variant1:
		return 0
	case color565.Variant2:
		return 1
	case color565.Variant3:
		return 2
	default:
		return 3
	}
}

func codeToVariant(code uint32) color565.Variant {
	switch code {
	case 0:
		return color565.Variant1
	case 1:
		return color565.Variant2
	case 2:
		return color565.Variant3
	default:
		return color565.VariantNone
	}
}

// TransformHeader is the decoded, in-memory form of the packed 32-bit word.
// Exactly one of the BC1/BC2/BC3 settings fields is meaningful, selected by
// Format.
type TransformHeader struct {
	Format      FormatTag
	BC1Settings bc1.Settings
	BC2Settings bc2.Settings
	BC3Settings bc3.Settings
}

// PackBC1 builds a TransformHeader for a BC1 transform.
func PackBC1(s bc1.Settings) TransformHeader {
	return TransformHeader{Format: FormatBC1, BC1Settings: s}
}

// PackBC2 builds a TransformHeader for a BC2 transform.
func PackBC2(s bc2.Settings) TransformHeader {
	return TransformHeader{Format: FormatBC2, BC2Settings: s}
}

// PackBC3 builds a TransformHeader for a BC3 transform.
func PackBC3(s bc3.Settings) TransformHeader {
	return TransformHeader{Format: FormatBC3, BC3Settings: s}
}

// PackRaw builds a TransformHeader for one of the format tags the core
// names but does not implement a kernel for (BC7, BC6H, and the
// uncompressed pixel formats). Its payload carries only header_version=0;
// the per-format payload bits above that are reserved by this
// implementation and always written zero.
func PackRaw(format FormatTag) TransformHeader {
	return TransformHeader{Format: format}
}

// Pack encodes h as the 32-bit word described in spec.md §3.5: format tag
// in bits 0-3, header_version=0 in bits 4-5, and the per-format payload
// above that. Reserved bits are always written zero.
func (h TransformHeader) Pack() uint32 {
	var payload uint32
	switch h.Format {
	case FormatBC1:
		payload = packBC1Payload(h.BC1Settings)
	case FormatBC2:
		payload = packBC2Payload(h.BC2Settings)
	case FormatBC3:
		payload = packBC3Payload(h.BC3Settings)
	}
	return uint32(h.Format)&formatTagMask | payload<<formatTagBits
}

func packBC1Payload(s bc1.Settings) uint32 {
	return packColourPayload(headerVersion0, s.SplitColourEndpoints, s.DecorrelationMode)
}

func packBC2Payload(s bc2.Settings) uint32 {
	return packColourPayload(headerVersion0, s.SplitColourEndpoints, s.DecorrelationMode)
}

// packColourPayload lays out `header_version:2 | split_colour:1 |
// decorr_variant:2 | reserved:23`, shared by BC1 and BC2.
func packColourPayload(version uint32, split bool, v color565.Variant) uint32 {
	p := version & 0x3
	if split {
		p |= 1 << 2
	}
	p |= variantCode(v) << 3
	return p
}

func packBC3Payload(s bc3.Settings) uint32 {
	p := packColourPayload(headerVersion0, s.SplitColourEndpoints, s.DecorrelationMode)
	if s.SplitAlphaEndpoints {
		p |= 1 << 5
	}
	return p
}

// Unpack decodes a packed 32-bit word into a TransformHeader, rejecting any
// non-zero header_version with ErrCorruptedEmbeddedData.
func Unpack(word uint32) (TransformHeader, error) {
	tag := FormatTag(word & formatTagMask)
	payload := word >> formatTagBits

	switch tag {
	case FormatBC1:
		version, split, variant := unpackColourPayload(payload)
		if err := checkVersion(version); err != nil {
			return TransformHeader{}, err
		}
		return PackBC1(bc1.Settings{DecorrelationMode: variant, SplitColourEndpoints: split}), nil
	case FormatBC2:
		version, split, variant := unpackColourPayload(payload)
		if err := checkVersion(version); err != nil {
			return TransformHeader{}, err
		}
		return PackBC2(bc2.Settings{DecorrelationMode: variant, SplitColourEndpoints: split}), nil
	case FormatBC3:
		version, split, variant := unpackColourPayload(payload)
		if err := checkVersion(version); err != nil {
			return TransformHeader{}, err
		}
		splitAlpha := (payload>>5)&1 != 0
		return PackBC3(bc3.Settings{
			DecorrelationMode:    variant,
			SplitColourEndpoints: split,
			SplitAlphaEndpoints:  splitAlpha,
		}), nil
	case FormatBC7, FormatBC6H, FormatRGBA8888, FormatBGRA8888, FormatBGR888:
		if err := checkVersion(payload & 0x3); err != nil {
			return TransformHeader{}, err
		}
		return PackRaw(tag), nil
	default:
		return TransformHeader{}, dxterrors.ErrCorruptedEmbeddedData
	}
}

func unpackColourPayload(payload uint32) (version uint32, split bool, variant color565.Variant) {
	version = payload & 0x3
	split = (payload>>2)&1 != 0
	variant = codeToVariant((payload >> 3) & 0x3)
	return
}

func checkVersion(version uint32) error {
	if version != headerVersion0 {
		return dxterrors.ErrCorruptedEmbeddedData
	}
	return nil
}

// WriteTo writes h's packed form into a 4-byte little-endian slot.
func (h TransformHeader) WriteTo(slot []byte) {
	binary.LittleEndian.PutUint32(slot[:4], h.Pack())
}

// ReadFrom decodes a TransformHeader from a 4-byte little-endian slot.
func ReadFrom(slot []byte) (TransformHeader, error) {
	return Unpack(binary.LittleEndian.Uint32(slot[:4]))
}
