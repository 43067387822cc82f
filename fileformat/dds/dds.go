// Package dds implements the illustrative DDS container handler of
// spec.md §3.6/§4.6/§6.3: legacy-header and DX10-header parsing, fourcc
// and dxgi_format classification, and the header-in-place-of-magic trick.
package dds

import (
	"encoding/binary"
	"errors"
	"strings"

	"github.com/dxtlt/dxt-lossless-transform-go/dxterrors"
	"github.com/dxtlt/dxt-lossless-transform-go/fileformat"
	"github.com/dxtlt/dxt-lossless-transform-go/header"
)

// Magic is the 4-byte DDS file signature "DDS ".
var Magic = [4]byte{'D', 'D', 'S', ' '}

const (
	legacyHeaderSize = 128 // magic (4) + DDS_HEADER (124)
	dx10HeaderSize   = 20

	fourCCOffset     = 84 // offset of pixel_format.fourcc within the file
	pixelFlagsOffset = 80 // offset of pixel_format.flags within the file
	dxgiFormatOffset = legacyHeaderSize // dxgi_format is the first DX10 field

	ddpfFourCC = 0x4 // DDPF_FOURCC
)

var (
	fourCCDXT1 = [4]byte{'D', 'X', 'T', '1'}
	fourCCDXT2 = [4]byte{'D', 'X', 'T', '2'}
	fourCCDXT3 = [4]byte{'D', 'X', 'T', '3'}
	fourCCDXT4 = [4]byte{'D', 'X', 'T', '4'}
	fourCCDXT5 = [4]byte{'D', 'X', 'T', '5'}
	fourCCDX10 = [4]byte{'D', 'X', '1', '0'}
)

// DXGI_FORMAT values relevant to BC1/BC2/BC3, from the closed DXGI_FORMAT
// enumeration (d3d11.h); only the three BC block formats are classified,
// mirroring the core's scope.
const (
	dxgiFormatBC1Typeless = 70
	dxgiFormatBC1UNorm    = 71
	dxgiFormatBC1UNormSRGB = 72
	dxgiFormatBC2Typeless = 73
	dxgiFormatBC2UNorm    = 74
	dxgiFormatBC2UNormSRGB = 75
	dxgiFormatBC3Typeless = 76
	dxgiFormatBC3UNorm    = 77
	dxgiFormatBC3UNormSRGB = 78
)

// ErrNotDDS is returned by parse when the input is too short or does not
// begin with the DDS magic.
var ErrNotDDS = errors.New("dxt-lossless-transform: not a DDS file")

// parsed is the cached (format, data_offset) result of classifying a DDS
// file, matching spec.md §6.3's "caches (format, data_offset) once per
// file" requirement — callers that re-parse the same byte slice get a
// fresh computation, but Transform/Untransform each parse exactly once.
type parsed struct {
	format     header.FormatTag
	dataOffset int
}

// parse classifies bytes as a BC1/BC2/BC3 DDS file, returning the detected
// format tag and the byte offset at which block data begins. ignoreMagic
// skips the leading 4-byte signature check, used when the caller already
// consumed and replaced the magic with an embedded TransformHeader.
func parse(bytes []byte, ignoreMagic bool) (parsed, error) {
	if len(bytes) < legacyHeaderSize {
		return parsed{}, ErrNotDDS
	}
	if !ignoreMagic && !bytesEqual4(bytes[0:4], Magic) {
		return parsed{}, ErrNotDDS
	}

	if binary.LittleEndian.Uint32(bytes[pixelFlagsOffset:])&ddpfFourCC == 0 {
		return parsed{}, dxterrors.ErrUnknownFileFormat
	}

	var fourCC [4]byte
	copy(fourCC[:], bytes[fourCCOffset:fourCCOffset+4])

	if fourCC == fourCCDX10 {
		if len(bytes) < legacyHeaderSize+dx10HeaderSize {
			return parsed{}, ErrNotDDS
		}
		dxgiFormat := binary.LittleEndian.Uint32(bytes[dxgiFormatOffset:])
		format, err := formatFromDXGI(dxgiFormat)
		if err != nil {
			return parsed{}, err
		}
		return parsed{format: format, dataOffset: legacyHeaderSize + dx10HeaderSize}, nil
	}

	format, err := formatFromFourCC(fourCC)
	if err != nil {
		return parsed{}, err
	}
	return parsed{format: format, dataOffset: legacyHeaderSize}, nil
}

func formatFromFourCC(fourCC [4]byte) (header.FormatTag, error) {
	switch fourCC {
	case fourCCDXT1:
		return header.FormatBC1, nil
	case fourCCDXT2, fourCCDXT3:
		return header.FormatBC2, nil
	case fourCCDXT4, fourCCDXT5:
		return header.FormatBC3, nil
	default:
		return 0, dxterrors.ErrUnknownFileFormat
	}
}

func formatFromDXGI(dxgiFormat uint32) (header.FormatTag, error) {
	switch dxgiFormat {
	case dxgiFormatBC1Typeless, dxgiFormatBC1UNorm, dxgiFormatBC1UNormSRGB:
		return header.FormatBC1, nil
	case dxgiFormatBC2Typeless, dxgiFormatBC2UNorm, dxgiFormatBC2UNormSRGB:
		return header.FormatBC2, nil
	case dxgiFormatBC3Typeless, dxgiFormatBC3UNorm, dxgiFormatBC3UNormSRGB:
		return header.FormatBC3, nil
	default:
		return 0, dxterrors.ErrUnknownFileFormat
	}
}

func bytesEqual4(b []byte, magic [4]byte) bool {
	return b[0] == magic[0] && b[1] == magic[1] && b[2] == magic[2] && b[3] == magic[3]
}

// Handler implements fileformat.Handler for DDS containers.
type Handler struct{}

var _ fileformat.Handler = Handler{}

// CanHandle reports true if bytes begins with the DDS magic or
// fileExtension is ".dds" (case-insensitive).
func (Handler) CanHandle(bytes []byte, fileExtension string) bool {
	if len(bytes) >= 4 && bytesEqual4(bytes[0:4], Magic) {
		return true
	}
	return strings.EqualFold(fileExtension, ".dds")
}

// Transform implements spec.md §4.6's container transform contract.
func (Handler) Transform(bytes []byte, dst []byte, bundle *fileformat.Bundle) error {
	p, err := parse(bytes, false)
	if err != nil {
		return err
	}
	if len(dst) < len(bytes) {
		return dxterrors.NewOutputBufferTooSmall(len(bytes), len(dst))
	}

	copy(dst[:p.dataOffset], bytes[:p.dataOffset])

	h, err := bundle.DispatchTransform(p.format, bytes[p.dataOffset:], dst[p.dataOffset:])
	if err != nil {
		return err
	}
	h.WriteTo(dst[0:4])
	return nil
}

// Untransform implements spec.md §4.6's container untransform contract.
func (Handler) Untransform(bytes []byte, dst []byte, bundle *fileformat.Bundle) error {
	if len(bytes) < 4 {
		return ErrNotDDS
	}
	h, err := header.ReadFrom(bytes[0:4])
	if err != nil {
		return err
	}
	if len(dst) < len(bytes) {
		return dxterrors.NewOutputBufferTooSmall(len(bytes), len(dst))
	}

	copy(dst, bytes)
	copy(dst[0:4], Magic[:])

	p, err := parse(dst, true)
	if err != nil {
		return err
	}
	return bundle.DispatchUntransform(h, dst[p.dataOffset:], dst[p.dataOffset:])
}
