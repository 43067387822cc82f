package dds

import (
	"bytes"
	"encoding/binary"
	"math/rand"
	"testing"

	"github.com/dxtlt/dxt-lossless-transform-go/bc1"
	"github.com/dxtlt/dxt-lossless-transform-go/bc2"
	"github.com/dxtlt/dxt-lossless-transform-go/bc3"
	"github.com/dxtlt/dxt-lossless-transform-go/fileformat"
	"github.com/dxtlt/dxt-lossless-transform-go/header"
)

// buildLegacyDDS constructs a minimal, spec-enough DDS legacy header (128
// bytes) with DXT1 fourcc, followed by nBlocks BC1 blocks of random data.
func buildLegacyDDS(nBlocks int, seed int64) []byte {
	buf := make([]byte, legacyHeaderSize+nBlocks*bc1.BlockSize)
	copy(buf[0:4], Magic[:])
	binary.LittleEndian.PutUint32(buf[pixelFlagsOffset:], ddpfFourCC)
	copy(buf[fourCCOffset:fourCCOffset+4], fourCCDXT1[:])

	r := rand.New(rand.NewSource(seed))
	r.Read(buf[legacyHeaderSize:])
	return buf
}

// buildLegacyDDSFourCC is buildLegacyDDS generalized over fourCC and block
// size, so BC2/BC3 fixtures can be built the same way.
func buildLegacyDDSFourCC(fourCC [4]byte, blockSize, nBlocks int, seed int64) []byte {
	buf := make([]byte, legacyHeaderSize+nBlocks*blockSize)
	copy(buf[0:4], Magic[:])
	binary.LittleEndian.PutUint32(buf[pixelFlagsOffset:], ddpfFourCC)
	copy(buf[fourCCOffset:fourCCOffset+4], fourCC[:])

	r := rand.New(rand.NewSource(seed))
	r.Read(buf[legacyHeaderSize:])
	return buf
}

func newBundle() *fileformat.Bundle {
	return fileformat.NewBundle().With(header.FormatBC1, fileformat.ManualBuilder{
		Format: header.FormatBC1,
		BC1:    bc1.DefaultSettings(),
	})
}

func TestCanHandle(t *testing.T) {
	h := Handler{}
	dds := buildLegacyDDS(1, 1)
	if !h.CanHandle(dds, "") {
		t.Fatal("CanHandle should recognize the DDS magic")
	}
	if !h.CanHandle(nil, ".dds") {
		t.Fatal("CanHandle should recognize the .dds extension")
	}
	if !h.CanHandle(nil, ".DDS") {
		t.Fatal("CanHandle should be case-insensitive for extensions")
	}
	if h.CanHandle([]byte("nope"), ".png") {
		t.Fatal("CanHandle should reject unrelated bytes and extensions")
	}
}

func TestTransformUntransformRoundTrip(t *testing.T) {
	src := buildLegacyDDS(12, 7)
	bundle := newBundle()
	h := Handler{}

	transformed := make([]byte, len(src))
	if err := h.Transform(src, transformed, bundle); err != nil {
		t.Fatalf("Transform: %v", err)
	}

	// The header replaced the magic; everything else in the legacy header
	// must be untouched.
	if bytes.Equal(transformed[0:4], Magic[:]) {
		t.Fatal("Transform should overwrite the magic with the embedded header")
	}
	if !bytes.Equal(transformed[4:legacyHeaderSize], src[4:legacyHeaderSize]) {
		t.Fatal("Transform must not touch header bytes beyond the magic")
	}

	restored := make([]byte, len(src))
	if err := h.Untransform(transformed, restored, bundle); err != nil {
		t.Fatalf("Untransform: %v", err)
	}
	if !bytes.Equal(restored, src) {
		t.Fatal("round trip through Transform/Untransform did not restore the original file")
	}
}

// TestTransformUntransformRoundTripBC2AliasedBuffer and its BC3 counterpart
// below exercise Handler.Untransform with more than one block through the
// real dds.go path, where Untransform is always called with dst aliasing
// its own src slice. A single-block fixture can't catch a scatter pass that
// clobbers not-yet-read colour/indices data, so nBlocks must be >= 2.
func TestTransformUntransformRoundTripBC2AliasedBuffer(t *testing.T) {
	src := buildLegacyDDSFourCC(fourCCDXT3, bc2.BlockSize, 6, 11)
	bundle := fileformat.NewBundle().With(header.FormatBC2, fileformat.ManualBuilder{
		Format: header.FormatBC2,
		BC2:    bc2.DefaultSettings(),
	})
	h := Handler{}

	transformed := make([]byte, len(src))
	if err := h.Transform(src, transformed, bundle); err != nil {
		t.Fatalf("Transform: %v", err)
	}

	restored := make([]byte, len(src))
	if err := h.Untransform(transformed, restored, bundle); err != nil {
		t.Fatalf("Untransform: %v", err)
	}
	if !bytes.Equal(restored, src) {
		t.Fatal("round trip through Transform/Untransform did not restore the original BC2 file")
	}
}

func TestTransformUntransformRoundTripBC3AliasedBuffer(t *testing.T) {
	src := buildLegacyDDSFourCC(fourCCDXT5, bc3.BlockSize, 6, 13)
	bundle := fileformat.NewBundle().With(header.FormatBC3, fileformat.ManualBuilder{
		Format: header.FormatBC3,
		BC3:    bc3.DefaultSettings(),
	})
	h := Handler{}

	transformed := make([]byte, len(src))
	if err := h.Transform(src, transformed, bundle); err != nil {
		t.Fatalf("Transform: %v", err)
	}

	restored := make([]byte, len(src))
	if err := h.Untransform(transformed, restored, bundle); err != nil {
		t.Fatalf("Untransform: %v", err)
	}
	if !bytes.Equal(restored, src) {
		t.Fatal("round trip through Transform/Untransform did not restore the original BC3 file")
	}
}

func TestParseRejectsNonDDS(t *testing.T) {
	if _, err := parse([]byte("not a dds file at all, too short"), false); err == nil {
		t.Fatal("expected an error for a non-DDS, too-short buffer")
	}
}

func TestParseRejectsMissingFourCCFlag(t *testing.T) {
	buf := make([]byte, legacyHeaderSize)
	copy(buf[0:4], Magic[:])
	if _, err := parse(buf, false); err == nil {
		t.Fatal("expected an error when DDPF_FOURCC is not set")
	}
}
