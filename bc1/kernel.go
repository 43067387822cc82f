package bc1

import (
	"encoding/binary"

	"github.com/dxtlt/dxt-lossless-transform-go/color565"
	"github.com/dxtlt/dxt-lossless-transform-go/dxterrors"
	"github.com/dxtlt/dxt-lossless-transform-go/internal/scratch"
)

// blockCount validates that len is a legal multiple of BlockSize and returns
// the block count, or an error if not.
func blockCount(length int) (int, error) {
	if length%BlockSize != 0 {
		return 0, dxterrors.NewInvalidLength(length, BlockSize)
	}
	return length / BlockSize, nil
}

// Transform gathers src (raw BC1 blocks) into dst, laid out according to
// settings. len(src) must be a multiple of BlockSize; len(dst) must be at
// least len(src). src and dst must not overlap.
func Transform(settings Settings, src, dst []byte) error {
	n, err := blockCount(len(src))
	if err != nil {
		return err
	}
	if len(dst) < len(src) {
		return dxterrors.NewOutputBufferTooSmall(len(src), len(dst))
	}
	transformKernel(settings)(src[:n*BlockSize], dst[:n*BlockSize], n)
	return nil
}

// Untransform is the inverse of Transform: it scatters the split streams in
// src back into raw BC1 blocks in dst, using the same settings that were
// passed to Transform. src and dst may alias the same underlying array (the
// fileformat/dds container handler relies on this): the scatter loops write
// block i over stream bytes that later blocks still have to read, so src is
// copied to an owned scratch buffer up front rather than read in place.
func Untransform(settings DetransformSettings, src, dst []byte) error {
	n, err := blockCount(len(src))
	if err != nil {
		return err
	}
	if len(dst) < len(src) {
		return dxterrors.NewOutputBufferTooSmall(len(src), len(dst))
	}
	length := n * BlockSize

	owned := scratch.Get(length)
	defer scratch.Put(owned)
	copy(owned, src[:length])

	untransformKernel(settings)(owned, dst[:length], n)
	return nil
}

type kernelFunc func(src, dst []byte, blocks int)

// transformKernel selects one of the four gather kernels described in
// spec.md §4.2 by the two-axis design space (split_colour × decorrelation).
func transformKernel(s Settings) kernelFunc {
	switch {
	case s.SplitColourEndpoints && s.DecorrelationMode.IsTransforming():
		return func(src, dst []byte, n int) { transformSplitColourRecorrelate(s.DecorrelationMode, src, dst, n) }
	case s.SplitColourEndpoints:
		return transformSplitColour
	case s.DecorrelationMode.IsTransforming():
		return func(src, dst []byte, n int) { transformRecorrelate(s.DecorrelationMode, src, dst, n) }
	default:
		return transformStandard
	}
}

func untransformKernel(s DetransformSettings) kernelFunc {
	switch {
	case s.SplitColourEndpoints && s.DecorrelationMode.IsTransforming():
		return func(src, dst []byte, n int) { untransformSplitColourRecorrelate(s.DecorrelationMode, src, dst, n) }
	case s.SplitColourEndpoints:
		return untransformSplitColour
	case s.DecorrelationMode.IsTransforming():
		return func(src, dst []byte, n int) { untransformRecorrelate(s.DecorrelationMode, src, dst, n) }
	default:
		return untransformStandard
	}
}

// transformStandard gathers the 4-byte colour pair and 4-byte index field
// of every block into two contiguous streams: colour (4N bytes) then
// indices (4N bytes). It never touches colour bytes, so it is also the
// identity transform's colour path.
func transformStandard(src, dst []byte, n int) {
	colour := dst[0 : 4*n]
	indices := dst[4*n : 8*n]
	for i := 0; i < n; i++ {
		block := src[i*BlockSize : i*BlockSize+BlockSize]
		copy(colour[i*4:i*4+4], block[0:4])
		copy(indices[i*4:i*4+4], block[4:8])
	}
}

func untransformStandard(src, dst []byte, n int) {
	colour := src[0 : 4*n]
	indices := src[4*n : 8*n]
	for i := 0; i < n; i++ {
		block := dst[i*BlockSize : i*BlockSize+BlockSize]
		copy(block[0:4], colour[i*4:i*4+4])
		copy(block[4:8], indices[i*4:i*4+4])
	}
}

// transformRecorrelate runs transformStandard and then rewrites the colour
// stream in place through the YCoCg-R forward lift; the stream's position
// and length are unchanged (spec.md §3.4).
func transformRecorrelate(v color565.Variant, src, dst []byte, n int) {
	transformStandard(src, dst, n)
	recorrelateColourStream(v, dst[0:4*n], n, color565.DecorrelateSlice)
}

func untransformRecorrelate(v color565.Variant, src, dst []byte, n int) {
	colour := src[0 : 4*n]
	recorrelated := make([]byte, 4*n)
	copy(recorrelated, colour)
	recorrelateColourStream(v, recorrelated, n, color565.RecorrelateSlice)

	indices := src[4*n : 8*n]
	for i := 0; i < n; i++ {
		block := dst[i*BlockSize : i*BlockSize+BlockSize]
		copy(block[0:4], recorrelated[i*4:i*4+4])
		copy(block[4:8], indices[i*4:i*4+4])
	}
}

// recorrelateColourStream applies fn (Decorrelate- or RecorrelateSlice) to
// both 16-bit endpoints packed in a 4-byte-per-block colour stream, in
// place.
func recorrelateColourStream(v color565.Variant, colour []byte, n int, fn func(color565.Variant, []color565.Color565, []color565.Color565)) {
	lanes := make([]color565.Color565, 2*n)
	for i := 0; i < n; i++ {
		lanes[2*i] = color565.FromRaw(binary.LittleEndian.Uint16(colour[i*4:]))
		lanes[2*i+1] = color565.FromRaw(binary.LittleEndian.Uint16(colour[i*4+2:]))
	}
	fn(v, lanes, lanes)
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint16(colour[i*4:], lanes[2*i].Raw())
		binary.LittleEndian.PutUint16(colour[i*4+2:], lanes[2*i+1].Raw())
	}
}

// transformSplitColour gathers colour0, colour1, and indices into three
// separate streams (2N, 2N, 4N bytes).
func transformSplitColour(src, dst []byte, n int) {
	colour0 := dst[0 : 2*n]
	colour1 := dst[2*n : 4*n]
	indices := dst[4*n : 8*n]
	for i := 0; i < n; i++ {
		block := src[i*BlockSize : i*BlockSize+BlockSize]
		copy(colour0[i*2:i*2+2], block[0:2])
		copy(colour1[i*2:i*2+2], block[2:4])
		copy(indices[i*4:i*4+4], block[4:8])
	}
}

func untransformSplitColour(src, dst []byte, n int) {
	colour0 := src[0 : 2*n]
	colour1 := src[2*n : 4*n]
	indices := src[4*n : 8*n]
	for i := 0; i < n; i++ {
		block := dst[i*BlockSize : i*BlockSize+BlockSize]
		copy(block[0:2], colour0[i*2:i*2+2])
		copy(block[2:4], colour1[i*2:i*2+2])
		copy(block[4:8], indices[i*4:i*4+4])
	}
}

// transformSplitColourRecorrelate is transformSplitColour with both colour
// streams rewritten through the YCoCg-R forward lift. colour0 and colour1
// are recorrelated independently: each stream holds one endpoint per block,
// and the lift operates per-endpoint regardless of which stream it lives
// in.
func transformSplitColourRecorrelate(v color565.Variant, src, dst []byte, n int) {
	transformSplitColour(src, dst, n)
	recorrelateEndpointStream(v, dst[0:2*n], n, color565.DecorrelateSlice)
	recorrelateEndpointStream(v, dst[2*n:4*n], n, color565.DecorrelateSlice)
}

func untransformSplitColourRecorrelate(v color565.Variant, src, dst []byte, n int) {
	colour0 := make([]byte, 2*n)
	colour1 := make([]byte, 2*n)
	copy(colour0, src[0:2*n])
	copy(colour1, src[2*n:4*n])
	recorrelateEndpointStream(v, colour0, n, color565.RecorrelateSlice)
	recorrelateEndpointStream(v, colour1, n, color565.RecorrelateSlice)

	indices := src[4*n : 8*n]
	for i := 0; i < n; i++ {
		block := dst[i*BlockSize : i*BlockSize+BlockSize]
		copy(block[0:2], colour0[i*2:i*2+2])
		copy(block[2:4], colour1[i*2:i*2+2])
		copy(block[4:8], indices[i*4:i*4+4])
	}
}

// recorrelateEndpointStream applies fn to a stream holding one 16-bit
// endpoint per block, in place.
func recorrelateEndpointStream(v color565.Variant, stream []byte, n int, fn func(color565.Variant, []color565.Color565, []color565.Color565)) {
	lanes := make([]color565.Color565, n)
	for i := 0; i < n; i++ {
		lanes[i] = color565.FromRaw(binary.LittleEndian.Uint16(stream[i*2:]))
	}
	fn(v, lanes, lanes)
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint16(stream[i*2:], lanes[i].Raw())
	}
}
