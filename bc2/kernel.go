package bc2

import (
	"encoding/binary"

	"github.com/dxtlt/dxt-lossless-transform-go/color565"
	"github.com/dxtlt/dxt-lossless-transform-go/dxterrors"
	"github.com/dxtlt/dxt-lossless-transform-go/internal/scratch"
)

const alphaSize = 8

func blockCount(length int) (int, error) {
	if length%BlockSize != 0 {
		return 0, dxterrors.NewInvalidLength(length, BlockSize)
	}
	return length / BlockSize, nil
}

// Transform gathers src (raw BC2 blocks) into dst: an 8N-byte alpha stream
// followed by the BC1-shaped colour layout settings selects.
func Transform(settings Settings, src, dst []byte) error {
	n, err := blockCount(len(src))
	if err != nil {
		return err
	}
	if len(dst) < len(src) {
		return dxterrors.NewOutputBufferTooSmall(len(src), len(dst))
	}
	kernel(settings)(src[:n*BlockSize], dst[:n*BlockSize], n)
	return nil
}

// Untransform is the inverse of Transform. src and dst may alias the same
// underlying array (the fileformat/dds container handler relies on this):
// scatterAlpha's writes into dst land at offsets the kernels still have left
// to read from src, so src is copied to an owned scratch buffer up front
// rather than read in place.
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

	inverseKernel(settings)(owned, dst[:length], n)
	return nil
}

type kernelFunc func(src, dst []byte, blocks int)

func kernel(s Settings) kernelFunc {
	switch {
	case s.SplitColourEndpoints && s.DecorrelationMode.IsTransforming():
		return func(src, dst []byte, n int) { transformSplitRecorrelate(s.DecorrelationMode, src, dst, n) }
	case s.SplitColourEndpoints:
		return transformSplit
	case s.DecorrelationMode.IsTransforming():
		return func(src, dst []byte, n int) { transformRecorrelate(s.DecorrelationMode, src, dst, n) }
	default:
		return transformStandard
	}
}

func inverseKernel(s DetransformSettings) kernelFunc {
	switch {
	case s.SplitColourEndpoints && s.DecorrelationMode.IsTransforming():
		return func(src, dst []byte, n int) { untransformSplitRecorrelate(s.DecorrelationMode, src, dst, n) }
	case s.SplitColourEndpoints:
		return untransformSplit
	case s.DecorrelationMode.IsTransforming():
		return func(src, dst []byte, n int) { untransformRecorrelate(s.DecorrelationMode, src, dst, n) }
	default:
		return untransformStandard
	}
}

func gatherAlpha(src, alphaOut []byte, n int) {
	for i := 0; i < n; i++ {
		copy(alphaOut[i*alphaSize:i*alphaSize+alphaSize], src[i*BlockSize:i*BlockSize+alphaSize])
	}
}

func scatterAlpha(alphaIn, dst []byte, n int) {
	for i := 0; i < n; i++ {
		copy(dst[i*BlockSize:i*BlockSize+alphaSize], alphaIn[i*alphaSize:i*alphaSize+alphaSize])
	}
}

func transformStandard(src, dst []byte, n int) {
	alpha := dst[0 : alphaSize*n]
	colour := dst[alphaSize*n : alphaSize*n+4*n]
	indices := dst[alphaSize*n+4*n : alphaSize*n+8*n]
	gatherAlpha(src, alpha, n)
	for i := 0; i < n; i++ {
		block := src[i*BlockSize+alphaSize : i*BlockSize+BlockSize]
		copy(colour[i*4:i*4+4], block[0:4])
		copy(indices[i*4:i*4+4], block[4:8])
	}
}

func untransformStandard(src, dst []byte, n int) {
	alpha := src[0 : alphaSize*n]
	colour := src[alphaSize*n : alphaSize*n+4*n]
	indices := src[alphaSize*n+4*n : alphaSize*n+8*n]
	scatterAlpha(alpha, dst, n)
	for i := 0; i < n; i++ {
		block := dst[i*BlockSize+alphaSize : i*BlockSize+BlockSize]
		copy(block[0:4], colour[i*4:i*4+4])
		copy(block[4:8], indices[i*4:i*4+4])
	}
}

func transformRecorrelate(v color565.Variant, src, dst []byte, n int) {
	transformStandard(src, dst, n)
	colour := dst[alphaSize*n : alphaSize*n+4*n]
	recorrelateColourStream(v, colour, n, color565.DecorrelateSlice)
}

func untransformRecorrelate(v color565.Variant, src, dst []byte, n int) {
	alpha := src[0 : alphaSize*n]
	colour := src[alphaSize*n : alphaSize*n+4*n]
	recorrelateColourStream(v, colour, n, color565.RecorrelateSlice)
	indices := src[alphaSize*n+4*n : alphaSize*n+8*n]

	scatterAlpha(alpha, dst, n)
	for i := 0; i < n; i++ {
		block := dst[i*BlockSize+alphaSize : i*BlockSize+BlockSize]
		copy(block[0:4], colour[i*4:i*4+4])
		copy(block[4:8], indices[i*4:i*4+4])
	}
}

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

func transformSplit(src, dst []byte, n int) {
	alpha := dst[0 : alphaSize*n]
	colour0 := dst[alphaSize*n : alphaSize*n+2*n]
	colour1 := dst[alphaSize*n+2*n : alphaSize*n+4*n]
	indices := dst[alphaSize*n+4*n : alphaSize*n+8*n]
	gatherAlpha(src, alpha, n)
	for i := 0; i < n; i++ {
		block := src[i*BlockSize+alphaSize : i*BlockSize+BlockSize]
		copy(colour0[i*2:i*2+2], block[0:2])
		copy(colour1[i*2:i*2+2], block[2:4])
		copy(indices[i*4:i*4+4], block[4:8])
	}
}

func untransformSplit(src, dst []byte, n int) {
	alpha := src[0 : alphaSize*n]
	colour0 := src[alphaSize*n : alphaSize*n+2*n]
	colour1 := src[alphaSize*n+2*n : alphaSize*n+4*n]
	indices := src[alphaSize*n+4*n : alphaSize*n+8*n]
	scatterAlpha(alpha, dst, n)
	for i := 0; i < n; i++ {
		block := dst[i*BlockSize+alphaSize : i*BlockSize+BlockSize]
		copy(block[0:2], colour0[i*2:i*2+2])
		copy(block[2:4], colour1[i*2:i*2+2])
		copy(block[4:8], indices[i*4:i*4+4])
	}
}

func transformSplitRecorrelate(v color565.Variant, src, dst []byte, n int) {
	transformSplit(src, dst, n)
	recorrelateEndpointStream(v, dst[alphaSize*n:alphaSize*n+2*n], n, color565.DecorrelateSlice)
	recorrelateEndpointStream(v, dst[alphaSize*n+2*n:alphaSize*n+4*n], n, color565.DecorrelateSlice)
}

func untransformSplitRecorrelate(v color565.Variant, src, dst []byte, n int) {
	alpha := src[0 : alphaSize*n]
	colour0 := src[alphaSize*n : alphaSize*n+2*n]
	colour1 := src[alphaSize*n+2*n : alphaSize*n+4*n]
	recorrelateEndpointStream(v, colour0, n, color565.RecorrelateSlice)
	recorrelateEndpointStream(v, colour1, n, color565.RecorrelateSlice)
	indices := src[alphaSize*n+4*n : alphaSize*n+8*n]

	scatterAlpha(alpha, dst, n)
	for i := 0; i < n; i++ {
		block := dst[i*BlockSize+alphaSize : i*BlockSize+BlockSize]
		copy(block[0:2], colour0[i*2:i*2+2])
		copy(block[2:4], colour1[i*2:i*2+2])
		copy(block[4:8], indices[i*4:i*4+4])
	}
}

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
