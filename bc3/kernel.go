package bc3

import (
	"encoding/binary"

	"github.com/dxtlt/dxt-lossless-transform-go/color565"
	"github.com/dxtlt/dxt-lossless-transform-go/dxterrors"
	"github.com/dxtlt/dxt-lossless-transform-go/internal/scratch"
)

func blockCount(length int) (int, error) {
	if length%BlockSize != 0 {
		return 0, dxterrors.NewInvalidLength(length, BlockSize)
	}
	return length / BlockSize, nil
}

// Transform gathers src (raw BC3 blocks) into dst, laid out according to
// settings: alpha stream(s), then the alpha-indices stream, then the
// BC1-shaped colour layout settings selects.
func Transform(settings Settings, src, dst []byte) error {
	n, err := blockCount(len(src))
	if err != nil {
		return err
	}
	if len(dst) < len(src) {
		return dxterrors.NewOutputBufferTooSmall(len(src), len(dst))
	}
	run(settings, src[:n*BlockSize], dst[:n*BlockSize], n, gather)
	return nil
}

// Untransform is the inverse of Transform. src and dst may alias the same
// underlying array (the fileformat/dds container handler relies on this):
// run's per-block writes into dst land at offsets that don't line up with
// the stream offsets it still has left to read from src, so src is copied
// to an owned scratch buffer up front rather than read in place.
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

	run(settings, owned, dst[:length], n, scatter)
	return nil
}

type direction int

const (
	gather  direction = iota // AoS (blocks) -> SoA (streams)
	scatter                  // SoA (streams) -> AoS (blocks)
)

// streamLayout computes the byte offsets of every stream within the split
// output buffer for n blocks under settings.
type streamLayout struct {
	alpha0, alpha1               [2]int // unused unless SplitAlphaEndpoints
	alphaEndpoints               [2]int // unused if SplitAlphaEndpoints
	alphaIndices                 [2]int
	colour                       [2]int // unused if SplitColourEndpoints
	colour0, colour1             [2]int // unused unless SplitColourEndpoints
	indices                      [2]int
}

func computeLayout(s Settings, n int) streamLayout {
	var l streamLayout
	off := 0

	if s.SplitAlphaEndpoints {
		l.alpha0 = [2]int{off, off + n}
		off += n
		l.alpha1 = [2]int{off, off + n}
		off += n
	} else {
		l.alphaEndpoints = [2]int{off, off + alphaEndpointsSize*n}
		off += alphaEndpointsSize * n
	}

	l.alphaIndices = [2]int{off, off + alphaIndicesSize*n}
	off += alphaIndicesSize * n

	if s.SplitColourEndpoints {
		l.colour0 = [2]int{off, off + 2*n}
		off += 2 * n
		l.colour1 = [2]int{off, off + 2*n}
		off += 2 * n
	} else {
		l.colour = [2]int{off, off + 4*n}
		off += 4 * n
	}

	l.indices = [2]int{off, off + 4*n}
	return l
}

func run(s Settings, src, dst []byte, n int, dir direction) {
	l := computeLayout(s, n)

	// AoS<->SoA for every block-local field except colour, which may need
	// a recorrelation pass.
	for i := 0; i < n; i++ {
		var block []byte
		if dir == gather {
			block = src[i*BlockSize : i*BlockSize+BlockSize]
		} else {
			block = dst[i*BlockSize : i*BlockSize+BlockSize]
		}

		if s.SplitAlphaEndpoints {
			moveByte(dir, block, 0, dst, src, l.alpha0[0]+i)
			moveByte(dir, block, 1, dst, src, l.alpha1[0]+i)
		} else {
			moveBytes(dir, block, 0, 2, dst, src, l.alphaEndpoints[0]+i*2)
		}
		moveBytes(dir, block, 2, alphaIndicesSize, dst, src, l.alphaIndices[0]+i*alphaIndicesSize)
		moveBytes(dir, block, 12, 4, dst, src, l.indices[0]+i*4)
	}

	if s.SplitColourEndpoints {
		gatherOrScatterColourSplit(s, src, dst, n, l, dir)
	} else {
		gatherOrScatterColour(s, src, dst, n, l, dir)
	}
}

func moveByte(dir direction, block []byte, blockOff int, dst, src []byte, streamOff int) {
	if dir == gather {
		dst[streamOff] = block[blockOff]
	} else {
		block[blockOff] = src[streamOff]
	}
}

func moveBytes(dir direction, block []byte, blockOff, n int, dst, src []byte, streamOff int) {
	if dir == gather {
		copy(dst[streamOff:streamOff+n], block[blockOff:blockOff+n])
	} else {
		copy(block[blockOff:blockOff+n], src[streamOff:streamOff+n])
	}
}

func gatherOrScatterColour(s Settings, src, dst []byte, n int, l streamLayout, dir direction) {
	colourOff := 8 // offset of the colour half within a BC3 block
	if dir == gather {
		colour := dst[l.colour[0]:l.colour[1]]
		for i := 0; i < n; i++ {
			block := src[i*BlockSize+colourOff : i*BlockSize+BlockSize]
			copy(colour[i*4:i*4+4], block[0:4])
		}
		if s.DecorrelationMode.IsTransforming() {
			recorrelateColourStream(s.DecorrelationMode, colour, n, color565.DecorrelateSlice)
		}
		return
	}

	colour := src[l.colour[0]:l.colour[1]]
	if s.DecorrelationMode.IsTransforming() {
		recorrelateColourStream(s.DecorrelationMode, colour, n, color565.RecorrelateSlice)
	}
	for i := 0; i < n; i++ {
		block := dst[i*BlockSize+colourOff : i*BlockSize+BlockSize]
		copy(block[0:4], colour[i*4:i*4+4])
	}
}

func gatherOrScatterColourSplit(s Settings, src, dst []byte, n int, l streamLayout, dir direction) {
	colourOff := 8
	if dir == gather {
		colour0 := dst[l.colour0[0]:l.colour0[1]]
		colour1 := dst[l.colour1[0]:l.colour1[1]]
		for i := 0; i < n; i++ {
			block := src[i*BlockSize+colourOff : i*BlockSize+BlockSize]
			copy(colour0[i*2:i*2+2], block[0:2])
			copy(colour1[i*2:i*2+2], block[2:4])
		}
		if s.DecorrelationMode.IsTransforming() {
			recorrelateEndpointStream(s.DecorrelationMode, colour0, n, color565.DecorrelateSlice)
			recorrelateEndpointStream(s.DecorrelationMode, colour1, n, color565.DecorrelateSlice)
		}
		return
	}

	colour0 := src[l.colour0[0]:l.colour0[1]]
	colour1 := src[l.colour1[0]:l.colour1[1]]
	if s.DecorrelationMode.IsTransforming() {
		recorrelateEndpointStream(s.DecorrelationMode, colour0, n, color565.RecorrelateSlice)
		recorrelateEndpointStream(s.DecorrelationMode, colour1, n, color565.RecorrelateSlice)
	}
	for i := 0; i < n; i++ {
		block := dst[i*BlockSize+colourOff : i*BlockSize+BlockSize]
		copy(block[0:2], colour0[i*2:i*2+2])
		copy(block[2:4], colour1[i*2:i*2+2])
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
