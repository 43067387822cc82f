// Package lzmatch implements a fast, allocation-free size estimator based
// on counting LZ77-style back-references rather than running a real
// compressor. It needs no scratch buffer, so MaxCompressedSize is always 0;
// cmd/dxtlt uses it as its default estimator.
package lzmatch

import (
	"encoding/binary"

	"github.com/dxtlt/dxt-lossless-transform-go/estimator"
)

const (
	minMatch    = 4
	hashBits    = 15
	hashSize    = 1 << hashBits
	windowLimit = 1 << 16
)

// Estimator counts matched bytes against a sliding window and scores
// candidates by how many bytes a real LZ-based compressor would likely be
// able to reference rather than emit literally. Lower scores mean more
// matched (and so more compressible) bytes were found.
type Estimator struct{}

var _ estimator.Estimator = (*Estimator)(nil)

// New constructs an Estimator. There is no configuration: the match window
// and minimum match length are fixed.
func New() *Estimator { return &Estimator{} }

// MaxCompressedSize always returns 0: this estimator does no compression of
// its own and needs no scratch buffer.
func (*Estimator) MaxCompressedSize(int) (int, error) { return 0, nil }

// SupportsDataTypeDifferentiation reports false: match counting treats every
// byte stream identically regardless of hint.
func (*Estimator) SupportsDataTypeDifferentiation() bool { return false }

// EstimateCompressedSize scores input with a single greedy left-to-right
// scan: every position either extends a match found via a rolling hash of
// the last minMatch bytes, or is counted as a literal. The returned score is
// `literalBytes + matchCount*3` (an approximation of a 3-byte match token),
// which is lower when more of the input is covered by matches.
func (*Estimator) EstimateCompressedSize(input []byte, _ estimator.DataTypeHint, _ []byte) (uint64, error) {
	return uint64(scan(input)), nil
}

func scan(input []byte) int {
	n := len(input)
	if n < minMatch {
		return n
	}

	var table [hashSize]int32
	for i := range table {
		table[i] = -1
	}

	literalBytes := 0
	matchTokens := 0

	i := 0
	for i+minMatch <= n {
		h := hash4(input[i:])
		cand := int(table[h])
		table[h] = int32(i)

		if cand >= 0 && i-cand <= windowLimit && matches4(input, cand, i) {
			length := matchLength(input, cand, i)
			matchTokens++
			i += length
			continue
		}

		literalBytes++
		i++
	}
	literalBytes += n - i

	return literalBytes + matchTokens*3
}

func hash4(b []byte) uint32 {
	v := binary.LittleEndian.Uint32(b)
	return (v * 2654435761) >> (32 - hashBits)
}

func matches4(input []byte, a, b int) bool {
	return input[a] == input[b] && input[a+1] == input[b+1] &&
		input[a+2] == input[b+2] && input[a+3] == input[b+3]
}

// matchLength extends a known 4-byte match at (a, b) as far as it can,
// never reading past the end of input.
func matchLength(input []byte, a, b int) int {
	n := len(input)
	length := 0
	for b+length < n && input[a+length] == input[b+length] {
		length++
	}
	return length
}
