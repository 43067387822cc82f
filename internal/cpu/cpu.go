// Package cpu caches the CPU feature flags that drive kernel dispatch in
// bc1, bc2, and bc3. Detection happens once at process start; the result is
// immutable read-only state for the lifetime of the process.
package cpu

// Tier identifies a kernel specialization. The constants are in ascending
// dispatch priority: a higher value is preferred when available.
type Tier int

const (
	TierScalar Tier = iota
	TierSSE2
	TierAVX2
	TierAVX512
)

func (t Tier) String() string {
	switch t {
	case TierScalar:
		return "scalar"
	case TierSSE2:
		return "sse2"
	case TierAVX2:
		return "avx2"
	case TierAVX512:
		return "avx512"
	default:
		return "unknown"
	}
}

var selected Tier

func init() {
	selected = detectTier()
}

// SelectedTier returns the best tier available on this process, honoring a
// compile-time pin (see force_scalar.go) over runtime detection.
func SelectedTier() Tier {
	return selected
}

// HasWide reports whether the process should prefer the multi-block "wide"
// kernels over the one-block-per-iteration scalar reference. It is true for
// any tier at or above TierAVX2. Its only reader is color565's
// DecorrelateSlice/RecorrelateSlice, which the BC1, BC2 and BC3 kernels all
// call for their recorrelation passes; the block gather/scatter loops
// themselves have no wide variant.
func HasWide() bool {
	return selected >= TierAVX2
}
