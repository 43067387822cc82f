//go:build (!amd64 && !arm64) && !noasm

package cpu

// detectTier falls back to the portable scalar reference on architectures
// without a specialized dispatch table.
func detectTier() Tier {
	return TierScalar
}
