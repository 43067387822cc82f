//go:build noasm

// The noasm build tag pins every kernel to its portable scalar
// specialization, bypassing runtime CPUID probing entirely. Matches
// spec.md §4.3's "build-time switch disables runtime detection and pins
// to compile-time target features."
package cpu

func detectTier() Tier {
	return TierScalar
}
