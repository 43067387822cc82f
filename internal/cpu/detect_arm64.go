//go:build arm64 && !noasm

package cpu

import "golang.org/x/sys/cpu"

// detectTier treats NEON/ASIMD (present on every arm64 CPU Go supports) as
// the "wide" tier equivalent: color565's slice helpers only distinguish
// TierScalar from "at least as capable as AVX2" (see cpu.HasWide), so ARM64
// is reported as TierAVX2 once ASIMD is confirmed present.
func detectTier() Tier {
	if cpu.ARM64.HasASIMD {
		return TierAVX2
	}
	return TierScalar
}
