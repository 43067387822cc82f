//go:build amd64 && !noasm

package cpu

import "golang.org/x/sys/cpu"

// detectTier probes CPUID through golang.org/x/sys/cpu, in priority order
// highest first: AVX-512BW/F, then AVX2, then the SSE2 baseline every
// amd64 CPU has.
func detectTier() Tier {
	if cpu.X86.HasAVX512F && cpu.X86.HasAVX512BW {
		return TierAVX512
	}
	if cpu.X86.HasAVX2 {
		return TierAVX2
	}
	return TierSSE2
}
