// Package bc1 implements the reversible transform/untransform kernels for
// BC1 (DXT1) block data, its settings enumeration, and the brute-force
// automatic settings search.
package bc1

import "github.com/dxtlt/dxt-lossless-transform-go/color565"

// BlockSize is the byte size of one BC1 block: two RGB565 endpoints plus a
// 32-bit index field.
const BlockSize = 8

// Settings configures one point in the BC1 design space: which YCoCg-R
// variant (if any) decorrelates the colour endpoints, and whether the two
// endpoints are split into separate streams.
type Settings struct {
	DecorrelationMode    color565.Variant
	SplitColourEndpoints bool
}

// DetransformSettings is structurally identical to Settings; untransform
// takes the same value that transform produced.
type DetransformSettings = Settings

// DefaultSettings returns the settings manual builders fall back to when a
// field is left unconfigured.
func DefaultSettings() Settings {
	return Settings{DecorrelationMode: color565.Variant1, SplitColourEndpoints: true}
}

// AllSettings enumerates every legal BC1 settings value in the fixed order
// the auto-search walks. Fast mode restricts the decorrelation axis to
// {None, Variant1}; comprehensive mode adds Variant2 and Variant3.
//
// The order is frequency-descending: combinations that win on real-world
// textures less often are scanned first, the most commonly winning
// combination (Variant1, split=true) last. The auto-search accepts a
// candidate whose score is less-than-or-equal-to the current best, so a
// late tie is resolved in favor of the frequent combination — this is what
// "ties favor the frequent choice" means in practice.
func AllSettings(comprehensive bool) []Settings {
	variants := []color565.Variant{color565.VariantNone, color565.Variant1}
	if comprehensive {
		variants = []color565.Variant{
			color565.VariantNone, color565.Variant3, color565.Variant2, color565.Variant1,
		}
	}

	out := make([]Settings, 0, len(variants)*2)
	for _, v := range variants {
		out = append(out, Settings{DecorrelationMode: v, SplitColourEndpoints: false})
		out = append(out, Settings{DecorrelationMode: v, SplitColourEndpoints: true})
	}
	return out
}
