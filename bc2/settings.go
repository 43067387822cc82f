// Package bc2 implements the reversible transform/untransform kernels for
// BC2 (DXT2/DXT3) block data. BC2 extends BC1's colour half with a 64-bit
// explicit alpha field that every kernel passes through unchanged.
package bc2

import "github.com/dxtlt/dxt-lossless-transform-go/color565"

// BlockSize is the byte size of one BC2 block: 8 bytes of explicit alpha
// followed by an 8-byte BC1-shaped colour half.
const BlockSize = 16

// Settings configures one point in the BC2 design space. It has the same
// shape as bc1.Settings; BC2 does not introduce a design axis of its own.
type Settings struct {
	DecorrelationMode    color565.Variant
	SplitColourEndpoints bool
}

// DetransformSettings is structurally identical to Settings.
type DetransformSettings = Settings

// DefaultSettings mirrors bc1.DefaultSettings.
func DefaultSettings() Settings {
	return Settings{DecorrelationMode: color565.Variant1, SplitColourEndpoints: true}
}

// AllSettings enumerates every legal BC2 settings value in the same fixed,
// frequency-descending order bc1.AllSettings uses.
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
