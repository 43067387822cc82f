// Package bc3 implements the reversible transform/untransform kernels for
// BC3 (DXT4/DXT5) block data. BC3 extends BC2's colour half with
// interpolated alpha (two 8-bit endpoints plus 6 bytes of 3-bit indices)
// instead of BC2's explicit 4-bit alpha.
package bc3

import "github.com/dxtlt/dxt-lossless-transform-go/color565"

// BlockSize is the byte size of one BC3 block: 2 bytes of alpha endpoints,
// 6 bytes of alpha indices, and an 8-byte BC1-shaped colour half.
const BlockSize = 16

const (
	alphaEndpointsSize = 2
	alphaIndicesSize   = 6
)

// Settings configures one point in the BC3 design space: BC1/BC2's two
// axes plus whether the alpha endpoints are further split into separate
// alpha0/alpha1 streams.
type Settings struct {
	DecorrelationMode    color565.Variant
	SplitColourEndpoints bool
	SplitAlphaEndpoints  bool
}

// DetransformSettings is structurally identical to Settings.
type DetransformSettings = Settings

// DefaultSettings matches spec.md §3.3: Variant1, both split axes enabled.
func DefaultSettings() Settings {
	return Settings{
		DecorrelationMode:    color565.Variant1,
		SplitColourEndpoints: true,
		SplitAlphaEndpoints:  true,
	}
}

// AllSettings enumerates every legal BC3 settings value. Order is
// frequency-descending on all three axes: the win-rate table referenced by
// spec.md §9's open question puts (split_alpha=true, split_colour=true) as
// the dominant combination, so it is scanned last within each
// decorrelation variant.
func AllSettings(comprehensive bool) []Settings {
	variants := []color565.Variant{color565.VariantNone, color565.Variant1}
	if comprehensive {
		variants = []color565.Variant{
			color565.VariantNone, color565.Variant3, color565.Variant2, color565.Variant1,
		}
	}

	out := make([]Settings, 0, len(variants)*4)
	for _, v := range variants {
		for _, splitAlpha := range [2]bool{false, true} {
			for _, splitColour := range [2]bool{false, true} {
				out = append(out, Settings{
					DecorrelationMode:    v,
					SplitColourEndpoints: splitColour,
					SplitAlphaEndpoints:  splitAlpha,
				})
			}
		}
	}
	return out
}
