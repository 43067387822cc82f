package color565

import "github.com/dxtlt/dxt-lossless-transform-go/internal/cpu"

// DecorrelateSlice applies Decorrelate(v, ·) to every element of src,
// writing the result into dst. len(dst) must be >= len(src). The wide tier
// is used whenever internal/cpu reports AVX2-or-better; it processes eight
// lanes per loop iteration and falls back to the scalar path for the tail,
// matching the batching spec.md §4.1 describes for the SIMD variants.
func DecorrelateSlice(v Variant, dst, src []Color565) {
	if v == VariantNone {
		copy(dst, src)
		return
	}
	if cpu.HasWide() {
		decorrelateWide(v, dst, src)
		return
	}
	decorrelateScalar(v, dst, src)
}

// RecorrelateSlice is the inverse of DecorrelateSlice.
func RecorrelateSlice(v Variant, dst, src []Color565) {
	if v == VariantNone {
		copy(dst, src)
		return
	}
	if cpu.HasWide() {
		recorrelateWide(v, dst, src)
		return
	}
	recorrelateScalar(v, dst, src)
}

func decorrelateScalar(v Variant, dst, src []Color565) {
	for i, c := range src {
		dst[i] = Decorrelate(v, c)
	}
}

func recorrelateScalar(v Variant, dst, src []Color565) {
	for i, c := range src {
		dst[i] = Recorrelate(v, c)
	}
}

const wideLanes = 8

// decorrelateWide processes wideLanes colours per iteration to mirror the
// SIMD lane width of the AVX2/AVX-512 specializations; the tail shorter
// than wideLanes falls back to the scalar loop.
func decorrelateWide(v Variant, dst, src []Color565) {
	n := len(src)
	i := 0
	for ; i+wideLanes <= n; i += wideLanes {
		var lanes [wideLanes]Color565
		for l := 0; l < wideLanes; l++ {
			lanes[l] = Decorrelate(v, src[i+l])
		}
		copy(dst[i:i+wideLanes], lanes[:])
	}
	decorrelateScalar(v, dst[i:n], src[i:n])
}

func recorrelateWide(v Variant, dst, src []Color565) {
	n := len(src)
	i := 0
	for ; i+wideLanes <= n; i += wideLanes {
		var lanes [wideLanes]Color565
		for l := 0; l < wideLanes; l++ {
			lanes[l] = Recorrelate(v, src[i+l])
		}
		copy(dst[i:i+wideLanes], lanes[:])
	}
	recorrelateScalar(v, dst[i:n], src[i:n])
}
