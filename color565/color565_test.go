package color565

import "testing"

func TestFromRGB8RoundTripsThroughChannels(t *testing.T) {
	c := FromRGB8(0xFF, 0x80, 0x10)
	if c.R5() != 31 {
		t.Fatalf("R5 = %d, want 31", c.R5())
	}
	if c.G6() != 32 {
		t.Fatalf("G6 = %d, want 32", c.G6())
	}
	if c.B5() != 2 {
		t.Fatalf("B5 = %d, want 2", c.B5())
	}
}

func TestRGB8ExpansionReplicatesTopBits(t *testing.T) {
	c := FromRaw(0xFFFF)
	r, g, b := c.RGB8()
	if r != 0xFF || g != 0xFF || b != 0xFF {
		t.Fatalf("RGB8() = (%d,%d,%d), want (255,255,255)", r, g, b)
	}
	c = FromRaw(0)
	r, g, b = c.RGB8()
	if r != 0 || g != 0 || b != 0 {
		t.Fatalf("RGB8() = (%d,%d,%d), want (0,0,0)", r, g, b)
	}
}

func TestRawRoundTrip(t *testing.T) {
	for v := 0; v <= 0xFFFF; v += 257 {
		c := FromRaw(uint16(v))
		if c.Raw() != uint16(v) {
			t.Fatalf("Raw() = %x, want %x", c.Raw(), v)
		}
	}
}

// TestDecorrelateRecorrelateExhaustive proves the lift is a bijection over
// the full 16-bit Color565 domain for every transforming variant: it is the
// proof referenced by the comment at the top of decorrelate.go.
func TestDecorrelateRecorrelateExhaustive(t *testing.T) {
	for _, v := range AllVariants() {
		v := v
		t.Run(v.String(), func(t *testing.T) {
			raw := 0
			for {
				c := FromRaw(uint16(raw))
				got := Recorrelate(v, Decorrelate(v, c))
				if got != c {
					t.Fatalf("variant %s: round trip failed for raw=0x%04x: got 0x%04x", v, raw, got.Raw())
				}
				if raw == 0xFFFF {
					break
				}
				raw++
			}
		})
	}
}

func TestDecorrelateNoneIsIdentity(t *testing.T) {
	c := FromRaw(0xBEEF)
	if Decorrelate(VariantNone, c) != c {
		t.Fatalf("Decorrelate(VariantNone, ·) must be identity")
	}
	if Recorrelate(VariantNone, c) != c {
		t.Fatalf("Recorrelate(VariantNone, ·) must be identity")
	}
}

func TestSliceHelpersMatchScalarElementwise(t *testing.T) {
	src := make([]Color565, 257)
	for i := range src {
		src[i] = FromRaw(uint16(i * 251))
	}
	for _, v := range AllVariants() {
		dst := make([]Color565, len(src))
		DecorrelateSlice(v, dst, src)
		for i, c := range src {
			want := Decorrelate(v, c)
			if dst[i] != want {
				t.Fatalf("variant %s: DecorrelateSlice[%d] = %x, want %x", v, i, dst[i], want)
			}
		}

		back := make([]Color565, len(dst))
		RecorrelateSlice(v, back, dst)
		for i, c := range src {
			if back[i] != c {
				t.Fatalf("variant %s: RecorrelateSlice[%d] = %x, want %x", v, i, back[i], c)
			}
		}
	}
}

// TestWideMatchesScalar checks spec.md §8 property 5: the runtime-dispatched
// "wide" path and the portable scalar path must produce byte-identical
// results for every variant and a range of slice lengths, independent of
// which tier internal/cpu actually selected on this machine.
func TestWideMatchesScalar(t *testing.T) {
	for n := 0; n < wideLanes*3+5; n++ {
		src := make([]Color565, n)
		for i := range src {
			src[i] = FromRaw(uint16(i*6151 + 17))
		}
		for _, v := range AllVariants() {
			wantDst := make([]Color565, n)
			decorrelateScalar(v, wantDst, src)
			gotDst := make([]Color565, n)
			decorrelateWide(v, gotDst, src)
			for i := range wantDst {
				if wantDst[i] != gotDst[i] {
					t.Fatalf("variant %s n=%d: wide[%d] = %x, want scalar's %x", v, n, i, gotDst[i], wantDst[i])
				}
			}

			wantBack := make([]Color565, n)
			recorrelateScalar(v, wantBack, wantDst)
			gotBack := make([]Color565, n)
			recorrelateWide(v, gotBack, gotDst)
			for i := range wantBack {
				if wantBack[i] != gotBack[i] {
					t.Fatalf("variant %s n=%d: recorrelate wide[%d] = %x, want scalar's %x", v, n, i, gotBack[i], wantBack[i])
				}
			}
		}
	}
}

func TestSliceHelpersHandleShortTail(t *testing.T) {
	for n := 0; n < wideLanes*2+3; n++ {
		src := make([]Color565, n)
		for i := range src {
			src[i] = FromRaw(uint16(i * 97))
		}
		dst := make([]Color565, n)
		DecorrelateSlice(Variant2, dst, src)
		back := make([]Color565, n)
		RecorrelateSlice(Variant2, back, dst)
		for i, c := range src {
			if back[i] != c {
				t.Fatalf("n=%d: round trip failed at %d", n, i)
			}
		}
	}
}
