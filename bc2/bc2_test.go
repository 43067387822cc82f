package bc2

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/dxtlt/dxt-lossless-transform-go/estimator/lzmatch"
	"github.com/dxtlt/dxt-lossless-transform-go/internal/blocktest"
)

func randomBC2Blocks(n int, seed int64) []byte {
	r := rand.New(rand.NewSource(seed))
	buf := make([]byte, n*BlockSize)
	r.Read(buf)
	return buf
}

// TestPixelPreservation checks spec.md §8 property 2: decoding every block
// of src and of untransform(transform(src)) must produce identical pixels.
func TestPixelPreservation(t *testing.T) {
	src := randomBC2Blocks(32, 100)
	for _, s := range AllSettings(true) {
		dst := make([]byte, len(src))
		if err := Transform(s, src, dst); err != nil {
			t.Fatalf("settings=%+v: %v", s, err)
		}
		restored := make([]byte, len(src))
		if err := Untransform(s, dst, restored); err != nil {
			t.Fatalf("settings=%+v: %v", s, err)
		}

		for i := 0; i < len(src)/BlockSize; i++ {
			want := blocktest.DecodeBC2Block(src[i*BlockSize:])
			got := blocktest.DecodeBC2Block(restored[i*BlockSize:])
			if want != got {
				t.Fatalf("settings=%+v block %d: pixels differ after round trip", s, i)
			}
		}
	}
}

func TestRoundTripAllSettings(t *testing.T) {
	for _, n := range []int{1, 2, 5, 17, 64, 129} {
		src := randomBC2Blocks(n, int64(n)+1)
		for _, s := range AllSettings(true) {
			dst := make([]byte, len(src))
			if err := Transform(s, src, dst); err != nil {
				t.Fatalf("n=%d settings=%+v: Transform error: %v", n, s, err)
			}
			restored := make([]byte, len(src))
			if err := Untransform(s, dst, restored); err != nil {
				t.Fatalf("n=%d settings=%+v: Untransform error: %v", n, s, err)
			}
			if !bytes.Equal(src, restored) {
				t.Fatalf("n=%d settings=%+v: round trip mismatch", n, s)
			}
		}
	}
}

// TestScenarioS2 reproduces spec.md §8 scenario S2 verbatim.
func TestScenarioS2(t *testing.T) {
	src := []byte{
		0x10, 0x32, 0x54, 0x76, 0x98, 0xBA, 0xDC, 0xFE,
		0x00, 0xF8, 0x00, 0xF8, 0x00, 0x00, 0x00, 0x00,
	}
	settings := Settings{SplitColourEndpoints: false}

	dst := make([]byte, len(src))
	if err := Transform(settings, src, dst); err != nil {
		t.Fatalf("Transform: %v", err)
	}
	want := []byte{
		0x10, 0x32, 0x54, 0x76, 0x98, 0xBA, 0xDC, 0xFE,
		0x00, 0xF8, 0x00, 0xF8,
		0x00, 0x00, 0x00, 0x00,
	}
	if !bytes.Equal(dst, want) {
		t.Fatalf("transformed = % x, want % x", dst, want)
	}

	restored := make([]byte, len(src))
	if err := Untransform(settings, dst, restored); err != nil {
		t.Fatalf("Untransform: %v", err)
	}
	if !bytes.Equal(restored, src) {
		t.Fatalf("restored = % x, want % x", restored, src)
	}
}

func TestTransformAutoRoundTripsAndIsDeterministic(t *testing.T) {
	src := randomBC2Blocks(48, 7)
	est := lzmatch.New()

	dst1 := make([]byte, len(src))
	s1, err := TransformAuto(EstimateSettings{Estimator: est, UseAllDecorrelationModes: true}, src, dst1)
	if err != nil {
		t.Fatalf("TransformAuto: %v", err)
	}
	dst2 := make([]byte, len(src))
	s2, err := TransformAuto(EstimateSettings{Estimator: est, UseAllDecorrelationModes: true}, src, dst2)
	if err != nil {
		t.Fatalf("TransformAuto (second call): %v", err)
	}
	if s1 != s2 || !bytes.Equal(dst1, dst2) {
		t.Fatalf("TransformAuto is not deterministic")
	}

	restored := make([]byte, len(src))
	if err := Untransform(s1, dst1, restored); err != nil {
		t.Fatalf("Untransform: %v", err)
	}
	if !bytes.Equal(src, restored) {
		t.Fatalf("TransformAuto round trip mismatch")
	}
}

func TestTransformRejectsInvalidLength(t *testing.T) {
	src := make([]byte, 15)
	dst := make([]byte, 16)
	if err := Transform(DefaultSettings(), src, dst); err == nil {
		t.Fatal("expected an error for a length not a multiple of BlockSize")
	}
}
