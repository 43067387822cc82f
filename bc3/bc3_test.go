package bc3

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/dxtlt/dxt-lossless-transform-go/estimator/lzmatch"
	"github.com/dxtlt/dxt-lossless-transform-go/internal/blocktest"
)

func randomBC3Blocks(n int, seed int64) []byte {
	r := rand.New(rand.NewSource(seed))
	buf := make([]byte, n*BlockSize)
	r.Read(buf)
	return buf
}

// TestPixelPreservation checks spec.md §8 property 2: decoding every block
// of src and of untransform(transform(src)) must produce identical pixels.
func TestPixelPreservation(t *testing.T) {
	src := randomBC3Blocks(32, 101)
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
			want := blocktest.DecodeBC3Block(src[i*BlockSize:])
			got := blocktest.DecodeBC3Block(restored[i*BlockSize:])
			if want != got {
				t.Fatalf("settings=%+v block %d: pixels differ after round trip", s, i)
			}
		}
	}
}

func TestRoundTripAllSettings(t *testing.T) {
	for _, n := range []int{1, 2, 5, 17, 64, 129} {
		src := randomBC3Blocks(n, int64(n)+3)
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

func TestAllSettingsComprehensiveCount(t *testing.T) {
	if got := len(AllSettings(true)); got != 16 {
		t.Fatalf("comprehensive mode should have 16 combinations, got %d", got)
	}
	if got := len(AllSettings(false)); got != 8 {
		t.Fatalf("fast mode should have 8 combinations, got %d", got)
	}
}

func TestTransformAutoRoundTripsAndIsDeterministic(t *testing.T) {
	src := randomBC3Blocks(40, 11)
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
