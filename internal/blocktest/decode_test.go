package blocktest

import "testing"

func TestDecodeBC1BlockFourColour(t *testing.T) {
	// color0 = red (0xF800), color1 = black (0x0000): color0 > color1, so
	// this is the opaque four-colour mode.
	block := []byte{0x00, 0xF8, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	px := DecodeBC1Block(block)
	for i, p := range px {
		if p.R != 0xFF || p.G != 0 || p.B != 0 || p.A != 0xFF {
			t.Fatalf("pixel %d = %+v, want opaque red", i, p)
		}
	}
}

func TestDecodeBC2BlockPassesThroughExplicitAlpha(t *testing.T) {
	block := make([]byte, 16)
	// alpha nibbles, little-endian 64-bit field, all 0xF (fully opaque).
	for i := 0; i < 8; i++ {
		block[i] = 0xFF
	}
	block[8], block[9] = 0x00, 0xF8 // color0 = red
	block[10], block[11] = 0x00, 0xF8
	px := DecodeBC2Block(block)
	for i, p := range px {
		if p.A != 0xFF {
			t.Fatalf("pixel %d alpha = %d, want 255", i, p.A)
		}
	}
}

func TestDecodeBC3BlockInterpolatesAlphaEndpoints(t *testing.T) {
	block := make([]byte, 16)
	block[0] = 0   // alpha0
	block[1] = 255 // alpha1 — a0 <= a1 branch (4-step interpolation + 0/255)
	block[8], block[9] = 0x00, 0xF8
	block[10], block[11] = 0x00, 0xF8
	px := DecodeBC3Block(block)
	if px[0].A != 0 {
		t.Fatalf("index 0 should decode to alpha0=0, got %d", px[0].A)
	}
}
