package qr

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestPNGRenderer_Render(t *testing.T) {
	r := NewPNGRenderer(128)

	png, err := r.Render("/some/redirect/vq5ejng0p6")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if !bytes.HasPrefix(png, pngMagic) {
		t.Errorf("output does not start with PNG magic bytes: % x", png[:8])
	}
}

func TestPNGRenderer_Deterministic(t *testing.T) {
	r := NewPNGRenderer(0) // falls back to DefaultSize

	a, err := r.Render("payload")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	b, err := r.Render("payload")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if !bytes.Equal(a, b) {
		t.Error("identical payloads rendered different images")
	}
}

func TestPNGRenderer_OversizedPayload(t *testing.T) {
	r := NewPNGRenderer(128)

	// Beyond the byte capacity of the largest QR version.
	_, err := r.Render(strings.Repeat("x", 5000))
	if err == nil {
		t.Fatal("Expected error for oversized payload, got none")
	}
	if !errors.Is(err, ErrRender) {
		t.Errorf("error = %v, want ErrRender", err)
	}
}
