// Package qr is the rendering boundary for QR images. The rest of the
// codebase depends only on the single-method Renderer contract, never on the
// encoding library behind it.
package qr

import (
	"errors"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// ErrRender is returned when a payload cannot be rendered, typically because
// it exceeds the capacity of the configured QR version.
var ErrRender = errors.New("qr: render failed")

// Renderer renders a payload string to an image.
type Renderer interface {
	Render(payload string) ([]byte, error)
}

// PNGRenderer renders QR codes as PNG bytes using medium error correction.
type PNGRenderer struct {
	size int
}

// DefaultSize is the pixel width and height of rendered images when no size
// is given.
const DefaultSize = 256

// NewPNGRenderer creates a PNG renderer producing size x size pixel images.
// Non-positive sizes fall back to DefaultSize.
func NewPNGRenderer(size int) *PNGRenderer {
	if size <= 0 {
		size = DefaultSize
	}
	return &PNGRenderer{size: size}
}

// Render encodes payload as a QR code. Rendering is pure CPU work and
// bounded; the only failure mode is a payload the QR format cannot hold.
func (r *PNGRenderer) Render(payload string) ([]byte, error) {
	png, err := qrcode.Encode(payload, qrcode.Medium, r.size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return png, nil
}

var _ Renderer = (*PNGRenderer)(nil)
