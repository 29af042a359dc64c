// Package linkgen issues short link keys from a monotonic counter encoded
// through a hashid codec.
package linkgen

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/kmullins/linkgen/internal/hashid"
	"github.com/kmullins/linkgen/internal/qr"
)

// DefaultAlphabet is the lowercase alphanumeric alphabet keys are drawn
// from, chosen so keys stay unambiguous in case-insensitive contexts.
const DefaultAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

var (
	// ErrCounterExhausted is returned once the counter has issued every
	// representable value. The generator fails fast instead of wrapping and
	// reissuing old keys.
	ErrCounterExhausted = errors.New("linkgen: counter exhausted")

	// ErrNoRenderer is returned by GenerateQR when the generator was built
	// without a QR renderer.
	ErrNoRenderer = errors.New("linkgen: no QR renderer configured")
)

// QRPayload selects what GenerateQR feeds the renderer.
type QRPayload int

const (
	// PayloadURL renders the full short URL. This is the default.
	PayloadURL QRPayload = iota

	// PayloadKey renders only the key.
	PayloadKey
)

// Link is a generated key and the URL built from it. The key is exactly the
// codec encoding of the counter value that produced it.
type Link struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// Config holds generator construction parameters.
type Config struct {
	BasePath       string    // prefix for generated URLs
	Salt           string    // codec salt; empty is legal but yields guessable keys
	MinLength      int       // minimum key length
	Alphabet       string    // key alphabet; DefaultAlphabet when empty
	InitialCounter uint64    // first counter value to encode
	QRPayload      QRPayload // what GenerateQR renders
}

// Generator produces a strictly increasing sequence of encoded keys.
//
// A Generator is NOT safe for concurrent use: the counter is deliberately
// unsynchronized so owners can batch counter advancement with their own
// persistence under a single lock. Callers sharing a Generator across
// goroutines must provide external mutual exclusion.
type Generator struct {
	codec     *hashid.Codec
	basePath  string
	next      uint64
	exhausted bool
	qrPayload QRPayload
	renderer  qr.Renderer
}

// New creates a generator. The renderer may be nil, in which case GenerateQR
// is unavailable.
func New(cfg Config, renderer qr.Renderer) (*Generator, error) {
	alphabet := cfg.Alphabet
	if alphabet == "" {
		alphabet = DefaultAlphabet
	}

	codec, err := hashid.NewWithAlphabet(cfg.Salt, cfg.MinLength, alphabet)
	if err != nil {
		return nil, fmt.Errorf("linkgen: %w", err)
	}

	basePath := cfg.BasePath
	if !strings.HasSuffix(basePath, "/") {
		basePath += "/"
	}

	return &Generator{
		codec:     codec,
		basePath:  basePath,
		next:      cfg.InitialCounter,
		qrPayload: cfg.QRPayload,
		renderer:  renderer,
	}, nil
}

// GenerateKey encodes the current counter value and advances the counter.
func (g *Generator) GenerateKey() (string, error) {
	if g.exhausted {
		return "", ErrCounterExhausted
	}

	key := g.codec.Encode(g.next)
	if g.next == math.MaxUint64 {
		g.exhausted = true
	} else {
		g.next++
	}
	return key, nil
}

// GenerateURL generates a key and joins it onto the base path.
func (g *Generator) GenerateURL() (Link, error) {
	key, err := g.GenerateKey()
	if err != nil {
		return Link{}, err
	}
	return Link{Key: key, URL: g.basePath + key}, nil
}

// GenerateQR generates a link and renders its QR image. On render failure
// the already-issued link is still returned: key issuance is never rolled
// back, so callers can persist the mapping even when the image is lost.
func (g *Generator) GenerateQR() ([]byte, Link, error) {
	if g.renderer == nil {
		return nil, Link{}, ErrNoRenderer
	}

	link, err := g.GenerateURL()
	if err != nil {
		return nil, Link{}, err
	}

	payload := link.URL
	if g.qrPayload == PayloadKey {
		payload = link.Key
	}

	png, err := g.renderer.Render(payload)
	if err != nil {
		return nil, link, fmt.Errorf("linkgen: render %q: %w", link.Key, err)
	}
	return png, link, nil
}

// URLFor rebuilds the URL for an already-issued key.
func (g *Generator) URLFor(key string) string {
	return g.basePath + key
}

// Counter returns the next counter value to be encoded. Owners persist this
// to resume issuance after a restart without reusing keys.
func (g *Generator) Counter() uint64 {
	return g.next
}

// Codec exposes the underlying codec for decode-side uses.
func (g *Generator) Codec() *hashid.Codec {
	return g.codec
}
