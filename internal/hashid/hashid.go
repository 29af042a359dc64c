// Package hashid implements a reversible integer-to-string codec in the
// classic hashids style: a salted, position-dependent alphabet shuffle turns
// a monotonic counter into short keys that look non-sequential while staying
// collision-free and decodable. The scheme is an obfuscation, not a cipher.
package hashid

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// DefaultAlphabet is the 62-character alphanumeric alphabet used when no
// custom alphabet is supplied.
const DefaultAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ1234567890"

const (
	minAlphabetLength = 16
	sepDiv            = 3.5
	guardDiv          = 12.0

	// Candidate separator characters, kept out of the digit alphabet when
	// present so multi-value encodings can be delimited unambiguously.
	initialSeps = "cfhistuCFHISTU"
)

var (
	// ErrInvalidAlphabet is returned when a codec is constructed with an
	// alphabet that cannot be partitioned into digits, separators and guards.
	ErrInvalidAlphabet = errors.New("hashid: invalid alphabet")

	// ErrInvalidHash is returned when Decode is given a string that was not
	// produced by this codec configuration.
	ErrInvalidHash = errors.New("hashid: invalid hash")
)

// Codec encodes non-negative integers to obfuscated strings and back.
// A Codec is immutable after construction and safe for concurrent use.
type Codec struct {
	salt      string
	minLength int
	alphabet  string
	seps      string
	guards    string
}

// New creates a codec with the default 62-character alphabet.
func New(salt string, minLength int) (*Codec, error) {
	return NewWithAlphabet(salt, minLength, DefaultAlphabet)
}

// NewWithAlphabet creates a codec with a custom alphabet. The alphabet must
// contain at least 16 unique characters and no spaces.
func NewWithAlphabet(salt string, minLength int, alphabet string) (*Codec, error) {
	if minLength < 0 {
		return nil, fmt.Errorf("hashid: min length must not be negative, got %d", minLength)
	}

	unique := make([]byte, 0, len(alphabet))
	seen := make(map[byte]bool, len(alphabet))
	for i := 0; i < len(alphabet); i++ {
		ch := alphabet[i]
		if ch == ' ' {
			return nil, fmt.Errorf("%w: must not contain spaces", ErrInvalidAlphabet)
		}
		if seen[ch] {
			return nil, fmt.Errorf("%w: duplicate character %q", ErrInvalidAlphabet, ch)
		}
		seen[ch] = true
		unique = append(unique, ch)
	}
	if len(unique) < minAlphabetLength {
		return nil, fmt.Errorf("%w: must contain at least %d unique characters, got %d",
			ErrInvalidAlphabet, minAlphabetLength, len(unique))
	}

	// Partition off the separator set, then shuffle it with the salt.
	var seps, digits []byte
	for i := 0; i < len(initialSeps); i++ {
		if seen[initialSeps[i]] {
			seps = append(seps, initialSeps[i])
		}
	}
	sepSet := make(map[byte]bool, len(seps))
	for _, ch := range seps {
		sepSet[ch] = true
	}
	for _, ch := range unique {
		if !sepSet[ch] {
			digits = append(digits, ch)
		}
	}

	sepStr := consistentShuffle(string(seps), salt)
	digitStr := string(digits)

	// Keep the digit-to-separator ratio bounded, stealing digits into the
	// separator set when the alphabet carries too few candidates.
	if len(sepStr) == 0 || float64(len(digitStr))/float64(len(sepStr)) > sepDiv {
		sepsLen := int(math.Ceil(float64(len(digitStr)) / sepDiv))
		if sepsLen == 1 {
			sepsLen = 2
		}
		if sepsLen > len(sepStr) {
			diff := sepsLen - len(sepStr)
			sepStr += digitStr[:diff]
			digitStr = digitStr[diff:]
		} else {
			sepStr = sepStr[:sepsLen]
		}
	}

	digitStr = consistentShuffle(digitStr, salt)

	// Reserve guards for min-length padding.
	guardCount := int(math.Ceil(float64(len(digitStr)) / guardDiv))
	var guards string
	if len(digitStr) < 3 {
		guards = sepStr[:guardCount]
		sepStr = sepStr[guardCount:]
	} else {
		guards = digitStr[:guardCount]
		digitStr = digitStr[guardCount:]
	}

	return &Codec{
		salt:      salt,
		minLength: minLength,
		alphabet:  digitStr,
		seps:      sepStr,
		guards:    guards,
	}, nil
}

// MinLength returns the configured minimum encoded length.
func (c *Codec) MinLength() int { return c.minLength }

// Encode encodes a single non-negative integer. It never fails.
func (c *Codec) Encode(n uint64) string {
	out, _ := c.EncodeMany([]uint64{n})
	return out
}

// EncodeMany encodes a sequence of integers into a single string, inserting
// separator characters between groups. It fails only on an empty input.
func (c *Codec) EncodeMany(numbers []uint64) (string, error) {
	if len(numbers) == 0 {
		return "", errors.New("hashid: no numbers to encode")
	}

	alphabet := c.alphabet

	var numbersHash uint64
	for i, n := range numbers {
		numbersHash += n % uint64(i+100)
	}

	// The lottery character seeds the rolling shuffle; decode recovers it
	// from the front of the hash.
	lottery := alphabet[numbersHash%uint64(len(alphabet))]
	result := make([]byte, 0, c.minLength)
	result = append(result, lottery)

	for i, n := range numbers {
		buf := string(lottery) + c.salt + alphabet
		alphabet = consistentShuffle(alphabet, buf[:len(alphabet)])
		last := toBase(n, alphabet)
		result = append(result, last...)

		if i+1 < len(numbers) {
			n %= uint64(last[0]) + uint64(i)
			result = append(result, c.seps[n%uint64(len(c.seps))])
		}
	}

	if len(result) < c.minLength {
		gi := (numbersHash + uint64(result[0])) % uint64(len(c.guards))
		result = append([]byte{c.guards[gi]}, result...)

		if len(result) < c.minLength {
			gi = (numbersHash + uint64(result[2])) % uint64(len(c.guards))
			result = append(result, c.guards[gi])
		}
	}

	// Still short: splice in halves of the (re-shuffled) alphabet around the
	// hash until the minimum length is met.
	half := len(alphabet) / 2
	for len(result) < c.minLength {
		alphabet = consistentShuffle(alphabet, alphabet)
		padded := make([]byte, 0, len(alphabet)+len(result))
		padded = append(padded, alphabet[half:]...)
		padded = append(padded, result...)
		padded = append(padded, alphabet[:half]...)
		result = padded

		if excess := len(result) - c.minLength; excess > 0 {
			result = result[excess/2 : excess/2+c.minLength]
		}
	}

	return string(result), nil
}

// Decode decodes a string produced by Encode. It fails with ErrInvalidHash
// if the string does not decode to exactly one integer under this codec
// configuration.
func (c *Codec) Decode(hash string) (uint64, error) {
	numbers, err := c.DecodeMany(hash)
	if err != nil {
		return 0, err
	}
	if len(numbers) != 1 {
		return 0, fmt.Errorf("%w: %q holds %d values, want 1", ErrInvalidHash, hash, len(numbers))
	}
	return numbers[0], nil
}

// DecodeMany decodes a string produced by EncodeMany. The recovered numbers
// are re-encoded and compared against the input; any mismatch (foreign
// characters, wrong salt, tampering) fails with ErrInvalidHash.
func (c *Codec) DecodeMany(hash string) ([]uint64, error) {
	parts := splitAny(hash, c.guards)
	core := parts[0]
	if len(parts) == 2 || len(parts) == 3 {
		core = parts[1]
	}
	if core == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidHash, hash)
	}

	lottery := core[0]
	alphabet := c.alphabet

	var numbers []uint64
	for _, sub := range splitAny(core[1:], c.seps) {
		buf := string(lottery) + c.salt + alphabet
		alphabet = consistentShuffle(alphabet, buf[:len(alphabet)])

		n, err := fromBase(sub, alphabet)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidHash, hash, err)
		}
		numbers = append(numbers, n)
	}

	// Canonical validity check: only strings this exact configuration would
	// have produced are accepted.
	reencoded, err := c.EncodeMany(numbers)
	if err != nil || reencoded != hash {
		return nil, fmt.Errorf("%w: %q does not round-trip", ErrInvalidHash, hash)
	}

	return numbers, nil
}

// consistentShuffle applies the salt-seeded Fisher-Yates permutation shared
// by encode and decode. An empty salt leaves the input unchanged.
func consistentShuffle(in, salt string) string {
	if salt == "" {
		return in
	}

	a := []byte(in)
	p := 0
	for i, v := len(a)-1, 0; i > 0; i, v = i-1, v+1 {
		v %= len(salt)
		n := int(salt[v])
		p += n
		j := (n + v + p) % i
		a[i], a[j] = a[j], a[i]
	}
	return string(a)
}

// toBase writes n as positional digits of the given alphabet, most
// significant first.
func toBase(n uint64, alphabet string) []byte {
	base := uint64(len(alphabet))
	var out []byte
	for {
		out = append(out, alphabet[n%base])
		n /= base
		if n == 0 {
			break
		}
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// fromBase reverses toBase, rejecting characters outside the alphabet.
func fromBase(s, alphabet string) (uint64, error) {
	var n uint64
	for i := 0; i < len(s); i++ {
		idx := strings.IndexByte(alphabet, s[i])
		if idx < 0 {
			return 0, fmt.Errorf("character %q outside alphabet", s[i])
		}
		n = n*uint64(len(alphabet)) + uint64(idx)
	}
	return n, nil
}

// splitAny splits s at every byte contained in chars, keeping empty
// segments so the guard/separator position information survives.
func splitAny(s, chars string) []string {
	parts := []string{}
	last := 0
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(chars, s[i]) >= 0 {
			parts = append(parts, s[last:i])
			last = i + 1
		}
	}
	return append(parts, s[last:])
}
