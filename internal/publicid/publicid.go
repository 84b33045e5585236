// Package publicid generates the human-shareable codes customers use to
// reach their request.
package publicid

import (
	"errors"
	"fmt"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	// Alphabet leaves out look-alike symbols (0/O, 1/I/L).
	Alphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
	// Length is the number of random symbols after the prefix.
	Length = 8
	// DefaultPrefix tags every code.
	DefaultPrefix = "RPM-"
	// MaxAttempts bounds how many candidates are tried before giving up.
	MaxAttempts = 20
)

// ErrExhausted means no free code was found within MaxAttempts. It points
// at a capacity or configuration problem and must not be retried blindly.
var ErrExhausted = errors.New("could not generate a unique public id")

// Generator proposes candidate codes. Uniqueness is decided by the store.
type Generator struct {
	prefix string
	random func(alphabet string, size int) (string, error)
}

// NewGenerator returns a Generator using prefix, or DefaultPrefix when empty.
// Randomness comes from go-nanoid, which reads crypto/rand.
func NewGenerator(prefix string) *Generator {
	if strings.TrimSpace(prefix) == "" {
		prefix = DefaultPrefix
	}
	return &Generator{prefix: strings.ToUpper(strings.TrimSpace(prefix)), random: gonanoid.Generate}
}

// Prefix returns the literal tag in front of every code.
func (g *Generator) Prefix() string {
	return g.prefix
}

// Generate returns a fresh candidate code.
func (g *Generator) Generate() (string, error) {
	suffix, err := g.random(Alphabet, Length)
	if err != nil {
		return "", fmt.Errorf("generate public id: %w", err)
	}
	return g.prefix + suffix, nil
}

// Valid reports whether code has the prefix followed by Length alphabet symbols.
func (g *Generator) Valid(code string) bool {
	suffix, ok := strings.CutPrefix(code, g.prefix)
	if !ok || len(suffix) != Length {
		return false
	}
	for _, r := range suffix {
		if !strings.ContainsRune(Alphabet, r) {
			return false
		}
	}
	return true
}

// Normalize trims and upper-cases a code typed by a customer.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
