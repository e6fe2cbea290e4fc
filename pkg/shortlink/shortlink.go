// Package shortlink generates short recipe tokens over the alphabet 0-9a-z.
package shortlink

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

const (
	DefaultLength   = 6
	DefaultAttempts = 10
	maxLength       = 24
	alphabet        = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// ErrExhausted is returned when every attempt collided with an existing token
var ErrExhausted = errors.New("short link generation attempts exhausted")

// ExistsFunc reports whether token is already taken
type ExistsFunc func(ctx context.Context, token string) (bool, error)

// Generator produces collision-checked tokens
type Generator struct {
	length   int
	attempts int
	random   func() [16]byte
}

// NewGenerator creates a generator; non-positive values fall back to defaults
func NewGenerator(length, attempts int) *Generator {
	if length <= 0 {
		length = DefaultLength
	}
	if length > maxLength {
		length = maxLength
	}
	if attempts <= 0 {
		attempts = DefaultAttempts
	}
	return &Generator{
		length:   length,
		attempts: attempts,
		random:   func() [16]byte { return uuid.New() },
	}
}

// Length returns the token length
func (g *Generator) Length() int { return g.length }

// Token returns one random token without a collision check
func (g *Generator) Token() string {
	id := g.random()
	encoded := new(big.Int).SetBytes(id[:]).Text(36)
	if len(encoded) < g.length {
		encoded = strings.Repeat("0", g.length-len(encoded)) + encoded
	}
	return encoded[len(encoded)-g.length:]
}

// Generate returns a token for which exists reports false
func (g *Generator) Generate(ctx context.Context, exists ExistsFunc) (string, error) {
	for i := 0; i < g.attempts; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		token := g.Token()
		taken, err := exists(ctx, token)
		if err != nil {
			return "", fmt.Errorf("failed to check short link: %w", err)
		}
		if !taken {
			return token, nil
		}
	}
	return "", fmt.Errorf("%w after %d attempts", ErrExhausted, g.attempts)
}

// Valid reports whether token has the generator's length and alphabet
func (g *Generator) Valid(token string) bool {
	if len(token) != g.length {
		return false
	}
	for _, r := range token {
		if !strings.ContainsRune(alphabet, r) {
			return false
		}
	}
	return true
}
