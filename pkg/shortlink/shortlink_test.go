package shortlink

import (
	"context"
	"errors"
	"testing"
)

func TestTokenShape(t *testing.T) {
	for _, length := range []int{1, 6, 12, 24} {
		g := NewGenerator(length, 1)
		for i := 0; i < 200; i++ {
			tok := g.Token()
			if !g.Valid(tok) {
				t.Fatalf("length %d: invalid token %q", length, tok)
			}
		}
	}
}

func TestNewGeneratorDefaults(t *testing.T) {
	g := NewGenerator(0, 0)
	if g.Length() != DefaultLength {
		t.Errorf("Length() = %d, want %d", g.Length(), DefaultLength)
	}
	if g.attempts != DefaultAttempts {
		t.Errorf("attempts = %d, want %d", g.attempts, DefaultAttempts)
	}
	if NewGenerator(100, 1).Length() != maxLength {
		t.Error("length should be capped")
	}
}

func TestTokenPadsShortEncodings(t *testing.T) {
	g := NewGenerator(6, 1)
	g.random = func() [16]byte { return [16]byte{15: 35} }

	if got := g.Token(); got != "00000z" {
		t.Errorf("Token() = %q, want 00000z", got)
	}
}

func TestGenerateRetriesOnCollision(t *testing.T) {
	g := NewGenerator(6, 5)
	calls := 0
	exists := func(ctx context.Context, token string) (bool, error) {
		calls++
		return calls < 3, nil
	}

	tok, err := g.Generate(context.Background(), exists)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if calls != 3 {
		t.Errorf("exists called %d times, want 3", calls)
	}
	if !g.Valid(tok) {
		t.Errorf("invalid token %q", tok)
	}
}

func TestGenerateExhausted(t *testing.T) {
	g := NewGenerator(6, 4)
	calls := 0
	_, err := g.Generate(context.Background(), func(ctx context.Context, token string) (bool, error) {
		calls++
		return true, nil
	})
	if !errors.Is(err, ErrExhausted) {
		t.Fatalf("Generate() error = %v, want ErrExhausted", err)
	}
	if calls != 4 {
		t.Errorf("exists called %d times, want 4", calls)
	}
}

func TestGeneratePropagatesLookupError(t *testing.T) {
	g := NewGenerator(6, 4)
	boom := errors.New("db down")
	_, err := g.Generate(context.Background(), func(ctx context.Context, token string) (bool, error) {
		return false, boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("Generate() error = %v, want wrapped lookup error", err)
	}
}

func TestValid(t *testing.T) {
	g := NewGenerator(6, 1)
	tests := map[string]bool{
		"abc123": true,
		"ABC123": false,
		"abc12":  false,
		"abc-12": false,
		"":       false,
	}
	for tok, want := range tests {
		if got := g.Valid(tok); got != want {
			t.Errorf("Valid(%q) = %v, want %v", tok, got, want)
		}
	}
}
