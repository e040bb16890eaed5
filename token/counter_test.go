package token

import (
	"io"
	"log/slog"
	"strings"
	"testing"
)

func Test_EstimateCounter_Empty(t *testing.T) {
	if got := (EstimateCounter{}).Count(""); got != 0 {
		t.Errorf("expected 0 tokens for empty text, got %d", got)
	}
}

func Test_EstimateCounter_CeilDivisionByFour(t *testing.T) {
	tests := []struct {
		length int
		tokens int
	}{
		{1, 1},
		{3, 1},
		{4, 1},
		{5, 2},
		{8, 2},
		{9, 3},
		{100, 25},
	}
	for _, tt := range tests {
		text := strings.Repeat("x", tt.length)
		if got := (EstimateCounter{}).Count(text); got != tt.tokens {
			t.Errorf("Count(len %d) = %d, want %d", tt.length, got, tt.tokens)
		}
	}
}

func Test_NewCounter_NeverNil(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	// Regardless of whether the BPE encoding loads in this environment, the
	// capability check must yield a working counter.
	counter := NewCounter(logger)
	if counter == nil {
		t.Fatal("expected a counter, got nil")
	}
	if got := counter.Count(""); got != 0 {
		t.Errorf("expected 0 tokens for empty text, got %d", got)
	}
	if got := counter.Count("hello world"); got < 1 {
		t.Errorf("expected at least 1 token, got %d", got)
	}
}
