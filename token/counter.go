// Package token estimates token counts for file content. The primary path is
// a real BPE tokenizer; when its encoding data cannot be loaded the package
// degrades to a character-length estimate. Counting is best-effort and never
// returns an error: callers always get a number.
package token

import (
	"log/slog"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// endOfTextSentinel is stripped from content before encoding; the tokenizer
// treats it as a special token and refuses text containing it.
const endOfTextSentinel = "<|endoftext|>"

// encodingName is the BPE encoding used for counting.
const encodingName = "o200k_base"

// Counter counts the tokens in a piece of text.
type Counter interface {
	Count(text string) int
}

// NewCounter selects the counting strategy once at startup: the BPE tokenizer
// when its encoding loads, otherwise the length estimator. Absence of the
// tokenizer is logged here and never surfaces at call sites.
func NewCounter(logger *slog.Logger) Counter {
	encoding, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		logger.Warn("tokenizer unavailable, falling back to length estimate",
			"encoding", encodingName,
			"error", err,
		)
		return EstimateCounter{}
	}
	logger.Debug("tokenizer ready", "encoding", encodingName)
	return &bpeCounter{encoding: encoding}
}

// bpeCounter counts tokens with a real BPE encoding.
type bpeCounter struct {
	encoding *tiktoken.Tiktoken
}

// Count returns the BPE token count of text. A panicking encode degrades to
// the length estimate for that call.
func (c *bpeCounter) Count(text string) (count int) {
	if text == "" {
		return 0
	}
	defer func() {
		if r := recover(); r != nil {
			count = EstimateCounter{}.Count(text)
		}
	}()
	text = strings.ReplaceAll(text, endOfTextSentinel, "")
	return len(c.encoding.Encode(text, nil, nil))
}

// EstimateCounter approximates one token per four characters, rounding up.
type EstimateCounter struct{}

// Count returns ceil(len(text)/4).
func (EstimateCounter) Count(text string) int {
	return (len(text) + 3) / 4
}
