// Package journal implements the journal prompt generation pipeline:
// ask a model for three prompts, normalize and validate its answer, reject
// batches that repeat the previous one, and fall back to a static batch.
package journal

import (
	"errors"
	"fmt"
	"strings"
)

// BatchSize is the number of prompts served per request.
const BatchSize = 3

// Batch is an ordered set of journal prompts.
type Batch []string

// Valid reports whether b holds exactly BatchSize non-empty, pairwise distinct prompts.
func (b Batch) Valid() error {
	if len(b) != BatchSize {
		return fmt.Errorf("%w: got %d prompts, want %d", ErrMalformedCount, len(b), BatchSize)
	}
	seen := make(map[string]struct{}, len(b))
	for i, p := range b {
		p = strings.TrimSpace(p)
		if p == "" {
			return fmt.Errorf("prompt %d is empty", i+1)
		}
		if _, dup := seen[p]; dup {
			return fmt.Errorf("prompt %d duplicates an earlier prompt", i+1)
		}
		seen[p] = struct{}{}
	}
	return nil
}

// String renders the batch the way /prompts serves it: one prompt per line.
func (b Batch) String() string {
	return strings.Join(b, "\n")
}

// Clone returns a copy that does not share the backing array.
func (b Batch) Clone() Batch {
	if b == nil {
		return nil
	}
	out := make(Batch, len(b))
	copy(out, b)
	return out
}

// DefaultFallback is served whenever no acceptable generated batch is available.
var DefaultFallback = Batch{
	"What emotion dominated your day today, and what might have triggered it?",
	"Describe a moment recently when you felt truly proud of yourself.",
	"List three small things that brought you joy this week.",
}

// Failure kinds. The pipeline absorbs all of them into the fallback path;
// they surface only through Result.Err for logging and stats.
var (
	ErrUpstreamTimeout         = errors.New("upstream timeout")
	ErrUpstream                = errors.New("upstream error")
	ErrMalformedCount          = errors.New("malformed prompt count")
	ErrInsufficientVariability = errors.New("insufficient variability")
)

// UpstreamError wraps a failure reported by the generation provider.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string { return "upstream error: " + e.Err.Error() }

// Unwrap exposes the provider cause.
func (e *UpstreamError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrUpstream) match any *UpstreamError.
func (e *UpstreamError) Is(target error) bool { return target == ErrUpstream }

// Reason maps a pipeline error to a short, stable label for logs, stats and spans.
func Reason(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrUpstreamTimeout):
		return "timeout"
	case errors.Is(err, ErrUpstream):
		return "upstream"
	case errors.Is(err, ErrMalformedCount):
		return "malformed_count"
	case errors.Is(err, ErrInsufficientVariability):
		return "insufficient_variability"
	default:
		return "unknown"
	}
}
