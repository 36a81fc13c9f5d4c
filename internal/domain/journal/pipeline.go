package journal

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	// DefaultThreshold is the similarity above which two prompts count as repeats.
	DefaultThreshold = 0.7
	// DefaultMaxRetries bounds regenerations triggered by the similarity gate.
	DefaultMaxRetries = 3

	// TopicOutcome is the event bus topic carrying an Outcome per invocation.
	TopicOutcome = "journal.outcome"

	tracerName = "github.com/matiasleandrokruk/journalprompts/internal/domain/journal"
)

// Publisher is the subset of eventbus.EventBus the pipeline needs.
type Publisher interface {
	Publish(topic string, payload any)
}

// Config tunes the pipeline. Zero values fall back to the defaults.
type Config struct {
	Threshold float64
	// MaxRetries of 0 means DefaultMaxRetries; a negative value disables retries.
	MaxRetries int
	Fallback   Batch
}

// Result is what one invocation serves.
type Result struct {
	Batch    Batch
	Fallback bool
	Attempts int
	// Err is the failure that forced the fallback; nil when Fallback is false.
	Err error
}

// Outcome is published on TopicOutcome after every invocation.
type Outcome struct {
	Fallback bool
	Attempts int
	Reason   string
	Duration time.Duration
	At       time.Time
}

// Pipeline turns model output into a served batch of prompts.
type Pipeline struct {
	source     Source
	state      *State
	threshold  float64
	maxRetries int
	fallback   Batch
	log        *zap.Logger
	bus        Publisher
	tracer     trace.Tracer
	now        func() time.Time
}

// NewPipeline wires a pipeline. log and bus may be nil.
// It returns an error when cfg.Fallback is set but is not a valid batch.
func NewPipeline(source Source, state *State, cfg Config, log *zap.Logger, bus Publisher) (*Pipeline, error) {
	if state == nil {
		state = NewState()
	}
	if log == nil {
		log = zap.NewNop()
	}
	p := &Pipeline{
		source:     source,
		state:      state,
		threshold:  cfg.Threshold,
		maxRetries: cfg.MaxRetries,
		fallback:   DefaultFallback.Clone(),
		log:        log.Named("journal"),
		bus:        bus,
		tracer:     otel.Tracer(tracerName),
		now:        time.Now,
	}
	if p.threshold <= 0 {
		p.threshold = DefaultThreshold
	}
	if p.maxRetries < 0 {
		p.maxRetries = 0
	}
	if cfg.MaxRetries == 0 {
		p.maxRetries = DefaultMaxRetries
	}
	if cfg.Fallback != nil {
		if err := cfg.Fallback.Valid(); err != nil {
			return nil, fmt.Errorf("journal: fallback batch: %w", err)
		}
		p.fallback = cfg.Fallback.Clone()
	}
	return p, nil
}

// Fallback returns a copy of the static batch served on failure.
func (p *Pipeline) Fallback() Batch { return p.fallback.Clone() }

// Generate produces exactly three prompts. It never fails: any problem yields
// the fallback batch with Fallback set. The served batch is remembered for the
// next invocation's similarity gate.
func (p *Pipeline) Generate(ctx context.Context) Result {
	start := p.now()
	ctx, span := p.tracer.Start(ctx, "journal.Pipeline.Generate")
	defer span.End()

	res := p.run(ctx)
	if res.Fallback {
		res.Batch = p.fallback.Clone()
	}
	p.state.Store(res.Batch)

	reason := Reason(res.Err)
	span.SetAttributes(
		attribute.Int("journal.attempts", res.Attempts),
		attribute.Bool("journal.fallback", res.Fallback),
		attribute.String("journal.reason", reason),
	)
	if res.Err != nil {
		span.RecordError(res.Err)
		span.SetStatus(codes.Error, reason)
		p.log.Warn("serving fallback prompts",
			zap.Int("attempts", res.Attempts),
			zap.String("reason", reason),
			zap.Error(res.Err),
		)
	} else {
		p.log.Info("serving generated prompts", zap.Int("attempts", res.Attempts))
	}

	if p.bus != nil {
		p.bus.Publish(TopicOutcome, Outcome{
			Fallback: res.Fallback,
			Attempts: res.Attempts,
			Reason:   reason,
			Duration: p.now().Sub(start),
			At:       start,
		})
	}
	return res
}

func (p *Pipeline) run(ctx context.Context) Result {
	batch, err := p.attempt(ctx)
	attempts := 1
	if err != nil {
		return Result{Fallback: true, Attempts: attempts, Err: err}
	}

	last := p.state.Last()
	if len(last) != BatchSize {
		return Result{Batch: batch, Attempts: attempts}
	}

	for retries := 0; p.tooSimilar(batch, last); retries++ {
		if retries == p.maxRetries {
			return Result{
				Fallback: true,
				Attempts: attempts,
				Err:      fmt.Errorf("%w: still repetitive after %d retries", ErrInsufficientVariability, retries),
			}
		}
		next, err := p.attempt(ctx)
		attempts++
		if err != nil {
			// A failed retry ends the loop; the last well-formed candidate is served.
			p.log.Debug("regeneration failed, keeping previous candidate",
				zap.Int("attempt", attempts), zap.Error(err))
			return Result{Batch: batch, Attempts: attempts}
		}
		batch = next
	}
	return Result{Batch: batch, Attempts: attempts}
}

// attempt performs one generate-and-normalize round.
func (p *Pipeline) attempt(ctx context.Context) (Batch, error) {
	ctx, span := p.tracer.Start(ctx, "journal.Pipeline.attempt")
	defer span.End()

	text, err := p.source.Generate(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	prompts := Normalize(text)
	span.SetAttributes(attribute.Int("journal.lines", len(prompts)))
	if len(prompts) != BatchSize {
		return nil, fmt.Errorf("%w: got %d lines, want %d", ErrMalformedCount, len(prompts), BatchSize)
	}
	return Batch(prompts), nil
}

// tooSimilar reports whether next repeats last position by position, or
// repeats itself internally.
func (p *Pipeline) tooSimilar(next, last Batch) bool {
	for i := range next {
		if Similarity(next[i], last[i]) > p.threshold {
			return true
		}
	}
	for i := range next {
		if p.similarToAny(next[i], next[i+1:]) {
			return true
		}
	}
	return false
}

// similarToAny reports whether s is too similar to any of others.
func (p *Pipeline) similarToAny(s string, others []string) bool {
	for _, o := range others {
		if Similarity(s, o) > p.threshold {
			return true
		}
	}
	return false
}
