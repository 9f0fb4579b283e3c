package audio

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Resolved is an audio source ready for the player.
type Resolved struct {
	// URL is a data URL for embedded audio, otherwise the remote URL.
	URL        string
	SampleRate int
	Embedded   bool
	Duration   time.Duration
}

// Option customises a Resolver.
type Option func(*Resolver)

// WithRegistry replaces the decoder registry used for files.
func WithRegistry(reg *Registry) Option {
	return func(r *Resolver) {
		if reg != nil {
			r.registry = reg
		}
	}
}

// WithLogger sets the logger for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Resolver converts Sources into Resolved values.
type Resolver struct {
	registry *Registry
	logger   *slog.Logger
}

// NewResolver builds a resolver with the default decoders.
func NewResolver(options ...Option) *Resolver {
	r := &Resolver{registry: NewRegistry(), logger: slog.Default()}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

var defaultResolver = NewResolver()

// Resolve uses a resolver with the default decoders.
func Resolve(ctx context.Context, src Source, sampleRate int) (Resolved, error) {
	return defaultResolver.Resolve(ctx, src, sampleRate)
}

// Resolve embeds samples, tensors and files as WAV data URLs and passes URLs
// through. Samples and tensors need a positive sampleRate; files use their
// own; URLs report sampleRate as given.
func (r *Resolver) Resolve(ctx context.Context, src Source, sampleRate int) (Resolved, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return Resolved{}, err
	}
	if src == nil {
		return Resolved{}, fmt.Errorf("%w: nil", ErrUnsupportedSource)
	}

	switch s := src.(type) {
	case URL:
		return Resolved{URL: string(s), SampleRate: sampleRate}, nil
	case Samples:
		return r.embed(s, sampleRate)
	case TensorSource:
		samples, err := FromTensor(s.Tensor)
		if err != nil {
			return Resolved{}, err
		}
		return r.embed(samples, sampleRate)
	case File:
		samples, rate, err := r.registry.DecodeFile(string(s))
		if err != nil {
			return Resolved{}, err
		}
		if err := ctx.Err(); err != nil {
			return Resolved{}, err
		}
		r.logger.Debug("audio: decoded file", "path", string(s), "rate", rate, "channels", samples.NumChannels(), "frames", samples.Frames())
		return r.embed(samples, rate)
	default:
		return Resolved{}, fmt.Errorf("%w: %T", ErrUnsupportedSource, src)
	}
}

func (r *Resolver) embed(s Samples, rate int) (Resolved, error) {
	if rate <= 0 {
		return Resolved{}, ErrSampleRateRequired
	}
	url, err := DataURL(s, rate)
	if err != nil {
		return Resolved{}, err
	}
	return Resolved{
		URL:        url,
		SampleRate: rate,
		Embedded:   true,
		Duration:   s.Duration(rate),
	}, nil
}
