// Package audio turns sample buffers, tensors, files and URLs into a source
// URL the browser player can load.
package audio

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrSampleRateRequired is returned when raw samples arrive without a
	// positive sample rate.
	ErrSampleRateRequired = errors.New("audio: sample rate is required for sample data")
	// ErrUnsupportedSource is returned for values that are not an audio
	// reference.
	ErrUnsupportedSource = errors.New("audio: unsupported source")
	// ErrUnsupportedFormat is returned for files without a registered decoder.
	ErrUnsupportedFormat = errors.New("audio: unsupported file format")
	// ErrInvalidShape is returned for tensors that cannot be read as audio.
	ErrInvalidShape = errors.New("audio: invalid tensor shape")
)

// Kind names the four kinds of audio reference.
type Kind int

const (
	KindSamples Kind = iota
	KindTensor
	KindFile
	KindURL
)

func (k Kind) String() string {
	switch k {
	case KindSamples:
		return "samples"
	case KindTensor:
		return "tensor"
	case KindFile:
		return "file"
	case KindURL:
		return "url"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Source is an audio reference accepted by Resolve.
type Source interface {
	Kind() Kind
}

// Samples holds interleaved float samples in [-1, 1].
type Samples struct {
	Data     []float32
	Channels int
}

// Kind implements Source.
func (Samples) Kind() Kind { return KindSamples }

// NumChannels returns Channels, treating zero as mono.
func (s Samples) NumChannels() int {
	if s.Channels <= 0 {
		return 1
	}
	return s.Channels
}

// Frames is the number of sample frames.
func (s Samples) Frames() int {
	return len(s.Data) / s.NumChannels()
}

// Duration is the playing time at rate.
func (s Samples) Duration(rate int) time.Duration {
	if rate <= 0 {
		return 0
	}
	return time.Duration(s.Frames()) * time.Second / time.Duration(rate)
}

// Mono builds single-channel samples.
func Mono(data []float32) Samples {
	return Samples{Data: data, Channels: 1}
}

// FromFloat64 converts float64 samples.
func FromFloat64(data []float64, channels int) Samples {
	out := make([]float32, len(data))
	for i, v := range data {
		out[i] = float32(v)
	}
	return Samples{Data: out, Channels: channels}
}

// FromInt16 converts 16-bit PCM samples.
func FromInt16(data []int16, channels int) Samples {
	out := make([]float32, len(data))
	for i, v := range data {
		out[i] = float32(v) / 32768
	}
	return Samples{Data: out, Channels: channels}
}

// Tensor is satisfied by array types exposing a shape and flat float data,
// such as bindings to numeric libraries.
type Tensor interface {
	Shape() []int
	Float32s() []float32
}

// TensorSource adapts a Tensor to Source.
type TensorSource struct {
	Tensor Tensor
}

// Kind implements Source.
func (TensorSource) Kind() Kind { return KindTensor }

// maxChannels bounds the leading dimension read as channels-first.
const maxChannels = 8

// FromTensor flattens t into interleaved samples. One-dimensional tensors are
// mono. Two-dimensional tensors shaped [channels, frames] with at most 8
// channels are interleaved; [frames, channels] is already interleaved.
func FromTensor(t Tensor) (Samples, error) {
	if t == nil {
		return Samples{}, fmt.Errorf("%w: nil tensor", ErrInvalidShape)
	}
	shape := t.Shape()
	data := t.Float32s()
	switch len(shape) {
	case 1:
		if shape[0] != len(data) {
			return Samples{}, fmt.Errorf("%w: shape %v holds %d values", ErrInvalidShape, shape, len(data))
		}
		return Samples{Data: data, Channels: 1}, nil
	case 2:
		rows, cols := shape[0], shape[1]
		if rows*cols != len(data) {
			return Samples{}, fmt.Errorf("%w: shape %v holds %d values", ErrInvalidShape, shape, len(data))
		}
		if rows <= maxChannels && rows < cols {
			return Samples{Data: interleave(data, rows, cols), Channels: rows}, nil
		}
		return Samples{Data: data, Channels: cols}, nil
	default:
		return Samples{}, fmt.Errorf("%w: %d dimensions", ErrInvalidShape, len(shape))
	}
}

func interleave(planar []float32, channels, frames int) []float32 {
	out := make([]float32, len(planar))
	for ch := 0; ch < channels; ch++ {
		for f := 0; f < frames; f++ {
			out[f*channels+ch] = planar[ch*frames+f]
		}
	}
	return out
}

// File references an audio file on disk.
type File string

// Kind implements Source.
func (File) Kind() Kind { return KindFile }

// URL references remote audio the browser fetches itself.
type URL string

// Kind implements Source.
func (URL) Kind() Kind { return KindURL }

// IsURL reports whether s is an http(s) URL.
func IsURL(s string) bool {
	lower := strings.ToLower(strings.TrimSpace(s))
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// FromValue classifies a loosely typed audio reference.
func FromValue(v any) (Source, error) {
	switch value := v.(type) {
	case Source:
		return value, nil
	case Tensor:
		return TensorSource{Tensor: value}, nil
	case []float32:
		return Mono(value), nil
	case []float64:
		return FromFloat64(value, 1), nil
	case []int16:
		return FromInt16(value, 1), nil
	case string:
		if strings.TrimSpace(value) == "" {
			return nil, fmt.Errorf("%w: empty string", ErrUnsupportedSource)
		}
		if IsURL(value) {
			return URL(value), nil
		}
		return File(value), nil
	case fmt.Stringer:
		return FromValue(value.String())
	case nil:
		return nil, fmt.Errorf("%w: nil", ErrUnsupportedSource)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedSource, v)
	}
}
