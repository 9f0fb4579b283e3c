package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/aiff"
	"github.com/go-audio/wav"
	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
)

// Decoder reads a complete audio stream into samples and its sample rate.
type Decoder interface {
	Decode(r io.ReadSeeker) (Samples, int, error)
}

// DecoderFunc adapts a function to Decoder.
type DecoderFunc func(r io.ReadSeeker) (Samples, int, error)

// Decode implements Decoder.
func (f DecoderFunc) Decode(r io.ReadSeeker) (Samples, int, error) {
	return f(r)
}

// Registry maps file extensions to decoders. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	decoders map[string]Decoder
}

// NewRegistry returns a registry with WAV, AIFF, MP3 and Ogg Vorbis decoders.
func NewRegistry() *Registry {
	r := &Registry{decoders: make(map[string]Decoder)}
	r.Register(".wav", DecoderFunc(decodeWAV))
	r.Register(".aif", DecoderFunc(decodeAIFF))
	r.Register(".aiff", DecoderFunc(decodeAIFF))
	r.Register(".mp3", DecoderFunc(decodeMP3))
	r.Register(".ogg", DecoderFunc(decodeOgg))
	r.Register(".oga", DecoderFunc(decodeOgg))
	return r
}

// Register binds a decoder to an extension such as ".flac". A nil decoder
// removes the binding.
func (r *Registry) Register(ext string, d Decoder) {
	ext = normalizeExt(ext)
	r.mu.Lock()
	defer r.mu.Unlock()
	if d == nil {
		delete(r.decoders, ext)
		return
	}
	r.decoders[ext] = d
}

// Extensions lists registered extensions in sorted order.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.decoders))
	for ext := range r.decoders {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

// Lookup returns the decoder for path's extension.
func (r *Registry) Lookup(path string) (Decoder, error) {
	ext := normalizeExt(filepath.Ext(path))
	r.mu.RLock()
	d, ok := r.decoders[ext]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w %q (supported: %s)", ErrUnsupportedFormat, ext, strings.Join(r.Extensions(), ", "))
	}
	return d, nil
}

// DecodeFile reads and decodes path.
func (r *Registry) DecodeFile(path string) (Samples, int, error) {
	d, err := r.Lookup(path)
	if err != nil {
		return Samples{}, 0, err
	}
	f, err := os.Open(path)
	if err != nil {
		return Samples{}, 0, fmt.Errorf("audio: open %s: %w", path, err)
	}
	defer f.Close()

	s, rate, err := d.Decode(f)
	if err != nil {
		return Samples{}, 0, fmt.Errorf("audio: decode %s: %w", path, err)
	}
	return s, rate, nil
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

var (
	errNotWAV  = errors.New("not a RIFF/WAVE file")
	errNotAIFF = errors.New("not an AIFF file")
)

func decodeWAV(r io.ReadSeeker) (Samples, int, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return Samples{}, 0, errNotWAV
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return Samples{}, 0, err
	}
	return fromIntBuffer(buf, int(dec.BitDepth))
}

func decodeAIFF(r io.ReadSeeker) (Samples, int, error) {
	dec := aiff.NewDecoder(r)
	if !dec.IsValidFile() {
		return Samples{}, 0, errNotAIFF
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return Samples{}, 0, err
	}
	return fromIntBuffer(buf, int(dec.BitDepth))
}

func fromIntBuffer(buf *goaudio.IntBuffer, bitDepth int) (Samples, int, error) {
	if buf == nil || buf.Format == nil {
		return Samples{}, 0, errors.New("missing format information")
	}
	if bitDepth <= 0 {
		bitDepth = buf.SourceBitDepth
	}
	scale := fullScale(bitDepth)
	data := make([]float32, len(buf.Data))
	for i, v := range buf.Data {
		data[i] = float32(v) / scale
	}
	return Samples{Data: data, Channels: buf.Format.NumChannels}, buf.Format.SampleRate, nil
}

func fullScale(bitDepth int) float32 {
	switch bitDepth {
	case 8:
		return 128
	case 24:
		return 8388608
	case 32:
		return 2147483648
	default:
		return 32768
	}
}

// go-mp3 always emits 16-bit little-endian stereo.
func decodeMP3(r io.ReadSeeker) (Samples, int, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return Samples{}, 0, err
	}
	raw, err := io.ReadAll(dec)
	if err != nil {
		return Samples{}, 0, err
	}
	pcm := make([]int16, len(raw)/2)
	if err := binary.Read(bytes.NewReader(raw[:len(pcm)*2]), binary.LittleEndian, pcm); err != nil {
		return Samples{}, 0, err
	}
	return FromInt16(pcm, 2), dec.SampleRate(), nil
}

func decodeOgg(r io.ReadSeeker) (Samples, int, error) {
	data, format, err := oggvorbis.ReadAll(r)
	if err != nil {
		return Samples{}, 0, err
	}
	return Samples{Data: data, Channels: format.Channels}, format.SampleRate, nil
}
