package audio

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"math"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// DataURLPrefix starts every embedded WAV source.
const DataURLPrefix = "data:audio/wav;base64,"

const (
	pcmBitDepth = 16
	pcmFormat   = 1
)

// EncodeWAV writes s as 16-bit PCM WAV. Samples are clamped to [-1, 1].
func EncodeWAV(w io.WriteSeeker, s Samples, rate int) error {
	if rate <= 0 {
		return ErrSampleRateRequired
	}
	channels := s.NumChannels()
	enc := wav.NewEncoder(w, rate, pcmBitDepth, channels, pcmFormat)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: rate},
		Data:           toPCM16(s.Data),
		SourceBitDepth: pcmBitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("audio: encode wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("audio: finalize wav: %w", err)
	}
	return nil
}

// WAVBytes encodes s into an in-memory WAV file.
func WAVBytes(s Samples, rate int) ([]byte, error) {
	ws := &writeSeeker{}
	if err := EncodeWAV(ws, s, rate); err != nil {
		return nil, err
	}
	return ws.Bytes(), nil
}

// DataURL encodes s as a base64 WAV data URL.
func DataURL(s Samples, rate int) (string, error) {
	payload, err := WAVBytes(s, rate)
	if err != nil {
		return "", err
	}
	return DataURLPrefix + base64.StdEncoding.EncodeToString(payload), nil
}

func toPCM16(data []float32) []int {
	out := make([]int, len(data))
	for i, v := range data {
		f := float64(v)
		if math.IsNaN(f) {
			f = 0
		}
		if f > 1 {
			f = 1
		} else if f < -1 {
			f = -1
		}
		out[i] = int(f * math.MaxInt16)
	}
	return out
}

// writeSeeker is an in-memory io.WriteSeeker; the WAV encoder seeks back to
// patch chunk sizes on Close.
type writeSeeker struct {
	buf []byte
	pos int
}

func (w *writeSeeker) Write(p []byte) (int, error) {
	end := w.pos + len(p)
	if end > len(w.buf) {
		if end > cap(w.buf) {
			grown := make([]byte, end, 2*end)
			copy(grown, w.buf)
			w.buf = grown
		} else {
			w.buf = w.buf[:end]
		}
	}
	copy(w.buf[w.pos:], p)
	w.pos = end
	return len(p), nil
}

func (w *writeSeeker) Seek(offset int64, whence int) (int64, error) {
	var next int64
	switch whence {
	case io.SeekStart:
		next = offset
	case io.SeekCurrent:
		next = int64(w.pos) + offset
	case io.SeekEnd:
		next = int64(len(w.buf)) + offset
	default:
		return 0, fmt.Errorf("audio: invalid whence %d", whence)
	}
	if next < 0 {
		return 0, errors.New("audio: negative seek position")
	}
	w.pos = int(next)
	return next, nil
}

func (w *writeSeeker) Bytes() []byte {
	return w.buf
}
