package testsupport

import (
	"context"
	"encoding/base64"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/aiff"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-wavesurf/pkg/audio"
)

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// Sine returns a mono sine wave at half amplitude.
func Sine(freq float64, rate int, seconds float64) audio.Samples {
	frames := int(float64(rate) * seconds)
	data := make([]float32, frames)
	for i := range data {
		data[i] = float32(0.5 * math.Sin(2*math.Pi*freq*float64(i)/float64(rate)))
	}
	return audio.Mono(data)
}

// WriteWAV encodes samples into name under a temporary directory and returns
// the file path.
func WriteWAV(t *testing.T, name string, samples audio.Samples, rate int) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	payload, err := audio.WAVBytes(samples, rate)
	if err != nil {
		t.Fatalf("encode wav fixture: %v", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write wav fixture: %v", err)
	}
	return path
}

// WriteAIFF encodes samples as 16-bit AIFF into name under a temporary
// directory and returns the file path.
func WriteAIFF(t *testing.T, name string, samples audio.Samples, rate int) string {
	t.Helper()

	channels := samples.Channels
	if channels <= 0 {
		channels = 1
	}
	data := make([]int, len(samples.Data))
	for i, v := range samples.Data {
		data[i] = int(math.Round(float64(v) * 32767))
	}

	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create aiff fixture: %v", err)
	}
	defer f.Close()

	enc := aiff.NewEncoder(f, rate, 16, channels)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: rate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("encode aiff fixture: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close aiff fixture: %v", err)
	}
	return path
}

// DecodeDataURL returns the bytes embedded in a WAV data URL.
func DecodeDataURL(t *testing.T, url string) []byte {
	t.Helper()

	if !strings.HasPrefix(url, audio.DataURLPrefix) {
		t.Fatalf("not a wav data url: %.40q", url)
	}
	payload, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(url, audio.DataURLPrefix))
	if err != nil {
		t.Fatalf("decode data url: %v", err)
	}
	return payload
}

// SequentialUIDs returns a generator yielding uid000000001, uid000000002, ...
// so rendered markup is deterministic.
func SequentialUIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("uid%09d", n)
	}
}

// AssertContains fails the test for every fragment missing from got.
func AssertContains(t *testing.T, got string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(got, fragment) {
			t.Fatalf("output missing %q\n--- output ---\n%s", fragment, got)
		}
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}
