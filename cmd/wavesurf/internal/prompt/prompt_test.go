package prompt

import (
	"errors"
	"testing"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/google/go-cmp/cmp"
)

func TestTranslateInterrupt(t *testing.T) {
	if err := translate(terminal.InterruptErr); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	other := errors.New("boom")
	if err := translate(other); err != other {
		t.Fatalf("expected passthrough, got %v", err)
	}
}

func TestIndexHelpers(t *testing.T) {
	options := []string{"dark", "light", "copper"}
	if got := indexOf(options, "light"); got != 1 {
		t.Fatalf("indexOf = %d", got)
	}
	if got := indexOf(options, "neon"); got != -1 {
		t.Fatalf("indexOf missing = %d", got)
	}
	if diff := cmp.Diff([]int{0, 2}, indicesOf(options, []string{"copper", "dark"})); diff != "" {
		t.Fatalf("indicesOf mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"light"}, defaultsFromIndices(options, []int{1, 7, -1})); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}
