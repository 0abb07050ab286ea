package progress

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestTrackerQuietWhenNotTTY(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewTracker(&buf, "fetching", 3)
	tracker.Tick()
	tracker.Tick()
	tracker.FinishSuccess()

	if strings.Contains(buf.String(), "=") {
		t.Errorf("bar rendered to a non-terminal writer: %q", buf.String())
	}
}

func TestFinishErrorPrintsLabel(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewTracker(&buf, "analyzing", 1)
	tracker.FinishError(errors.New("boom"))

	out := buf.String()
	if !strings.Contains(out, "analyzing") || !strings.Contains(out, "boom") {
		t.Errorf("error output = %q, want label and cause", out)
	}
}

func TestSpinnerLifecycle(t *testing.T) {
	var buf bytes.Buffer
	spinner := NewSpinner(&buf, "loading")
	spinner.Tick()
	spinner.FinishSuccess()
}

func TestChangeMax(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewTracker(&buf, "scanning", 0)
	tracker.ChangeMax(10)
	tracker.Tick()
	tracker.FinishSuccess()
}
