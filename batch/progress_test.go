package batch

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProgressTracker_Basic(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 4, 2)

	tracker.Start()
	assert.True(t, tracker.started, "should be started")

	tracker.Done(nil)
	tracker.Done(nil)
	tracker.Done(errors.New("boom"))
	tracker.Done(nil)

	elapsed := tracker.Elapsed()
	assert.Greater(t, elapsed, time.Duration(0), "elapsed time should be positive")
	assert.Equal(t, 1, tracker.Failed())

	output := buf.String()
	assert.Contains(t, output, "4/4", "should show completion")
	assert.Contains(t, output, "100.0%", "should show 100%")
	assert.Contains(t, output, "1 failed", "should show failures")
}

func TestProgressTracker_Finish(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 10, 100)

	tracker.Start()
	tracker.Done(nil)
	tracker.Finish()

	output := buf.String()
	assert.Contains(t, output, "1/10", "finish reports actual progress")
	assert.True(t, strings.HasSuffix(output, "\n"), "finish should print newline")
}

func TestProgressTracker_ZeroTotal(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 0, 10)

	tracker.Start()
	tracker.Finish()

	assert.Contains(t, buf.String(), "0/0", "should handle zero total")
}

func TestProgressTracker_BeyondTotal(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 1, 1)

	tracker.Start()
	tracker.Done(nil)
	tracker.Done(nil)

	assert.NotContains(t, buf.String(), "2/1", "should not exceed total")
}

func TestProgressTracker_NotStarted(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 100, 10)

	// Should not panic when not started
	tracker.Done(nil)
	tracker.Finish()

	assert.Equal(t, "", buf.String(), "should have no output when not started")
	assert.Zero(t, tracker.Elapsed())
}

func TestProgressTracker_ReportInterval(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 10, 3)

	tracker.Start()

	tracker.Done(nil)
	tracker.Done(nil)
	assert.Equal(t, "", buf.String(), "should not print under interval")

	tracker.Done(nil)
	assert.NotEmpty(t, buf.String(), "should print at interval")
}

func TestProgressTracker_MinimumInterval(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 2, 0)

	tracker.Start()
	tracker.Done(nil)
	assert.Contains(t, buf.String(), "1/2")
}
