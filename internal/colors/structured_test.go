package colors

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func enableDebug(t *testing.T) {
	t.Helper()
	old := DebugEnabled()
	SetDebug(true)
	t.Cleanup(func() { SetDebug(old) })
}

func TestEmitWritesRequestTrace(t *testing.T) {
	_, errOut := captureOutput(t)
	enableDebug(t)

	Emit(Trace{
		Level:      LevelError,
		Component:  "api",
		Action:     "/dogs/search",
		Status:     "failed",
		RequestID:  "req-1",
		Method:     "GET",
		HTTPStatus: 500,
		DurationMS: 12,
		Error:      "boom",
	})

	var got Trace
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(errOut.String())), &got))
	assert.NotEmpty(t, got.Time)
	assert.Equal(t, LevelError, got.Level)
	assert.Equal(t, "req-1", got.RequestID)
	assert.Equal(t, 500, got.HTTPStatus)
	assert.Equal(t, int64(12), got.DurationMS)
}

func TestTraceStepOmitsRequestFields(t *testing.T) {
	_, errOut := captureOutput(t)
	enableDebug(t)

	TraceStep(LevelInfo, "startup", "main", "failed", errors.New("boom"))

	line := strings.TrimSpace(errOut.String())
	assert.NotContains(t, line, "request_id")
	assert.NotContains(t, line, "http_status")
	var got Trace
	require.NoError(t, json.Unmarshal([]byte(line), &got))
	assert.Equal(t, "boom", got.Error)
	assert.Equal(t, "startup", got.Component)
}

func TestEmitDefaultsToDebugLevel(t *testing.T) {
	_, errOut := captureOutput(t)
	enableDebug(t)

	Emit(Trace{Component: "api", Action: "/dogs", Status: "started"})

	assert.Contains(t, errOut.String(), `"level":"debug"`)
}

func TestSuspendTraces(t *testing.T) {
	_, errOut := captureOutput(t)
	enableDebug(t)

	resume := SuspendTraces()
	TraceStep(LevelInfo, "tui", "start", "started", nil)
	assert.Empty(t, errOut.String())

	resume()
	TraceStep(LevelInfo, "tui", "start", "completed", nil)
	assert.Contains(t, errOut.String(), "completed")
}

func TestTracesSilentWithoutDebug(t *testing.T) {
	_, errOut := captureOutput(t)
	old := DebugEnabled()
	SetDebug(false)
	t.Cleanup(func() { SetDebug(old) })

	TraceStep(LevelInfo, "tui", "start", "started", nil)

	assert.Empty(t, errOut.String())
}
