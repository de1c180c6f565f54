package colors

import (
	"encoding/json"
	"fmt"
	"os"
	"sync/atomic"
	"time"
)

// Traces are JSON lines on stderr, written only in debug mode. Each one
// describes a step of a command or of a request to the shelter service.

var tracesEnabled atomic.Bool

func init() {
	tracesEnabled.Store(true)
}

// TraceLevel is the severity of a trace line.
type TraceLevel string

const (
	LevelDebug TraceLevel = "debug"
	LevelInfo  TraceLevel = "info"
	LevelError TraceLevel = "error"
)

// Trace is one debug line. Request fields stay empty for steps that did
// not talk to the service.
type Trace struct {
	Time       string     `json:"time"`
	Level      TraceLevel `json:"level"`
	Component  string     `json:"component"`
	Action     string     `json:"action"`
	Status     string     `json:"status"`
	RequestID  string     `json:"request_id,omitempty"`
	Method     string     `json:"method,omitempty"`
	HTTPStatus int        `json:"http_status,omitempty"`
	DurationMS int64      `json:"duration_ms,omitempty"`
	Error      string     `json:"error,omitempty"`
}

// SuspendTraces stops trace output until resume is called. The TUI owns
// the terminal while it runs and JSON lines would corrupt the display.
func SuspendTraces() (resume func()) {
	prev := tracesEnabled.Swap(false)
	return func() { tracesEnabled.Store(prev) }
}

// Emit writes t to stderr. Time is set to now when empty.
func Emit(t Trace) {
	if !debugEnabled || !tracesEnabled.Load() {
		return
	}
	if t.Time == "" {
		t.Time = time.Now().UTC().Format(time.RFC3339)
	}
	if t.Level == "" {
		t.Level = LevelDebug
	}

	data, err := json.Marshal(t)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to marshal trace: %v\n", err)
		return
	}
	write(true, string(data))
}

// TraceStep emits a trace without request details.
func TraceStep(level TraceLevel, component, action, status string, err error) {
	t := Trace{Level: level, Component: component, Action: action, Status: status}
	if err != nil {
		t.Error = err.Error()
	}
	Emit(t)
}
