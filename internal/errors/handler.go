// Package errors routes user-facing messages to the console or the TUI status line.
package errors

import (
	"sync"

	"github.com/dogfinder/dogfinder/internal/domain"
	"github.com/dogfinder/dogfinder/internal/logging"
)

// ErrorHandler is the interface for error handling.
// Different implementations can handle errors differently based on context.
type ErrorHandler interface {
	Error(msg string)
	Warning(msg string)
	Info(msg string)
	Success(msg string)
}

// CLIHandler handles errors by printing to stdout/stderr using the colors package.
type CLIHandler struct {
	colors ColorOutput
	mu     sync.Mutex
}

type ColorOutput interface {
	Error(msgs ...string)
	Warning(msgs ...string)
	Info(msgs ...string)
	Success(msgs ...string)
}

func NewCLIHandler(colors ColorOutput) *CLIHandler {
	return &CLIHandler{colors: colors}
}

func (h *CLIHandler) Error(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.colors.Error(msg)
}

func (h *CLIHandler) Warning(msg string) {
	h.colors.Warning(msg)
}

func (h *CLIHandler) Info(msg string) {
	h.colors.Info(msg)
}

func (h *CLIHandler) Success(msg string) {
	h.colors.Success(msg)
}

// Report shows the user-facing message for err and logs the underlying cause.
// Stale responses are silently dropped. Returns false when err is nil.
func Report(h ErrorHandler, err error) bool {
	if err == nil {
		return false
	}
	if isStale(err) {
		logging.Debug("dropped stale response", "error", err.Error())
		return false
	}
	kind := "unclassified"
	if k, ok := domain.KindOf(err); ok {
		kind = k.String()
	}
	logging.Warn("operation failed", "kind", kind, "error", err.Error())
	h.Error(domain.UserMessage(err))
	return true
}
