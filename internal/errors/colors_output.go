package errors

import "github.com/dogfinder/dogfinder/internal/colors"

// ColorsOutput prints handler messages on the terminal through the colors
// package, so each line is also mirrored to the file logger. Commands use
// it; the TUI routes messages to its status line instead.
type ColorsOutput struct{}

var _ ColorOutput = (*ColorsOutput)(nil)

// Error prints to stderr.
func (ColorsOutput) Error(msgs ...string) { colors.Error(msgs...) }

// Warning prints to stderr.
func (ColorsOutput) Warning(msgs ...string) { colors.Warning(msgs...) }

// Info prints to stdout.
func (ColorsOutput) Info(msgs ...string) { colors.Info(msgs...) }

// Success prints to stdout.
func (ColorsOutput) Success(msgs ...string) { colors.Success(msgs...) }
