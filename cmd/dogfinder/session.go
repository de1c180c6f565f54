package main

import (
	"context"
	"errors"

	"github.com/dogfinder/dogfinder/cmd"
	"github.com/dogfinder/dogfinder/internal/domain"
	apperrors "github.com/dogfinder/dogfinder/internal/errors"
	"github.com/dogfinder/dogfinder/internal/logging"
)

// errMissingCredentials is returned when no name or email was given.
var errMissingCredentials = errors.New("name and email are required: pass --name and --email or set DOGFINDER_USER_NAME and DOGFINDER_USER_EMAIL")

// console reports non-fatal problems of a command on the terminal.
var console apperrors.ErrorHandler = apperrors.NewCLIHandler(&apperrors.ColorsOutput{})

type sessionClient interface {
	Login(ctx context.Context, name, email string) (*domain.Session, error)
	Logout(ctx context.Context) error
}

// withSession logs in, runs fn and logs out again. A failed logout only
// warns since fn already produced its output.
func withSession(ctx context.Context, client sessionClient, fn func() error) error {
	name, email := cmd.Credentials()
	if name == "" || email == "" {
		return errMissingCredentials
	}
	if _, err := client.Login(ctx, name, email); err != nil {
		return userError(err)
	}
	defer func() {
		if err := client.Logout(ctx); err != nil {
			logging.Warn("logout failed", "error", err.Error())
			console.Warning("Logout failed: " + domain.UserMessage(err))
		}
	}()
	return fn()
}

// commandError carries the user-facing text of a failure while keeping the
// cause for errors.Is and errors.As.
type commandError struct {
	msg string
	err error
}

func (e *commandError) Error() string { return e.msg }
func (e *commandError) Unwrap() error { return e.err }

// userError logs err and replaces its text with the user-facing message.
func userError(err error) error {
	if err == nil {
		return nil
	}
	kind := "unclassified"
	if k, ok := domain.KindOf(err); ok {
		kind = k.String()
	}
	logging.Warn("command failed", "kind", kind, "error", err.Error())
	return &commandError{msg: domain.UserMessage(err), err: err}
}
