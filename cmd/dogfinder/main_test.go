package main

import (
	"context"
	"errors"
	"testing"

	"github.com/dogfinder/dogfinder/cmd"
)

func TestRunReturnsZeroOnSuccess(t *testing.T) {
	var gotArgs []string
	code := run([]string{"version"}, func(_ context.Context, args []string) error {
		gotArgs = args
		return nil
	})
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if len(gotArgs) != 1 || gotArgs[0] != "version" {
		t.Fatalf("expected args to be passed through, got %v", gotArgs)
	}
}

func TestRunReturnsOneOnError(t *testing.T) {
	code := run(nil, func(context.Context, []string) error {
		return errors.New("boom")
	})
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
}

func TestRootRegistersSubcommands(t *testing.T) {
	want := []string{"breeds", "history", "match", "nearby", "search", "settings", "tui", "version"}
	for _, name := range want {
		found := false
		for _, c := range cmd.RootCmd.Commands() {
			if c.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected root command to register %q", name)
		}
	}
}
