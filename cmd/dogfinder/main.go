package main

import (
	"context"
	"os"

	"github.com/dogfinder/dogfinder/cmd"
	"github.com/dogfinder/dogfinder/internal/colors"
)

func main() {
	os.Exit(run(os.Args[1:], cmd.Execute))
}

// run executes the CLI and returns the process exit code.
func run(args []string, execute func(context.Context, []string) error) int {
	colors.TraceStep(colors.LevelInfo, "startup", "main", "started", nil)
	defer appDeps.Close()

	if err := execute(context.Background(), args); err != nil {
		colors.TraceStep(colors.LevelError, "startup", "main", "failed", err)
		return 1
	}
	colors.TraceStep(colors.LevelInfo, "startup", "main", "completed", nil)
	return 0
}
