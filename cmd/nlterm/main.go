package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/doeshing/nlterm/internal/app"
	"github.com/doeshing/nlterm/internal/infrastructure/cli"
	"github.com/doeshing/nlterm/internal/infrastructure/cli/commands"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx := context.Background()
	lazy := app.NewLazy(app.Options{Verbose: isVerbose()})
	defer lazy.Close()

	root := cli.NewRootCmd(lazy)
	if err := root.ExecuteContext(ctx); err != nil {
		var exitErr *commands.ExitCodeError
		if errors.As(err, &exitErr) {
			return exitErr.Code
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}

func isVerbose() bool {
	return strings.EqualFold(os.Getenv("NLTERM_DEBUG"), "1") || strings.EqualFold(os.Getenv("NLTERM_DEBUG"), "true")
}
