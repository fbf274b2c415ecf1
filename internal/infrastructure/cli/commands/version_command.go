package commands

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/doeshing/nlterm/internal/version"
)

// NewVersionCommand prints the release stamped into the binary with
// -ldflags, then the toolchain it was built with.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show nlterm version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printBuildInfo(cmd.OutOrStdout())
		},
	}
}

// printBuildInfo omits commit and build date for plain `go build` binaries.
func printBuildInfo(out io.Writer) error {
	if _, err := fmt.Fprintf(out, "nlterm version %s\n", version.Version); err != nil {
		return err
	}
	stamps := []struct{ label, value string }{
		{"Commit", version.Commit},
		{"Built", version.BuildDate},
		{"Go version", runtime.Version()},
	}
	for _, s := range stamps {
		if s.value == "" {
			continue
		}
		if _, err := fmt.Fprintf(out, "%s: %s\n", s.label, s.value); err != nil {
			return err
		}
	}
	return nil
}
