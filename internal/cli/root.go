// Package cli wires Fortuna's cobra command tree: new, build, run,
// and clean.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/fortuna-build/fortuna/internal/suggest"
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags.
var Version = "dev"

// NewRootCommand builds the root cobra command.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "fortuna",
		Short:   "Incremental build driver for mixed Fortran/C projects",
		Version: Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newNewCommand())
	cmd.AddCommand(newBuildCommand())
	cmd.AddCommand(newRunCommand())
	cmd.AddCommand(newCleanCommand())

	return cmd
}

// Execute runs the root command and translates an unknown-flag error
// from cobra into a fuzzy "did you mean" suggestion before exiting
// non-zero, per the unknown-CLI-flag error policy.
func Execute() int {
	root := NewRootCommand()
	if err := root.Execute(); err != nil {
		reportError(err)
		return 1
	}
	return 0
}

func reportError(err error) {
	msg := err.Error()
	if token, ok := extractUnknownFlag(msg); ok {
		if word, found := suggest.Suggest(token); found {
			fmt.Fprintf(os.Stderr, "Error: unknown flag %s. Did you mean %s?\n", token, word)
			return
		}
		fmt.Fprintf(os.Stderr, "Error: unknown flag %s\n", token)
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}

// extractUnknownFlag recognizes cobra's "unknown flag: --foo" and
// "unknown command \"foo\" for ..." error shapes and pulls out the
// offending token.
func extractUnknownFlag(msg string) (string, bool) {
	const flagPrefix = "unknown flag: "
	if idx := strings.Index(msg, flagPrefix); idx >= 0 {
		return msg[idx+len(flagPrefix):], true
	}
	const cmdPrefix = `unknown command "`
	if idx := strings.Index(msg, cmdPrefix); idx >= 0 {
		rest := msg[idx+len(cmdPrefix):]
		if end := strings.Index(rest, `"`); end >= 0 {
			return rest[:end], true
		}
	}
	return "", false
}
