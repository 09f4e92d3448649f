package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/statline/statline/internal/apperr"
	"github.com/statline/statline/internal/cli/buildinfo"
	"github.com/statline/statline/internal/cli/promptcmd"
	"github.com/statline/statline/internal/cli/versioncmd"
)

// verbose controls extra error detail printing.
var verbose bool

// Execute runs the root command and handles error formatting and exit codes.
func Execute(ctx context.Context) int {
	cmd := NewRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		printUserFriendly(err)
		switch {
		case apperr.IsKind(err, apperr.InvalidInput) || apperr.IsKind(err, apperr.NotFound):
			return 2
		case apperr.IsKind(err, apperr.External):
			return 70
		default:
			return 1
		}
	}
	return 0
}

// NewRootCmd builds the statline command tree.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "statline",
		Short:         "Render shell status-line segments",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringP("config", "c", "", "Path to configuration file (defaults to statline.yml or statline.yaml in current directory)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose error output")

	cmd.AddCommand(promptcmd.New())
	cmd.AddCommand(versioncmd.New())

	cmd.SetVersionTemplate(fmt.Sprintf("%s\n", buildinfo.VersionSimple()))
	cmd.Version = buildinfo.VersionSimple()

	return cmd
}

func printUserFriendly(err error) {
	var e *apperr.E
	if errors.As(err, &e) {
		if e.Msg != "" {
			fmt.Fprintf(os.Stderr, "Error: %s\n", e.Msg)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err.Error())
		}
		if verbose {
			fmt.Fprintln(os.Stderr, "Detail:", err)
		}
		if apperr.IsKind(err, apperr.NotFound) {
			fmt.Fprintln(os.Stderr, "Hint: pass --config or create statline.yml in the current directory.")
		}
		return
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
}
