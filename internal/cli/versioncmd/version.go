package versioncmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/statline/statline/internal/cli/buildinfo"
)

// New creates the `version` command.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show detailed version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Statline\n")
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), " Version:\t%s\n", buildinfo.Version())
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), " Go version:\t%s\n", runtime.Version())

			commit := buildinfo.Commit()
			if commit == "" {
				commit = "<unknown>"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), " Git commit:\t%s\n", commit)

			built := buildinfo.BuildDate()
			if built == "" {
				built = "<unknown>"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), " Built:\t\t%s\n", built)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), " OS/Arch:\t%s/%s\n", runtime.GOOS, runtime.GOARCH)
			return nil
		},
	}
	return cmd
}
