package promptcmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/statline/statline/internal/config"
	"github.com/statline/statline/internal/logger"
	"github.com/statline/statline/internal/modules"
	"github.com/statline/statline/internal/platform"
	"github.com/statline/statline/internal/ui"
)

// New creates the `prompt` command. It renders the status line for the
// current shell prompt, printing nothing when no segment applies.
func New() *cobra.Command {
	var rootDir string
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Render the status line for the current shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(file)
			if err != nil {
				return err
			}

			log, closer, err := logger.New(logger.Options{
				Out:     cmd.ErrOrStderr(),
				Level:   cfg.LogLevel,
				LogFile: cfg.LogFile,
			})
			if err != nil {
				return err
			}
			if closer != nil {
				defer func() { _ = closer.Close() }()
			}

			pctx := platform.New(rootDir)
			m := modules.Container(pctx, cfg.Container, log)
			if m == nil {
				return nil
			}
			// No trailing newline: the output is embedded in the prompt.
			_, _ = fmt.Fprint(cmd.OutOrStdout(), ui.Render(m.Segments))
			return nil
		},
	}
	cmd.Flags().StringVar(&rootDir, "root", "", "Resolve probe paths under this directory instead of / (debugging aid)")
	return cmd
}
