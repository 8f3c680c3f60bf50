package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kk-code-lab/fileripper/internal/config"
)

func newConfigCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Show the configuration fileripper would run with.

The file path is printed first, followed by the merged values of the
config file and FILERIPPER_* environment variables.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := flags.configPath
			if path == "" {
				path = config.DefaultPaths().ConfigFile()
			}
			cfg, err := loadConfig(flags.configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "# %s\n", path)
			fmt.Fprintln(out, cfg.String())
			return nil
		},
	}
}
