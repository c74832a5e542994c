package app

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as TOML",
	Long: `Print the configuration apt-ext would use, after applying defaults, the
config file and command-line flags. The output is valid config.toml
content.`,
	Example: `  apt-ext config > ~/.config/apt-ext/config.toml`,
	Args:    maxArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := cfg.TOML()
		if err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}
