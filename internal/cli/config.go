package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/noticer/pkg/config"
)

// configCommand groups configuration helpers.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create configuration files",
	}
	cmd.AddCommand(c.configInitCommand())
	cmd.AddCommand(c.configShowCommand())
	return cmd
}

// configInitCommand prints the default configuration as TOML.
func (c *CLI) configInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Print the default configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.Default().Write(cmd.OutOrStdout())
		},
	}
}

// configShowCommand prints the effective configuration.
func (c *CLI) configShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration (token omitted)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cfg.GitHubToken != "" {
				c.Logger.Info("GitHub token is set", "source", tokenSource())
			}
			return cfg.Write(cmd.OutOrStdout())
		},
	}
}

func tokenSource() string {
	if os.Getenv(config.TokenEnv) != "" {
		return config.TokenEnv
	}
	return "config file"
}
