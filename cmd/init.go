package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nroehner/libSBOL/internal/config"
)

func (c *cli) initCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Long: `Write a commented default config to --config or ~/.config/libsbol/config.yaml.
--homespace, --compliant and --typed given alongside are saved into the new file.

Examples:
  sbol init
  sbol init --config .libsbol/config.yaml --homespace http://examples.com --compliant --typed`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := c.cfgFile
			if path == "" {
				path = config.DefaultConfigPath()
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.WriteDefaultConfig(path); err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("homespace") {
				if err := config.SaveHomespace(path, c.cfg.Homespace); err != nil {
					return err
				}
			}
			if flags.Changed("compliant") || flags.Changed("typed") {
				if err := config.SaveCompliance(path, c.cfg.CompliantURIs, c.cfg.TypedURIs); err != nil {
					return err
				}
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return err
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing config file")
	return cmd
}
