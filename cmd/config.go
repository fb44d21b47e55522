package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/dirtab/internal/config"
)

var (
	configOutput  string
	configDefault bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the merged configuration",
	Long: `Print the configuration dirtab runs with: the built-in defaults merged with
--config-file or $XDG_CONFIG_HOME/dirtab/config.yaml. --default prints the
built-in file verbatim, comments included, as a starting point.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()
		if configDefault {
			_, err := out.Write(config.DefaultYAML())
			return err
		}
		path := config.ResolvePath(configFile)
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		data, err := config.Marshal(cfg, configOutput)
		if err != nil {
			return err
		}
		if path != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "# merged with %s\n", path)
		}
		_, err = out.Write(data)
		return err
	},
}

func init() { //nolint:gochecknoinits
	configCmd.Flags().StringVarP(&configOutput, "output", "o", "yaml", "output format: yaml|json")
	configCmd.Flags().BoolVar(&configDefault, "default", false, "print the built-in default config")
}
