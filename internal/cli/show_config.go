// internal/cli/show_config.go
package cpgreport

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mwiater/cpgreport/internal/appconfig"
)

var showConfigRaw bool

// showConfigCmd prints the merged configuration after flags and environment overrides.
var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show config settings",
	Long:  `Show config settings ensuring that the JSON configs are loaded properly and overridden by flags and environment variables accordingly.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if showConfigRaw {
			return appconfig.DumpConfig(cmd.OutOrStdout(), cfg)
		}
		appconfig.ShowConfig(cmd.OutOrStdout(), viper.ConfigFileUsed(), cfg)
		return nil
	},
}

func init() {
	showConfigCmd.Flags().BoolVar(&showConfigRaw, "raw", false, "pretty-print the full configuration struct")
	showCmd.AddCommand(showConfigCmd)
}
