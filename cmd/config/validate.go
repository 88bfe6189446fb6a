package config

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/afancontrol/afancontrol/cmd/global"
	"github.com/afancontrol/afancontrol/internal/configuration"
	"github.com/afancontrol/afancontrol/internal/ui"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validates the current configuration",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// note: config file path parameter comes from the root command (-c)
		configPath := configuration.DetectConfigFile(global.CfgFile)
		ui.Info("Using configuration file at: %s", configPath)

		if _, err := configuration.Parse(configPath, configuration.DaemonCLIConfig{}); err != nil {
			ui.Error("Validation failed: %v", err)
			os.Exit(1)
		}

		ui.Success("Config looks good! :)")
		return nil
	},
}

func init() {
	Command.AddCommand(validateCmd)
}
