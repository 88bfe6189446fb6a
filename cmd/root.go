package cmd

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/afancontrol/afancontrol/cmd/config"
	"github.com/afancontrol/afancontrol/cmd/global"
	"github.com/afancontrol/afancontrol/internal"
	"github.com/afancontrol/afancontrol/internal/configuration"
	"github.com/afancontrol/afancontrol/internal/ui"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "afancontrol",
	Short: "A daemon to control the fans of a computer.",
	Long: `afancontrol is a simple daemon that controls the fans
on your computer based on temperature sensors.`,
}

func init() {
	// this is the default command to run when no subcommand is specified;
	// assigned here rather than in the literal to avoid an initialization
	// cycle through daemonCliConfig.
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		setupUi()
		printHeader()

		configPath := configuration.DetectConfigFile(global.CfgFile)
		ui.Info("Using configuration file at: %s", configPath)

		parsedConfig, err := configuration.Parse(configPath, daemonCliConfig())
		if err != nil {
			ui.Error("Config Validation Error: %v", err)
			os.Exit(1)
		}

		return internal.RunDaemon(parsedConfig)
	}

	rootCmd.PersistentFlags().StringVarP(&global.CfgFile, "config", "c", "", "config file (default is /etc/afancontrol/afancontrol.conf)")
	rootCmd.PersistentFlags().BoolVarP(&global.NoColor, "no-color", "", false, "Disable all terminal output coloration")
	rootCmd.PersistentFlags().BoolVarP(&global.NoStyle, "no-style", "", false, "Disable all terminal output styling")
	rootCmd.PersistentFlags().BoolVarP(&global.Verbose, "verbose", "v", false, "More verbose output")

	rootCmd.Flags().StringVarP(&global.PidFile, "pidfile", "", "", "pidfile path (overrides the config file value)")
	rootCmd.Flags().StringVarP(&global.LogFile, "logfile", "", "", "logfile path (overrides the config file value)")
	rootCmd.Flags().StringVarP(&global.ExporterListenHost, "exporter-listen-host", "", "", "host:port for the metrics exporter (overrides the config file value)")

	rootCmd.AddCommand(config.Command)
}

// daemonCliConfig maps the set command line flags to the config overrides,
// leaving the unset ones nil.
func daemonCliConfig() configuration.DaemonCLIConfig {
	cli := configuration.DaemonCLIConfig{}
	if rootCmd.Flags().Changed("pidfile") {
		cli.PidFile = &global.PidFile
	}
	if rootCmd.Flags().Changed("logfile") {
		cli.LogFile = &global.LogFile
	}
	if rootCmd.Flags().Changed("exporter-listen-host") {
		cli.ExporterListenHost = &global.ExporterListenHost
	}
	return cli
}

func setupUi() {
	ui.SetDebugEnabled(global.Verbose)

	if global.NoColor {
		pterm.DisableColor()
	}
	if global.NoStyle {
		pterm.DisableStyling()
	}
}

// Print a large text with the LetterStyle from the standard theme.
func printHeader() {
	err := pterm.DefaultBigText.WithLetters(
		pterm.NewLettersFromStringWithStyle("afan", pterm.NewStyle(pterm.FgLightBlue)),
		pterm.NewLettersFromStringWithStyle("control", pterm.NewStyle(pterm.FgWhite)),
	).Render()
	if err != nil {
		fmt.Println("afancontrol")
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
