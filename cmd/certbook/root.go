// Root command for the certbook CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/certbook/internal/paths"
)

// version is the CLI version string.
const version = "0.1.0"

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagJSON      bool
	flagCaller    string
	flagDeposit   uint64
)

// Values loaded from config.yaml by PersistentPreRunE so all subcommands
// can use them.
var (
	configDataDir  string
	configCaller   string
	configByteCost uint64
)

var rootCmd = &cobra.Command{
	Use:     "certbook",
	Short:   "Certbook is a local-first certificate and job registry",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		configDataDir = cfg.GetString(cfgKeyDataDir)
		configCaller = cfg.GetString(cfgKeyCaller)
		configByteCost = cfg.GetUint64(cfgKeyByteCost)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: $(CWD)/.certbook-db)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().StringVar(&flagCaller, "caller", "", "acting account (default: caller from config.yaml)")
	rootCmd.PersistentFlags().Uint64Var(&flagDeposit, "deposit", 1, "deposit attached to the operation, in minimal units")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(jobCmd)
	rootCmd.AddCommand(categoryCmd)
	rootCmd.AddCommand(certCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(infoCmd)
}

// resolveDataDir returns the data directory path following the precedence:
// --data-dir flag > config.yaml data_dir > CERTBOOK_DATA_DIR env > default
// $(CWD)/.certbook-db.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, configDataDir)
}

// resolveConfigDir returns the configuration directory following the
// precedence: --config-dir flag > CERTBOOK_CONFIG_DIR env > platform
// default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}

// resolveCaller returns the acting account: --caller flag, else the
// config.yaml caller.
func resolveCaller() string {
	if flagCaller != "" {
		return flagCaller
	}
	return configCaller
}
