package main

import (
	"fmt"

	"keyenv/internal/config"
	verinfo "keyenv/internal/version"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect keyenv settings",
}

var configViewCmd = &cobra.Command{
	Use:   "view",
	Short: "Dump the resolved settings",
	Long:  `Display the settings after defaults, the config file, KEYENV_* variables and flags are applied.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			return fmt.Errorf("config is not loaded")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "# config file: %s\n", configSource())
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
		return enc.Close()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", verinfo.Name, verinfo.Version)
	},
}

func configSource() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.DefaultConfigPath()
}

func init() {
	configCmd.AddCommand(configViewCmd)
	rootCmd.AddCommand(configCmd, versionCmd)
}
