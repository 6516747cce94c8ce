package main

import (
	"fmt"
	"io"
	"os"

	"keyenv/internal/app"
	"keyenv/internal/config"
	"keyenv/internal/logger"
	"keyenv/internal/ui"

	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	cfg       *config.Config
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "keyenv",
	Short: "Manage LLM provider API keys in a local .env file",
	Long: `keyenv edits the API keys of several LLM providers stored in a KEY=VALUE file
and can start the companion startup script once they are saved.

Run without a subcommand to open the interactive form.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTUI,
}

func persistentPreRunE(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cmd)
	if err != nil {
		return err
	}
	if isInteractive(cmd) {
		logCloser, err = logger.SetupFile(cfg.Log.Level, cfg.Log.File)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		return nil
	}
	logger.Setup(cfg.Log.Level, cmd.ErrOrStderr())
	return nil
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive form",
	RunE:  runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	return ui.Run(app.New(cfg), cfg.LaunchDelay())
}

func isInteractive(cmd *cobra.Command) bool {
	return cmd == rootCmd || cmd == tuiCmd
}

func Execute() {
	err := rootCmd.Execute()
	if logCloser != nil {
		_ = logCloser.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Assigned here rather than in the literal to avoid an initialization
	// cycle (rootCmd -> isInteractive -> rootCmd).
	rootCmd.PersistentPreRunE = persistentPreRunE

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/keyenv/config.yaml)")
	pf.String("store.dir", config.DefaultStoreDir, "directory holding the env file and startup script")
	pf.String("store.file", config.DefaultStoreFile, "env file name")
	pf.Bool("store.backup", config.DefaultStoreBackup, "keep a timestamped backup before each save")
	pf.String("launch.script", config.DefaultLaunchScript(), "startup script name")
	pf.String("log.level", config.DefaultLogLevel, "log level (debug, info, warn, error)")

	rootCmd.AddCommand(tuiCmd)
}
