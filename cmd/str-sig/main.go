// Package main provides the str-sig command-line tool.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var verbose bool

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "str-sig",
		Short: "STR mutation signature analysis",
		Long: `str-sig extracts short tandem repeat (STR) mutations from paired
tumor/normal VCF files, aggregates them into per-sample mutation-category
count matrices, and decomposes those matrices into mutational signatures
via non-negative matrix factorization.`,
		Version:       fmt.Sprintf("%s (%s) built %s", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(newExtractCmd())
	cmd.AddCommand(newMatrixCmd())
	cmd.AddCommand(newNMFCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

// initConfig loads ~/.str-sig.yaml and STR_SIG_* environment overrides.
func initConfig() error {
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
	}
	viper.SetConfigName(".str-sig")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("STR_SIG")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}
	return nil
}

// newLogger builds the CLI logger. Debug logging with caller info when
// --verbose is set, console info logging otherwise.
func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true
	return cfg.Build()
}
