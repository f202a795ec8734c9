package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/inodb/str-sig/internal/matrix"
)

// configKeys are the settings the matrix command reads as flag defaults.
var configKeys = map[string]string{
	"ru":         "repeat unit in matrix labels: none, length, or ru",
	"ref-length": "include reference repeat length in matrix labels (bool)",
	"change":     "include tumor-normal change in matrix labels (bool)",
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage str-sig configuration",
		Long: `Show, get, or set configuration values. Config is stored in
~/.str-sig.yaml; values act as defaults for the matrix command's
label switches.`,
		Example: `  str-sig config                   # show all config
  str-sig config set ru none       # drop the repeat unit from labels
  str-sig config get ru            # get a value`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow()
		},
	}

	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(newConfigGetCmd())

	return cmd
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(args[0], args[1])
		},
	}
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigGet(args[0])
		},
	}
}

func runConfigShow() error {
	settings := viper.AllSettings()
	if len(settings) == 0 {
		fmt.Println("# No configuration set. Config file: ~/.str-sig.yaml")
		return nil
	}

	out, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	fmt.Print(string(out))
	return nil
}

// coerceValue validates and type-converts a value for a known key.
func coerceValue(key, value string) (any, error) {
	switch key {
	case "ru":
		mode := matrix.RUMode(value)
		if mode != matrix.RUNone && mode != matrix.RULength && mode != matrix.RUSequence {
			return nil, fmt.Errorf("invalid ru mode %q (want none, length or ru)", value)
		}
		return value, nil
	case "ref-length", "change":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("invalid boolean %q for %s", value, key)
		}
		return b, nil
	default:
		keys := make([]string, 0, len(configKeys))
		for k := range configKeys {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("unknown config key %q (known keys: %s)", key, strings.Join(keys, ", "))
	}
}

func runConfigSet(key, value string) error {
	val, err := coerceValue(key, value)
	if err != nil {
		return err
	}
	viper.Set(key, val)

	cfgFile := viper.ConfigFileUsed()
	if cfgFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("cannot determine home directory: %w", err)
		}
		cfgFile = filepath.Join(home, ".str-sig.yaml")
	}

	if err := viper.WriteConfigAs(cfgFile); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("Set %s = %s in %s\n", key, value, cfgFile)
	return nil
}

func runConfigGet(key string) error {
	val := viper.Get(key)
	if val == nil {
		desc, known := configKeys[key]
		if known {
			return fmt.Errorf("key %q is not set (%s)", key, desc)
		}
		return fmt.Errorf("key %q is not set", key)
	}
	fmt.Println(val)
	return nil
}
