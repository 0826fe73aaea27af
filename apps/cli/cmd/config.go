package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/reqvault/packages/core/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and change settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStorage()
		if err != nil {
			return err
		}
		cfg, err := store.LoadConfig()
		if err != nil {
			return err
		}
		printer := newPrinter()
		printer.Printf("default_environment = %q\n", cfg.DefaultEnvironment)
		printer.Printf("timeout_seconds     = %d\n", cfg.GetTimeoutSeconds())
		printer.Printf("follow_redirects    = %t\n", cfg.GetFollowRedirects())
		printer.Printf("verbose             = %t\n", cfg.GetVerbose())
		printer.Printf("no_color            = %t\n", cfg.GetNoColor())
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Long: `Change one setting. Keys: default_environment, timeout_seconds,
follow_redirects, verbose, no_color.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStorage()
		if err != nil {
			return err
		}
		cfg, err := store.LoadConfig()
		if err != nil {
			return err
		}
		if err := applyConfigValue(cfg, args[0], args[1]); err != nil {
			return err
		}
		if err := store.SaveConfig(cfg); err != nil {
			return err
		}
		newPrinter().PrintSuccess("set %s = %s", args[0], args[1])
		return nil
	},
}

func applyConfigValue(cfg *config.Config, key, value string) error {
	switch key {
	case "default_environment":
		cfg.DefaultEnvironment = value
	case "timeout_seconds":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil || n <= 0 {
			return fmt.Errorf("timeout_seconds needs a positive integer, got %q", value)
		}
		cfg.TimeoutSeconds = n
	case "follow_redirects":
		return setBoolOption(&cfg.FollowRedirects, key, value)
	case "verbose":
		return setBoolOption(&cfg.Verbose, key, value)
	case "no_color":
		return setBoolOption(&cfg.NoColor, key, value)
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	return nil
}

func setBoolOption(target **bool, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("%s needs true or false, got %q", key, value)
	}
	*target = &b
	return nil
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
