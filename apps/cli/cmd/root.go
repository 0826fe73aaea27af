package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/reqvault/packages/output"
	"github.com/abdul-hamid-achik/reqvault/packages/storage"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var (
	flagVerbose bool
	flagNoColor bool
	flagEnv     string
)

var rootCmd = &cobra.Command{
	Use:   "reqvault",
	Short: "Save, organize and send HTTP requests from the terminal.",
	Long: `reqvault is a terminal HTTP client. Requests live in named
collections, environments supply {{variable}} values at send time,
and every sent request lands in a searchable history.`,
}

func Execute(v, bt string) {
	version = v
	buildTime = bt
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "show response headers and extra detail")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVarP(&flagEnv, "env", "e", "", "environment to resolve variables from")

	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(collectionCmd)
	rootCmd.AddCommand(envCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(versionCmd)
}

// openStorage opens the store, honoring REQVAULT_DIR for tests and
// scripting.
func openStorage() (*storage.Storage, error) {
	if dir := os.Getenv("REQVAULT_DIR"); dir != "" {
		return storage.WithPath(dir)
	}
	return storage.New()
}

func newPrinter() *output.Printer {
	return output.NewPrinter(
		output.WithVerbose(flagVerbose),
		output.WithNoColor(flagNoColor),
	)
}
