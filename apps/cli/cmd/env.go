package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/reqvault/packages/core/env"
)

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Manage variable environments",
}

var envListCmd = &cobra.Command{
	Use:   "list",
	Short: "List environments",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStorage()
		if err != nil {
			return err
		}
		set, err := store.LoadEnvironments()
		if err != nil {
			return err
		}
		printer := newPrinter()
		if len(set.Environments) == 0 {
			printer.PrintInfo("no environments yet; create one with 'reqvault env create <name>'")
			return nil
		}
		for _, e := range set.Environments {
			marker := " "
			if set.Active != nil && *set.Active == e.Name {
				marker = "*"
			}
			printer.Printf("%s %s (%d variables)\n", marker, e.Name, e.Variables.Len())
		}
		return nil
	},
}

var envShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show an environment's variables",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStorage()
		if err != nil {
			return err
		}
		set, err := store.LoadEnvironments()
		if err != nil {
			return err
		}
		e := set.Get(args[0])
		if e == nil {
			return fmt.Errorf("environment %q not found", args[0])
		}
		printer := newPrinter()
		for _, name := range e.Variables.Names() {
			value, _ := e.Variables.Lookup(name)
			printer.Printf("%s=%s\n", name, value)
		}
		return nil
	},
}

var envCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create an empty environment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStorage()
		if err != nil {
			return err
		}
		set, err := store.LoadEnvironments()
		if err != nil {
			return err
		}
		if set.Get(args[0]) != nil {
			return fmt.Errorf("environment %q already exists", args[0])
		}
		set.Add(env.NewEnvironment(args[0]))
		if err := store.SaveEnvironments(set); err != nil {
			return err
		}
		newPrinter().PrintSuccess("created environment %q", args[0])
		return nil
	},
}

var envSetCmd = &cobra.Command{
	Use:   "set <name> <KEY=value>...",
	Short: "Set variables in an environment",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStorage()
		if err != nil {
			return err
		}
		set, err := store.LoadEnvironments()
		if err != nil {
			return err
		}
		e := set.Get(args[0])
		if e == nil {
			return fmt.Errorf("environment %q not found", args[0])
		}
		for _, pair := range args[1:] {
			key, value, found := strings.Cut(pair, "=")
			if !found || key == "" {
				return fmt.Errorf("malformed variable %q, want KEY=value", pair)
			}
			e.Set(key, value)
		}
		if err := store.SaveEnvironments(set); err != nil {
			return err
		}
		newPrinter().PrintSuccess("updated %d variable(s) in %q", len(args)-1, args[0])
		return nil
	},
}

var envUnsetCmd = &cobra.Command{
	Use:   "unset <name> <KEY>...",
	Short: "Remove variables from an environment",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStorage()
		if err != nil {
			return err
		}
		set, err := store.LoadEnvironments()
		if err != nil {
			return err
		}
		e := set.Get(args[0])
		if e == nil {
			return fmt.Errorf("environment %q not found", args[0])
		}
		for _, key := range args[1:] {
			e.Variables.Delete(key)
		}
		if err := store.SaveEnvironments(set); err != nil {
			return err
		}
		newPrinter().PrintSuccess("removed %d variable(s) from %q", len(args)-1, args[0])
		return nil
	},
}

var envUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Make an environment the active one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStorage()
		if err != nil {
			return err
		}
		set, err := store.LoadEnvironments()
		if err != nil {
			return err
		}
		if set.Get(args[0]) == nil {
			return fmt.Errorf("environment %q not found", args[0])
		}
		set.SetActive(args[0])
		if err := store.SaveEnvironments(set); err != nil {
			return err
		}
		newPrinter().PrintSuccess("active environment is now %q", args[0])
		return nil
	},
}

var envDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete an environment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStorage()
		if err != nil {
			return err
		}
		set, err := store.LoadEnvironments()
		if err != nil {
			return err
		}
		if !set.Remove(args[0]) {
			return fmt.Errorf("environment %q not found", args[0])
		}
		if err := store.SaveEnvironments(set); err != nil {
			return err
		}
		newPrinter().PrintSuccess("deleted environment %q", args[0])
		return nil
	},
}

var envImportName string

var envImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import an environment from a .env file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := envImportName
		if name == "" {
			name = "imported"
		}

		imported, err := env.ImportDotEnv(name, args[0])
		if err != nil {
			return err
		}

		store, err := openStorage()
		if err != nil {
			return err
		}
		set, err := store.LoadEnvironments()
		if err != nil {
			return err
		}
		if set.Get(name) != nil {
			return fmt.Errorf("environment %q already exists", name)
		}
		set.Add(imported)
		if err := store.SaveEnvironments(set); err != nil {
			return err
		}
		newPrinter().PrintSuccess("imported %d variable(s) into %q", imported.Variables.Len(), name)
		return nil
	},
}

func init() {
	envImportCmd.Flags().StringVar(&envImportName, "name", "", "name for the imported environment")

	envCmd.AddCommand(envListCmd)
	envCmd.AddCommand(envShowCmd)
	envCmd.AddCommand(envCreateCmd)
	envCmd.AddCommand(envSetCmd)
	envCmd.AddCommand(envUnsetCmd)
	envCmd.AddCommand(envUseCmd)
	envCmd.AddCommand(envDeleteCmd)
	envCmd.AddCommand(envImportCmd)
}
