package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/reqvault/packages/core/collection"
	"github.com/abdul-hamid-achik/reqvault/packages/import/curl"
	"github.com/abdul-hamid-achik/reqvault/packages/import/insomnia"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import requests from other tools",
}

var importName string

var importInsomniaCmd = &cobra.Command{
	Use:   "insomnia <file>",
	Short: "Import an Insomnia export as a collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var opts []insomnia.Option
		if importName != "" {
			opts = append(opts, insomnia.WithCollectionName(importName))
		}

		col, err := insomnia.NewConverter(opts...).ConvertFile(args[0])
		if err != nil {
			return err
		}

		store, err := openStorage()
		if err != nil {
			return err
		}
		if _, err := store.LoadCollection(col.Name); err == nil {
			return fmt.Errorf("collection %q already exists; use --name to import under another name", col.Name)
		}
		if err := store.SaveCollection(col); err != nil {
			return err
		}

		total := len(col.Requests)
		for _, f := range col.Folders {
			total += countFolder(f)
		}
		newPrinter().PrintSuccess("imported %d request(s) into collection %q", total, col.Name)
		return nil
	},
}

var importCollection string

var importCurlCmd = &cobra.Command{
	Use:   "curl <command>",
	Short: "Save a curl command as a request",
	Long: `Parse a curl command line and save it into a collection.

Example:
  reqvault import curl --collection my-api \
    "curl -X POST https://api.example.com/users -d '{\"name\":\"x\"}'"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if importCollection == "" {
			return fmt.Errorf("--collection is required")
		}

		saved, err := curl.Convert(strings.Join(args, " "))
		if err != nil {
			return err
		}
		if importName != "" {
			saved.Name = importName
		}

		store, err := openStorage()
		if err != nil {
			return err
		}
		col, err := store.LoadCollection(importCollection)
		if err != nil {
			return err
		}
		if col.FindRequest(saved.Name) != nil {
			return fmt.Errorf("request %q already exists in %q", saved.Name, importCollection)
		}
		col.AddRequest(saved)
		if err := store.SaveCollection(col); err != nil {
			return err
		}
		newPrinter().PrintSuccess("saved %s %s as %q", saved.Request.Method, saved.Request.URL, saved.Name)
		return nil
	},
}

func init() {
	importInsomniaCmd.Flags().StringVar(&importName, "name", "", "name for the imported collection or request")
	importCurlCmd.Flags().StringVar(&importName, "name", "", "name for the imported collection or request")
	importCurlCmd.Flags().StringVar(&importCollection, "collection", "", "collection to save the request into")

	importCmd.AddCommand(importInsomniaCmd)
	importCmd.AddCommand(importCurlCmd)
}

func countFolder(f *collection.Folder) int {
	n := len(f.Requests)
	for _, sub := range f.Folders {
		n += countFolder(sub)
	}
	return n
}
