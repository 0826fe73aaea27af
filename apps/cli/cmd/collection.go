package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/reqvault/packages/core/collection"
	"github.com/abdul-hamid-achik/reqvault/packages/core/json"
	"github.com/abdul-hamid-achik/reqvault/packages/core/request"
	"github.com/abdul-hamid-achik/reqvault/packages/output"
)

var collectionCmd = &cobra.Command{
	Use:     "collection",
	Aliases: []string{"col"},
	Short:   "Manage request collections",
}

var collectionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored collections",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStorage()
		if err != nil {
			return err
		}
		names, err := store.ListCollections()
		if err != nil {
			return err
		}
		printer := newPrinter()
		if len(names) == 0 {
			printer.PrintInfo("no collections yet; create one with 'reqvault collection create <name>'")
			return nil
		}
		for _, name := range names {
			printer.Printf("%s\n", name)
		}
		return nil
	},
}

var collectionShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a collection's requests",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStorage()
		if err != nil {
			return err
		}
		col, err := store.LoadCollection(args[0])
		if err != nil {
			return err
		}

		printer := newPrinter()
		printer.Printf("%s\n", col.Name)
		if col.Description != nil {
			printer.Printf("%s\n", *col.Description)
		}
		printer.Printf("\n")
		printRequests(printer, col.Requests, "")
		for _, f := range col.Folders {
			printFolder(printer, f, "")
		}
		return nil
	},
}

var collectionDescription string

var collectionCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create an empty collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStorage()
		if err != nil {
			return err
		}
		if _, err := store.LoadCollection(args[0]); err == nil {
			return fmt.Errorf("collection %q already exists", args[0])
		}

		col := collection.New(args[0])
		if collectionDescription != "" {
			col.WithDescription(collectionDescription)
		}
		if err := store.SaveCollection(col); err != nil {
			return err
		}
		newPrinter().PrintSuccess("created collection %q", args[0])
		return nil
	},
}

var collectionDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStorage()
		if err != nil {
			return err
		}
		if err := store.DeleteCollection(args[0]); err != nil {
			return err
		}
		newPrinter().PrintSuccess("deleted collection %q", args[0])
		return nil
	},
}

var (
	addMethod  string
	addURL     string
	addHeaders []string
	addData    string
	addTimeout int64
)

var collectionAddCmd = &cobra.Command{
	Use:   "add <collection> <name>",
	Short: "Save a request into a collection",
	Long: `Save a request into a collection. URL, headers and body may
contain {{variable}} placeholders; they stay unresolved until send.

Example:
  reqvault collection add my-api create-user \
    -X POST --url '{{base_url}}/users' \
    -H 'Content-Type: application/json' \
    -d '{"name": "{{user_name}}"}'`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if addURL == "" {
			return fmt.Errorf("--url is required")
		}
		method := addMethod
		if method == "" {
			method = "GET"
		}
		if !request.ValidMethod(method) {
			return fmt.Errorf("unsupported method %q", method)
		}

		store, err := openStorage()
		if err != nil {
			return err
		}
		col, err := store.LoadCollection(args[0])
		if err != nil {
			return err
		}
		if col.FindRequest(args[1]) != nil {
			return fmt.Errorf("request %q already exists in %q", args[1], args[0])
		}

		req := request.New(method, addURL)
		for _, h := range addHeaders {
			key, value, found := strings.Cut(h, ":")
			if !found {
				return fmt.Errorf("malformed header %q, want 'Name: value'", h)
			}
			req.AddHeader(strings.TrimSpace(key), strings.TrimSpace(value))
		}
		if addData != "" {
			req.SetBody(addData)
		}
		if addTimeout > 0 {
			req.SetTimeout(addTimeout)
		}

		col.AddRequest(collection.NewSavedRequest(args[1], req))
		if err := store.SaveCollection(col); err != nil {
			return err
		}
		newPrinter().PrintSuccess("saved %s %s as %q", method, addURL, args[1])
		return nil
	},
}

var collectionExportCmd = &cobra.Command{
	Use:   "export <name>",
	Short: "Print a collection as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStorage()
		if err != nil {
			return err
		}
		col, err := store.LoadCollection(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), json.Serialize(col.ToValue(), true))
		return nil
	},
}

var collectionRemoveCmd = &cobra.Command{
	Use:   "remove <collection> <request>",
	Short: "Remove a request from a collection",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStorage()
		if err != nil {
			return err
		}
		col, err := store.LoadCollection(args[0])
		if err != nil {
			return err
		}
		if !removeRequest(col, args[1]) {
			return fmt.Errorf("request %q not found in collection %q", args[1], args[0])
		}
		if err := store.SaveCollection(col); err != nil {
			return err
		}
		newPrinter().PrintSuccess("removed %q from %q", args[1], args[0])
		return nil
	},
}

func init() {
	collectionCreateCmd.Flags().StringVar(&collectionDescription, "description", "", "collection description")

	collectionAddCmd.Flags().StringVarP(&addMethod, "method", "X", "", "HTTP method (default GET)")
	collectionAddCmd.Flags().StringVar(&addURL, "url", "", "request URL, may contain {{variables}}")
	collectionAddCmd.Flags().StringArrayVarP(&addHeaders, "header", "H", nil, "header, 'Name: value' (repeatable)")
	collectionAddCmd.Flags().StringVarP(&addData, "data", "d", "", "request body")
	collectionAddCmd.Flags().Int64Var(&addTimeout, "timeout", 0, "request timeout in seconds")

	collectionCmd.AddCommand(collectionListCmd)
	collectionCmd.AddCommand(collectionShowCmd)
	collectionCmd.AddCommand(collectionCreateCmd)
	collectionCmd.AddCommand(collectionDeleteCmd)
	collectionCmd.AddCommand(collectionAddCmd)
	collectionCmd.AddCommand(collectionRemoveCmd)
	collectionCmd.AddCommand(collectionExportCmd)
}

func printRequests(printer *output.Printer, requests []*collection.SavedRequest, indent string) {
	for _, r := range requests {
		printer.Printf("%s%-8s %s  (%s)\n", indent, r.Request.Method, r.Request.URL, r.Name)
	}
}

func printFolder(printer *output.Printer, f *collection.Folder, indent string) {
	printer.Printf("%s%s/\n", indent, f.Name)
	printRequests(printer, f.Requests, indent+"  ")
	for _, sub := range f.Folders {
		printFolder(printer, sub, indent+"  ")
	}
}

func removeRequest(col *collection.Collection, idOrName string) bool {
	if removed, ok := removeFrom(col.Requests, idOrName); ok {
		col.Requests = removed
		return true
	}
	for _, f := range col.Folders {
		if removeFromFolder(f, idOrName) {
			return true
		}
	}
	return false
}

func removeFromFolder(f *collection.Folder, idOrName string) bool {
	if removed, ok := removeFrom(f.Requests, idOrName); ok {
		f.Requests = removed
		return true
	}
	for _, sub := range f.Folders {
		if removeFromFolder(sub, idOrName) {
			return true
		}
	}
	return false
}

func removeFrom(requests []*collection.SavedRequest, idOrName string) ([]*collection.SavedRequest, bool) {
	for i, r := range requests {
		if r.ID == idOrName || r.Name == idOrName {
			return append(requests[:i], requests[i+1:]...), true
		}
	}
	return requests, false
}
