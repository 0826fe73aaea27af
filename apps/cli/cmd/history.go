package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/reqvault/packages/history"
	reqhttp "github.com/abdul-hamid-achik/reqvault/packages/http"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect and replay sent requests",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List history, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStorage()
		if err != nil {
			return err
		}
		entries, err := store.LoadHistory()
		if err != nil {
			return err
		}
		printer := newPrinter()
		if len(entries) == 0 {
			printer.PrintInfo("history is empty")
			return nil
		}
		for i, e := range entries {
			printer.PrintHistoryEntry(i+1, e)
		}
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id|index>",
	Short: "Show one history entry in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStorage()
		if err != nil {
			return err
		}
		entries, err := store.LoadHistory()
		if err != nil {
			return err
		}
		e := history.Find(entries, args[0])
		if e == nil {
			return fmt.Errorf("history entry %q not found", args[0])
		}

		printer := newPrinter()
		printer.Printf("%s  %s\n", e.ID, e.Time().Format("2006-01-02 15:04:05"))
		printer.Printf("%s %s\n", e.Request.Method, e.Request.URL)
		for _, h := range e.Request.Headers {
			printer.Printf("  %s: %s\n", h.Key, h.Value)
		}
		if e.Request.Body != nil {
			printer.Printf("\n%s\n", *e.Request.Body)
		}
		printer.Printf("\n%d %s  (%dms)\n", e.Response.Status, e.Response.StatusText, e.DurationMs)
		if e.Response.BodyPreview != "" {
			printer.Printf("%s\n", e.Response.BodyPreview)
		}
		return nil
	},
}

var historyRerunCmd = &cobra.Command{
	Use:   "rerun <id|index>",
	Short: "Send a past request again, exactly as recorded",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStorage()
		if err != nil {
			return err
		}
		entries, err := store.LoadHistory()
		if err != nil {
			return err
		}
		e := history.Find(entries, args[0])
		if e == nil {
			return fmt.Errorf("history entry %q not found", args[0])
		}

		printer := newPrinter()
		req := e.ToRequest()
		resp, err := reqhttp.NewClient().Do(cmd.Context(), req)
		if err != nil {
			printer.PrintError(err)
			return err
		}
		recordHistory(store, req, resp)
		printer.PrintResponse(resp)
		return nil
	},
}

var historySearchLimit int

var historySearchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search history by URL or method",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStorage()
		if err != nil {
			return err
		}
		entries, err := store.LoadHistory()
		if err != nil {
			return err
		}

		idx, err := history.OpenIndex(store.HistoryIndexPath())
		if err != nil {
			return err
		}
		defer idx.Close()

		ctx := cmd.Context()

		// The JSON file is canonical; refresh the index when it lags.
		count, err := idx.Count(ctx)
		if err != nil {
			return err
		}
		if count != len(entries) {
			if err := idx.Rebuild(ctx, entries); err != nil {
				return err
			}
		}

		results, err := idx.Search(ctx, args[0], historySearchLimit)
		if err != nil {
			return err
		}

		printer := newPrinter()
		if len(results) == 0 {
			printer.PrintInfo("no history entries match %q", args[0])
			return nil
		}
		for _, s := range results {
			if e := history.Find(entries, s.ID); e != nil {
				printer.PrintHistoryEntry(indexOf(entries, s.ID), e)
			}
		}
		return nil
	},
}

var historyTailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Follow history as requests are sent",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStorage()
		if err != nil {
			return err
		}
		printer := newPrinter()
		printer.PrintInfo("watching %s (ctrl-c to stop)", store.HistoryPath())

		err = store.TailHistory(cmd.Context(), func(e *history.Entry) {
			printer.PrintHistoryEntry(1, e)
		})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStorage()
		if err != nil {
			return err
		}
		if err := store.ClearHistory(); err != nil {
			return err
		}
		if idx, err := history.OpenIndex(store.HistoryIndexPath()); err == nil {
			_ = idx.Clear(cmd.Context())
			_ = idx.Close()
		}
		newPrinter().PrintSuccess("history cleared")
		return nil
	},
}

func init() {
	historySearchCmd.Flags().IntVar(&historySearchLimit, "limit", 20, "max results")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyRerunCmd)
	historyCmd.AddCommand(historySearchCmd)
	historyCmd.AddCommand(historyTailCmd)
	historyCmd.AddCommand(historyClearCmd)
}

func indexOf(entries []*history.Entry, id string) int {
	for i, e := range entries {
		if e.ID == id {
			return i + 1
		}
	}
	return 0
}
