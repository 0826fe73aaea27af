package cmd

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/abdul-hamid-achik/reqvault/packages/core/request"
	"github.com/abdul-hamid-achik/reqvault/packages/core/template"
	"github.com/abdul-hamid-achik/reqvault/packages/history"
	reqhttp "github.com/abdul-hamid-achik/reqvault/packages/http"
	"github.com/abdul-hamid-achik/reqvault/packages/storage"
)

var (
	sendMethod    string
	sendURL       string
	sendHeaders   []string
	sendData      string
	sendTimeout   int64
	sendNoFollow  bool
	sendQuery     string
	sendNoHistory bool
	sendInsecure  bool
	sendProxy     string
	sendUser      string
)

var sendCmd = &cobra.Command{
	Use:   "send [collection] [request]",
	Short: "Send a saved request, or an ad-hoc one with --url",
	Long: `Send a request and print the response.

Saved requests come from a collection; ad-hoc requests are described
with flags. {{variable}} placeholders resolve from the selected
environment (--env, or the active one).

Examples:
  reqvault send my-api health
  reqvault send --url https://api.example.com/users
  reqvault send -X POST --url {{base_url}}/users -d '{"name":"x"}' -H 'Content-Type: application/json'
  reqvault send my-api list-users --query 'users.0.email'`,
	Args: cobra.MaximumNArgs(2),
	RunE: sendCommand,
}

func init() {
	sendCmd.Flags().StringVarP(&sendMethod, "method", "X", "", "HTTP method for ad-hoc requests")
	sendCmd.Flags().StringVar(&sendURL, "url", "", "URL for an ad-hoc request")
	sendCmd.Flags().StringArrayVarP(&sendHeaders, "header", "H", nil, "extra header, 'Name: value' (repeatable)")
	sendCmd.Flags().StringVarP(&sendData, "data", "d", "", "request body")
	sendCmd.Flags().Int64Var(&sendTimeout, "timeout", 0, "request timeout in seconds")
	sendCmd.Flags().BoolVar(&sendNoFollow, "no-follow", false, "do not follow redirects")
	sendCmd.Flags().StringVarP(&sendQuery, "query", "q", "", "print only this gjson path from a JSON response body")
	sendCmd.Flags().BoolVar(&sendNoHistory, "no-history", false, "do not record this request in history")
	sendCmd.Flags().BoolVarP(&sendInsecure, "insecure", "k", false, "skip TLS certificate verification")
	sendCmd.Flags().StringVar(&sendProxy, "proxy", "", "proxy URL")
	sendCmd.Flags().StringVarP(&sendUser, "user", "u", "", "basic auth credentials, user:password")
}

func sendCommand(cmd *cobra.Command, args []string) error {
	printer := newPrinter()

	store, err := openStorage()
	if err != nil {
		printer.PrintError(err)
		return err
	}

	req, err := buildSendRequest(store, args)
	if err != nil {
		printer.PrintError(err)
		return err
	}

	vars, err := selectVars(store)
	if err != nil {
		printer.PrintError(err)
		return err
	}
	resolved := req.Resolve(vars)

	client := reqhttp.NewClient(
		reqhttp.WithValidateSSL(!sendInsecure),
		reqhttp.WithProxy(sendProxy),
	)

	resp, err := client.Do(cmd.Context(), resolved)
	if err != nil {
		printer.PrintError(err)
		return err
	}

	if !sendNoHistory {
		recordHistory(store, resolved, resp)
	}

	if sendQuery != "" {
		if !resp.IsJSON() {
			return fmt.Errorf("--query needs a JSON response, got %q", resp.ContentType())
		}
		result := gjson.GetBytes(resp.Body, sendQuery)
		if !result.Exists() {
			return fmt.Errorf("no value at %q", sendQuery)
		}
		printer.Printf("%s\n", result.String())
		return nil
	}

	printer.PrintResponse(resp)
	return nil
}

func buildSendRequest(store *storage.Storage, args []string) (*request.Request, error) {
	if len(args) == 2 {
		col, err := store.LoadCollection(args[0])
		if err != nil {
			return nil, err
		}
		saved := col.FindRequest(args[1])
		if saved == nil {
			return nil, fmt.Errorf("request %q not found in collection %q", args[1], args[0])
		}
		req := saved.Request.Clone()
		applySendFlags(req)
		return req, nil
	}

	if len(args) == 1 {
		return nil, fmt.Errorf("expected a collection and request name, or --url for an ad-hoc request")
	}

	if sendURL == "" {
		return nil, fmt.Errorf("nothing to send: name a saved request or pass --url")
	}

	method := sendMethod
	if method == "" {
		method = "GET"
		if sendData != "" {
			method = "POST"
		}
	}
	if !request.ValidMethod(method) {
		return nil, fmt.Errorf("unsupported method %q", method)
	}

	req := request.New(method, sendURL)
	applySendFlags(req)
	return req, nil
}

// applySendFlags layers ad-hoc flag values over a request.
func applySendFlags(req *request.Request) {
	for _, h := range sendHeaders {
		key, value, found := strings.Cut(h, ":")
		if !found {
			continue
		}
		req.AddHeader(strings.TrimSpace(key), strings.TrimSpace(value))
	}
	if sendData != "" {
		req.SetBody(sendData)
	}
	if sendTimeout > 0 {
		req.SetTimeout(sendTimeout)
	}
	if sendNoFollow {
		req.FollowRedirects = false
	}
	if sendUser != "" {
		req.AddHeader("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(sendUser)))
	}
}

// selectVars picks the environment for placeholder resolution: --env
// first, then the configured default, then the active environment.
func selectVars(store *storage.Storage) (*template.Vars, error) {
	set, err := store.LoadEnvironments()
	if err != nil {
		return nil, err
	}

	name := flagEnv
	if name == "" {
		cfg, err := store.LoadConfig()
		if err != nil {
			return nil, err
		}
		name = cfg.DefaultEnvironment
	}
	if name == "" {
		return set.Vars(), nil
	}

	e := set.Get(name)
	if e == nil {
		return nil, fmt.Errorf("environment %q not found", name)
	}
	return e.Variables, nil
}

// recordHistory appends to history.json and mirrors into the search
// index. Index failures are ignored; the JSON file is the canonical
// store and the index can be rebuilt from it.
func recordHistory(store *storage.Storage, req *request.Request, resp *request.Response) {
	entry := history.NewEntry(req, resp)
	if err := store.AppendHistory(entry); err != nil {
		return
	}
	if idx, err := history.OpenIndex(store.HistoryIndexPath()); err == nil {
		_ = idx.Add(context.Background(), entry)
		_ = idx.Close()
	}
}
