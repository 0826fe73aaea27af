package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/reqvault/packages/bench"
	"github.com/abdul-hamid-achik/reqvault/packages/core/request"
)

var (
	benchCount       int
	benchConcurrency int
	benchRate        float64
	benchURL         string
	benchMethod      string
)

var benchCmd = &cobra.Command{
	Use:   "bench [collection] [request]",
	Short: "Send a request repeatedly and report latency percentiles",
	Long: `Send one request many times and report throughput and latency
percentiles. Works on a saved request or an ad-hoc --url.

Examples:
  reqvault bench my-api health -n 500 -c 20
  reqvault bench --url http://localhost:3000/health --rate 100`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStorage()
		if err != nil {
			return err
		}

		var req *request.Request
		switch len(args) {
		case 2:
			col, err := store.LoadCollection(args[0])
			if err != nil {
				return err
			}
			saved := col.FindRequest(args[1])
			if saved == nil {
				return fmt.Errorf("request %q not found in collection %q", args[1], args[0])
			}
			req = saved.Request.Clone()
		case 0:
			if benchURL == "" {
				return fmt.Errorf("nothing to bench: name a saved request or pass --url")
			}
			method := benchMethod
			if method == "" {
				method = "GET"
			}
			if !request.ValidMethod(method) {
				return fmt.Errorf("unsupported method %q", method)
			}
			req = request.New(method, benchURL)
		default:
			return fmt.Errorf("expected a collection and request name, or --url")
		}

		vars, err := selectVars(store)
		if err != nil {
			return err
		}
		resolved := req.Resolve(vars)

		config := &bench.Config{
			Count:       benchCount,
			Concurrency: benchConcurrency,
			Rate:        benchRate,
		}

		reporter := bench.NewReporter(bench.WithReporterNoColor(flagNoColor))
		reporter.Header(resolved.Method, resolved.URL, config)

		summary, err := bench.NewRunner(config).Run(cmd.Context(), resolved)
		if err != nil {
			return err
		}
		reporter.Summary(summary)
		return nil
	},
}

func init() {
	benchCmd.Flags().IntVarP(&benchCount, "count", "n", 100, "total requests to send")
	benchCmd.Flags().IntVarP(&benchConcurrency, "concurrency", "c", 10, "requests in flight at once")
	benchCmd.Flags().Float64Var(&benchRate, "rate", 0, "cap on requests per second (0 = unlimited)")
	benchCmd.Flags().StringVar(&benchURL, "url", "", "URL for an ad-hoc bench")
	benchCmd.Flags().StringVarP(&benchMethod, "method", "X", "", "HTTP method for ad-hoc bench")
}
