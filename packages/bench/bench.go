package bench

import (
	"context"
	"sync"

	"golang.org/x/time/rate"

	"github.com/abdul-hamid-achik/reqvault/packages/core/request"
	reqhttp "github.com/abdul-hamid-achik/reqvault/packages/http"
)

// Sender is what the runner drives; satisfied by http.Client.
type Sender interface {
	Do(ctx context.Context, req *request.Request) (*request.Response, error)
}

type Runner struct {
	config *Config
	sender Sender
}

type RunnerOption func(*Runner)

func NewRunner(config *Config, opts ...RunnerOption) *Runner {
	r := &Runner{
		config: config,
		sender: reqhttp.NewClient(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WithSender swaps the HTTP client, mainly for tests.
func WithSender(s Sender) RunnerOption {
	return func(r *Runner) {
		r.sender = s
	}
}

// Run sends the request Count times across Concurrency workers and
// returns the aggregated summary. The request must already be
// resolved. Cancelling ctx stops the run early; whatever was measured
// so far is still reported.
func (r *Runner) Run(ctx context.Context, req *request.Request) (*Summary, error) {
	if err := r.config.Validate(); err != nil {
		return nil, err
	}

	var limiter *rate.Limiter
	if r.config.Rate > 0 {
		limiter = rate.NewLimiter(rate.Limit(r.config.Rate), 1)
	}

	jobs := make(chan struct{})
	metrics := NewMetrics()
	metrics.Start()

	var wg sync.WaitGroup
	for i := 0; i < r.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range jobs {
				if limiter != nil {
					if err := limiter.Wait(ctx); err != nil {
						return
					}
				}
				resp, err := r.sender.Do(ctx, req.Clone())
				if err != nil {
					if ctx.Err() != nil {
						return
					}
					metrics.Record(0, true)
					continue
				}
				metrics.Record(resp.Duration, resp.IsServerError())
			}
		}()
	}

feed:
	for i := 0; i < r.config.Count; i++ {
		select {
		case jobs <- struct{}{}:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()
	metrics.Stop()

	return metrics.Summary(), nil
}
