// Package bench repeatedly sends one request to measure its latency
// profile.
package bench

import "fmt"

// Config controls a bench run.
type Config struct {
	// Count is the total number of requests to send.
	Count int
	// Concurrency is how many requests may be in flight at once.
	Concurrency int
	// Rate caps requests per second; 0 means unlimited.
	Rate float64
}

func DefaultConfig() *Config {
	return &Config{
		Count:       100,
		Concurrency: 10,
	}
}

func (c *Config) Validate() error {
	if c.Count <= 0 {
		return fmt.Errorf("count must be positive, got %d", c.Count)
	}
	if c.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be positive, got %d", c.Concurrency)
	}
	if c.Concurrency > c.Count {
		c.Concurrency = c.Count
	}
	if c.Rate < 0 {
		return fmt.Errorf("rate must not be negative, got %f", c.Rate)
	}
	return nil
}
