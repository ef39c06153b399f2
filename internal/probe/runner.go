// Package probe exercises a running dashboard service end to end and reports
// the outcome of every endpoint as a table.
package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/wbdash/pkg/logger"
)

// Run checks health, then fires every selected probe through a worker pool
// and renders the results to w.
func Run(ctx context.Context, cfg *Config, w io.Writer) (*Stats, error) {
	start := time.Now()
	stats := &Stats{RunID: "wbprobe-" + uuid.NewString()}
	log := logger.Named("probe")

	log.Info(ctx, "starting probe run",
		logger.String("runID", stats.RunID),
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("workers", cfg.Workers),
		logger.Strings("countries", cfg.Countries))

	client := newHTTPClient(cfg.BaseURL, stats.RunID, cfg.Timeout)

	if err := checkHealth(ctx, client); err != nil {
		return stats, err
	}

	probes := selectProbes(cfg.Only)
	stats.Results = runProbes(ctx, cfg, client, probes, log)
	for _, r := range stats.Results {
		if r.OK() {
			stats.Passed++
		} else {
			stats.Failed++
		}
	}
	stats.Duration = time.Since(start)

	render(w, stats)

	log.Info(ctx, "probe run finished",
		logger.Int("passed", stats.Passed),
		logger.Int("failed", stats.Failed),
		logger.Duration("duration", stats.Duration))

	if stats.Failed > 0 {
		return stats, fmt.Errorf("%w: %d of %d", ErrProbesFailed, stats.Failed, len(stats.Results))
	}
	return stats, nil
}

// checkHealth verifies the service is running.
func checkHealth(ctx context.Context, client *httpClient) error {
	resp, err := client.get(ctx, "/healthz", nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	if resp.status != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnhealthy, resp.status)
	}
	return nil
}

// runProbes executes probes concurrently. Results keep catalogue order.
func runProbes(ctx context.Context, cfg *Config, client *httpClient, probes []probe, log logger.Logger) []Result {
	results := make([]Result, len(probes))
	workers := max(cfg.Workers, 1)

	jobs := make(chan int, len(probes))
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = runOne(ctx, cfg, client, probes[i])
				if cfg.Verbose {
					log.Info(ctx, "probe done",
						logger.String("probe", results[i].Name),
						logger.Int("status", results[i].Status),
						logger.Duration("latency", results[i].Latency),
						logger.Bool("ok", results[i].OK()))
				}
			}
		}()
	}

	for i := range probes {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return results
}

func runOne(ctx context.Context, cfg *Config, client *httpClient, p probe) Result {
	res := Result{Name: p.name, Path: p.path}
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	start := time.Now()
	resp, err := client.get(ctx, p.path, p.query(cfg))
	res.Latency = time.Since(start)
	if err != nil {
		res.Err = err
		return res
	}
	res.Status = resp.status
	res.Bytes = len(resp.body)
	if resp.requestID != client.runID {
		res.Err = fmt.Errorf("%w: request id %q not echoed", ErrUnexpected, client.runID)
		return res
	}
	res.Detail, res.Err = p.check(resp)
	return res
}
