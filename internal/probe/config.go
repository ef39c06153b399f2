package probe

import "time"

// Config holds configuration for one probe run.
type Config struct {
	BaseURL   string        // Base URL of the dashboard service
	Lang      string        // ja or en
	Start     int           // first year, 0 for the service default
	End       int           // last year, 0 for the service default
	Countries []string      // country codes sent to list endpoints
	Workers   int           // concurrent requests
	Timeout   time.Duration // per-request timeout
	Only      []string      // probe names to run, empty for all
	Verbose   bool
}

// Result is the outcome of one probe.
type Result struct {
	Name    string
	Path    string
	Status  int
	Bytes   int
	Latency time.Duration
	Detail  string
	Err     error
}

// OK reports whether the probe passed.
func (r Result) OK() bool { return r.Err == nil }

// Stats summarizes a run.
type Stats struct {
	RunID    string
	Passed   int
	Failed   int
	Results  []Result
	Duration time.Duration
}
