package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/okian/wbdash/internal/probe"
	"github.com/okian/wbdash/pkg/logger"
)

// Default configuration constants.
const (
	defaultTimeout  = 60 * time.Second
	defaultRunLimit = 5 * time.Minute
)

func main() {
	var (
		baseURL   = flag.String("url", "http://localhost:9080", "Base URL of the service")
		lang      = flag.String("lang", "ja", "Response locale (ja or en)")
		start     = flag.Int("start", 0, "First year (0 uses the service window)")
		end       = flag.Int("end", 0, "Last year (0 uses the service window)")
		countries = flag.String("countries", "GT,HN,SV", "Comma separated country codes")
		only      = flag.String("only", "", "Comma separated probe names ("+strings.Join(probe.Names(), ",")+")")
		workers   = flag.Int("workers", runtime.NumCPU(), "Number of concurrent requests")
		timeout   = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		noColor   = flag.Bool("no-color", false, "Disable colored output")
		verbose   = flag.Bool("verbose", false, "Log every probe as it finishes")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	if !*verbose {
		_ = logger.SetLevelString("warn")
	}
	if *noColor {
		color.NoColor = true
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunLimit)
	defer cancel()

	cfg := &probe.Config{
		BaseURL:   *baseURL,
		Lang:      *lang,
		Start:     *start,
		End:       *end,
		Countries: splitList(*countries),
		Workers:   *workers,
		Timeout:   *timeout,
		Only:      splitList(*only),
		Verbose:   *verbose,
	}

	if _, err := probe.Run(ctx, cfg, os.Stdout); err != nil {
		color.Red("probe failed: %v", err)
		os.Exit(1)
	}
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
