package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/cfbranks/rankview/internal/domain/season"
	"github.com/cfbranks/rankview/internal/probe"
	"github.com/cfbranks/rankview/pkg/logger"
)

const (
	defaultTimeout  = 10 * time.Second
	defaultDeadline = 2 * time.Minute
)

func main() {
	year, week := season.Resolve(time.Now())

	var (
		baseURL   = flag.String("base", "http://localhost:9080", "Base URL of the gateway")
		probeYear = flag.Int("year", year, "Season year to probe")
		probeWeek = flag.Int("week", week, "Week to probe")
		timeout   = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultDeadline)
	defer cancel()

	cfg := &probe.Config{
		BaseURL: *baseURL,
		Year:    *probeYear,
		Week:    *probeWeek,
		Timeout: *timeout,
	}

	if _, err := cfg.Run(ctx); err != nil {
		os.Stderr.WriteString("Probe failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
