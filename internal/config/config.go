// Package config parses and validates the crawler's command-line
// surface: three positional arguments, no config file, no environment
// variables — a narrower ambient config layer than a JSON file, but
// kept in the teacher's validate-then-return-Config shape.
package config

import (
	"fmt"
	"strconv"

	"github.com/alvmarrod/pagerank-crawler/internal/urlnorm"
)

// MaxWorkers is the upper bound on worker count accepted by ParseArgs.
const MaxWorkers = 64

// Config holds validated runtime parameters for a single crawl run.
type Config struct {
	SeedURL           string
	MaxPages          int
	ConcurrentWorkers int
}

// ParseArgs validates the three positional CLI arguments (seed URL,
// maximum pages, worker count) and returns a Config, or an error
// describing the first validation failure encountered.
func ParseArgs(args []string) (*Config, error) {
	if len(args) != 3 {
		return nil, fmt.Errorf("usage: pagerank-crawler <seed-url> <max-pages> <num-threads>")
	}

	cfg := &Config{SeedURL: args[0]}

	maxPages, err := strconv.Atoi(args[1])
	if err == nil {
		cfg.MaxPages = maxPages
	}

	numThreads, err2 := strconv.Atoi(args[2])
	if err2 == nil {
		cfg.ConcurrentWorkers = numThreads
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}

	return cfg, nil
}

// validate checks that Config's fields satisfy the crawler's argument
// contract.
func validate(cfg *Config) error {
	if !urlnorm.Valid(cfg.SeedURL) {
		return fmt.Errorf("seed url must start with http:// or https:// and be at most %d characters", urlnorm.MaxURLLength)
	}
	if cfg.MaxPages <= 0 {
		return fmt.Errorf("max pages must be a positive integer")
	}
	if cfg.ConcurrentWorkers <= 0 {
		return fmt.Errorf("worker count must be a positive integer")
	}
	if cfg.ConcurrentWorkers > MaxWorkers {
		return fmt.Errorf("worker count must be at most %d", MaxWorkers)
	}
	return nil
}
