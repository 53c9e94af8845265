// Command pagerank-crawler runs a single bounded crawl from a seed URL
// and writes the crawled link graph, PageRank scores, and run metrics
// to CSV files in the current directory.
//
// Grounded on the teacher's cmd/crawler/main.go: logrus setup and
// logrus.Fatalf on startup failure, generalized from the teacher's
// JSON-config-file startup to spec.md §6's three-positional-argument
// contract.
package main

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/alvmarrod/pagerank-crawler/internal/config"
	"github.com/alvmarrod/pagerank-crawler/internal/coordinator"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.ParseArgs(os.Args[1:])
	if err != nil {
		logrus.Fatalf("invalid arguments: %v", err)
	}

	if err := coordinator.Run(context.Background(), cfg, coordinator.DefaultPaths()); err != nil {
		logrus.Fatalf("crawl failed: %v", err)
	}
}
