// Package coordinator sequences a full crawl run: seed the frontier,
// spawn the worker pool, observe progress, join, merge, rank, and emit.
//
// Grounded on the teacher's main.go orchestration (config load ->
// storage init -> crawler init -> seed -> Start -> progress ticker ->
// WaitUntilEmpty -> shutdown), adapted from the teacher's open-ended
// resumable-crawl lifecycle to a single bounded run that terminates on
// a page budget, or once the frontier is drained with no fetch in
// flight, rather than on signals.
package coordinator

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/alvmarrod/pagerank-crawler/internal/config"
	"github.com/alvmarrod/pagerank-crawler/internal/crawler"
	"github.com/alvmarrod/pagerank-crawler/internal/fetch"
	"github.com/alvmarrod/pagerank-crawler/internal/frontier"
	"github.com/alvmarrod/pagerank-crawler/internal/graphstore"
	"github.com/alvmarrod/pagerank-crawler/internal/pagerank"
	"github.com/alvmarrod/pagerank-crawler/internal/report"
	"github.com/alvmarrod/pagerank-crawler/internal/urlnorm"
)

// Paths names the three output files a Run writes.
type Paths struct {
	CrawledPages string
	PageRank     string
	Metrics      string
}

// DefaultPaths returns the output filenames specified in spec.md §6,
// resolved relative to the process's current working directory.
func DefaultPaths() Paths {
	return Paths{
		CrawledPages: "crawled_pages.csv",
		PageRank:     "pagerank_results.csv",
		Metrics:      "metrics.csv",
	}
}

// Run executes one full crawl: seed, crawl to budget, merge, rank, and
// emit. It always writes the three output files, even when zero pages
// are crawled.
func Run(ctx context.Context, cfg *config.Config, paths Paths) error {
	logrus.Infof("Starting crawl: seed=%s max_pages=%d workers=%d", cfg.SeedURL, cfg.MaxPages, cfg.ConcurrentWorkers)
	start := time.Now()

	seed, err := urlnorm.Normalize(cfg.SeedURL)
	if err != nil {
		return fmt.Errorf("coordinator: normalize seed %q: %w", cfg.SeedURL, err)
	}

	f := frontier.New()
	f.Init(seed)

	pool := crawler.NewPool(f, fetch.New(), cfg.ConcurrentWorkers, cfg.MaxPages)

	wait := pool.Run(ctx)
	stopProgress := observeProgress(f, pool)
	wait()
	close(stopProgress)
	f.MarkDone()

	logrus.Infof("Crawl complete: %d pages processed", pool.PagesCrawled())

	graph := graphstore.New()
	graph.MergeBuffers(pool.Buffers())

	graph.PageRank = pagerank.Compute(graph.LinkGraph)

	if err := report.WriteCrawledPages(paths.CrawledPages, graph); err != nil {
		return err
	}
	if err := report.WritePageRank(paths.PageRank, graph); err != nil {
		return err
	}

	elapsed := time.Since(start)
	pagesCrawled := pool.PagesCrawled()
	throughput := 0.0
	if elapsed.Seconds() > 0 {
		throughput = float64(pagesCrawled) / elapsed.Seconds()
	}

	metrics := report.RunMetrics{
		SeedURL:      cfg.SeedURL,
		MaxPages:     cfg.MaxPages,
		NumThreads:   cfg.ConcurrentWorkers,
		TotalMs:      elapsed.Milliseconds(),
		PagesCrawled: pagesCrawled,
		Throughput:   throughput,
	}
	if err := report.AppendMetrics(paths.Metrics, metrics); err != nil {
		return err
	}

	logrus.Infof("Wrote %s, %s, %s", paths.CrawledPages, paths.PageRank, paths.Metrics)
	return nil
}

// observeProgress starts a detached, best-effort ticker that logs
// frontier and crawl progress once per second. It holds no lock across
// its sleep and is safe to leave running past crawl completion; callers
// signal it to stop via the returned channel.
func observeProgress(f *frontier.Frontier, pool *crawler.Pool) chan struct{} {
	stop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(1 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				logrus.Infof("progress: queue_size=%d visited=%d pages_crawled=%d",
					f.QueueSize(), f.VisitedCount(), pool.PagesCrawled())
			}
		}
	}()
	return stop
}
