// Package report emits the crawler's tabular output artifacts: the
// crawled-pages table, the PageRank ranking table, and the appended
// cumulative metrics table. This is intentionally a thin wrapper over
// encoding/csv — spec.md itself calls CSV emission "a trivial
// serializer" out of scope for elaboration, so no third-party CSV or
// templating library is warranted here (see DESIGN.md).
package report

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/alvmarrod/pagerank-crawler/internal/graphstore"
)

// RunMetrics is one row of the cumulative metrics table.
type RunMetrics struct {
	SeedURL      string
	MaxPages     int
	NumThreads   int
	TotalMs      int64
	PagesCrawled int64
	Throughput   float64
}

// WriteCrawledPages writes the crawled-pages table: one row per domain
// in g.LinkGraph, with its (non-deduplicated) out-degree and visit
// count. The file is overwritten on each run.
func WriteCrawledPages(path string, g *graphstore.Graph) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"domain", "outgoing_links", "visit_count"}); err != nil {
		return fmt.Errorf("report: write header: %w", err)
	}

	for domain, neighbors := range g.LinkGraph {
		row := []string{
			domain,
			fmt.Sprintf("%d", len(neighbors)),
			fmt.Sprintf("%d", g.VisitCount[domain]),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("report: write row for %s: %w", domain, err)
		}
	}

	return w.Error()
}

// WritePageRank writes the ranking table: one row per node in g's
// PageRank node set, score formatted with six decimal digits.
func WritePageRank(path string, g *graphstore.Graph) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"domain", "pagerank_score"}); err != nil {
		return fmt.Errorf("report: write header: %w", err)
	}

	for domain, score := range g.PageRank {
		row := []string{domain, fmt.Sprintf("%.6f", score)}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("report: write row for %s: %w", domain, err)
		}
	}

	return w.Error()
}

// AppendMetrics appends one row to the cumulative metrics table at
// path, writing the header first only if the file is currently empty.
func AppendMetrics(path string, m RunMetrics) error {
	needsHeader, err := fileIsEmpty(path)
	if err != nil {
		return fmt.Errorf("report: stat %s: %w", path, err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("report: open %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if needsHeader {
		header := []string{"seed_url", "max_pages", "num_threads", "total_ms", "pages_crawled", "throughput"}
		if err := w.Write(header); err != nil {
			return fmt.Errorf("report: write metrics header: %w", err)
		}
	}

	row := []string{
		m.SeedURL,
		fmt.Sprintf("%d", m.MaxPages),
		fmt.Sprintf("%d", m.NumThreads),
		fmt.Sprintf("%d", m.TotalMs),
		fmt.Sprintf("%d", m.PagesCrawled),
		fmt.Sprintf("%.4f", m.Throughput),
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("report: write metrics row: %w", err)
	}

	return w.Error()
}

func fileIsEmpty(path string) (bool, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return info.Size() == 0, nil
}
