package coordinator

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alvmarrod/pagerank-crawler/internal/config"
)

func TestRunSinglePageProducesExpectedTables(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	paths := Paths{
		CrawledPages: filepath.Join(dir, "crawled_pages.csv"),
		PageRank:     filepath.Join(dir, "pagerank_results.csv"),
		Metrics:      filepath.Join(dir, "metrics.csv"),
	}

	cfg := &config.Config{SeedURL: srv.URL + "/", MaxPages: 5, ConcurrentWorkers: 2}
	require.NoError(t, Run(context.Background(), cfg, paths))

	crawled, err := os.ReadFile(paths.CrawledPages)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(crawled), "domain,outgoing_links,visit_count\n"))

	ranking, err := os.ReadFile(paths.PageRank)
	require.NoError(t, err)
	require.Contains(t, string(ranking), "1.000000")

	metrics, err := os.ReadFile(paths.Metrics)
	require.NoError(t, err)
	require.Contains(t, string(metrics), "seed_url,max_pages,num_threads,total_ms,pages_crawled,throughput")
}

func TestRunUnreachableSeedProducesEmptyTables(t *testing.T) {
	dir := t.TempDir()
	paths := Paths{
		CrawledPages: filepath.Join(dir, "crawled_pages.csv"),
		PageRank:     filepath.Join(dir, "pagerank_results.csv"),
		Metrics:      filepath.Join(dir, "metrics.csv"),
	}

	cfg := &config.Config{SeedURL: "http://127.0.0.1:1/", MaxPages: 5, ConcurrentWorkers: 2}
	require.NoError(t, Run(context.Background(), cfg, paths))

	crawled, err := os.ReadFile(paths.CrawledPages)
	require.NoError(t, err)
	require.Equal(t, "domain,outgoing_links,visit_count\n", string(crawled))

	metrics, err := os.ReadFile(paths.Metrics)
	require.NoError(t, err)
	require.Contains(t, string(metrics), ",0,0.0000\n")
}
