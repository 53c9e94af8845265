package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alvmarrod/pagerank-crawler/internal/graphstore"
)

func TestWriteCrawledPagesSingleRow(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crawled_pages.csv")

	g := graphstore.New()
	g.LinkGraph["a.test"] = nil
	g.VisitCount["a.test"] = 1

	require.NoError(t, WriteCrawledPages(path, g))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "domain,outgoing_links,visit_count")
	require.Contains(t, string(data), "a.test,0,1")
}

func TestWriteCrawledPagesEmptyGraphIsHeaderOnly(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crawled_pages.csv")

	require.NoError(t, WriteCrawledPages(path, graphstore.New()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "domain,outgoing_links,visit_count\n", string(data))
}

func TestWritePageRankFormatsSixDecimals(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pagerank_results.csv")

	g := graphstore.New()
	g.PageRank["a.test"] = 1.0

	require.NoError(t, WritePageRank(path, g))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "a.test,1.000000")
}

func TestAppendMetricsWritesHeaderOnceThenAppends(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "metrics.csv")

	m := RunMetrics{SeedURL: "http://a.test/", MaxPages: 5, NumThreads: 2, TotalMs: 1000, PagesCrawled: 1, Throughput: 1.0}
	require.NoError(t, AppendMetrics(path, m))
	require.NoError(t, AppendMetrics(path, m))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	require.Equal(t, 1, countOccurrences(string(data), "seed_url,max_pages,num_threads,total_ms,pages_crawled,throughput"))
	require.Equal(t, 2, countOccurrences(string(data), "http://a.test/"))
}

func countOccurrences(haystack, needle string) int {
	count := 0
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			count++
		}
	}
	return count
}
