package graphstore

import (
	"github.com/sirupsen/logrus"
)

// Graph is the merged, single-owner view of the crawl: a domain-level
// link graph, per-domain visit counts, and (once computed) PageRank
// scores. It is populated by MergeBuffers and then by a PageRank pass,
// both single-threaded postludes to the concurrent crawl.
type Graph struct {
	LinkGraph  map[string][]string
	VisitCount map[string]int
	PageRank   map[string]float64
}

// New returns an empty Graph.
func New() *Graph {
	return &Graph{
		LinkGraph:  make(map[string][]string),
		VisitCount: make(map[string]int),
		PageRank:   make(map[string]float64),
	}
}

// MergeBuffers collapses the given per-worker buffers, in index order,
// into g's LinkGraph and VisitCount.
//
// Adjacency lists are last-writer-wins: if two workers both crawled the
// same domain, only the later-indexed buffer's adjacency list survives.
// This is an accepted lossy behavior of the domain-granular design.
//
// Visit counts sum across buffers, so total crawl volume per domain is
// preserved even when a domain's adjacency is overwritten.
func (g *Graph) MergeBuffers(buffers []*WorkerBuffer) {
	for _, buf := range buffers {
		if buf == nil {
			continue
		}
		for domain, neighbors := range buf.LocalGraph {
			g.LinkGraph[domain] = neighbors
		}
		for domain, count := range buf.LocalVisitCount {
			g.VisitCount[domain] += count
		}
	}

	logrus.Infof("Merged %d worker buffers into %d domains, %d total visits",
		len(buffers), len(g.LinkGraph), sumCounts(g.VisitCount))
}

func sumCounts(counts map[string]int) int {
	total := 0
	for _, c := range counts {
		total += c
	}
	return total
}

// NodeSet returns the union of LinkGraph's keys and every domain
// appearing in any adjacency list — the authoritative node set for
// PageRank.
func (g *Graph) NodeSet() map[string]struct{} {
	nodes := make(map[string]struct{}, len(g.LinkGraph))
	for source, neighbors := range g.LinkGraph {
		nodes[source] = struct{}{}
		for _, dst := range neighbors {
			nodes[dst] = struct{}{}
		}
	}
	return nodes
}
