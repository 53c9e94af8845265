// Package pagerank computes damped PageRank scores over a domain-level
// link graph using a fixed iteration count, damping, teleport mass, and
// dangling-node redistribution.
package pagerank

import (
	"github.com/sirupsen/logrus"
)

const (
	// Iterations is the fixed number of PageRank iterations. Chosen for
	// determinism and simplicity; a port may add an optional
	// L1-residual early stop but must not change this default.
	Iterations = 30
	// Damping is the probability a random surfer follows an outgoing
	// link rather than teleporting to a random node.
	Damping = 0.85
)

// Compute runs Iterations rounds of damped PageRank over linkGraph and
// its implied node set (linkGraph's keys union every domain appearing
// in any adjacency list). It returns a score per node summing to 1.
//
// If the node set is empty, Compute logs a warning and returns an empty
// map.
func Compute(linkGraph map[string][]string) map[string]float64 {
	nodes := nodeSet(linkGraph)
	n := len(nodes)
	if n == 0 {
		logrus.Warn("pagerank: empty node set, skipping computation")
		return map[string]float64{}
	}

	pr := make(map[string]float64, n)
	initial := 1.0 / float64(n)
	for node := range nodes {
		pr[node] = initial
	}

	teleport := (1 - Damping) / float64(n)

	for iter := 0; iter < Iterations; iter++ {
		newPr := make(map[string]float64, n)
		for node := range nodes {
			newPr[node] = teleport
		}

		dangling := 0.0
		for node := range nodes {
			links, hasOutlinks := linkGraph[node]
			if !hasOutlinks || len(links) == 0 {
				dangling += pr[node]
			}
		}

		for source, links := range linkGraph {
			if len(links) == 0 {
				continue
			}
			contribution := Damping * pr[source] / float64(len(links))
			for _, dst := range links {
				newPr[dst] += contribution
			}
		}

		danglingShare := Damping * dangling / float64(n)
		for node := range nodes {
			newPr[node] += danglingShare
		}

		normalize(newPr)
		pr = newPr
	}

	return pr
}

// nodeSet returns the union of linkGraph's keys and every domain
// appearing in any adjacency list.
func nodeSet(linkGraph map[string][]string) map[string]struct{} {
	nodes := make(map[string]struct{})
	for source, neighbors := range linkGraph {
		nodes[source] = struct{}{}
		for _, dst := range neighbors {
			nodes[dst] = struct{}{}
		}
	}
	return nodes
}

// normalize rescales pr in place so its values sum to exactly 1,
// masking floating-point drift accumulated over the iteration.
func normalize(pr map[string]float64) {
	sum := 0.0
	for _, v := range pr {
		sum += v
	}
	if sum <= 0 {
		return
	}
	for k, v := range pr {
		pr[k] = v / sum
	}
}
