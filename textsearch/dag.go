package textsearch

import (
	"container/heap"
	"math"

	"github.com/fulmenhq/lexigraph/lm"
	"github.com/fulmenhq/lexigraph/telemetry"
	"github.com/fulmenhq/lexigraph/telemetry/metrics"
)

// passThroughCost is the cost of leaving a token unchanged when no segment
// match covers it — high relative to any real variant_cost (which is at
// most 1) but finite, so a consolidated path always exists.
const passThroughCost = 10.0

type edge struct {
	to      int
	cost    float64
	segment *SegmentMatch // nil for a pass-through edge
}

// Consolidate selects a single non-overlapping cover of token positions
// 0..numTokens by shortest-path search over a DAG whose edges are the
// given segment matches plus a pass-through edge between every adjacent
// token position. If an LM collaborator is configured in params, the top
// MaxSeq lowest-cost paths are extracted and the one maximizing the
// combined variant/LM/context mixture is returned instead of the single
// cheapest path.
func Consolidate(segments []SegmentMatch, numTokens int, params Params) []SegmentMatch {
	adjacency := make([][]edge, numTokens+1)
	for i := 0; i < numTokens; i++ {
		adjacency[i] = append(adjacency[i], edge{to: i + 1, cost: passThroughCost})
	}
	for i := range segments {
		seg := &segments[i]
		from, to := seg.TokenSpan[0], seg.TokenSpan[1]
		bestVariantScore := 0.0
		if len(seg.Variants) > 0 {
			bestVariantScore = seg.Variants[0].Score
		}
		baseCost := float64(to - from)
		variantCost := 1 - bestVariantScore
		adjacency[from] = append(adjacency[from], edge{to: to, cost: baseCost + variantCost, segment: seg})
	}

	if params.LM == nil || params.MaxSeq <= 1 {
		path := shortestPath(adjacency, numTokens)
		return pathToSegments(path)
	}

	paths := kShortestPaths(adjacency, numTokens, params.MaxSeq)
	telemetry.EmitCounter(metrics.TextSearchLMRescoreTotal, 1, nil)
	best := selectByMixture(paths, params)
	return pathToSegments(best)
}

func pathToSegments(path []edge) []SegmentMatch {
	out := make([]SegmentMatch, 0, len(path))
	for _, e := range path {
		if e.segment != nil {
			out = append(out, *e.segment)
		}
	}
	return out
}

// shortestPath runs a forward DP over the DAG (edges always increase node
// index) to find the minimum-cost path from 0 to numTokens.
func shortestPath(adjacency [][]edge, numTokens int) []edge {
	const inf = 1e18
	dist := make([]float64, numTokens+1)
	prevEdge := make([]*edge, numTokens+1)
	prevNode := make([]int, numTokens+1)
	for i := range dist {
		dist[i] = inf
	}
	dist[0] = 0

	for i := 0; i <= numTokens; i++ {
		if dist[i] == inf {
			continue
		}
		for ei := range adjacency[i] {
			e := adjacency[i][ei]
			nd := dist[i] + e.cost
			if nd < dist[e.to] {
				dist[e.to] = nd
				prevEdge[e.to] = &adjacency[i][ei]
				prevNode[e.to] = i
			}
		}
	}

	var path []edge
	node := numTokens
	for node != 0 {
		pe := prevEdge[node]
		if pe == nil {
			break
		}
		path = append([]edge{*pe}, path...)
		node = prevNode[node]
	}
	return path
}

type partialPath struct {
	node int
	cost float64
	path []edge
}

type pathHeap []partialPath

func (h pathHeap) Len() int            { return len(h) }
func (h pathHeap) Less(i, j int) bool  { return h[i].cost < h[j].cost }
func (h pathHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *pathHeap) Push(x interface{}) { *h = append(*h, x.(partialPath)) }
func (h *pathHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// kShortestPaths enumerates up to maxSeq lowest-cost simple paths from node
// 0 to numTokens via best-first search over partial paths. Because the DAG
// only moves forward (every edge increases node index), every expansion is
// automatically simple and the search terminates.
func kShortestPaths(adjacency [][]edge, numTokens, maxSeq int) [][]edge {
	h := &pathHeap{{node: 0, cost: 0}}
	heap.Init(h)

	var results [][]edge
	for h.Len() > 0 && len(results) < maxSeq {
		cur := heap.Pop(h).(partialPath)
		if cur.node == numTokens {
			results = append(results, cur.path)
			continue
		}
		for ei := range adjacency[cur.node] {
			e := adjacency[cur.node][ei]
			nextPath := make([]edge, len(cur.path)+1)
			copy(nextPath, cur.path)
			nextPath[len(cur.path)] = e
			heap.Push(h, partialPath{node: e.to, cost: cur.cost + e.cost, path: nextPath})
		}
	}
	return results
}

// selectByMixture picks the path maximizing
// (λ_variant·v + λ_lm·l + λ_ctx·c) / (λ_variant+λ_lm+λ_ctx), where v is the
// mean best-variant score along the path, l is this path's LM log-probability
// normalized against the best log-probability among all candidate paths
// (lm.NormalizeLogRatio, zero-is-best) and converted to a [0,1] scale via
// exp, and c is held at the same value as l in the absence of a distinct
// context model — see DESIGN.md for why no separate context-rules
// collaborator is wired.
func selectByMixture(paths [][]edge, params Params) []edge {
	if len(paths) == 0 {
		return nil
	}

	lambdaSum := params.VariantWeight + params.LMWeight + params.ContextWeight
	if lambdaSum <= 0 {
		return paths[0]
	}

	logProbs := make([]float64, len(paths))
	valid := make([]bool, len(paths))
	bestLogProb := math.Inf(-1)
	for i, path := range paths {
		logProb, err := params.LM.Score(pathTokens(path))
		if err != nil {
			continue
		}
		logProbs[i] = logProb
		valid[i] = true
		if logProb > bestLogProb {
			bestLogProb = logProb
		}
	}

	bestIdx := 0
	bestScore := -1e18
	for i, path := range paths {
		if !valid[i] {
			continue
		}
		v := meanVariantScore(path)
		l := normalizedExp(lm.NormalizeLogRatio(logProbs[i], bestLogProb))
		c := l

		score := (params.VariantWeight*v + params.LMWeight*l + params.ContextWeight*c) / lambdaSum
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}
	return paths[bestIdx]
}

func pathTokens(path []edge) []string {
	var tokens []string
	for _, e := range path {
		if e.segment != nil {
			for _, v := range e.segment.Variants {
				tokens = append(tokens, v.Text)
				break
			}
		}
	}
	return tokens
}

func meanVariantScore(path []edge) float64 {
	sum, n := 0.0, 0
	for _, e := range path {
		if e.segment != nil && len(e.segment.Variants) > 0 {
			sum += e.segment.Variants[0].Score
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// normalizedExp maps a non-positive log-probability to (0,1], with 0
// (the best possible score) mapping to 1.
func normalizedExp(logProb float64) float64 {
	if logProb > 0 {
		logProb = 0
	}
	return math.Exp(logProb)
}
