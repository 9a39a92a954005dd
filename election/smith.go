// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import "sort"

// SmithSet returns the smallest non-empty set of candidates that no outside
// candidate defeats, sorted by name.
//
// Victories only name candidates that won or lost a matchup, so callers must
// pass every candidate name in candidates. The universe is those names plus
// any name appearing in victories. With no victories at all the result is
// exactly the candidate list, and it is empty only when no names were given.
// Tally always passes the election's full candidate list.
func SmithSet(victories []Victory, candidates ...string) []string {
	g := newDefeatGraph(victories, candidates)
	if len(g.nodes) == 0 {
		return []string{}
	}

	comp := g.components()

	// A component with an edge arriving from another component is beaten
	// by someone outside it.
	beaten := make(map[int]bool)
	for from, tos := range g.edges {
		for _, to := range tos {
			if comp[from] != comp[to] {
				beaten[comp[to]] = true
			}
		}
	}

	smith := []string{}
	for _, name := range g.nodes {
		if !beaten[comp[name]] {
			smith = append(smith, name)
		}
	}
	return smith
}

type defeatGraph struct {
	nodes []string            // sorted
	edges map[string][]string // winner -> sorted losers
}

func newDefeatGraph(victories []Victory, candidates []string) *defeatGraph {
	seen := make(map[string]bool)
	g := &defeatGraph{edges: make(map[string][]string)}

	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			g.nodes = append(g.nodes, name)
		}
	}
	for _, name := range candidates {
		add(name)
	}
	for _, v := range victories {
		if v.Winner == v.Loser || v.Margin < 1 {
			continue
		}
		add(v.Winner)
		add(v.Loser)
		g.edges[v.Winner] = append(g.edges[v.Winner], v.Loser)
	}

	sort.Strings(g.nodes)
	for _, losers := range g.edges {
		sort.Strings(losers)
	}
	return g
}

// components labels every node with its strongly connected component using
// Tarjan's algorithm.
func (g *defeatGraph) components() map[string]int {
	var (
		index   = make(map[string]int, len(g.nodes))
		lowlink = make(map[string]int, len(g.nodes))
		onStack = make(map[string]bool, len(g.nodes))
		comp    = make(map[string]int, len(g.nodes))
		stack   []string
		next    int
		count   int
	)

	var connect func(v string)
	connect = func(v string) {
		index[v] = next
		lowlink[v] = next
		next++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range g.edges[v] {
			if _, visited := index[w]; !visited {
				connect(w)
				lowlink[v] = min(lowlink[v], lowlink[w])
			} else if onStack[w] {
				lowlink[v] = min(lowlink[v], index[w])
			}
		}

		if lowlink[v] == index[v] {
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				comp[w] = count
				if w == v {
					break
				}
			}
			count++
		}
	}

	for _, v := range g.nodes {
		if _, visited := index[v]; !visited {
			connect(v)
		}
	}
	return comp
}
