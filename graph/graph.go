// Package graph orders parent/child relations so that parents are always
// resolved before their children.
package graph

import (
	"errors"
	"fmt"
	"sort"
)

// ErrCycle is returned when the relations loop back on themselves.
var ErrCycle = errors.New("cycle detected in graph")

// Edge says that From must come before To.
type Edge struct {
	From string
	To   string
}

// TopologicalSort orders ids with Kahn's algorithm. Ties are broken by id so
// the result is deterministic. Edges naming unknown ids are rejected.
func TopologicalSort(ids []string, edges []Edge) ([]string, error) {
	inDegree := make(map[string]int, len(ids))
	outs := make(map[string][]string)
	for _, id := range ids {
		if _, dup := inDegree[id]; dup {
			return nil, fmt.Errorf("duplicate node %q", id)
		}
		inDegree[id] = 0
	}

	for _, e := range edges {
		if _, ok := inDegree[e.From]; !ok {
			return nil, fmt.Errorf("edge %s -> %s: unknown node %q", e.From, e.To, e.From)
		}
		if _, ok := inDegree[e.To]; !ok {
			return nil, fmt.Errorf("edge %s -> %s: unknown node %q", e.From, e.To, e.To)
		}
		outs[e.From] = append(outs[e.From], e.To)
		inDegree[e.To]++
	}

	queue := []string{}
	for _, id := range ids {
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}
	sort.Strings(queue)

	result := make([]string, 0, len(ids))
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		result = append(result, u)

		next := []string{}
		for _, v := range outs[u] {
			inDegree[v]--
			if inDegree[v] == 0 {
				next = append(next, v)
			}
		}
		sort.Strings(next)
		queue = append(queue, next...)
	}

	if len(result) != len(ids) {
		return nil, ErrCycle
	}
	return result, nil
}
