package causal

import (
	"fmt"
)

// Chain is a linked sequence of relations from a root cause to a final
// effect.
type Chain struct {
	ID           string
	Relations    []Relation
	RootCause    string
	FinalEffect  string
	Completeness float64
	Gaps         []string
}

func (c *Chain) addRelation(rel Relation) {
	c.Relations = append(c.Relations, rel)
	if c.RootCause == "" {
		c.RootCause = rel.Cause
	}
	c.FinalEffect = rel.Effect
}

// Path renders the chain as "root → … → final".
func (c *Chain) Path() string {
	if len(c.Relations) == 0 {
		return ""
	}
	path := c.Relations[0].Cause
	for _, rel := range c.Relations {
		path += " → " + rel.Effect
	}
	return path
}

// BuildChains links relations into chains by flattening the cause→effect
// graph from each unvisited cause. Branches are linearized into one ordered
// node list; adjacent nodes without a direct edge surface later as
// discontinuity gaps.
func (r *Reasoner) BuildChains(relations []Relation) []Chain {
	// adjacency over event text; effects registered so terminal nodes exist
	graph := make(map[string][]string)
	byEdge := make(map[[2]string]Relation)
	for _, rel := range relations {
		graph[rel.Cause] = append(graph[rel.Cause], rel.Effect)
		if _, ok := graph[rel.Effect]; !ok {
			graph[rel.Effect] = nil
		}
		byEdge[[2]string{rel.Cause, rel.Effect}] = rel
	}

	chains := make([]Chain, 0)
	visited := make(map[string]bool)

	for _, rel := range relations {
		if visited[rel.Cause] {
			continue
		}
		path := traceChain(graph, rel.Cause)
		for _, node := range path {
			visited[node] = true
		}
		if len(path) < 2 {
			continue
		}

		chain := Chain{
			ID:   "chain_" + runePrefix(path[0], 10),
			Gaps: make([]string, 0),
		}
		for i := 0; i+1 < len(path); i++ {
			edge, ok := byEdge[[2]string{path[i], path[i+1]}]
			if !ok {
				continue
			}
			chain.addRelation(edge)
		}
		if len(chain.Relations) == 0 {
			continue
		}

		for i := 0; i+1 < len(chain.Relations); i++ {
			if chain.Relations[i].Effect != chain.Relations[i+1].Cause {
				chain.Gaps = append(chain.Gaps, fmt.Sprintf(
					"因果链断裂: %s → %s 之间缺少中间环节",
					chain.Relations[i].Effect, chain.Relations[i+1].Cause))
			}
		}

		total := 0.0
		for _, edge := range chain.Relations {
			total += edge.Confidence
		}
		chain.Completeness = total / float64(len(chain.Relations))

		chains = append(chains, chain)
	}

	return chains
}

// traceChain flattens the subgraph reachable from start into preorder.
// Iterative; cycles terminate via the visited set.
func traceChain(graph map[string][]string, start string) []string {
	path := make([]string, 0)
	visited := make(map[string]bool)
	stack := []string{start}

	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[node] {
			continue
		}
		visited[node] = true
		path = append(path, node)

		succs := graph[node]
		for i := len(succs) - 1; i >= 0; i-- {
			if !visited[succs[i]] {
				stack = append(stack, succs[i])
			}
		}
	}

	return path
}

func runePrefix(s string, n int) string {
	runes := []rune(s)
	if len(runes) > n {
		runes = runes[:n]
	}
	return string(runes)
}
