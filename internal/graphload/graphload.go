// Package graphload builds an in-process snapshot of the skill and
// domain hierarchies and checks it for cycles at load time: a
// github.com/dominikbraun/graph directed graph alongside a bookkeeping
// map for O(1) node lookups the library itself doesn't expose.
//
// Both hierarchies are declared acyclic: CHILD_OF (skills) and
// ParentID/ENCOMPASSES (domains) are both taxonomy trees, and a cycle in
// either would make hierarchy expansion (internal/taxonomy) loop
// forever. LoadSkillGraph and LoadDomainGraph catch that at startup,
// failing loudly with an error rather than letting the pipeline hang on
// the first request that touches the bad data.
package graphload

import (
	"context"
	"fmt"

	"github.com/dominikbraun/graph"

	"github.com/talentgraph/recommender/internal/graphstore"
	"github.com/talentgraph/recommender/internal/types"
)

// identityHash is the vertex hash for both graphs: ids are already
// unique strings, so the vertex and its hash are the same value.
func identityHash(id string) string { return id }

// SkillGraph is the loaded, cycle-checked skill hierarchy: a directed
// acyclic graph from each skill to its CHILD_OF parent, alongside the
// node data the graph library doesn't carry for us.
type SkillGraph struct {
	Graph graph.Graph[string, string]
	Nodes map[string]*types.SkillNode
}

// DomainGraph is the loaded, cycle-checked domain hierarchy: a directed
// acyclic graph from each domain to its business ParentID and/or its
// technical-domain composite parents (EncompassedBy).
type DomainGraph struct {
	Graph graph.Graph[string, string]
	Nodes map[string]*types.DomainNode
}

// LoadSkillGraph fetches every skill node from store, builds the
// CHILD_OF hierarchy as a directed acyclic graph, and fails loudly if
// any cycle is found.
func LoadSkillGraph(ctx context.Context, store graphstore.Store) (*SkillGraph, error) {
	nodes, err := store.AllSkillNodes(ctx)
	if err != nil {
		return nil, fmt.Errorf("graphload: load skill nodes: %w", err)
	}

	g := graph.New(identityHash, graph.Directed(), graph.Acyclic())
	byID := make(map[string]*types.SkillNode, len(nodes))
	for _, n := range nodes {
		if err := g.AddVertex(n.ID); err != nil {
			return nil, fmt.Errorf("graphload: add skill vertex %q: %w", n.ID, err)
		}
		byID[n.ID] = n
	}
	for _, n := range nodes {
		if n.ParentID == "" {
			continue
		}
		if _, ok := byID[n.ParentID]; !ok {
			// Dangling parent reference; the taxonomy resolver already
			// tolerates unresolved identifiers elsewhere in the pipeline.
			continue
		}
		if err := addEdge(g, n.ID, n.ParentID); err != nil {
			return nil, fmt.Errorf("graphload: skill graph is not acyclic: %s -> %s: %w", n.ID, n.ParentID, err)
		}
	}

	if err := checkAcyclic(g); err != nil {
		return nil, fmt.Errorf("graphload: skill graph failed the acyclic check: %w", err)
	}
	return &SkillGraph{Graph: g, Nodes: byID}, nil
}

// LoadDomainGraph fetches every domain node from store, builds the
// ParentID/ENCOMPASSES hierarchy as a directed acyclic graph, and fails
// loudly if any cycle is found.
func LoadDomainGraph(ctx context.Context, store graphstore.Store) (*DomainGraph, error) {
	nodes, err := store.AllDomainNodes(ctx)
	if err != nil {
		return nil, fmt.Errorf("graphload: load domain nodes: %w", err)
	}

	g := graph.New(identityHash, graph.Directed(), graph.Acyclic())
	byID := make(map[string]*types.DomainNode, len(nodes))
	for _, n := range nodes {
		if err := g.AddVertex(n.ID); err != nil {
			return nil, fmt.Errorf("graphload: add domain vertex %q: %w", n.ID, err)
		}
		byID[n.ID] = n
	}
	for _, n := range nodes {
		if n.ParentID != "" {
			if _, ok := byID[n.ParentID]; ok {
				if err := addEdge(g, n.ID, n.ParentID); err != nil {
					return nil, fmt.Errorf("graphload: domain graph is not acyclic: %s -> %s: %w", n.ID, n.ParentID, err)
				}
			}
		}
		for _, parentID := range n.EncompassedBy {
			if _, ok := byID[parentID]; !ok {
				continue
			}
			if err := addEdge(g, n.ID, parentID); err != nil {
				return nil, fmt.Errorf("graphload: domain graph is not acyclic: %s -> %s: %w", n.ID, parentID, err)
			}
		}
	}

	if err := checkAcyclic(g); err != nil {
		return nil, fmt.Errorf("graphload: domain graph failed the acyclic check: %w", err)
	}
	return &DomainGraph{Graph: g, Nodes: byID}, nil
}

// addEdge adds the edge, tolerating a duplicate (the same parent
// reachable through more than one field) without erroring.
func addEdge(g graph.Graph[string, string], from, to string) error {
	err := g.AddEdge(from, to)
	if err == nil || err == graph.ErrEdgeAlreadyExists {
		return nil
	}
	return err
}

// checkAcyclic re-confirms acyclicity over the fully built graph:
// TopologicalSort fails if any cycle exists, and
// StronglyConnectedComponents makes the failure explicit by naming the
// offending component, should the graph.Acyclic() trait above ever be
// bypassed by a future edge-construction change.
func checkAcyclic(g graph.Graph[string, string]) error {
	if _, err := graph.TopologicalSort(g); err != nil {
		return fmt.Errorf("graph contains a cycle: %w", err)
	}
	sccs, err := graph.StronglyConnectedComponents(g)
	if err != nil {
		return fmt.Errorf("compute strongly connected components: %w", err)
	}
	for _, scc := range sccs {
		if len(scc) > 1 {
			return fmt.Errorf("graph contains a non-trivial strongly connected component: %v", scc)
		}
	}
	return nil
}
