package cached

import (
	"context"
	"testing"
	"time"

	"github.com/talentgraph/recommender/internal/graphstore"
	"github.com/talentgraph/recommender/internal/types"
)

// countingStore wraps a memory-shaped fixture and counts calls reaching
// the inner store, so tests can assert a cache hit never reaches it.
type countingStore struct {
	skillNodeCalls int
	node           *types.SkillNode
}

func (c *countingStore) ResolveSkillSynonym(ctx context.Context, raw string) (string, error) {
	return "", graphstore.ErrNotFound
}
func (c *countingStore) SkillHierarchyChildren(ctx context.Context, parentSkillID string) ([]string, error) {
	return nil, nil
}
func (c *countingStore) SkillNode(ctx context.Context, skillID string) (*types.SkillNode, error) {
	c.skillNodeCalls++
	return c.node, nil
}
func (c *countingStore) DomainNode(ctx context.Context, domainID string) (*types.DomainNode, error) {
	return nil, graphstore.ErrNotFound
}
func (c *countingStore) AllSkillNodes(ctx context.Context) ([]*types.SkillNode, error) {
	return nil, nil
}
func (c *countingStore) AllDomainNodes(ctx context.Context) ([]*types.DomainNode, error) {
	return nil, nil
}
func (c *countingStore) SkillCorrelations(ctx context.Context, skillID string, minStrength float64) ([]types.Correlation, error) {
	return nil, nil
}
func (c *countingStore) CandidatesMatching(ctx context.Context, plan graphstore.QueryPlan) ([]*types.Candidate, error) {
	return nil, nil
}
func (c *countingStore) Candidate(ctx context.Context, engineerID string) (*types.Candidate, error) {
	return nil, graphstore.ErrNotFound
}

func TestStore_SkillNodeHitsInnerOnlyOnce(t *testing.T) {
	inner := &countingStore{node: &types.SkillNode{ID: "go", Name: "Go"}}
	s := New(inner, 100, time.Hour, nil)

	for i := 0; i < 3; i++ {
		node, err := s.SkillNode(context.Background(), "go")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if node.ID != "go" {
			t.Fatalf("expected node go, got %+v", node)
		}
	}
	if inner.skillNodeCalls != 1 {
		t.Fatalf("expected exactly one inner call, got %d", inner.skillNodeCalls)
	}
}

func TestStore_InvalidateForcesARefetch(t *testing.T) {
	inner := &countingStore{node: &types.SkillNode{ID: "go", Name: "Go"}}
	s := New(inner, 100, time.Hour, nil)

	if _, err := s.SkillNode(context.Background(), "go"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.Invalidate()
	if _, err := s.SkillNode(context.Background(), "go"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.skillNodeCalls != 2 {
		t.Fatalf("expected invalidation to force a second inner call, got %d", inner.skillNodeCalls)
	}
}

func TestStore_InvalidationChannelBumpsEpoch(t *testing.T) {
	inner := &countingStore{node: &types.SkillNode{ID: "go", Name: "Go"}}
	events := make(chan struct{})
	s := New(inner, 100, time.Hour, events)

	if _, err := s.SkillNode(context.Background(), "go"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	events <- struct{}{}
	// Give the listener goroutine a chance to process the event before
	// the next read; this is the one place the decorator's own test
	// needs a real clock instead of a fake one.
	time.Sleep(10 * time.Millisecond)
	if _, err := s.SkillNode(context.Background(), "go"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.skillNodeCalls != 2 {
		t.Fatalf("expected the invalidation event to force a second inner call, got %d", inner.skillNodeCalls)
	}
}

func TestStore_CandidateQueriesAlwaysPassThrough(t *testing.T) {
	inner := &countingStore{}
	s := New(inner, 100, time.Hour, nil)
	if _, err := s.Candidate(context.Background(), "eng-1"); err != graphstore.ErrNotFound {
		t.Fatalf("expected ErrNotFound to pass through uncached, got %v", err)
	}
}
