// Package cached decorates a graphstore.Store with a process-wide
// skill/domain graph cache: a generic pkg/cache.LRU per lookup method,
// keyed by a graph snapshot epoch so that an ingestion event invalidates
// every entry at once without walking or clearing the underlying maps.
//
// Candidate and CandidatesMatching are never cached. Those answer a
// specific request's filters and change with every hire/departure, so
// caching them would only ever return stale results for the one class
// of query where freshness matters most. Only the comparatively static
// skill/domain taxonomy and its correlation edges are cached.
package cached

import (
	"context"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/talentgraph/recommender/internal/graphstore"
	"github.com/talentgraph/recommender/internal/types"
	"github.com/talentgraph/recommender/pkg/cache"
)

// key embeds the epoch a cache entry was written under. Bumping epoch
// makes every previously-written key unreachable; the stale entries are
// reclaimed by the LRU's own eviction and TTL expiry rather than an
// explicit sweep.
type key struct {
	epoch int64
	id    string
}

// Store wraps a graphstore.Store, caching its skill/domain taxonomy
// lookups. It implements graphstore.Store.
type Store struct {
	inner graphstore.Store
	epoch atomic.Int64

	synonyms          *cache.LRU[key, string]
	hierarchyChildren *cache.LRU[key, []string]
	skillNodes        *cache.LRU[key, *types.SkillNode]
	domainNodes       *cache.LRU[key, *types.DomainNode]
	correlations      *cache.LRU[key, []types.Correlation]
}

var _ graphstore.Store = (*Store)(nil)

// New wraps inner with a cache sized and aged per cfg. invalidate, when
// non-nil, is the ingestion-event channel: every value received on it
// bumps the snapshot epoch, write-through invalidating the whole cache
// for readers that start after the bump. New spawns no goroutine unless
// invalidate is non-nil; callers that never mutate the graph out of
// band (e.g. tests) can pass a nil channel and rely on TTL expiry alone.
func New(inner graphstore.Store, maxEntries int, ttl time.Duration, invalidate <-chan struct{}) *Store {
	cfg := &cache.Config{MaxEntries: maxEntries, TTL: ttl}
	s := &Store{
		inner:             inner,
		synonyms:          cache.New[key, string](cfg),
		hierarchyChildren: cache.New[key, []string](cfg),
		skillNodes:        cache.New[key, *types.SkillNode](cfg),
		domainNodes:       cache.New[key, *types.DomainNode](cfg),
		correlations:      cache.New[key, []types.Correlation](cfg),
	}
	if invalidate != nil {
		go s.listen(invalidate)
	}
	return s
}

func (s *Store) listen(invalidate <-chan struct{}) {
	for range invalidate {
		s.Invalidate()
	}
}

// Invalidate bumps the snapshot epoch, write-through invalidating every
// cached entry without touching the underlying maps.
func (s *Store) Invalidate() {
	s.epoch.Add(1)
}

func (s *Store) key(id string) key {
	return key{epoch: s.epoch.Load(), id: id}
}

// ResolveSkillSynonym implements graphstore.Store.
func (s *Store) ResolveSkillSynonym(ctx context.Context, raw string) (string, error) {
	k := s.key(raw)
	if v, ok := s.synonyms.Get(k); ok {
		return v, nil
	}
	v, err := s.inner.ResolveSkillSynonym(ctx, raw)
	if err != nil {
		return "", err
	}
	s.synonyms.Set(k, v)
	return v, nil
}

// SkillHierarchyChildren implements graphstore.Store.
func (s *Store) SkillHierarchyChildren(ctx context.Context, parentSkillID string) ([]string, error) {
	k := s.key(parentSkillID)
	if v, ok := s.hierarchyChildren.Get(k); ok {
		return v, nil
	}
	v, err := s.inner.SkillHierarchyChildren(ctx, parentSkillID)
	if err != nil {
		return nil, err
	}
	s.hierarchyChildren.Set(k, v)
	return v, nil
}

// SkillNode implements graphstore.Store.
func (s *Store) SkillNode(ctx context.Context, skillID string) (*types.SkillNode, error) {
	k := s.key(skillID)
	if v, ok := s.skillNodes.Get(k); ok {
		return v, nil
	}
	v, err := s.inner.SkillNode(ctx, skillID)
	if err != nil {
		return nil, err
	}
	s.skillNodes.Set(k, v)
	return v, nil
}

// DomainNode implements graphstore.Store.
func (s *Store) DomainNode(ctx context.Context, domainID string) (*types.DomainNode, error) {
	k := s.key(domainID)
	if v, ok := s.domainNodes.Get(k); ok {
		return v, nil
	}
	v, err := s.inner.DomainNode(ctx, domainID)
	if err != nil {
		return nil, err
	}
	s.domainNodes.Set(k, v)
	return v, nil
}

// SkillCorrelations implements graphstore.Store. minStrength is folded
// into the cache key since the same skill is queried at different
// thresholds by different callers.
func (s *Store) SkillCorrelations(ctx context.Context, skillID string, minStrength float64) ([]types.Correlation, error) {
	k := s.key(skillID + "|" + strconv.FormatFloat(minStrength, 'f', -1, 64))
	if v, ok := s.correlations.Get(k); ok {
		return v, nil
	}
	v, err := s.inner.SkillCorrelations(ctx, skillID, minStrength)
	if err != nil {
		return nil, err
	}
	s.correlations.Set(k, v)
	return v, nil
}

// AllSkillNodes passes straight through to inner. It is a bulk, load-time
// operation (internal/graphload builds a snapshot from it once at
// startup), not a per-request lookup, so caching it would add complexity
// without a hot path to speed up.
func (s *Store) AllSkillNodes(ctx context.Context) ([]*types.SkillNode, error) {
	return s.inner.AllSkillNodes(ctx)
}

// AllDomainNodes passes straight through to inner, for the same reason.
func (s *Store) AllDomainNodes(ctx context.Context) ([]*types.DomainNode, error) {
	return s.inner.AllDomainNodes(ctx)
}

// CandidatesMatching passes straight through to inner; candidate pools
// are request-specific and never cached.
func (s *Store) CandidatesMatching(ctx context.Context, plan graphstore.QueryPlan) ([]*types.Candidate, error) {
	return s.inner.CandidatesMatching(ctx, plan)
}

// Candidate passes straight through to inner for the same reason.
func (s *Store) Candidate(ctx context.Context, engineerID string) (*types.Candidate, error) {
	return s.inner.Candidate(ctx, engineerID)
}
