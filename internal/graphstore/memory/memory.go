// Package memory implements an in-memory graphstore.Store fixture.
//
// It exists for tests: every unit and property test in this module builds
// its talent graph fixture here rather than against a live Neo4j instance,
// following a deep-copy-on-read discipline to keep callers from mutating
// internal state.
package memory

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"github.com/talentgraph/recommender/internal/graphstore"
	"github.com/talentgraph/recommender/internal/types"
)

var _ graphstore.Store = (*Store)(nil)

// Store is a thread-safe, in-memory implementation of graphstore.Store.
type Store struct {
	mu sync.RWMutex

	skills       map[string]*types.SkillNode
	domains      map[string]*types.DomainNode
	synonyms     map[string]string   // raw token (lowercased) -> canonical skill id
	children     map[string][]string // parent skill id -> child skill ids
	correlations map[string][]types.Correlation
	candidates   map[string]*types.Candidate
}

// New returns an empty in-memory store. Use the With* methods to seed it.
func New() *Store {
	return &Store{
		skills:       make(map[string]*types.SkillNode),
		domains:      make(map[string]*types.DomainNode),
		synonyms:     make(map[string]string),
		children:     make(map[string][]string),
		correlations: make(map[string][]types.Correlation),
		candidates:   make(map[string]*types.Candidate),
	}
}

// WithSkill registers a skill node, returning the store for chaining.
func (s *Store) WithSkill(n *types.SkillNode) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *n
	s.skills[n.ID] = &cp
	return s
}

// WithDomain registers a domain node.
func (s *Store) WithDomain(n *types.DomainNode) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *n
	s.domains[n.ID] = &cp
	return s
}

// WithSynonym registers a raw-token to canonical-skill-id mapping.
func (s *Store) WithSynonym(raw, canonicalSkillID string) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.synonyms[raw] = canonicalSkillID
	return s
}

// WithHierarchyChild registers parent -> child in the skill hierarchy.
func (s *Store) WithHierarchyChild(parentSkillID, childSkillID string) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.children[parentSkillID] = append(s.children[parentSkillID], childSkillID)
	return s
}

// WithCorrelation registers a directed Correlation edge from fromSkillID.
func (s *Store) WithCorrelation(fromSkillID string, c types.Correlation) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.correlations[fromSkillID] = append(s.correlations[fromSkillID], c)
	return s
}

// WithCandidate registers a candidate engineer.
func (s *Store) WithCandidate(c *types.Candidate) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := c.Clone()
	s.candidates[c.ID] = cp
	return s
}

// ResolveSkillSynonym implements graphstore.Store.
func (s *Store) ResolveSkillSynonym(_ context.Context, raw string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if id, ok := s.synonyms[raw]; ok {
		return id, nil
	}
	return "", graphstore.ErrNotFound
}

// SkillHierarchyChildren implements graphstore.Store.
func (s *Store) SkillHierarchyChildren(_ context.Context, parentSkillID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	children := s.children[parentSkillID]
	out := make([]string, len(children))
	copy(out, children)
	return out, nil
}

// SkillNode implements graphstore.Store.
func (s *Store) SkillNode(_ context.Context, skillID string) (*types.SkillNode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.skills[skillID]
	if !ok {
		return nil, graphstore.ErrNotFound
	}
	cp := *n
	return &cp, nil
}

// DomainNode implements graphstore.Store.
func (s *Store) DomainNode(_ context.Context, domainID string) (*types.DomainNode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.domains[domainID]
	if !ok {
		return nil, graphstore.ErrNotFound
	}
	cp := *n
	return &cp, nil
}

// AllSkillNodes implements graphstore.Store.
func (s *Store) AllSkillNodes(_ context.Context) ([]*types.SkillNode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*types.SkillNode, 0, len(s.skills))
	for _, n := range s.skills {
		cp := *n
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// AllDomainNodes implements graphstore.Store.
func (s *Store) AllDomainNodes(_ context.Context) ([]*types.DomainNode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*types.DomainNode, 0, len(s.domains))
	for _, n := range s.domains {
		cp := *n
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// SkillCorrelations implements graphstore.Store.
func (s *Store) SkillCorrelations(_ context.Context, skillID string, minStrength float64) ([]types.Correlation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []types.Correlation
	for _, c := range s.correlations[skillID] {
		if c.Strength >= minStrength {
			out = append(out, c)
		}
	}
	return out, nil
}

// Candidate implements graphstore.Store.
func (s *Store) Candidate(_ context.Context, engineerID string) (*types.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.candidates[engineerID]
	if !ok {
		return nil, graphstore.ErrNotFound
	}
	return c.Clone(), nil
}

// CandidatesMatching implements graphstore.Store by filtering the seeded
// candidate set against the plan in memory. It does not attempt to
// replicate Cypher semantics exactly, only the plan's filter intent.
func (s *Store) CandidatesMatching(_ context.Context, plan graphstore.QueryPlan) ([]*types.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []*types.Candidate
	for _, c := range s.candidates {
		if !hasAllSkills(c, plan.RequiredSkillIDs) {
			continue
		}
		if len(plan.DomainIDs) > 0 && !hasAnyDomain(c, plan.DomainIDs) {
			continue
		}
		if plan.MinYearsExperience != nil && c.YearsExperience < float64(*plan.MinYearsExperience) {
			continue
		}
		if plan.MaxYearsExperience != nil && c.YearsExperience > float64(*plan.MaxYearsExperience) {
			continue
		}
		if plan.TimelineAtOrFaster != "" {
			allowed := types.TimelinesAtOrFaster(types.StartTimeline(plan.TimelineAtOrFaster))
			if !timelineIn(c.StartTimeline, allowed) {
				continue
			}
		}
		if len(plan.Timezones) > 0 && !containsString(plan.Timezones, string(c.Timezone)) {
			continue
		}
		budgetCap := plan.StretchBudget
		if budgetCap == 0 {
			budgetCap = plan.MaxBudget
		}
		if budgetCap > 0 && float64(c.Salary) > budgetCap {
			continue
		}
		matched = append(matched, c.Clone())
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	if plan.Limit > 0 && len(matched) > plan.Limit {
		matched = matched[:plan.Limit]
	}
	return matched, nil
}

func hasAllSkills(c *types.Candidate, required []string) bool {
	for _, req := range required {
		if !c.HasSkillAtLeast(req, types.ProficiencyLearning) {
			return false
		}
	}
	return true
}

func hasAnyDomain(c *types.Candidate, domainIDs []string) bool {
	for _, d := range c.BusinessDomains {
		if containsString(domainIDs, d.DomainID) {
			return true
		}
	}
	for _, d := range c.TechnicalDomains {
		if containsString(domainIDs, d.DomainID) {
			return true
		}
	}
	return false
}

func timelineIn(t types.StartTimeline, allowed []types.StartTimeline) bool {
	for _, a := range allowed {
		if a == t {
			return true
		}
	}
	return false
}

func containsString(haystack []string, needle string) bool {
	for _, h := range haystack {
		if h == needle {
			return true
		}
	}
	return false
}

// SeedCount returns the number of candidates currently loaded, useful in
// tests asserting a fixture was built as expected.
func (s *Store) SeedCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.candidates)
}

// NextCandidateID is a small helper for tests that need unique ids when
// generating synthetic fixtures.
func NextCandidateID(n int) string {
	return "cand-" + strconv.Itoa(n)
}
