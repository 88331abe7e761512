// Package similarity implements the Similarity Scorer and Diversity
// Selector: engineer-to-engineer comparison against a reference_engineer_id,
// and greedy marginal-relevance diversity selection over the results.
package similarity

import (
	"context"
	"fmt"

	"github.com/talentgraph/recommender/internal/config"
	"github.com/talentgraph/recommender/internal/graphstore"
	"github.com/talentgraph/recommender/internal/types"
)

// Scorer computes skill-set and engineer-level similarity against the
// talent graph, caching skill/domain node lookups across calls since the
// same ids recur across many candidate comparisons.
type Scorer struct {
	store graphstore.Store
	cfg   config.SimilarityConfig

	skillNodes  map[string]*types.SkillNode
	domainNodes map[string]*types.DomainNode
}

// NewScorer builds a Scorer over store using cfg's weights and thresholds.
func NewScorer(store graphstore.Store, cfg config.SimilarityConfig) *Scorer {
	return &Scorer{
		store:       store,
		cfg:         cfg,
		skillNodes:  make(map[string]*types.SkillNode),
		domainNodes: make(map[string]*types.DomainNode),
	}
}

func (s *Scorer) skillNode(ctx context.Context, id string) (*types.SkillNode, error) {
	if n, ok := s.skillNodes[id]; ok {
		return n, nil
	}
	n, err := s.store.SkillNode(ctx, id)
	if err != nil {
		if err == graphstore.ErrNotFound {
			s.skillNodes[id] = nil
			return nil, nil
		}
		return nil, fmt.Errorf("similarity: fetch skill node %q: %w", id, err)
	}
	s.skillNodes[id] = n
	return n, nil
}

func (s *Scorer) domainNode(ctx context.Context, id string) (*types.DomainNode, error) {
	if n, ok := s.domainNodes[id]; ok {
		return n, nil
	}
	n, err := s.store.DomainNode(ctx, id)
	if err != nil {
		if err == graphstore.ErrNotFound {
			s.domainNodes[id] = nil
			return nil, nil
		}
		return nil, fmt.Errorf("similarity: fetch domain node %q: %w", id, err)
	}
	s.domainNodes[id] = n
	return n, nil
}

// skillPairSimilarity applies a first-match-priority tier ladder: exact
// id, then a strong enough CORRELATES_WITH edge, then same category, then
// a shared CHILD_OF parent, else 0. correlated reports whether the match
// came from tier 2 (used to populate the response's correlated_skills
// transparency list).
func (s *Scorer) skillPairSimilarity(ctx context.Context, a, b string) (score float64, correlated bool, err error) {
	if a == b {
		return 1.0, false, nil
	}
	nodeA, err := s.skillNode(ctx, a)
	if err != nil {
		return 0, false, err
	}
	nodeB, err := s.skillNode(ctx, b)
	if err != nil {
		return 0, false, err
	}
	if strength, ok := correlationStrength(nodeA, b); ok && strength >= s.cfg.MinCorrelationStrength {
		return strength, true, nil
	}
	if strength, ok := correlationStrength(nodeB, a); ok && strength >= s.cfg.MinCorrelationStrength {
		return strength, true, nil
	}
	if nodeA != nil && nodeB != nil && nodeA.CategoryID != "" && nodeA.CategoryID == nodeB.CategoryID {
		return 0.5, false, nil
	}
	if nodeA != nil && nodeB != nil && nodeA.ParentID != "" && nodeA.ParentID == nodeB.ParentID {
		return 0.3, false, nil
	}
	return 0, false, nil
}

func correlationStrength(node *types.SkillNode, to string) (float64, bool) {
	if node == nil {
		return 0, false
	}
	for _, c := range node.Correlations {
		if c.To == to {
			return c.Strength, true
		}
	}
	return 0, false
}

// SkillSetSimilarity returns the symmetric, F1-style mean-of-best-matches
// similarity between two skill id sets, plus the exactly-shared ids and the
// non-exact correlated pairs (for response transparency).
func (s *Scorer) SkillSetSimilarity(ctx context.Context, a, b []string) (score float64, shared []string, correlatedPairs [][2]string, err error) {
	if len(a) == 0 || len(b) == 0 {
		return 0, nil, nil, nil
	}
	sharedSet := make(map[string]bool)
	forward, forwardCorrelated, err := s.bestMatchMean(ctx, a, b, sharedSet)
	if err != nil {
		return 0, nil, nil, err
	}
	backward, backwardCorrelated, err := s.bestMatchMean(ctx, b, a, sharedSet)
	if err != nil {
		return 0, nil, nil, err
	}
	correlatedPairs = append(forwardCorrelated, backwardCorrelated...)
	for id := range sharedSet {
		shared = append(shared, id)
	}
	if forward+backward == 0 {
		return 0, shared, correlatedPairs, nil
	}
	// Harmonic mean of the two directional means, per spec's "F1-style".
	return 2 * forward * backward / (forward + backward), shared, correlatedPairs, nil
}

func (s *Scorer) bestMatchMean(ctx context.Context, from, to []string, sharedSet map[string]bool) (float64, [][2]string, error) {
	var total float64
	var correlated [][2]string
	for _, f := range from {
		best := 0.0
		var bestTo string
		var bestCorrelated bool
		for _, t := range to {
			sim, isCorrelated, err := s.skillPairSimilarity(ctx, f, t)
			if err != nil {
				return 0, nil, err
			}
			if sim > best {
				best = sim
				bestTo = t
				bestCorrelated = isCorrelated
			}
			if f == t {
				sharedSet[f] = true
			}
		}
		total += best
		if bestCorrelated {
			correlated = append(correlated, [2]string{f, bestTo})
		}
	}
	return total / float64(len(from)), correlated, nil
}
