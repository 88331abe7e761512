package advisor

import (
	"context"

	"github.com/talentgraph/recommender/internal/config"
	"github.com/talentgraph/recommender/internal/graphstore"
	"github.com/talentgraph/recommender/internal/types"
)

// Advise is the constraint advisor's entry point. It decomposes the
// request's applied constraints, then activates exactly one side
// depending on how many engineers matched: relaxation below
// SparseThreshold, tightening at or above ManyThreshold, and nothing in
// between (the goldilocks zone, where neither explanation is warranted).
func Advise(ctx context.Context, store graphstore.Store, req types.Request, expanded types.ExpandedCriteria, derived []types.DerivedConstraint, page []*types.Candidate, totalCount int, cfg config.AdvisorConfig) (*types.Relaxation, *types.Tightening, error) {
	if totalCount >= cfg.SparseThreshold && totalCount < cfg.ManyThreshold {
		return nil, nil, nil
	}

	tester, err := NewTester(ctx, store)
	if err != nil {
		return nil, nil, err
	}

	decomposed := Decompose(req, expanded, derived)

	if totalCount < cfg.SparseThreshold {
		relaxation := BuildRelaxation(tester, decomposed.Constraints, cfg)
		return relaxation, nil, nil
	}

	tightening := MineTightening(tester, decomposed.Constraints, req, page, cfg)
	return nil, tightening, nil
}

// BuildRelaxation finds the MCSes behind an overly sparse result and
// proposes relaxation suggestions for every constraint any of them names.
func BuildRelaxation(tester *Tester, all []types.TestableConstraint, cfg config.AdvisorConfig) *types.Relaxation {
	sets := FindConflictSets(tester, all, cfg.SparseThreshold, cfg.MaxConflictSets)
	if len(sets) == 0 {
		return nil
	}

	seen := make(map[string]bool)
	var suggestions []types.RelaxationSuggestion
	for _, set := range sets {
		for _, member := range set.Constraints {
			if seen[member.ID] {
				continue
			}
			seen[member.ID] = true
			onlyAnchor := isOnlyAnchorSkill(all, member)
			suggestions = append(suggestions, RelaxationSuggestions(tester, all, member, onlyAnchor, cfg)...)
		}
	}

	return &types.Relaxation{
		ConflictAnalysis: types.ConflictAnalysis{
			ConflictSets:     sets,
			CountMatchingAll: tester.Count(all),
		},
		Suggestions: suggestions,
	}
}
