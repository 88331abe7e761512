package similarity

import (
	"context"
	"sort"

	"github.com/talentgraph/recommender/internal/types"
)

// ScoreAll computes SimilarityScore/SimilarityBreakdown for every candidate
// against reference and returns them sorted by similarity descending, id
// ascending for ties.
func (s *Scorer) ScoreAll(ctx context.Context, reference *types.Candidate, candidates []*types.Candidate) ([]types.ScoredCandidate, error) {
	out := make([]types.ScoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		breakdown, score, shared, correlated, err := s.EngineerSimilarity(ctx, reference, c)
		if err != nil {
			return nil, err
		}
		out = append(out, types.ScoredCandidate{
			Candidate:           *c,
			SimilarityScore:     score,
			SimilarityBreakdown: &breakdown,
			SharedSkills:        shared,
			CorrelatedSkills:    correlated,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SimilarityScore != out[j].SimilarityScore {
			return out[i].SimilarityScore > out[j].SimilarityScore
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// SelectDiverse runs a greedy marginal-relevance pass: from the top
// N = (limit+offset) * diversity_multiplier candidates by
// similarity_to_reference, repeatedly pick whichever maximises
// lambda * similarity_to_reference - (1-lambda) * max_similarity_to_picked,
// until limit+offset picks are made, then the caller paginates the result.
func (s *Scorer) SelectDiverse(ctx context.Context, scored []types.ScoredCandidate, limit, offset int) ([]types.ScoredCandidate, error) {
	k := limit + offset
	if k <= 0 {
		return nil, nil
	}
	n := k * s.cfg.DiversityMultiplier
	if n <= 0 || n > len(scored) {
		n = len(scored)
	}
	pool := scored[:n]
	if len(pool) == 0 {
		return nil, nil
	}

	picked := []types.ScoredCandidate{pool[0]}
	remaining := append([]types.ScoredCandidate(nil), pool[1:]...)

	for len(picked) < k && len(remaining) > 0 {
		bestIdx := -1
		bestMMR := 0.0
		for i, cand := range remaining {
			maxSimToPicked := 0.0
			for _, p := range picked {
				_, sim, _, _, err := s.EngineerSimilarity(ctx, &p.Candidate, &cand.Candidate)
				if err != nil {
					return nil, err
				}
				if sim > maxSimToPicked {
					maxSimToPicked = sim
				}
			}
			mmr := s.cfg.DiversityLambda*cand.SimilarityScore - (1-s.cfg.DiversityLambda)*maxSimToPicked
			if bestIdx == -1 || mmr > bestMMR {
				bestIdx = i
				bestMMR = mmr
			}
		}
		picked = append(picked, remaining[bestIdx])
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}
	return picked, nil
}

// PaginateDiverse applies offset/limit to a diversity-selected list.
func PaginateDiverse(picked []types.ScoredCandidate, offset, limit int) []types.ScoredCandidate {
	if offset >= len(picked) {
		return nil
	}
	end := offset + limit
	if end > len(picked) {
		end = len(picked)
	}
	return picked[offset:end]
}
