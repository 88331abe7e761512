package similarity

import (
	"context"
	"testing"

	"github.com/talentgraph/recommender/internal/config"
	"github.com/talentgraph/recommender/internal/graphstore/memory"
	"github.com/talentgraph/recommender/internal/types"
)

func diversityFixtureStore() *memory.Store {
	return memory.New().
		WithSkill(&types.SkillNode{ID: "go", CategoryID: "languages"}).
		WithSkill(&types.SkillNode{ID: "rust", CategoryID: "languages"}).
		WithSkill(&types.SkillNode{ID: "python", CategoryID: "languages"}).
		WithSkill(&types.SkillNode{ID: "react", CategoryID: "frontend"})
}

func TestScoreAll_SortsBySimilarityDescending(t *testing.T) {
	s := NewScorer(diversityFixtureStore(), config.Default().Similarity)
	reference := &types.Candidate{ID: "ref", Skills: []types.CandidateSkill{{SkillID: "go"}}}
	close := &types.Candidate{ID: "close", Skills: []types.CandidateSkill{{SkillID: "go"}}}
	far := &types.Candidate{ID: "far", Skills: []types.CandidateSkill{{SkillID: "react"}}}

	scored, err := s.ScoreAll(context.Background(), reference, []*types.Candidate{far, close})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scored[0].ID != "close" {
		t.Fatalf("expected the more similar candidate first, got %+v", scored)
	}
}

func TestSelectDiverse_PrefersVarietyOverARedundantDuplicateOfTheSeed(t *testing.T) {
	// a and b are identical to each other (both the reference's closest
	// match); c is a weaker match to the reference but distinct from a.
	// Once a is seeded, b buys no new coverage (it duplicates the pick
	// already made) while c does, so the diversity pass should favor c.
	cfg := config.Default().Similarity
	cfg.DiversityMultiplier = 10
	cfg.DiversityLambda = 0.5
	s := NewScorer(diversityFixtureStore(), cfg)

	reference := &types.Candidate{ID: "ref", YearsExperience: 10, Skills: []types.CandidateSkill{{SkillID: "go"}}}
	a := &types.Candidate{ID: "a", YearsExperience: 10, Skills: []types.CandidateSkill{{SkillID: "go"}, {SkillID: "rust"}}}
	b := &types.Candidate{ID: "b", YearsExperience: 10, Skills: []types.CandidateSkill{{SkillID: "go"}, {SkillID: "rust"}}}
	c := &types.Candidate{ID: "c", YearsExperience: 1, Skills: []types.CandidateSkill{{SkillID: "go"}}}

	scored, err := s.ScoreAll(context.Background(), reference, []*types.Candidate{a, b, c})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	picked, err := s.SelectDiverse(context.Background(), scored, 2, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(picked) != 2 {
		t.Fatalf("expected 2 picks, got %d: %+v", len(picked), picked)
	}
	if picked[0].ID != "a" {
		t.Fatalf("expected the seed to be the top-scoring candidate, got %+v", picked[0])
	}
	if picked[1].ID != "c" {
		t.Fatalf("expected the diversity pass to prefer the distinct candidate c over the redundant duplicate b, got %+v", picked[1])
	}
}

func TestPaginateDiverse_OffsetPastEndReturnsEmpty(t *testing.T) {
	picked := []types.ScoredCandidate{{Candidate: types.Candidate{ID: "a"}}}
	if got := PaginateDiverse(picked, 5, 10); got != nil {
		t.Fatalf("expected nil beyond the end of the list, got %v", got)
	}
}
