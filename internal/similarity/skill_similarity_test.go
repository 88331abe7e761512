package similarity

import (
	"context"
	"testing"

	"github.com/talentgraph/recommender/internal/config"
	"github.com/talentgraph/recommender/internal/graphstore/memory"
	"github.com/talentgraph/recommender/internal/types"
)

func fixtureScorer() *Scorer {
	store := memory.New().
		WithSkill(&types.SkillNode{ID: "go", CategoryID: "languages"}).
		WithSkill(&types.SkillNode{ID: "rust", CategoryID: "languages"}).
		WithSkill(&types.SkillNode{ID: "python", CategoryID: "languages"}).
		WithSkill(&types.SkillNode{ID: "react", CategoryID: "frontend", ParentID: "frontend-frameworks"}).
		WithSkill(&types.SkillNode{ID: "vue", CategoryID: "ui-libraries", ParentID: "frontend-frameworks"}).
		WithSkill(&types.SkillNode{ID: "sql", CategoryID: "data"}).
		WithCorrelation("go", types.Correlation{To: "concurrency-patterns", Strength: 0.8, Kind: types.CorrelationCurated})
	return NewScorer(store, config.Default().Similarity)
}

func TestSkillPairSimilarity_ExactMatch(t *testing.T) {
	s := fixtureScorer()
	score, correlated, err := s.skillPairSimilarity(context.Background(), "go", "go")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score != 1.0 || correlated {
		t.Fatalf("expected exact match score 1.0, got score=%v correlated=%v", score, correlated)
	}
}

func TestSkillPairSimilarity_CorrelationEdge(t *testing.T) {
	s := fixtureScorer()
	score, correlated, err := s.skillPairSimilarity(context.Background(), "go", "concurrency-patterns")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score != 0.8 || !correlated {
		t.Fatalf("expected correlation-edge score 0.8, got score=%v correlated=%v", score, correlated)
	}
}

func TestSkillPairSimilarity_SameCategory(t *testing.T) {
	s := fixtureScorer()
	score, correlated, err := s.skillPairSimilarity(context.Background(), "go", "python")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score != 0.5 || correlated {
		t.Fatalf("expected same-category score 0.5, got %v", score)
	}
}

func TestSkillPairSimilarity_SharedParent(t *testing.T) {
	s := fixtureScorer()
	score, _, err := s.skillPairSimilarity(context.Background(), "react", "vue")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score != 0.3 {
		t.Fatalf("expected shared-parent score 0.3 (react and vue are in different categories), got %v", score)
	}
}

func TestSkillPairSimilarity_Unrelated(t *testing.T) {
	s := fixtureScorer()
	score, _, err := s.skillPairSimilarity(context.Background(), "go", "sql")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score != 0 {
		t.Fatalf("expected 0 for unrelated skills in different categories, got %v", score)
	}
}

func TestSkillSetSimilarity_IdenticalSetsScoreOne(t *testing.T) {
	s := fixtureScorer()
	score, shared, _, err := s.SkillSetSimilarity(context.Background(), []string{"go", "sql"}, []string{"go", "sql"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score != 1.0 {
		t.Fatalf("expected identical skill sets to score 1.0, got %v", score)
	}
	if len(shared) != 2 {
		t.Fatalf("expected both skills reported shared, got %v", shared)
	}
}

func TestSkillSetSimilarity_EmptySetScoresZero(t *testing.T) {
	s := fixtureScorer()
	score, _, _, err := s.SkillSetSimilarity(context.Background(), nil, []string{"go"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score != 0 {
		t.Fatalf("expected 0 similarity against an empty skill set, got %v", score)
	}
}
