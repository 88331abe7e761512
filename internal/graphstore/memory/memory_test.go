package memory

import (
	"context"
	"testing"

	"github.com/talentgraph/recommender/internal/graphstore"
	"github.com/talentgraph/recommender/internal/types"
)

func TestResolveSkillSynonym(t *testing.T) {
	store := New().WithSynonym("golang", "go")

	id, err := store.ResolveSkillSynonym(context.Background(), "golang")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "go" {
		t.Errorf("expected canonical id 'go', got %q", id)
	}

	if _, err := store.ResolveSkillSynonym(context.Background(), "rust"); err != graphstore.ErrNotFound {
		t.Errorf("expected ErrNotFound for unregistered synonym, got %v", err)
	}
}

func TestSkillHierarchyChildren(t *testing.T) {
	store := New().
		WithHierarchyChild("frontend", "react").
		WithHierarchyChild("frontend", "vue")

	children, err := store.SkillHierarchyChildren(context.Background(), "frontend")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(children))
	}
}

func TestCandidatesMatching_FiltersBySkillAndBudget(t *testing.T) {
	store := New().
		WithCandidate(&types.Candidate{
			ID:     "eng-1",
			Salary: 150000,
			Skills: []types.CandidateSkill{
				{SkillID: "go", Proficiency: types.ProficiencyExpert},
			},
		}).
		WithCandidate(&types.Candidate{
			ID:     "eng-2",
			Salary: 250000,
			Skills: []types.CandidateSkill{
				{SkillID: "go", Proficiency: types.ProficiencyLearning},
			},
		})

	plan := graphstore.QueryPlan{
		RequiredSkillIDs: []string{"go"},
		MaxBudget:        200000,
		Limit:            10,
	}

	results, err := store.CandidatesMatching(context.Background(), plan)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || results[0].ID != "eng-1" {
		t.Fatalf("expected only eng-1 to match, got %+v", results)
	}
}

func TestCandidatesMatching_ReturnsDeepCopies(t *testing.T) {
	store := New().WithCandidate(&types.Candidate{
		ID: "eng-1",
		Skills: []types.CandidateSkill{
			{SkillID: "go", Proficiency: types.ProficiencyExpert},
		},
	})

	results, err := store.CandidatesMatching(context.Background(), graphstore.QueryPlan{Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	results[0].Skills[0].Proficiency = types.ProficiencyLearning

	again, err := store.CandidatesMatching(context.Background(), graphstore.QueryPlan{Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again[0].Skills[0].Proficiency != types.ProficiencyExpert {
		t.Error("mutating a returned candidate must not affect internal store state")
	}
}

func TestSkillCorrelations_FiltersByMinStrength(t *testing.T) {
	store := New().
		WithCorrelation("go", types.Correlation{To: "rust", Strength: 0.9}).
		WithCorrelation("go", types.Correlation{To: "python", Strength: 0.3})

	out, err := store.SkillCorrelations(context.Background(), "go", 0.7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || out[0].To != "rust" {
		t.Fatalf("expected only the strong correlation to survive, got %+v", out)
	}
}
