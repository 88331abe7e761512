package taxonomy

import (
	"context"
	"testing"

	"github.com/talentgraph/recommender/internal/graphstore/memory"
	"github.com/talentgraph/recommender/internal/types"
)

func newFixtureStore() *memory.Store {
	return memory.New().
		WithSynonym("golang", "go").
		WithHierarchyChild("frontend", "react").
		WithHierarchyChild("frontend", "vue").
		WithHierarchyChild("react", "react-native")
}

func TestResolve_ExactMatch(t *testing.T) {
	r := New(newFixtureStore(), map[string]string{"Go": "go"})

	result, err := r.Resolve(context.Background(), []string{"Go"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Resolved) != 1 || result.Resolved[0].Method != MethodExact {
		t.Fatalf("expected exact match, got %+v", result)
	}
	if result.Resolved[0].Confidence != 1.0 {
		t.Errorf("expected confidence 1.0, got %v", result.Resolved[0].Confidence)
	}
}

func TestResolve_SynonymMatch(t *testing.T) {
	r := New(newFixtureStore(), map[string]string{"go": "go"})

	result, err := r.Resolve(context.Background(), []string{"golang"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Resolved) != 1 || result.Resolved[0].Method != MethodSynonym {
		t.Fatalf("expected synonym match, got %+v", result)
	}
	if result.Resolved[0].CanonicalID != "go" {
		t.Errorf("expected canonical id 'go', got %q", result.Resolved[0].CanonicalID)
	}
}

func TestResolve_FuzzyMatch(t *testing.T) {
	r := New(newFixtureStore(), map[string]string{"kubernetes": "kubernetes"})

	result, err := r.Resolve(context.Background(), []string{"kubernets"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Resolved) != 1 || result.Resolved[0].Method != MethodFuzzy {
		t.Fatalf("expected fuzzy match, got %+v", result)
	}
	if result.Resolved[0].CanonicalID != "kubernetes" {
		t.Errorf("expected canonical id 'kubernetes', got %q", result.Resolved[0].CanonicalID)
	}
}

func TestResolve_Unresolved(t *testing.T) {
	r := New(newFixtureStore(), map[string]string{"go": "go"})

	result, err := r.Resolve(context.Background(), []string{"zzzznotaskill"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Unresolved) != 1 || result.Unresolved[0].Input != "zzzznotaskill" {
		t.Fatalf("expected identifier to be unresolved, got %+v", result)
	}
}

func TestExpandHierarchy_IncludesSelfAndDescendants(t *testing.T) {
	r := New(newFixtureStore(), nil)

	leaves, err := r.ExpandHierarchy(context.Background(), "frontend")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]bool{"frontend": true, "react": true, "vue": true, "react-native": true}
	if len(leaves) != len(want) {
		t.Fatalf("expected %d leaves, got %d: %v", len(want), len(leaves), leaves)
	}
	for _, l := range leaves {
		if !want[l] {
			t.Errorf("unexpected leaf %q", l)
		}
	}
}

func TestExpandWithProficiency_AppliesToAllDescendants(t *testing.T) {
	r := New(newFixtureStore(), nil)

	out, err := r.ExpandWithProficiency(context.Background(), "frontend", types.ProficiencyExpert)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for id, prof := range out {
		if prof != types.ProficiencyExpert {
			t.Errorf("expected expert proficiency for %q, got %v", id, prof)
		}
	}
	if len(out) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(out))
	}
}
