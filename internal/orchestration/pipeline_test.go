package orchestration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/talentgraph/recommender/internal/config"
	"github.com/talentgraph/recommender/internal/graphstore/memory"
	"github.com/talentgraph/recommender/internal/inference"
	"github.com/talentgraph/recommender/internal/similarity"
	"github.com/talentgraph/recommender/internal/taxonomy"
	"github.com/talentgraph/recommender/internal/types"
)

func fixtureStore() *memory.Store {
	store := memory.New()
	store.WithSkill(&types.SkillNode{ID: "go", Name: "Go"})
	store.WithSkill(&types.SkillNode{ID: "rust", Name: "Rust"})
	store.WithCandidate(&types.Candidate{
		ID: "eng-1", Name: "Ada", Salary: 140000, YearsExperience: 7,
		Seniority: types.SenioritySenior, Timezone: types.TimezoneEastern,
		Skills: []types.CandidateSkill{{SkillID: "go", Proficiency: types.ProficiencyExpert}},
	})
	store.WithCandidate(&types.Candidate{
		ID: "eng-2", Name: "Grace", Salary: 150000, YearsExperience: 9,
		Seniority: types.SeniorityStaff, Timezone: types.TimezoneCentral,
		Skills: []types.CandidateSkill{{SkillID: "go", Proficiency: types.ProficiencyProficient}},
	})
	return store
}

func newOrchestrator(store *memory.Store) *Orchestrator {
	resolver := taxonomy.New(store, map[string]string{"go": "go", "rust": "rust"})
	engine := inference.New(inference.DefaultRules(), config.Default().Inference.MaxIterations)
	scorer := similarity.NewScorer(store, config.Default().Similarity)
	return New(store, resolver, engine, scorer, config.Default())
}

func TestRecommend_KeywordModeRanksAndReturnsMatches(t *testing.T) {
	o := newOrchestrator(fixtureStore())
	req := types.Request{
		RequiredSkills: []types.SkillRequirement{{Identifier: "go"}},
		Limit:          10,
	}
	resp, err := o.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Matches) != 2 {
		t.Fatalf("expected both engineers to match, got %d", len(resp.Matches))
	}
	if resp.Matches[0].SimilarityBreakdown != nil {
		t.Fatalf("keyword mode must not populate a similarity breakdown")
	}
	if resp.QueryMetadata.CandidatesBeforeDiversity != nil {
		t.Fatalf("keyword mode must not report candidates_before_diversity, it never diversifies")
	}
}

func TestRecommend_SimilarityModeScoresAgainstReferenceAndDiversifies(t *testing.T) {
	o := newOrchestrator(fixtureStore())
	req := types.Request{ReferenceEngineerID: "eng-1", Limit: 5}
	resp, err := o.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.QueryMetadata.CandidatesBeforeDiversity == nil {
		t.Fatalf("similarity mode must report candidates_before_diversity")
	}
	for _, m := range resp.Matches {
		if m.SimilarityBreakdown == nil {
			t.Fatalf("similarity mode must populate a similarity breakdown for every match")
		}
	}
}

func TestRecommend_UnknownReferenceEngineerIsRejected(t *testing.T) {
	o := newOrchestrator(fixtureStore())
	req := types.Request{ReferenceEngineerID: "does-not-exist"}
	_, err := o.Recommend(context.Background(), req)
	if err == nil {
		t.Fatalf("expected an error for an unresolvable reference engineer")
	}
}

func TestRecommend_DeadlineAlreadyExpiredAbortsWithoutPartialResults(t *testing.T) {
	o := newOrchestrator(fixtureStore())
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	resp, err := o.Recommend(ctx, types.Request{RequiredSkills: []types.SkillRequirement{{Identifier: "go"}}})
	if err == nil {
		t.Fatalf("expected an error for an already-expired deadline")
	}
	if resp != nil {
		t.Fatalf("expected no partial response on a deadline miss, got %+v", resp)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected the deadline error to propagate as-is, got %v", err)
	}
}

func TestRecommend_SparseResultPopulatesRelaxation(t *testing.T) {
	o := newOrchestrator(fixtureStore())
	req := types.Request{RequiredSkills: []types.SkillRequirement{{Identifier: "rust"}}}
	resp, err := o.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Matches) != 0 {
		t.Fatalf("expected no matches for an unheld skill, got %d", len(resp.Matches))
	}
	if resp.Relaxation == nil {
		t.Fatalf("expected relaxation guidance for a zero-result query")
	}
}
