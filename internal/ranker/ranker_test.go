package ranker

import (
	"testing"

	"github.com/talentgraph/recommender/internal/config"
	"github.com/talentgraph/recommender/internal/inference"
	"github.com/talentgraph/recommender/internal/types"
)

func rankerCfg() config.RankerConfig {
	return config.Default().Ranker
}

func TestRank_RequiredSkillMatchRewardsMeetingProficiency(t *testing.T) {
	expanded := types.ExpandedCriteria{
		SkillProficiency: types.SkillProficiencyBuckets{Expert: []string{"go"}},
	}
	expert := &types.Candidate{ID: "eng-1", Skills: []types.CandidateSkill{{SkillID: "go", Proficiency: types.ProficiencyExpert}}}
	learner := &types.Candidate{ID: "eng-2", Skills: []types.CandidateSkill{{SkillID: "go", Proficiency: types.ProficiencyLearning}}}

	scored := Rank(types.Request{}, expanded, inference.Result{}, []*types.Candidate{learner, expert}, rankerCfg())

	if scored[0].ID != "eng-1" {
		t.Fatalf("expected the expert candidate to rank first, got %+v", scored)
	}
	comp := scored[0].ScoreBreakdown.Components["skill_match"]
	if comp.Raw != 1.0 {
		t.Fatalf("expected full skill_match credit for an exact proficiency match, got %v", comp.Raw)
	}
}

func TestRank_MissingRequiredSkillScoresZeroCredit(t *testing.T) {
	expanded := types.ExpandedCriteria{
		SkillProficiency: types.SkillProficiencyBuckets{Expert: []string{"go", "rust"}},
	}
	c := &types.Candidate{ID: "eng-1", Skills: []types.CandidateSkill{{SkillID: "go", Proficiency: types.ProficiencyExpert}}}

	scored := Rank(types.Request{}, expanded, inference.Result{}, []*types.Candidate{c}, rankerCfg())

	comp := scored[0].ScoreBreakdown.Components["skill_match"]
	if comp.Raw != 0.5 {
		t.Fatalf("expected mean credit of 0.5 (1 of 2 required skills matched), got %v", comp.Raw)
	}
}

func TestRank_SalaryUsesStretchZoneDecayWhenBudgetSet(t *testing.T) {
	maxBudget, stretch := 100000, 120000
	expanded := types.ExpandedCriteria{MaxBudget: &maxBudget, StretchBudget: &stretch}
	withinCap := &types.Candidate{ID: "eng-1", Salary: 95000}
	inStretch := &types.Candidate{ID: "eng-2", Salary: 115000}

	scored := Rank(types.Request{}, expanded, inference.Result{}, []*types.Candidate{withinCap, inStretch}, rankerCfg())

	byID := map[string]types.ScoreComponent{}
	for _, s := range scored {
		byID[s.ID] = s.ScoreBreakdown.Components["salary"]
	}
	if byID["eng-1"].Raw != 1.0 {
		t.Fatalf("expected full salary credit within the cap, got %v", byID["eng-1"].Raw)
	}
	if byID["eng-2"].Raw >= 1.0 {
		t.Fatalf("expected decayed salary credit in the stretch zone, got %v", byID["eng-2"].Raw)
	}
}

func TestRank_SeniorityBoostFromInferenceContributesPartialCredit(t *testing.T) {
	inferenceResult := inference.Result{
		DerivedConstraints: []types.DerivedConstraint{
			{
				Rule:   types.RuleRef{ID: "scaling-prefers-senior"},
				Action: types.RuleAction{Kind: types.EffectBoost, TargetField: "preferredSeniorityLevel", TargetValue: "senior", BoostStrength: 0.6},
			},
		},
	}
	senior := &types.Candidate{ID: "eng-1", Seniority: types.SenioritySenior}
	junior := &types.Candidate{ID: "eng-2", Seniority: types.SeniorityJunior}

	scored := Rank(types.Request{}, types.ExpandedCriteria{}, inferenceResult, []*types.Candidate{senior, junior}, rankerCfg())

	byID := map[string]types.ScoreComponent{}
	for _, s := range scored {
		byID[s.ID] = s.ScoreBreakdown.Components["seniority"]
	}
	if byID["eng-1"].Raw != 0.6 {
		t.Fatalf("expected the boost_strength (0.6) as the seniority credit for a qualifying candidate, got %v", byID["eng-1"].Raw)
	}
	if _, ok := byID["eng-2"]; ok {
		t.Fatalf("expected no seniority component for a non-qualifying candidate (raw=0 components are omitted), got %+v", byID["eng-2"])
	}
}

func TestRank_UserSetSeniorityPreferenceOverridesInferredBoostWithFullCredit(t *testing.T) {
	req := types.Request{PreferredSeniorityLevel: types.SeniorityStaff}
	inferenceResult := inference.Result{
		DerivedConstraints: []types.DerivedConstraint{
			{
				Rule:   types.RuleRef{ID: "scaling-prefers-senior"},
				Action: types.RuleAction{Kind: types.EffectBoost, TargetField: "preferredSeniorityLevel", TargetValue: "senior", BoostStrength: 0.6},
			},
		},
	}
	staff := &types.Candidate{ID: "eng-1", Seniority: types.SeniorityStaff}

	scored := Rank(req, types.ExpandedCriteria{}, inferenceResult, []*types.Candidate{staff}, rankerCfg())

	if scored[0].ScoreBreakdown.Components["seniority"].Raw != 1.0 {
		t.Fatalf("expected full credit (1.0) when the user set the preference explicitly, got %v",
			scored[0].ScoreBreakdown.Components["seniority"].Raw)
	}
}

func TestRank_NonZeroComponentsOnly(t *testing.T) {
	c := &types.Candidate{ID: "eng-1"}
	scored := Rank(types.Request{}, types.ExpandedCriteria{}, inference.Result{}, []*types.Candidate{c}, rankerCfg())

	for name, comp := range scored[0].ScoreBreakdown.Components {
		if comp.Raw == 0 {
			t.Fatalf("component %q has raw=0 and should have been omitted from the breakdown", name)
		}
	}
}

func TestRank_SortsByScoreDescendingThenID(t *testing.T) {
	expanded := types.ExpandedCriteria{SkillProficiency: types.SkillProficiencyBuckets{Expert: []string{"go"}}}
	strong := &types.Candidate{ID: "b-strong", Skills: []types.CandidateSkill{{SkillID: "go", Proficiency: types.ProficiencyExpert}}, YearsExperience: 10}
	weak := &types.Candidate{ID: "a-weak", Skills: []types.CandidateSkill{{SkillID: "go", Proficiency: types.ProficiencyLearning}}}

	scored := Rank(types.Request{}, expanded, inference.Result{}, []*types.Candidate{weak, strong}, rankerCfg())

	if scored[0].ID != "b-strong" {
		t.Fatalf("expected the higher-scoring candidate first regardless of id order, got %+v", scored)
	}
}
