package advisor

import (
	"testing"

	"github.com/talentgraph/recommender/internal/types"
)

func skillConstraint(id, skillID string, minProficiency types.Proficiency) types.TestableConstraint {
	return types.TestableConstraint{
		ID: id, Tag: types.TagSkillTraversal,
		SkillTraversal: &types.SkillTraversalConstraint{SkillIDs: []string{skillID}, MinProficiency: minProficiency, Origin: types.OriginUser},
	}
}

func TestQuickXplain_FindsTheExactPairDrivingTheConflict(t *testing.T) {
	universe := []*types.Candidate{
		{ID: "eng-1", Timezone: types.TimezoneEastern, Skills: []types.CandidateSkill{{SkillID: "go", Proficiency: types.ProficiencyExpert}}},
		{ID: "eng-2", Timezone: types.TimezoneCentral, Skills: []types.CandidateSkill{{SkillID: "go", Proficiency: types.ProficiencyExpert}}},
		{ID: "eng-3", Timezone: types.TimezoneEastern, Skills: []types.CandidateSkill{{SkillID: "go", Proficiency: types.ProficiencyLearning}}},
		{ID: "eng-4", Timezone: types.TimezoneEastern, Skills: []types.CandidateSkill{{SkillID: "rust", Proficiency: types.ProficiencyExpert}}},
		{ID: "eng-5", Timezone: types.TimezoneCentral, Skills: []types.CandidateSkill{{SkillID: "rust", Proficiency: types.ProficiencyExpert}}},
	}
	tester := NewTesterFromUniverse(universe)

	goExpert := skillConstraint("skill:go", "go", types.ProficiencyExpert)
	eastern := types.TestableConstraint{
		ID: "timezone", Tag: types.TagProperty,
		Property: &types.PropertyConstraint{Field: "timezone", Op: types.OpIn, Value: []types.Timezone{types.TimezoneEastern}},
	}

	all := []types.TestableConstraint{goExpert, eastern}
	if tester.Count(all) != 1 {
		t.Fatalf("fixture sanity check failed: expected exactly eng-1 to satisfy both, got %d", tester.Count(all))
	}

	sets := FindConflictSets(tester, all, 2, 3)
	if len(sets) != 1 {
		t.Fatalf("expected exactly one conflict set, got %d: %+v", len(sets), sets)
	}
	if len(sets[0].Constraints) != 2 {
		t.Fatalf("expected the minimal conflict set to need both constraints, got %+v", sets[0].Constraints)
	}
}

func TestQuickXplain_ThreeWayConflictRequiresAllThree(t *testing.T) {
	universe := []*types.Candidate{
		{ID: "eng-a", Skills: []types.CandidateSkill{{SkillID: "s1"}, {SkillID: "s2"}}},
		{ID: "eng-b", Skills: []types.CandidateSkill{{SkillID: "s1"}, {SkillID: "s3"}}},
		{ID: "eng-c", Skills: []types.CandidateSkill{{SkillID: "s2"}, {SkillID: "s3"}}},
	}
	tester := NewTesterFromUniverse(universe)

	s1 := skillConstraint("skill:s1", "s1", "")
	s2 := skillConstraint("skill:s2", "s2", "")
	s3 := skillConstraint("skill:s3", "s3", "")
	all := []types.TestableConstraint{s1, s2, s3}

	if tester.Count(all) != 0 {
		t.Fatalf("fixture sanity check failed: expected no candidate with all three skills, got %d", tester.Count(all))
	}
	for _, pair := range [][]types.TestableConstraint{{s1, s2}, {s1, s3}, {s2, s3}} {
		if tester.Count(pair) < 1 {
			t.Fatalf("fixture sanity check failed: expected every pair to be independently satisfiable, got %+v", pair)
		}
	}

	sets := FindConflictSets(tester, all, 1, 3)
	if len(sets) != 1 {
		t.Fatalf("expected exactly one conflict set, got %d: %+v", len(sets), sets)
	}
	if len(sets[0].Constraints) != 3 {
		t.Fatalf("expected the minimal conflict set to need all three skills, got %+v", sets[0].Constraints)
	}
}

func TestQuickXplain_NoConflictWhenAlreadyAboveThreshold(t *testing.T) {
	universe := []*types.Candidate{
		{ID: "eng-1", Skills: []types.CandidateSkill{{SkillID: "go"}}},
		{ID: "eng-2", Skills: []types.CandidateSkill{{SkillID: "go"}}},
	}
	tester := NewTesterFromUniverse(universe)
	all := []types.TestableConstraint{skillConstraint("skill:go", "go", "")}

	if sets := FindConflictSets(tester, all, 1, 3); sets != nil {
		t.Fatalf("expected no conflict sets when the baseline already meets the threshold, got %+v", sets)
	}
}
