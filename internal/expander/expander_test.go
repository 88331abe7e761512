package expander

import (
	"testing"

	"github.com/talentgraph/recommender/internal/types"
)

// fakeTaxonomy is a minimal SkillTaxonomy stub for expander tests: an
// identifier expands to the leaves the test wires in for it, or to itself
// when none are wired.
type fakeTaxonomy struct {
	skills     map[string]map[string]types.Proficiency
	domains    map[string][]string
	unresolved map[string]bool
}

func (f fakeTaxonomy) ExpandedSkill(id string) (map[string]types.Proficiency, bool) {
	if f.unresolved[id] {
		return nil, true
	}
	if leaves, ok := f.skills[id]; ok {
		return leaves, false
	}
	return map[string]types.Proficiency{id: types.ProficiencyLearning}, false
}

func (f fakeTaxonomy) ExpandedDomain(id string) ([]string, bool) {
	if f.unresolved[id] {
		return nil, true
	}
	if ids, ok := f.domains[id]; ok {
		return ids, false
	}
	return []string{id}, false
}

func TestExpand_SeniorityDerivesYears(t *testing.T) {
	req := types.NewRequest().Seniority(types.SenioritySenior).Build()

	criteria := Expand(req, fakeTaxonomy{})

	if criteria.MinYearsExperience == nil || *criteria.MinYearsExperience != 6 {
		t.Fatalf("expected min years 6 for senior, got %+v", criteria.MinYearsExperience)
	}
	found := false
	for _, f := range criteria.AppliedFilters {
		if f.Field == "years_experience" {
			found = true
		}
	}
	if !found {
		t.Error("expected an applied filter for years_experience")
	}
	if len(criteria.AppliedPreferences) != 0 {
		t.Errorf("expected no applied preferences, got %+v", criteria.AppliedPreferences)
	}
}

func TestExpand_TimelineSetIsAtOrFaster(t *testing.T) {
	req := types.NewRequest().MaxStart(types.TimelineOneMonth).Build()

	criteria := Expand(req, fakeTaxonomy{})

	want := []types.StartTimeline{types.TimelineImmediate, types.TimelineTwoWeeks, types.TimelineOneMonth}
	if len(criteria.StartTimelineSet) != len(want) {
		t.Fatalf("expected %d timelines, got %v", len(want), criteria.StartTimelineSet)
	}
}

func TestExpand_BudgetUsesStretchWhenPresent(t *testing.T) {
	stretch := 180000
	req := types.NewRequest().Budget(150000, &stretch).Build()

	criteria := Expand(req, fakeTaxonomy{})

	if criteria.StretchBudget == nil || *criteria.StretchBudget != stretch {
		t.Fatalf("expected stretch budget carried through, got %+v", criteria.StretchBudget)
	}
	found := false
	for _, f := range criteria.AppliedFilters {
		if f.Field == "salary" {
			if m, ok := f.Value.(map[string]int); ok && m["lte"] == stretch {
				found = true
			}
		}
	}
	if !found {
		t.Error("expected salary filter to use the stretch budget as its ceiling")
	}
}

func TestExpand_SkillProficiencyMergeTakesStricter(t *testing.T) {
	tax := fakeTaxonomy{
		skills: map[string]map[string]types.Proficiency{
			"frontend": {"react": types.ProficiencyProficient, "vue": types.ProficiencyProficient},
		},
	}
	req := types.NewRequest().
		RequireSkill("frontend", types.ProficiencyLearning).
		RequireSkill("react", types.ProficiencyExpert).
		Build()

	criteria := Expand(req, tax)

	all := criteria.SkillProficiency.AllIDs()
	foundExpert := false
	for _, id := range criteria.SkillProficiency.Expert {
		if id == "react" {
			foundExpert = true
		}
	}
	if !foundExpert {
		t.Errorf("expected react to be bucketed as expert (stricter wins), got buckets %+v, all=%v", criteria.SkillProficiency, all)
	}
}

func TestExpand_UnresolvedSkillsAreReported(t *testing.T) {
	tax := fakeTaxonomy{unresolved: map[string]bool{"xyzskill": true}}
	req := types.NewRequest().RequireSkill("xyzskill", types.ProficiencyLearning).Build()

	criteria := Expand(req, tax)

	if len(criteria.UnresolvedSkills) != 1 || criteria.UnresolvedSkills[0] != "xyzskill" {
		t.Fatalf("expected xyzskill to be reported unresolved, got %+v", criteria.UnresolvedSkills)
	}
}

func TestExpand_NoSeniorityMeansNoYearsBound(t *testing.T) {
	req := types.NewRequest().Build()

	criteria := Expand(req, fakeTaxonomy{})

	if criteria.MinYearsExperience != nil {
		t.Errorf("expected no years bound when seniority unset, got %v", criteria.MinYearsExperience)
	}
}
