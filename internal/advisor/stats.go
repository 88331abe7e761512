package advisor

import (
	"sort"

	"github.com/talentgraph/recommender/internal/types"
)

// proficiencySteps mirrors types.Proficiency's closed ordering, the same
// local table internal/critique keeps since the canonical order is
// unexported.
var proficiencySteps = []types.Proficiency{
	types.ProficiencyLearning, types.ProficiencyProficient, types.ProficiencyExpert,
}

func proficiencyIndex(p types.Proficiency) int {
	for i, v := range proficiencySteps {
		if v == p {
			return i
		}
	}
	return -1
}

// statsFor builds per-constraint statistics for each member of an MCS,
// enriched by constraint type: skill constraints get lower-proficiency
// counts, salary gets the universe's actual min/max
// alongside the requested bound, years gets a bucket distribution and the
// universe's range, timezone and timeline get a count-by-value breakdown,
// everything else gets count_matching only.
func statsFor(tester *Tester, constraints []types.TestableConstraint) []types.ConstraintStats {
	out := make([]types.ConstraintStats, len(constraints))
	for i, c := range constraints {
		out[i] = buildStat(tester, c)
	}
	return out
}

func buildStat(tester *Tester, c types.TestableConstraint) types.ConstraintStats {
	alone := tester.Count([]types.TestableConstraint{c})

	switch {
	case c.Tag == types.TagSkillTraversal:
		return types.ConstraintStats{
			ConstraintID: c.ID, CountMatching: alone, Type: "skill",
			Enrichment: skillEnrichment(tester, c.SkillTraversal),
		}
	case c.Tag == types.TagProperty && c.Property.Field == "salary":
		return types.ConstraintStats{
			ConstraintID: c.ID, CountMatching: alone, Type: "salary",
			Enrichment: salaryEnrichment(tester, c.Property),
		}
	case c.Tag == types.TagProperty && c.Property.Field == "years_experience":
		return types.ConstraintStats{
			ConstraintID: c.ID, CountMatching: alone, Type: "years",
			Enrichment: yearsEnrichment(tester),
		}
	case c.Tag == types.TagProperty && c.Property.Field == "timezone":
		return types.ConstraintStats{
			ConstraintID: c.ID, CountMatching: alone, Type: "timezone",
			Enrichment: map[string]interface{}{"count_by_zone": countByTimezone(tester)},
		}
	case c.Tag == types.TagProperty && c.Property.Field == "start_timeline":
		return types.ConstraintStats{
			ConstraintID: c.ID, CountMatching: alone, Type: "timeline",
			Enrichment: map[string]interface{}{"count_by_timeline": countByTimeline(tester)},
		}
	default:
		return types.ConstraintStats{ConstraintID: c.ID, CountMatching: alone, Type: "other"}
	}
}

func skillEnrichment(tester *Tester, st *types.SkillTraversalConstraint) map[string]interface{} {
	anyProficiency := tester.Count([]types.TestableConstraint{{
		Tag:            types.TagSkillTraversal,
		SkillTraversal: &types.SkillTraversalConstraint{SkillIDs: st.SkillIDs},
	}})
	lower := make(map[string]int)
	for _, p := range proficiencySteps {
		if proficiencyIndex(p) >= proficiencyIndex(st.MinProficiency) {
			continue
		}
		lower[string(p)] = tester.Count([]types.TestableConstraint{{
			Tag: types.TagSkillTraversal,
			SkillTraversal: &types.SkillTraversalConstraint{
				SkillIDs: st.SkillIDs, MinProficiency: p,
			},
		}})
	}
	return map[string]interface{}{
		"count_at_any_proficiency": anyProficiency,
		"count_at_lower_proficiency": lower,
	}
}

func salaryEnrichment(tester *Tester, p *types.PropertyConstraint) map[string]interface{} {
	minSalary, maxSalary := 0, 0
	for i, c := range tester.Universe() {
		if i == 0 || c.Salary < minSalary {
			minSalary = c.Salary
		}
		if c.Salary > maxSalary {
			maxSalary = c.Salary
		}
	}
	requested, _ := toFloat(p.Value)
	return map[string]interface{}{
		"actual_min": minSalary, "actual_max": maxSalary, "requested_max": requested,
	}
}

func yearsEnrichment(tester *Tester) map[string]interface{} {
	buckets := map[string]int{"0-2": 0, "3-5": 0, "6-10": 0, "10+": 0}
	minYears, maxYears := 0.0, 0.0
	for i, c := range tester.Universe() {
		if i == 0 || c.YearsExperience < minYears {
			minYears = c.YearsExperience
		}
		if c.YearsExperience > maxYears {
			maxYears = c.YearsExperience
		}
		switch {
		case c.YearsExperience <= 2:
			buckets["0-2"]++
		case c.YearsExperience <= 5:
			buckets["3-5"]++
		case c.YearsExperience <= 10:
			buckets["6-10"]++
		default:
			buckets["10+"]++
		}
	}
	return map[string]interface{}{
		"bucket_distribution": buckets, "db_min": minYears, "db_max": maxYears,
	}
}

func countByTimezone(tester *Tester) map[string]int {
	counts := make(map[string]int)
	for _, c := range tester.Universe() {
		if c.Timezone != "" {
			counts[string(c.Timezone)]++
		}
	}
	return counts
}

func countByTimeline(tester *Tester) map[string]int {
	counts := make(map[string]int)
	for _, c := range tester.Universe() {
		if c.StartTimeline != "" {
			counts[string(c.StartTimeline)]++
		}
	}
	return counts
}

// sortedSalaries returns the universe's salaries in ascending order, used
// by the tightening percentile generator.
func sortedSalaries(tester *Tester) []int {
	salaries := make([]int, len(tester.Universe()))
	for i, c := range tester.Universe() {
		salaries[i] = c.Salary
	}
	sort.Ints(salaries)
	return salaries
}
