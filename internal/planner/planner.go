// Package planner implements the Query Planner: it compiles expanded
// criteria and inference output into one graphstore.QueryPlan, then
// executes a count-then-paginate shape so later stages never re-run the
// expensive qualifying-skill scan per page.
package planner

import (
	"context"
	"sort"

	"github.com/talentgraph/recommender/internal/graphstore"
	"github.com/talentgraph/recommender/internal/inference"
	"github.com/talentgraph/recommender/internal/types"
)

// Plan is the compiled store query plus the filter audit trail carried
// into the response for transparency.
type Plan struct {
	Query          graphstore.QueryPlan
	AppliedFilters []types.AppliedFilter
}

// Page is the planner's output: the paginated candidate slice, the total
// qualifying count before pagination, and the coarse per-candidate
// qualifying-skill counts the ranker can reuse instead of recomputing.
type Page struct {
	Candidates          []*types.Candidate
	TotalCount          int
	QualifyingSkillByID map[string]int
}

// Compile assembles a graphstore.QueryPlan from expanded criteria and the
// inference engine's derived required skills. The skill-qualifying step's
// allSkillIds is the union of every proficiency bucket plus any skill ids
// the inference engine added as hard requirements; CandidatesMatching is
// always asked for the unbounded match set (Limit left at zero) so the
// planner itself can compute total_count before paginating.
func Compile(expanded types.ExpandedCriteria, inferenceResult inference.Result) Plan {
	allSkillIDs := unionStrings(expanded.SkillProficiency.AllIDs(), inferenceResult.DerivedRequiredSkillIDs)
	domainIDs := unionStrings(domainIDsOf(expanded.ResolvedBusinessDomains), domainIDsOf(expanded.ResolvedTechnicalDomains))

	query := graphstore.QueryPlan{
		RequiredSkillIDs:   allSkillIDs,
		PreferredSkillIDs:  expanded.SkillProficiency.AllIDs(),
		DomainIDs:          domainIDs,
		MinYearsExperience: expanded.MinYearsExperience,
		MaxYearsExperience: expanded.MaxYearsExperience,
		TimelineAtOrFaster: fastestTimelineOf(expanded.StartTimelineSet),
		Timezones:          timezoneStrings(expanded.TimezoneZones),
		MaxBudget:          floatOrZero(expanded.MaxBudget),
		StretchBudget:      floatOrZero(expanded.StretchBudget),
	}

	filters := append([]types.AppliedFilter(nil), expanded.AppliedFilters...)
	filters = append(filters, derivedFilters(inferenceResult)...)

	return Plan{Query: query, AppliedFilters: filters}
}

// Execute runs plan against store, computing total_count over every
// qualifying engineer before a coarse pre-rank-and-paginate step: order
// by (qualifying_skill_count DESC, years_experience DESC), then skip
// offset and take limit. The Utility Ranker re-sorts the returned page
// by its own precise score; this step only avoids shipping the full
// qualifying set downstream.
func Execute(ctx context.Context, store graphstore.Store, plan Plan, offset, limit int, excludeID string) (Page, error) {
	unbounded := plan.Query
	unbounded.Limit = 0

	all, err := store.CandidatesMatching(ctx, unbounded)
	if err != nil {
		return Page{}, err
	}

	if excludeID != "" {
		all = excludeCandidate(all, excludeID)
	}

	qualifying := make(map[string]int, len(all))
	for _, c := range all {
		n := countQualifyingSkills(c, plan.Query.RequiredSkillIDs)
		qualifying[c.ID] = n
		c.QualifyingSkillCount = n
	}

	sort.SliceStable(all, func(i, j int) bool {
		qi, qj := qualifying[all[i].ID], qualifying[all[j].ID]
		if qi != qj {
			return qi > qj
		}
		return all[i].YearsExperience > all[j].YearsExperience
	})

	total := len(all)
	page := paginate(all, offset, limit)

	return Page{Candidates: page, TotalCount: total, QualifyingSkillByID: qualifying}, nil
}

func excludeCandidate(all []*types.Candidate, id string) []*types.Candidate {
	out := make([]*types.Candidate, 0, len(all))
	for _, c := range all {
		if c.ID != id {
			out = append(out, c)
		}
	}
	return out
}

func paginate(all []*types.Candidate, offset, limit int) []*types.Candidate {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(all) {
		return nil
	}
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return all[offset:end]
}

// countQualifyingSkills counts how many of requiredSkillIDs c satisfies at
// any proficiency. The exact proficiency-tiered rule is applied precisely
// by the ranker's graduated proficiency credit; this coarse count only
// orders the pre-ranked page.
func countQualifyingSkills(c *types.Candidate, requiredSkillIDs []string) int {
	count := 0
	for _, id := range requiredSkillIDs {
		if c.HasSkillAtLeast(id, types.ProficiencyLearning) {
			count++
		}
	}
	return count
}

func derivedFilters(result inference.Result) []types.AppliedFilter {
	var out []types.AppliedFilter
	for _, dc := range result.DerivedConstraints {
		if dc.Suppressed() || dc.Action.Kind != types.EffectFilter {
			continue
		}
		value := dc.Action.TargetValue
		if dc.Override != nil && dc.Override.Scope == types.OverridePartial {
			value = subtractOverridden(dc.Action.TargetValue, dc.Override.OverriddenSkills)
		}
		out = append(out, types.AppliedFilter{
			Field:  dc.Action.TargetField,
			Value:  value,
			Source: types.DerivedSource(dc.Rule.ID),
		})
	}
	return out
}

func subtractOverridden(value any, overridden []string) any {
	skills, ok := value.([]string)
	if !ok {
		if s, ok := value.(string); ok {
			skills = []string{s}
		} else {
			return value
		}
	}
	removed := make(map[string]bool, len(overridden))
	for _, o := range overridden {
		removed[o] = true
	}
	var out []string
	for _, s := range skills {
		if !removed[s] {
			out = append(out, s)
		}
	}
	return out
}

func domainIDsOf(domains []types.ResolvedDomain) []string {
	var out []string
	for _, d := range domains {
		out = append(out, d.ExpandedIDs...)
	}
	return out
}

func fastestTimelineOf(set []types.StartTimeline) string {
	if len(set) == 0 {
		return ""
	}
	// set is already produced by types.TimelinesAtOrFaster, so the last
	// entry is the slowest allowed boundary value.
	return string(set[len(set)-1])
}

func timezoneStrings(zones []types.Timezone) []string {
	out := make([]string, len(zones))
	for i, z := range zones {
		out[i] = string(z)
	}
	return out
}

func floatOrZero(p *int) float64 {
	if p == nil {
		return 0
	}
	return float64(*p)
}

func unionStrings(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	var out []string
	for _, list := range [][]string{a, b} {
		for _, s := range list {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	return out
}
