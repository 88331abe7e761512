// Package expander implements the Constraint Expander: a pure
// transformation from a Request into ExpandedCriteria, with no GraphStore
// calls of its own beyond what the caller has already resolved through
// taxonomy.Resolver.
package expander

import (
	"github.com/talentgraph/recommender/internal/types"
)

// seniorityYears gives the inclusive year range for each seniority tier.
// senior's min of 6 years is a fixed anchor point; the rest of the
// ladder is interpolated around it, recorded as an explicit decision in
// DESIGN.md.
type yearRange struct {
	min int
	max *int
}

func intPtr(n int) *int { return &n }

var seniorityYears = map[types.SeniorityLevel]yearRange{
	types.SeniorityJunior:    {min: 0, max: intPtr(2)},
	types.SeniorityMid:       {min: 2, max: intPtr(5)},
	types.SenioritySenior:    {min: 6, max: intPtr(9)},
	types.SeniorityStaff:     {min: 9, max: intPtr(13)},
	types.SeniorityPrincipal: {min: 13, max: nil},
}

// SkillTaxonomy is the subset of taxonomy resolution the expander needs:
// for each requested skill identifier, the set of expanded leaf ids (with
// the requirement's proficiency already applied and merged via
// types.Stricter for descendants reached through multiple parents).
type SkillTaxonomy interface {
	ExpandedSkill(identifier string) (leafProficiency map[string]types.Proficiency, unresolved bool)
	ExpandedDomain(identifier string) (expandedIDs []string, unresolved bool)
}

// Expand transforms req into ExpandedCriteria. taxonomy resolves every
// skill/domain identifier the request names; Expand itself performs no
// graph I/O.
func Expand(req types.Request, taxonomy SkillTaxonomy) types.ExpandedCriteria {
	criteria := types.ExpandedCriteria{}

	expandSeniority(req, &criteria)
	expandTimeline(req, &criteria)
	expandTimezone(req, &criteria)
	expandBudget(req, &criteria)
	expandSkills(req, taxonomy, &criteria)
	expandDomains(req, taxonomy, &criteria)
	if req.TeamFocus != "" {
		criteria.AppliedPreferences = append(criteria.AppliedPreferences, types.AppliedPreference{
			Field: "team_focus", Value: string(req.TeamFocus), Source: types.SourceUser,
		})
	}

	return criteria
}

func expandSeniority(req types.Request, criteria *types.ExpandedCriteria) {
	if req.RequiredSeniorityLevel == "" {
		return
	}
	spec, ok := seniorityYears[req.RequiredSeniorityLevel]
	if !ok {
		return
	}
	criteria.MinYearsExperience = intPtr(spec.min)
	criteria.MaxYearsExperience = spec.max
	criteria.AppliedFilters = append(criteria.AppliedFilters, types.AppliedFilter{
		Field: "years_experience", Value: fieldBound{gte: spec.min}, Source: types.SourceUser,
	})

	if req.PreferredSeniorityLevel != "" {
		criteria.AppliedPreferences = append(criteria.AppliedPreferences, types.AppliedPreference{
			Field: "seniority_level", Value: string(req.PreferredSeniorityLevel), Source: types.SourceUser,
		})
	}
}

// fieldBound is a small tagged value for AppliedFilter.Value when the
// filter is a numeric bound rather than a literal.
type fieldBound struct {
	gte int
}

func expandTimeline(req types.Request, criteria *types.ExpandedCriteria) {
	if req.RequiredMaxStartTime == "" {
		return
	}
	criteria.StartTimelineSet = types.TimelinesAtOrFaster(req.RequiredMaxStartTime)
	criteria.AppliedFilters = append(criteria.AppliedFilters, types.AppliedFilter{
		Field: "start_timeline", Value: criteria.StartTimelineSet, Source: types.SourceUser,
	})

	if req.PreferredMaxStartTime != "" {
		criteria.AppliedPreferences = append(criteria.AppliedPreferences, types.AppliedPreference{
			Field: "start_timeline", Value: string(req.PreferredMaxStartTime), Source: types.SourceUser,
		})
	}
}

func expandTimezone(req types.Request, criteria *types.ExpandedCriteria) {
	if len(req.RequiredTimezone) > 0 {
		criteria.TimezoneZones = req.RequiredTimezone
		criteria.AppliedFilters = append(criteria.AppliedFilters, types.AppliedFilter{
			Field: "timezone", Value: req.RequiredTimezone, Source: types.SourceUser,
		})
	}
	if len(req.PreferredTimezone) > 0 {
		criteria.AppliedPreferences = append(criteria.AppliedPreferences, types.AppliedPreference{
			Field: "timezone", Value: req.PreferredTimezone, Source: types.SourceUser,
		})
	}
}

func expandBudget(req types.Request, criteria *types.ExpandedCriteria) {
	if req.MaxBudget == nil {
		return
	}
	criteria.MaxBudget = req.MaxBudget
	criteria.StretchBudget = req.StretchBudget

	effective := *req.MaxBudget
	if req.StretchBudget != nil {
		effective = *req.StretchBudget
	}
	criteria.AppliedFilters = append(criteria.AppliedFilters, types.AppliedFilter{
		Field: "salary", Value: map[string]int{"lte": effective}, Source: types.SourceUser,
	})
}

func expandSkills(req types.Request, taxonomy SkillTaxonomy, criteria *types.ExpandedCriteria) {
	merged := make(map[string]types.Proficiency)

	for _, skill := range req.RequiredSkills {
		leaves, unresolved := taxonomy.ExpandedSkill(skill.Identifier)
		if unresolved {
			criteria.UnresolvedSkills = append(criteria.UnresolvedSkills, skill.Identifier)
			continue
		}
		minProf := skill.MinProficiency
		if minProf == "" {
			minProf = types.ProficiencyLearning
		}
		for id := range leaves {
			if existing, ok := merged[id]; ok {
				merged[id] = types.Stricter(existing, minProf)
			} else {
				merged[id] = minProf
			}
		}
	}

	for id, prof := range merged {
		switch prof {
		case types.ProficiencyExpert:
			criteria.SkillProficiency.Expert = append(criteria.SkillProficiency.Expert, id)
		case types.ProficiencyProficient:
			criteria.SkillProficiency.Proficient = append(criteria.SkillProficiency.Proficient, id)
		default:
			criteria.SkillProficiency.Learning = append(criteria.SkillProficiency.Learning, id)
		}
	}

	if len(merged) > 0 {
		criteria.AppliedFilters = append(criteria.AppliedFilters, types.AppliedFilter{
			Field: "required_skills", Value: criteria.SkillProficiency.AllIDs(), Source: types.SourceUser,
		})
	}

	for _, skill := range req.PreferredSkills {
		leaves, unresolved := taxonomy.ExpandedSkill(skill.Identifier)
		if unresolved {
			criteria.UnresolvedSkills = append(criteria.UnresolvedSkills, skill.Identifier)
			continue
		}
		ids := make([]string, 0, len(leaves))
		for id := range leaves {
			ids = append(ids, id)
		}
		criteria.AppliedPreferences = append(criteria.AppliedPreferences, types.AppliedPreference{
			Field: "preferred_skills", Value: ids, Source: types.SourceUser,
		})
	}
}

func expandDomains(req types.Request, taxonomy SkillTaxonomy, criteria *types.ExpandedCriteria) {
	criteria.ResolvedBusinessDomains = resolveDomainList(req.RequiredBusinessDomains, taxonomy, criteria)
	criteria.ResolvedTechnicalDomains = resolveDomainList(req.RequiredTechnicalDomains, taxonomy, criteria)

	if len(criteria.ResolvedBusinessDomains) > 0 {
		criteria.AppliedFilters = append(criteria.AppliedFilters, types.AppliedFilter{
			Field: "business_domains", Value: domainIDs(criteria.ResolvedBusinessDomains), Source: types.SourceUser,
		})
	}
	if len(criteria.ResolvedTechnicalDomains) > 0 {
		criteria.AppliedFilters = append(criteria.AppliedFilters, types.AppliedFilter{
			Field: "technical_domains", Value: domainIDs(criteria.ResolvedTechnicalDomains), Source: types.SourceUser,
		})
	}

	for _, d := range req.PreferredBusinessDomains {
		ids, unresolved := taxonomy.ExpandedDomain(d.Identifier)
		if unresolved {
			continue
		}
		criteria.AppliedPreferences = append(criteria.AppliedPreferences, types.AppliedPreference{
			Field: "preferred_business_domains", Value: ids, Source: types.SourceUser,
		})
	}
	for _, d := range req.PreferredTechnicalDomains {
		ids, unresolved := taxonomy.ExpandedDomain(d.Identifier)
		if unresolved {
			continue
		}
		criteria.AppliedPreferences = append(criteria.AppliedPreferences, types.AppliedPreference{
			Field: "preferred_technical_domains", Value: ids, Source: types.SourceUser,
		})
	}
}

func resolveDomainList(reqs []types.DomainRequirement, taxonomy SkillTaxonomy, criteria *types.ExpandedCriteria) []types.ResolvedDomain {
	var out []types.ResolvedDomain
	for _, d := range reqs {
		ids, unresolved := taxonomy.ExpandedDomain(d.Identifier)
		if unresolved {
			continue
		}
		out = append(out, types.ResolvedDomain{
			Identifier:        d.Identifier,
			ExpandedIDs:       ids,
			MinYears:          d.MinYears,
			PreferredMinYears: d.PreferredMinYears,
		})
	}
	return out
}

func domainIDs(domains []types.ResolvedDomain) []string {
	var out []string
	for _, d := range domains {
		out = append(out, d.ExpandedIDs...)
	}
	return out
}
