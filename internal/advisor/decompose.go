// Package advisor implements the constraint advisor: when a request
// returns too few or too many engineers, it explains why (via QuickXPlain
// minimal conflict sets) and proposes concrete adjustments (relaxation
// when sparse, tightening when plentiful).
package advisor

import (
	"fmt"

	"github.com/talentgraph/recommender/internal/types"
)

const baseMatchClause = "MATCH (e:Engineer)"

// Decompose turns a request's applied constraints into independently
// testable units. Each user-required skill becomes its own constraint so
// QuickXPlain can isolate exactly which one is driving a conflict; derived
// skills are grouped by the rule that produced them, since overriding a
// rule removes everything it contributed together. Property-style
// constraints (years, salary, timezone, timeline, domains) are read
// straight off ExpandedCriteria rather than re-parsed out of
// AppliedFilter.Value, which carries unexported shapes private to the
// expander.
func Decompose(req types.Request, expanded types.ExpandedCriteria, derived []types.DerivedConstraint) types.DecomposedConstraints {
	var constraints []types.TestableConstraint

	for _, sk := range req.RequiredSkills {
		constraints = append(constraints, types.TestableConstraint{
			ID:           "skill:" + sk.Identifier,
			Tag:          types.TagSkillTraversal,
			DisplayValue: sk.Identifier,
			Source:       types.SourceUser,
			SkillTraversal: &types.SkillTraversalConstraint{
				SkillIDs:       []string{sk.Identifier},
				Origin:         types.OriginUser,
				MinProficiency: sk.MinProficiency,
			},
		})
	}

	constraints = append(constraints, derivedSkillConstraints(derived)...)

	if expanded.MinYearsExperience != nil {
		constraints = append(constraints, types.TestableConstraint{
			ID:           "years:min",
			Tag:          types.TagProperty,
			DisplayValue: fmt.Sprintf("%d+ years experience", *expanded.MinYearsExperience),
			Source:       types.SourceUser,
			Property: &types.PropertyConstraint{
				Field: "years_experience", Op: types.OpGTE,
				Value: float64(*expanded.MinYearsExperience), FieldType: types.FieldTypeFloat,
			},
		})
	}
	if expanded.MaxYearsExperience != nil {
		constraints = append(constraints, types.TestableConstraint{
			ID:           "years:max",
			Tag:          types.TagProperty,
			DisplayValue: fmt.Sprintf("at most %d years experience", *expanded.MaxYearsExperience),
			Source:       types.SourceUser,
			Property: &types.PropertyConstraint{
				Field: "years_experience", Op: types.OpLTE,
				Value: float64(*expanded.MaxYearsExperience), FieldType: types.FieldTypeFloat,
			},
		})
	}

	if expanded.MaxBudget != nil {
		constraints = append(constraints, types.TestableConstraint{
			ID:           "salary:max",
			Tag:          types.TagProperty,
			DisplayValue: fmt.Sprintf("budget at or below $%d", *expanded.MaxBudget),
			Source:       types.SourceUser,
			Property: &types.PropertyConstraint{
				Field: "salary", Op: types.OpLTE,
				Value: float64(*expanded.MaxBudget), FieldType: types.FieldTypeFloat,
			},
		})
	}

	if len(expanded.TimezoneZones) > 0 {
		constraints = append(constraints, types.TestableConstraint{
			ID:           "timezone",
			Tag:          types.TagProperty,
			DisplayValue: "timezone",
			Source:       types.SourceUser,
			Property: &types.PropertyConstraint{
				Field: "timezone", Op: types.OpIn,
				Value: expanded.TimezoneZones, FieldType: types.FieldTypeStringSet,
			},
		})
	}

	if len(expanded.StartTimelineSet) > 0 {
		constraints = append(constraints, types.TestableConstraint{
			ID:           "start_timeline",
			Tag:          types.TagProperty,
			DisplayValue: "start timeline",
			Source:       types.SourceUser,
			Property: &types.PropertyConstraint{
				Field: "start_timeline", Op: types.OpIn,
				Value: expanded.StartTimelineSet, FieldType: types.FieldTypeStringSet,
			},
		})
	}

	for _, d := range expanded.ResolvedBusinessDomains {
		constraints = append(constraints, domainConstraint("business_domains", d))
	}
	for _, d := range expanded.ResolvedTechnicalDomains {
		constraints = append(constraints, domainConstraint("technical_domains", d))
	}

	return types.DecomposedConstraints{Constraints: constraints, BaseMatchClause: baseMatchClause}
}

func domainConstraint(field string, d types.ResolvedDomain) types.TestableConstraint {
	return types.TestableConstraint{
		ID:           field + ":" + d.Identifier,
		Tag:          types.TagProperty,
		DisplayValue: d.Identifier,
		Source:       types.SourceUser,
		Property: &types.PropertyConstraint{
			Field: field, Op: types.OpIn,
			Value: d.ExpandedIDs, FieldType: types.FieldTypeStringSet,
		},
	}
}

// derivedSkillConstraints groups a rule's filter effect on derivedSkills
// into a single constraint, so overriding the rule removes everything it
// contributed. A FULL override suppresses the constraint entirely; a
// PARTIAL override removes only the overridden skills from the group.
func derivedSkillConstraints(derived []types.DerivedConstraint) []types.TestableConstraint {
	var out []types.TestableConstraint
	for _, d := range derived {
		if d.Action.Kind != types.EffectFilter || d.Action.TargetField != "derivedSkills" {
			continue
		}
		if d.Suppressed() {
			continue
		}
		ids, _ := d.Action.TargetValue.([]string)
		if d.Override != nil && d.Override.Scope == types.OverridePartial {
			ids = subtract(ids, d.Override.OverriddenSkills)
		}
		if len(ids) == 0 {
			continue
		}
		out = append(out, types.TestableConstraint{
			ID:           "derived:" + d.Rule.ID,
			Tag:          types.TagSkillTraversal,
			DisplayValue: d.Rule.Name,
			Source:       types.DerivedSource(d.Rule.ID),
			SkillTraversal: &types.SkillTraversalConstraint{
				SkillIDs: ids,
				Origin:   types.OriginDerived,
			},
		})
	}
	return out
}

func subtract(ids, remove []string) []string {
	drop := make(map[string]bool, len(remove))
	for _, id := range remove {
		drop[id] = true
	}
	var out []string
	for _, id := range ids {
		if !drop[id] {
			out = append(out, id)
		}
	}
	return out
}
