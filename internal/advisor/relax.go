package advisor

import (
	"fmt"

	"github.com/talentgraph/recommender/internal/config"
	"github.com/talentgraph/recommender/internal/types"
)

const yearsRelaxStep = 2.0

// RelaxationSuggestions proposes 1-3 adjustments for a single constraint
// implicated in a conflict set, each with a projected new_count: salary
// widens by the configured SalaryWidenPercent, years bounds by the fixed
// yearsRelaxStep, and any constraint, including skills and derived rules,
// can be dropped outright. A user's only remaining required skill is
// never offered as droppable, since that would leave nothing to search
// by at all.
func RelaxationSuggestions(tester *Tester, all []types.TestableConstraint, target types.TestableConstraint, onlyAnchor bool, cfg config.AdvisorConfig) []types.RelaxationSuggestion {
	var out []types.RelaxationSuggestion

	if target.Tag == types.TagProperty && target.Property.Field == "salary" {
		if v, ok := toFloat(target.Property.Value); ok {
			widened := v * (1 + cfg.SalaryWidenPercent)
			replaced := replaceValue(all, target.ID, widened)
			out = append(out, types.RelaxationSuggestion{
				ConstraintID: target.ID,
				Description:  fmt.Sprintf("widen budget to $%.0f (+%.0f%%)", widened, cfg.SalaryWidenPercent*100),
				NewValue:     widened,
				NewCount:     tester.Count(replaced),
			})
		}
	}

	if target.Tag == types.TagProperty && target.Property.Field == "years_experience" {
		if v, ok := toFloat(target.Property.Value); ok {
			widened := v - yearsRelaxStep
			if target.Property.Op == types.OpLTE {
				widened = v + yearsRelaxStep
			}
			if widened < 0 {
				widened = 0
			}
			replaced := replaceValue(all, target.ID, widened)
			out = append(out, types.RelaxationSuggestion{
				ConstraintID: target.ID,
				Description:  fmt.Sprintf("relax the years-experience bound to %.0f", widened),
				NewValue:     widened,
				NewCount:     tester.Count(replaced),
			})
		}
	}

	canDrop := true
	dropDescription := "drop constraint " + target.DisplayValue
	if target.Tag == types.TagSkillTraversal {
		switch target.SkillTraversal.Origin {
		case types.OriginUser:
			canDrop = !onlyAnchor
			dropDescription = "drop the required skill " + target.DisplayValue
		case types.OriginDerived:
			dropDescription = "override the inferred rule behind " + target.DisplayValue
		}
	}
	if canDrop {
		out = append(out, types.RelaxationSuggestion{
			ConstraintID: target.ID,
			Description:  dropDescription,
			NewCount:     tester.Count(excludeByID(all, target.ID)),
		})
	}

	if len(out) > 3 {
		out = out[:3]
	}
	return out
}

func excludeByID(all []types.TestableConstraint, id string) []types.TestableConstraint {
	var out []types.TestableConstraint
	for _, c := range all {
		if c.ID != id {
			out = append(out, c)
		}
	}
	return out
}

// replaceValue returns a copy of all with target's constraint's Property
// value swapped for newValue, leaving every other constraint untouched.
func replaceValue(all []types.TestableConstraint, id string, newValue interface{}) []types.TestableConstraint {
	out := make([]types.TestableConstraint, len(all))
	copy(out, all)
	for i, c := range out {
		if c.ID != id || c.Property == nil {
			continue
		}
		replaced := *c.Property
		replaced.Value = newValue
		c.Property = &replaced
		out[i] = c
	}
	return out
}

// isOnlyAnchorSkill reports whether target is the sole remaining
// user-required skill constraint in all.
func isOnlyAnchorSkill(all []types.TestableConstraint, target types.TestableConstraint) bool {
	if target.Tag != types.TagSkillTraversal || target.SkillTraversal.Origin != types.OriginUser {
		return false
	}
	count := 0
	for _, c := range all {
		if c.Tag == types.TagSkillTraversal && c.SkillTraversal.Origin == types.OriginUser {
			count++
		}
	}
	return count == 1
}
