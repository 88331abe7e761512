// Package inference implements the fixed-point rule evaluator: the user's
// request seeds a fact base, rules over that base derive additional
// filters and boosts, and derivations of derivations are permitted (rule
// chaining).
//
// Rules are data (see rule.go / Condition in condition.go), not host
// functions, so they can be introspected, overridden by id, and unit
// tested independent of the evaluator.
package inference

import (
	"fmt"
	"sort"

	"github.com/talentgraph/recommender/internal/types"
)

// DefaultMaxIterations is the fixed-point loop's default iteration
// ceiling.
const DefaultMaxIterations = 8

// Result is the inference engine's output.
type Result struct {
	DerivedConstraints    []types.DerivedConstraint
	FiredRuleIDs          []string
	OverriddenRuleIDs     []string
	IterationCount        int
	Warnings              []string
	DerivedRequiredSkillIDs []string
	DerivedSkillBoosts    map[string]float64
}

// Engine evaluates a rule catalogue to fixed point.
type Engine struct {
	rules         []Rule
	maxIterations int
}

// New creates an Engine over rules with the given iteration ceiling.
func New(rules []Rule, maxIterations int) *Engine {
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}
	sorted := append([]Rule(nil), rules...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Priority != sorted[j].Priority {
			return sorted[i].Priority > sorted[j].Priority
		}
		return sorted[i].ID < sorted[j].ID
	})
	return &Engine{rules: sorted, maxIterations: maxIterations}
}

// fired tracks a rule that has matched at least once, for building the
// final DerivedConstraint list with deduplicated derivation chains.
type fired struct {
	rule       Rule
	chains     [][]string
	seenChains map[string]bool
}

// Run evaluates the rule catalogue against req/expanded to fixed point and
// resolves overrides.
func (e *Engine) Run(req types.Request, expanded types.ExpandedCriteria) Result {
	facts := NewFacts(req, expanded)
	overridden := make(map[string]bool, len(req.OverriddenRuleIDs))
	for _, id := range req.OverriddenRuleIDs {
		overridden[id] = true
	}

	// pathDerivation tracks, for each derived fact path, the chains that
	// justify it being set; used to extend chains across rule-chaining
	// iterations.
	pathDerivation := make(map[string][][]string)
	firedByID := make(map[string]*fired)

	type match struct {
		rule         Rule
		contributing []string
	}

	iteration := 0
	for ; iteration < e.maxIterations; iteration++ {
		// Every rule in this iteration evaluates against the fact base as
		// it stood at the *start* of the iteration: a rule that derives a
		// fact cannot feed that fact to another rule until the next pass.
		// This is what forces a chained pair of rules to need two
		// iterations to both fire, and what makes Facts.Equal a valid
		// fixed-point test.
		before := facts.Snapshot()

		var matches []match
		for _, rule := range e.rules {
			if overridden[rule.ID] {
				continue
			}
			ok, contributing := rule.Condition.Eval(&before)
			if !ok {
				continue
			}
			matches = append(matches, match{rule: rule, contributing: contributing})
		}

		for _, m := range matches {
			rule := m.rule
			chains := deriveChains(m.contributing, pathDerivation, rule.ID)

			switch rule.Effect.Kind {
			case types.EffectFilter:
				facts.ApplyFilter(rule.Effect.TargetField, rule.Effect.TargetValue)
			case types.EffectBoost:
				facts.ApplyBoost(rule.Effect.TargetField, rule.Effect.TargetValue)
			}

			targetPath := derivedPath(rule.Effect.Kind, rule.Effect.TargetField)
			pathDerivation[targetPath] = mergeChains(pathDerivation[targetPath], chains)
			if rule.Effect.TargetField == "derivedSkills" {
				for _, skillID := range targetValueStrings(rule.Effect.TargetValue) {
					key := "$.derived.allSkills::" + skillID
					pathDerivation[key] = mergeChains(pathDerivation[key], chains)
				}
			}

			f, ok := firedByID[rule.ID]
			if !ok {
				f = &fired{rule: rule, seenChains: make(map[string]bool)}
				firedByID[rule.ID] = f
			}
			for _, chain := range chains {
				key := fmt.Sprint(chain)
				if !f.seenChains[key] {
					f.seenChains[key] = true
					f.chains = append(f.chains, chain)
				}
			}
		}

		if before.Equal(*facts) {
			iteration++
			break
		}
	}

	result := Result{
		IterationCount:     iteration,
		DerivedSkillBoosts: make(map[string]float64),
	}
	if iteration >= e.maxIterations {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"inference engine reached the %d-iteration ceiling without a fixed point; using the last stable fact map", e.maxIterations))
	}

	firedIDs := make([]string, 0, len(firedByID))
	for id := range firedByID {
		firedIDs = append(firedIDs, id)
	}
	sort.Strings(firedIDs)
	result.FiredRuleIDs = firedIDs

	for _, id := range firedIDs {
		f := firedByID[id]
		dc := buildDerivedConstraint(f, req)
		result.DerivedConstraints = append(result.DerivedConstraints, dc)

		if dc.Suppressed() {
			continue
		}
		collectSkillOutputs(dc, result.DerivedSkillBoosts, &result.DerivedRequiredSkillIDs)
	}

	for id := range overridden {
		result.OverriddenRuleIDs = append(result.OverriddenRuleIDs, id)
	}
	sort.Strings(result.OverriddenRuleIDs)

	return result
}

func derivedPath(kind types.EffectKind, targetField string) string {
	if kind == types.EffectFilter {
		return "$.derived.requiredProperties." + targetField
	}
	return "$.derived.preferredProperties." + targetField
}

// deriveChains computes the new derivation chains for a firing rule: for
// every contributing leaf path, look up its ancestor chains (if the path
// names a derived fact written by an earlier rule) or treat it as a root
// fact (empty ancestor chain) when it names raw request data; the rule's
// own id is appended to every resulting chain.
func deriveChains(contributing []string, pathDerivation map[string][][]string, ruleID string) [][]string {
	var ancestorSets [][]string
	for _, path := range contributing {
		if chains, ok := pathDerivation[path]; ok && len(chains) > 0 {
			ancestorSets = append(ancestorSets, flattenChainKeys(chains)...)
		}
	}

	if len(ancestorSets) == 0 {
		return [][]string{{ruleID}}
	}

	seen := make(map[string]bool)
	var out [][]string
	for _, ancestor := range ancestorSets {
		chain := append(append([]string(nil), ancestor...), ruleID)
		key := fmt.Sprint(chain)
		if !seen[key] {
			seen[key] = true
			out = append(out, chain)
		}
	}
	return out
}

func flattenChainKeys(chains [][]string) [][]string {
	out := make([][]string, len(chains))
	copy(out, chains)
	return out
}

func mergeChains(existing, fresh [][]string) [][]string {
	seen := make(map[string]bool, len(existing))
	out := append([][]string(nil), existing...)
	for _, c := range existing {
		seen[fmt.Sprint(c)] = true
	}
	for _, c := range fresh {
		key := fmt.Sprint(c)
		if !seen[key] {
			seen[key] = true
			out = append(out, c)
		}
	}
	return out
}

func buildDerivedConstraint(f *fired, req types.Request) types.DerivedConstraint {
	dc := types.DerivedConstraint{
		Rule: types.RuleRef{ID: f.rule.ID, Name: f.rule.Name},
		Action: types.RuleAction{
			Kind:          f.rule.Effect.Kind,
			TargetField:   f.rule.Effect.TargetField,
			TargetValue:   f.rule.Effect.TargetValue,
			BoostStrength: f.rule.Effect.BoostStrength,
		},
		Provenance: types.Provenance{
			DerivationChains: f.chains,
			Explanation:      fmt.Sprintf("%s fired because its condition matched the request/derived fact base", f.rule.Name),
		},
	}
	dc.Override = resolveOverride(f.rule, req)
	return dc
}

// resolveOverride resolves a rule's override status against the request:
// explicit rule override, implicit field override, and implicit/partial
// skill override.
func resolveOverride(rule Rule, req types.Request) *types.Override {
	for _, id := range req.OverriddenRuleIDs {
		if id == rule.ID {
			return &types.Override{Scope: types.OverrideFull, Reason: types.ReasonExplicitRule}
		}
	}

	if rule.Effect.TargetField != "derivedSkills" {
		if userSetSameField(rule.Effect.TargetField, req) {
			return &types.Override{Scope: types.OverrideFull, Reason: types.ReasonImplicitField}
		}
		return nil
	}

	targetSkills := targetValueStrings(rule.Effect.TargetValue)
	if len(targetSkills) == 0 {
		return nil
	}

	var already []string
	for _, skillID := range targetSkills {
		if req.HasSkill(skillID) {
			already = append(already, skillID)
		}
	}
	switch {
	case len(already) == len(targetSkills):
		return &types.Override{Scope: types.OverrideFull, Reason: types.ReasonImplicitSkill, OverriddenSkills: already}
	case len(already) > 0:
		return &types.Override{Scope: types.OverridePartial, Reason: types.ReasonImplicitSkill, OverriddenSkills: already}
	default:
		return nil
	}
}

func userSetSameField(targetField string, req types.Request) bool {
	switch targetField {
	case "preferredSeniorityLevel":
		return req.PreferredSeniorityLevel != ""
	case "preferredMaxStartTime":
		return req.PreferredMaxStartTime != ""
	case "preferredConfidenceScore":
		return false
	case "preferredProficiency":
		for _, s := range req.RequiredSkills {
			if s.PreferredMinProficiency != "" {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func targetValueStrings(v any) []string {
	switch t := v.(type) {
	case string:
		return []string{t}
	case []string:
		return t
	default:
		return nil
	}
}

func collectSkillOutputs(dc types.DerivedConstraint, boosts map[string]float64, requiredIDs *[]string) {
	if dc.Action.TargetField != "derivedSkills" {
		return
	}
	skills := targetValueStrings(dc.Action.TargetValue)

	if dc.Override != nil && dc.Override.Scope == types.OverridePartial {
		skills = subtract(skills, dc.Override.OverriddenSkills)
	}

	switch dc.Action.Kind {
	case types.EffectFilter:
		*requiredIDs = append(*requiredIDs, skills...)
	case types.EffectBoost:
		for _, id := range skills {
			if dc.Action.BoostStrength > boosts[id] {
				boosts[id] = dc.Action.BoostStrength
			}
		}
	}
}

func subtract(all, remove []string) []string {
	removeSet := make(map[string]bool, len(remove))
	for _, r := range remove {
		removeSet[r] = true
	}
	var out []string
	for _, id := range all {
		if !removeSet[id] {
			out = append(out, id)
		}
	}
	return out
}
