package advisor

import (
	"fmt"
	"sort"

	"github.com/talentgraph/recommender/internal/config"
	"github.com/talentgraph/recommender/internal/types"
)

const topTighteningCandidates = 5

// tighteningCandidate pairs a testable narrowing with the Critique a
// caller would issue to apply it.
type tighteningCandidate struct {
	constraint  types.TestableConstraint
	critique    types.Critique
	description string
}

// MineTightening proposes additions to narrow an over-wide result set:
// examine the top-k returned page for patterns, test
// each candidate addition against the full currently-matching population
// (not just the page, since the Tester has the whole universe on hand),
// keep only those at or above min_support_threshold, rank ascending by
// support, and cap at max_suggestions.
func MineTightening(tester *Tester, all []types.TestableConstraint, req types.Request, page []*types.Candidate, cfg config.AdvisorConfig) *types.Tightening {
	baseline := tester.Count(all)
	if baseline == 0 || len(page) == 0 {
		return nil
	}

	var candidates []tighteningCandidate
	candidates = append(candidates, tighteningTimezones(req, page)...)
	candidates = append(candidates, tighteningSeniority(req, page)...)
	candidates = append(candidates, tighteningSkills(req, page)...)
	candidates = append(candidates, tighteningDomains(req, page, true)...)
	candidates = append(candidates, tighteningDomains(req, page, false)...)
	candidates = append(candidates, tighteningSalary(req, tester)...)

	var out []types.TighteningSuggestion
	for _, cand := range candidates {
		withAdd := append(append([]types.TestableConstraint(nil), all...), cand.constraint)
		support := float64(tester.Count(withAdd)) / float64(baseline)
		if support < cfg.MinSupportThreshold {
			continue
		}
		out = append(out, types.TighteningSuggestion{
			Critique: cand.critique, Description: cand.description, Support: support,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Support < out[j].Support })
	if len(out) > cfg.MaxSuggestions {
		out = out[:cfg.MaxSuggestions]
	}
	if len(out) == 0 {
		return nil
	}
	return &types.Tightening{Suggestions: out}
}

func tighteningTimezones(req types.Request, page []*types.Candidate) []tighteningCandidate {
	required := make(map[types.Timezone]bool)
	for _, z := range req.RequiredTimezone {
		required[z] = true
	}
	seen := make(map[types.Timezone]bool)
	var out []tighteningCandidate
	for _, c := range page {
		if c.Timezone == "" || required[c.Timezone] || seen[c.Timezone] {
			continue
		}
		seen[c.Timezone] = true
		zone := c.Timezone
		out = append(out, tighteningCandidate{
			constraint: types.TestableConstraint{
				Tag: types.TagProperty,
				Property: &types.PropertyConstraint{
					Field: "timezone", Op: types.OpIn, Value: []types.Timezone{zone},
				},
			},
			critique:    types.Critique{Property: types.PropertyTimezone, Operation: types.OperationSet, Value: string(zone)},
			description: fmt.Sprintf("require timezone %s", zone),
		})
	}
	return out
}

func tighteningSeniority(req types.Request, page []*types.Candidate) []tighteningCandidate {
	floor := req.RequiredSeniorityLevel.Index()
	seen := make(map[types.SeniorityLevel]bool)
	var out []tighteningCandidate
	for _, c := range page {
		if c.Seniority.Index() <= floor || seen[c.Seniority] {
			continue
		}
		seen[c.Seniority] = true
		level := c.Seniority
		out = append(out, tighteningCandidate{
			constraint: types.TestableConstraint{
				Tag: types.TagProperty,
				Property: &types.PropertyConstraint{
					Field: "seniority", Op: types.OpGTE, Value: float64(level.Index()),
				},
			},
			critique:    types.Critique{Property: types.PropertySeniority, Operation: types.OperationSet, Value: string(level)},
			description: fmt.Sprintf("require seniority %s or above", level),
		})
	}
	return out
}

func tighteningSkills(req types.Request, page []*types.Candidate) []tighteningCandidate {
	counts := make(map[string]int)
	for _, c := range page {
		for _, sk := range c.Skills {
			if !req.HasSkill(sk.SkillID) {
				counts[sk.SkillID]++
			}
		}
	}
	ids := rankByCountDesc(counts)
	if len(ids) > topTighteningCandidates {
		ids = ids[:topTighteningCandidates]
	}
	var out []tighteningCandidate
	for _, id := range ids {
		id := id
		out = append(out, tighteningCandidate{
			constraint: types.TestableConstraint{
				Tag:            types.TagSkillTraversal,
				SkillTraversal: &types.SkillTraversalConstraint{SkillIDs: []string{id}},
			},
			critique:    types.Critique{Property: types.PropertySkills, Operation: types.OperationAdd, Item: id},
			description: fmt.Sprintf("require skill %s", id),
		})
	}
	return out
}

func tighteningDomains(req types.Request, page []*types.Candidate, business bool) []tighteningCandidate {
	required := make(map[string]bool)
	existing := req.RequiredBusinessDomains
	property := types.PropertyBusinessDomains
	field := "business_domains"
	if !business {
		existing = req.RequiredTechnicalDomains
		property = types.PropertyTechnicalDomains
		field = "technical_domains"
	}
	for _, d := range existing {
		required[d.Identifier] = true
	}
	counts := make(map[string]int)
	for _, c := range page {
		domains := c.BusinessDomains
		if !business {
			domains = c.TechnicalDomains
		}
		for _, d := range domains {
			if !required[d.DomainID] {
				counts[d.DomainID]++
			}
		}
	}
	ids := rankByCountDesc(counts)
	if len(ids) > topTighteningCandidates {
		ids = ids[:topTighteningCandidates]
	}
	var out []tighteningCandidate
	for _, id := range ids {
		out = append(out, tighteningCandidate{
			constraint: types.TestableConstraint{
				Tag: types.TagProperty,
				Property: &types.PropertyConstraint{
					Field: field, Op: types.OpIn, Value: []string{id},
				},
			},
			critique:    types.Critique{Property: property, Operation: types.OperationAdd, Item: id},
			description: fmt.Sprintf("require domain %s", id),
		})
	}
	return out
}

func tighteningSalary(req types.Request, tester *Tester) []tighteningCandidate {
	salaries := sortedSalaries(tester)
	var out []tighteningCandidate
	for _, pct := range []float64{0.25, 0.50, 0.75} {
		threshold := percentile(salaries, pct)
		if req.MaxBudget != nil && threshold >= *req.MaxBudget {
			continue
		}
		out = append(out, tighteningCandidate{
			constraint: types.TestableConstraint{
				Tag: types.TagProperty,
				Property: &types.PropertyConstraint{
					Field: "salary", Op: types.OpLTE, Value: float64(threshold),
				},
			},
			critique:    types.Critique{Property: types.PropertyBudget, Operation: types.OperationSet, Value: threshold},
			description: fmt.Sprintf("cap budget at the %.0fth salary percentile ($%d)", pct*100, threshold),
		})
	}
	return out
}

func percentile(sorted []int, p float64) int {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(p * float64(len(sorted)-1))
	return sorted[idx]
}

func rankByCountDesc(counts map[string]int) []string {
	ids := make([]string, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.SliceStable(ids, func(i, j int) bool {
		if counts[ids[i]] != counts[ids[j]] {
			return counts[ids[i]] > counts[ids[j]]
		}
		return ids[i] < ids[j]
	})
	return ids
}
