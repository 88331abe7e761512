package critique

import (
	"fmt"
	"sort"

	"github.com/talentgraph/recommender/internal/config"
	"github.com/talentgraph/recommender/internal/types"
)

// candidateCritique is one proposal the miner considers, paired with the
// predicate that decides whether a given engineer would still pass it.
type candidateCritique struct {
	critique    types.Critique
	description string
	passes      func(*types.Candidate) bool
}

// Mine proposes DynamicCritiqueSuggestions from the returned result page:
// one generator per CandidatePropertyConfig (seven shipped), support
// computed over the page rather than the full total_count, filtered by
// min_support_threshold, sorted ascending by support (least obvious
// first), capped at max_suggestions. Three configured property pairs also
// produce compound suggestions.
func Mine(req types.Request, page []*types.Candidate, cfg config.CritiqueConfig) []types.DynamicCritiqueSuggestion {
	if len(page) == 0 {
		return nil
	}

	byProperty := map[types.CritiqueProperty][]candidateCritique{
		types.PropertyTimezone:         timezoneCandidates(req, page),
		types.PropertySeniority:        seniorityCandidates(req, page),
		types.PropertyTimeline:         timelineCandidates(req, page),
		types.PropertySkills:           skillCandidates(req, page),
		types.PropertyBudget:           budgetCandidates(req, page),
		types.PropertyBusinessDomains:  domainCandidates(req, page, true),
		types.PropertyTechnicalDomains: domainCandidates(req, page, false),
	}

	var out []types.DynamicCritiqueSuggestion
	for _, candidates := range byProperty {
		for _, cc := range candidates {
			support := supportOf(page, cc.passes)
			if support < cfg.MinSupportThreshold {
				continue
			}
			out = append(out, types.DynamicCritiqueSuggestion{
				Critique: cc.critique, Description: cc.description, Support: support,
			})
		}
	}

	for _, pair := range [][2]types.CritiqueProperty{
		{types.PropertyTimezone, types.PropertySeniority},
		{types.PropertySkills, types.PropertyTimezone},
		{types.PropertySkills, types.PropertySeniority},
	} {
		if s, ok := bestCompound(page, byProperty[pair[0]], byProperty[pair[1]], cfg.MinSupportThreshold); ok {
			out = append(out, s)
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Support < out[j].Support })
	if len(out) > cfg.MaxSuggestions {
		out = out[:cfg.MaxSuggestions]
	}
	return out
}

func supportOf(page []*types.Candidate, passes func(*types.Candidate) bool) float64 {
	n := 0
	for _, c := range page {
		if passes(c) {
			n++
		}
	}
	return float64(n) / float64(len(page))
}

func bestCompound(page []*types.Candidate, a, b []candidateCritique, minSupport float64) (types.DynamicCritiqueSuggestion, bool) {
	var best *candidateCritique
	var bestOther *candidateCritique
	bestSupport := -1.0
	for i := range a {
		for j := range b {
			support := supportOf(page, func(c *types.Candidate) bool { return a[i].passes(c) && b[j].passes(c) })
			if support >= minSupport && support > bestSupport {
				bestSupport = support
				best = &a[i]
				bestOther = &b[j]
			}
		}
	}
	if best == nil {
		return types.DynamicCritiqueSuggestion{}, false
	}
	return types.DynamicCritiqueSuggestion{
		Critique:    best.critique,
		Description: best.description + " and " + bestOther.description,
		Support:     bestSupport,
		Compound:    true,
	}, true
}

func timezoneCandidates(req types.Request, page []*types.Candidate) []candidateCritique {
	required := make(map[types.Timezone]bool)
	for _, z := range req.RequiredTimezone {
		required[z] = true
	}
	counts := make(map[types.Timezone]int)
	for _, c := range page {
		if !required[c.Timezone] && c.Timezone != "" {
			counts[c.Timezone]++
		}
	}
	var out []candidateCritique
	for zone := range counts {
		zone := zone
		out = append(out, candidateCritique{
			critique:    types.Critique{Property: types.PropertyTimezone, Operation: types.OperationSet, Value: string(zone)},
			description: fmt.Sprintf("require timezone %s", zone),
			passes:      func(c *types.Candidate) bool { return c.Timezone == zone },
		})
	}
	return out
}

func seniorityCandidates(req types.Request, page []*types.Candidate) []candidateCritique {
	floor := req.RequiredSeniorityLevel.Index()
	seen := make(map[types.SeniorityLevel]bool)
	var out []candidateCritique
	for _, c := range page {
		if c.Seniority.Index() <= floor || seen[c.Seniority] {
			continue
		}
		seen[c.Seniority] = true
		level := c.Seniority
		out = append(out, candidateCritique{
			critique:    types.Critique{Property: types.PropertySeniority, Operation: types.OperationSet, Value: string(level)},
			description: fmt.Sprintf("require seniority %s or above", level),
			passes:      func(c *types.Candidate) bool { return c.Seniority.Index() >= level.Index() },
		})
	}
	return out
}

func timelineCandidates(req types.Request, page []*types.Candidate) []candidateCritique {
	ceiling := types.TimelineOneYear.Index() + 1 // sentinel "no ceiling" larger than any valid index
	if req.RequiredMaxStartTime != "" {
		ceiling = req.RequiredMaxStartTime.Index()
	}
	seen := make(map[types.StartTimeline]bool)
	var out []candidateCritique
	for _, c := range page {
		idx := c.StartTimeline.Index()
		if idx < 0 || idx >= ceiling || seen[c.StartTimeline] {
			continue
		}
		seen[c.StartTimeline] = true
		timeline := c.StartTimeline
		out = append(out, candidateCritique{
			critique:    types.Critique{Property: types.PropertyTimeline, Operation: types.OperationSet, Value: string(timeline)},
			description: fmt.Sprintf("require start timeline %s or sooner", timeline),
			passes:      func(c *types.Candidate) bool { return c.StartTimeline.Index() >= 0 && c.StartTimeline.Index() <= timeline.Index() },
		})
	}
	return out
}

const topSkillSuggestions = 5

func skillCandidates(req types.Request, page []*types.Candidate) []candidateCritique {
	counts := make(map[string]int)
	for _, c := range page {
		for _, sk := range c.Skills {
			if !req.HasSkill(sk.SkillID) {
				counts[sk.SkillID]++
			}
		}
	}
	ids := rankByCountDesc(counts)
	if len(ids) > topSkillSuggestions {
		ids = ids[:topSkillSuggestions]
	}
	var out []candidateCritique
	for _, id := range ids {
		id := id
		out = append(out, candidateCritique{
			critique:    types.Critique{Property: types.PropertySkills, Operation: types.OperationAdd, Item: id},
			description: fmt.Sprintf("require skill %s", id),
			passes:      func(c *types.Candidate) bool { return c.HasSkillAtLeast(id, "") },
		})
	}
	return out
}

func budgetCandidates(req types.Request, page []*types.Candidate) []candidateCritique {
	salaries := make([]int, len(page))
	for i, c := range page {
		salaries[i] = c.Salary
	}
	sort.Ints(salaries)
	var out []candidateCritique
	for _, pct := range []float64{0.25, 0.50, 0.75} {
		threshold := percentile(salaries, pct)
		if req.MaxBudget != nil && threshold >= *req.MaxBudget {
			continue
		}
		out = append(out, candidateCritique{
			critique:    types.Critique{Property: types.PropertyBudget, Operation: types.OperationSet, Value: threshold},
			description: fmt.Sprintf("cap budget at the %.0fth salary percentile ($%d)", pct*100, threshold),
			passes:      func(c *types.Candidate) bool { return c.Salary <= threshold },
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

func domainCandidates(req types.Request, page []*types.Candidate, business bool) []candidateCritique {
	required := make(map[string]bool)
	existing := req.RequiredBusinessDomains
	if !business {
		existing = req.RequiredTechnicalDomains
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
	if len(ids) > topSkillSuggestions {
		ids = ids[:topSkillSuggestions]
	}
	property := types.PropertyBusinessDomains
	if !business {
		property = types.PropertyTechnicalDomains
	}
	var out []candidateCritique
	for _, id := range ids {
		id := id
		out = append(out, candidateCritique{
			critique:    types.Critique{Property: property, Operation: types.OperationAdd, Item: id},
			description: fmt.Sprintf("require domain %s", id),
			passes: func(c *types.Candidate) bool {
				domains := c.BusinessDomains
				if !business {
					domains = c.TechnicalDomains
				}
				for _, d := range domains {
					if d.DomainID == id {
						return true
					}
				}
				return false
			},
		})
	}
	return out
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
