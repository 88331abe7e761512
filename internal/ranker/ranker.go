package ranker

import (
	"sort"

	"github.com/talentgraph/recommender/internal/config"
	"github.com/talentgraph/recommender/internal/inference"
	"github.com/talentgraph/recommender/internal/types"
)

// Rank scores every candidate against req/expanded/inferenceResult using
// cfg's weighted-sum components, returning candidates sorted by score
// descending (ties broken by id, for deterministic output).
func Rank(req types.Request, expanded types.ExpandedCriteria, inferenceResult inference.Result, candidates []*types.Candidate, cfg config.RankerConfig) []types.ScoredCandidate {
	preferredSkillIDs := preferredSkillIDsOf(expanded)
	domainIDs := append(append([]string(nil), domainIDsOf(expanded.ResolvedBusinessDomains)...), domainIDsOf(expanded.ResolvedTechnicalDomains)...)
	prefSeniority, prefSeniorityStrength := effectivePreferredSeniority(req, inferenceResult)
	prefConfidenceBonus, prefConfidenceThreshold := effectivePreferredConfidenceBonus(inferenceResult)

	out := make([]types.ScoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		breakdown := &types.ScoreBreakdown{Components: make(map[string]types.ScoreComponent)}

		addComponent(breakdown, "skill_match", cfg.SkillMatchWeight, requiredSkillMatch(c, expanded.SkillProficiency))
		addComponent(breakdown, "preferred_skill", cfg.PreferredSkillWeight, ratio(float64(matchedSkillCount(c, preferredSkillIDs)), float64(len(preferredSkillIDs)), 1.0))
		addComponent(breakdown, "seniority", cfg.SeniorityWeight, seniorityCredit(c, prefSeniority, prefSeniorityStrength))
		addComponent(breakdown, "timeline", cfg.TimelineWeight, categoricalStep(string(c.StartTimeline)))
		addComponent(breakdown, "timezone", cfg.TimezoneWeight, timezoneCredit(c, req.PreferredTimezone))
		addComponent(breakdown, "salary", cfg.SalaryWeight, salaryCredit(c, expanded, cfg))
		addComponent(breakdown, "years_experience", cfg.YearsExperienceWeight, logarithmic(c.YearsExperience, cfg.YearsCap))
		addComponent(breakdown, "domain", cfg.DomainWeight, ratio(float64(matchedDomainCount(c, domainIDs)), float64(len(domainIDs)), 1.0))
		addComponent(breakdown, "confidence", cfg.ConfidenceWeight, confidenceCredit(c, cfg, prefConfidenceBonus, prefConfidenceThreshold))

		breakdown.MatchedRequiredSkills = matchedSkillIDs(c, expanded.SkillProficiency.AllIDs())
		breakdown.MatchedPreferredSkills = matchedSkillIDs(c, preferredSkillIDs)
		breakdown.MatchedDomains = matchedDomainIDs(c, domainIDs)

		score := 0.0
		for _, comp := range breakdown.Components {
			score += comp.Weighted
		}

		out = append(out, types.ScoredCandidate{Candidate: *c, Score: score, ScoreBreakdown: breakdown})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].ID < out[j].ID
	})

	return out
}

// addComponent records a component only when its raw value is non-zero.
func addComponent(b *types.ScoreBreakdown, name string, weight, raw float64) {
	if raw == 0 {
		return
	}
	b.Components[name] = types.ScoreComponent{Weight: weight, Raw: raw, Weighted: weight * raw}
}

// requiredSkillMatch is the mean of per-skill graduated proficiency
// credit over the full required-skill set (missing = 0).
func requiredSkillMatch(c *types.Candidate, buckets types.SkillProficiencyBuckets) float64 {
	total := 0.0
	count := 0
	score := func(skillID string, requiredIndex int) {
		count++
		actual := actualProficiencyIndex(c, skillID)
		total += proficiencyCredit(actual, requiredIndex)
	}
	for _, id := range buckets.Learning {
		score(id, types.ProficiencyLearning.Index())
	}
	for _, id := range buckets.Proficient {
		score(id, types.ProficiencyProficient.Index())
	}
	for _, id := range buckets.Expert {
		score(id, types.ProficiencyExpert.Index())
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

func actualProficiencyIndex(c *types.Candidate, skillID string) int {
	for _, s := range c.Skills {
		if s.SkillID == skillID {
			return s.Proficiency.Index()
		}
	}
	return -1
}

func matchedSkillCount(c *types.Candidate, skillIDs []string) int {
	n := 0
	for _, id := range skillIDs {
		if c.HasSkillAtLeast(id, "") {
			n++
		}
	}
	return n
}

func matchedSkillIDs(c *types.Candidate, skillIDs []string) []string {
	var out []string
	for _, id := range skillIDs {
		if c.HasSkillAtLeast(id, "") {
			out = append(out, id)
		}
	}
	return out
}

func preferredSkillIDsOf(expanded types.ExpandedCriteria) []string {
	seen := make(map[string]bool)
	var out []string
	for _, pref := range expanded.AppliedPreferences {
		if pref.Field != "preferred_skills" {
			continue
		}
		ids, _ := pref.Value.([]string)
		for _, id := range ids {
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
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

func matchedDomainCount(c *types.Candidate, domainIDs []string) int {
	return len(matchedDomainIDs(c, domainIDs))
}

func matchedDomainIDs(c *types.Candidate, domainIDs []string) []string {
	has := make(map[string]bool)
	for _, d := range c.BusinessDomains {
		has[d.DomainID] = true
	}
	for _, d := range c.TechnicalDomains {
		has[d.DomainID] = true
	}
	var out []string
	for _, id := range domainIDs {
		if has[id] {
			out = append(out, id)
		}
	}
	return out
}

// effectivePreferredSeniority resolves the seniority the preferred-
// seniority component credits against: a user-set preference always gets
// full (strength 1.0) credit; an inference-derived boost (e.g.
// scaling-prefers-senior) contributes only at its own boost_strength,
// since the user never asked for it directly.
func effectivePreferredSeniority(req types.Request, inferenceResult inference.Result) (types.SeniorityLevel, float64) {
	if req.PreferredSeniorityLevel != "" {
		return req.PreferredSeniorityLevel, 1.0
	}
	for _, dc := range inferenceResult.DerivedConstraints {
		if dc.Suppressed() || dc.Action.TargetField != "preferredSeniorityLevel" || dc.Action.Kind != types.EffectBoost {
			continue
		}
		if level, ok := dc.Action.TargetValue.(string); ok {
			return types.SeniorityLevel(level), dc.Action.BoostStrength
		}
	}
	return "", 0
}

func seniorityCredit(c *types.Candidate, level types.SeniorityLevel, strength float64) float64 {
	if level == "" || strength == 0 {
		return 0
	}
	return binaryStep(c.Seniority.Index() >= level.Index(), strength)
}

// effectivePreferredConfidenceBonus mirrors effectivePreferredSeniority for
// the preferredConfidenceScore boost target:
// principal-prefers-high-confidence sets a target threshold and a
// boost_strength bonus credited when a candidate's mean skill confidence
// clears it.
func effectivePreferredConfidenceBonus(inferenceResult inference.Result) (bonus, threshold float64) {
	for _, dc := range inferenceResult.DerivedConstraints {
		if dc.Suppressed() || dc.Action.TargetField != "preferredConfidenceScore" || dc.Action.Kind != types.EffectBoost {
			continue
		}
		if t, ok := dc.Action.TargetValue.(float64); ok {
			return dc.Action.BoostStrength, t
		}
	}
	return 0, 0
}

func confidenceCredit(c *types.Candidate, cfg config.RankerConfig, bonus, threshold float64) float64 {
	mean := meanConfidence(c)
	raw := linear(mean, cfg.ConfidenceMin, cfg.ConfidenceMax)
	if bonus > 0 && mean >= threshold {
		raw = clamp01(raw + bonus)
	}
	return raw
}

func meanConfidence(c *types.Candidate) float64 {
	if len(c.Skills) == 0 {
		return 0
	}
	total := 0.0
	for _, s := range c.Skills {
		total += s.Confidence
	}
	return total / float64(len(c.Skills))
}

func timezoneCredit(c *types.Candidate, preferred []types.Timezone) float64 {
	for i, z := range preferred {
		if z == c.Timezone {
			return positionBased(i, len(preferred), 1.0)
		}
	}
	return 0
}

// salaryCredit uses the stretch-zone budget decay when the request names
// a max_budget; otherwise falls back to the plain inverse-linear shape
// over the configured salary range.
func salaryCredit(c *types.Candidate, expanded types.ExpandedCriteria, cfg config.RankerConfig) float64 {
	if expanded.MaxBudget != nil {
		stretch := float64(*expanded.MaxBudget)
		if expanded.StretchBudget != nil {
			stretch = float64(*expanded.StretchBudget)
		}
		return budgetCredit(float64(c.Salary), float64(*expanded.MaxBudget), stretch)
	}
	return inverseLinear(float64(c.Salary), cfg.SalaryMin, cfg.SalaryMax)
}
