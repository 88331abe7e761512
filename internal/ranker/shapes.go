// Package ranker implements the Utility Ranker: a closed set of named
// utility shapes combined into a weighted-sum score. Every shape below
// is pinned precisely, since the response's score_breakdown is a
// deterministic test fixture for callers.
package ranker

import "math"

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// linear is clamp01((x-min)/(max-min)). Used for confidence.
func linear(x, min, max float64) float64 {
	if max == min {
		return 0
	}
	return clamp01((x - min) / (max - min))
}

// inverseLinear is clamp01((max-x)/(max-min)). Used for salary.
func inverseLinear(x, min, max float64) float64 {
	if max == min {
		return 0
	}
	return clamp01((max - x) / (max - min))
}

// logarithmic is log(1+x)/log(1+cap). Used for years of experience.
func logarithmic(x, cap float64) float64 {
	if cap <= 0 {
		return 0
	}
	return clamp01(math.Log(1+x) / math.Log(1+cap))
}

// exponentialDecay is min(max, (1-e^(-n/scale))*max) with scale=max. Rank
// does not call it: no score component counts related-but-unmatched skills.
func exponentialDecay(n, max float64) float64 {
	if max <= 0 {
		return 0
	}
	v := (1 - math.Exp(-n/max)) * max
	if v > max {
		return max
	}
	return v
}

// ratio is min(matched/requested, cap). Used for preferred-skill and
// domain coverage.
func ratio(matched, requested, cap float64) float64 {
	if requested <= 0 {
		return 0
	}
	v := matched / requested
	if v > cap {
		return cap
	}
	return v
}

// positionBased is (1 - index/length) * max. Used for preferred timezone
// rank.
func positionBased(index, length int, max float64) float64 {
	if length <= 0 {
		return 0
	}
	return (1 - float64(index)/float64(length)) * max
}

// binaryStep returns max if pass else 0. Used for preferred seniority; no
// score component credits a preferred salary range.
func binaryStep(pass bool, max float64) float64 {
	if pass {
		return max
	}
	return 0
}

// timelineSteps is the categorical lookup table for start_timeline credit.
var timelineSteps = map[string]float64{
	"immediate":    1.0,
	"two_weeks":    0.9,
	"one_month":    0.75,
	"three_months": 0.5,
	"six_months":   0.25,
	"one_year":     0.1,
}

// categoricalStep looks up key in timelineSteps, 0 if unrecognized.
func categoricalStep(key string) float64 {
	return timelineSteps[key]
}

// proficiencyCredit is (actualIndex+1)/(requiredIndex+1) clipped to 1.0.
func proficiencyCredit(actualIndex, requiredIndex int) float64 {
	if requiredIndex < 0 {
		requiredIndex = 0
	}
	if actualIndex < 0 {
		return 0
	}
	v := float64(actualIndex+1) / float64(requiredIndex+1)
	if v > 1 {
		return 1
	}
	return v
}

// budgetCredit implements the stretch-zone linear decay: full credit at or
// under maxBudget, decaying from 1.0 to 0.5 across (maxBudget,
// stretchBudget], zero beyond (the hard filter has already excluded those
// rows, so this only ever shapes ranking within the admitted set).
func budgetCredit(salary, maxBudget, stretchBudget float64) float64 {
	if maxBudget <= 0 {
		return 1
	}
	if salary <= maxBudget {
		return 1
	}
	if stretchBudget <= maxBudget || salary > stretchBudget {
		return 0
	}
	span := stretchBudget - maxBudget
	frac := (salary - maxBudget) / span
	return 1 - 0.5*frac
}
