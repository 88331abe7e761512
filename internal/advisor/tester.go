package advisor

import (
	"context"

	"github.com/talentgraph/recommender/internal/graphstore"
	"github.com/talentgraph/recommender/internal/types"
)

// Tester answers "how many engineers satisfy this subset of constraints"
// against a single candidate universe fetched once up front. Re-fetching
// the graph per subset (the QuickXPlain recursion and the pattern miner
// both probe dozens of subsets per request) would multiply GraphStore
// round trips far past what a deadline-bound request can afford, so the
// advisor evaluates every constraint as an in-memory predicate over one
// broad pull instead of pushing each subset down as its own query.
type Tester struct {
	universe []*types.Candidate
}

// NewTester fetches the full unconstrained candidate pool once.
func NewTester(ctx context.Context, store graphstore.Store) (*Tester, error) {
	universe, err := store.CandidatesMatching(ctx, graphstore.QueryPlan{})
	if err != nil {
		return nil, err
	}
	return &Tester{universe: universe}, nil
}

// NewTesterFromUniverse builds a Tester directly from an already-fetched
// pool, for callers (and tests) that already hold one.
func NewTesterFromUniverse(universe []*types.Candidate) *Tester {
	return &Tester{universe: universe}
}

// Count returns how many engineers in the universe satisfy every
// constraint in the set (conjunctively).
func (t *Tester) Count(constraints []types.TestableConstraint) int {
	n := 0
	for _, c := range t.universe {
		if satisfiesAll(c, constraints) {
			n++
		}
	}
	return n
}

// Universe exposes the fetched candidate pool read-only, for callers that
// need the raw population (e.g. tightening's salary-percentile generator).
func (t *Tester) Universe() []*types.Candidate {
	return t.universe
}

func satisfiesAll(c *types.Candidate, constraints []types.TestableConstraint) bool {
	for _, tc := range constraints {
		if !satisfies(c, tc) {
			return false
		}
	}
	return true
}

func satisfies(c *types.Candidate, tc types.TestableConstraint) bool {
	switch tc.Tag {
	case types.TagSkillTraversal:
		return satisfiesSkillTraversal(c, tc.SkillTraversal)
	case types.TagProperty:
		return satisfiesProperty(c, tc.Property)
	default:
		return true
	}
}

// satisfiesSkillTraversal is an OR across SkillIDs: the set represents
// alternative ids a single requirement expands to (a taxonomy parent's
// children, or everything one inference rule contributed), any one of
// which qualifies the candidate.
func satisfiesSkillTraversal(c *types.Candidate, st *types.SkillTraversalConstraint) bool {
	if st == nil {
		return true
	}
	for _, id := range st.SkillIDs {
		if c.HasSkillAtLeast(id, st.MinProficiency) {
			return true
		}
	}
	return false
}

func satisfiesProperty(c *types.Candidate, p *types.PropertyConstraint) bool {
	if p == nil {
		return true
	}
	switch p.Field {
	case "years_experience":
		v, ok := toFloat(p.Value)
		if !ok {
			return true
		}
		return compareFloat(p.Op, c.YearsExperience, v)
	case "salary":
		v, ok := toFloat(p.Value)
		if !ok {
			return true
		}
		return compareFloat(p.Op, float64(c.Salary), v)
	case "seniority":
		v, ok := toFloat(p.Value)
		if !ok {
			return true
		}
		return compareFloat(p.Op, float64(c.Seniority.Index()), v)
	case "timezone":
		return containsTimezone(valueTimezones(p.Value), c.Timezone)
	case "start_timeline":
		return containsTimeline(valueTimelines(p.Value), c.StartTimeline)
	case "business_domains":
		return anyDomainMatches(c.BusinessDomains, valueStrings(p.Value))
	case "technical_domains":
		return anyDomainMatches(c.TechnicalDomains, valueStrings(p.Value))
	default:
		return true
	}
}

func compareFloat(op types.PropertyOp, actual, want float64) bool {
	switch op {
	case types.OpGTE:
		return actual >= want
	case types.OpLTE:
		return actual <= want
	case types.OpEqual:
		return actual == want
	default:
		return true
	}
}

func anyDomainMatches(domains []types.DomainExperience, ids []string) bool {
	for _, d := range domains {
		for _, id := range ids {
			if d.DomainID == id {
				return true
			}
		}
	}
	return false
}

func containsTimezone(zones []types.Timezone, z types.Timezone) bool {
	for _, zone := range zones {
		if zone == z {
			return true
		}
	}
	return false
}

func containsTimeline(timelines []types.StartTimeline, tl types.StartTimeline) bool {
	for _, t := range timelines {
		if t == tl {
			return true
		}
	}
	return false
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func valueTimezones(v interface{}) []types.Timezone {
	switch zs := v.(type) {
	case []types.Timezone:
		return zs
	case []string:
		out := make([]types.Timezone, len(zs))
		for i, s := range zs {
			out[i] = types.Timezone(s)
		}
		return out
	default:
		return nil
	}
}

func valueTimelines(v interface{}) []types.StartTimeline {
	switch ts := v.(type) {
	case []types.StartTimeline:
		return ts
	case []string:
		out := make([]types.StartTimeline, len(ts))
		for i, s := range ts {
			out[i] = types.StartTimeline(s)
		}
		return out
	default:
		return nil
	}
}

func valueStrings(v interface{}) []string {
	switch s := v.(type) {
	case []string:
		return s
	default:
		return nil
	}
}
