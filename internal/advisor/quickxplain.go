package advisor

import "github.com/talentgraph/recommender/internal/types"

// insufficient reports whether constraints, taken together, leave fewer
// matching engineers than threshold. This is the oracle QuickXPlain probes
// at every recursion step.
func insufficient(tester *Tester, constraints []types.TestableConstraint, threshold int) bool {
	return tester.Count(constraints) < threshold
}

// quickXplain finds one minimal conflict set within c, given background b
// that is assumed always applied. Standard QuickXPlain (Junker 2004): if c
// is empty or b alone is already insufficient, nothing in c is implicated;
// a singleton c is trivially minimal; otherwise split c in half and
// recurse, using each half's result as additional background for the
// other so the two halves' interaction is not missed.
func quickXplain(tester *Tester, b, c []types.TestableConstraint, threshold int) []types.TestableConstraint {
	if len(c) == 0 || insufficient(tester, b, threshold) {
		return nil
	}
	if len(c) == 1 {
		return append([]types.TestableConstraint(nil), c...)
	}

	mid := len(c) / 2
	c1, c2 := c[:mid], c[mid:]

	d1 := quickXplain(tester, union(b, c1), c2, threshold)
	d2 := quickXplain(tester, union(b, d1), c1, threshold)
	return union(d1, d2)
}

func union(a, b []types.TestableConstraint) []types.TestableConstraint {
	out := make([]types.TestableConstraint, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return out
}

// FindConflictSets finds up to maxSets minimal conflict sets within all:
// run QuickXPlain once, then re-run with the found set's last member
// permanently removed from the constraints under consideration (it is
// not applied at all in later searches) so the next search must explain
// the shortfall a different way.
func FindConflictSets(tester *Tester, all []types.TestableConstraint, threshold, maxSets int) []types.ConflictSet {
	if !insufficient(tester, all, threshold) {
		return nil
	}

	excluded := make(map[string]bool)
	var sets []types.ConflictSet
	for len(sets) < maxSets {
		active := withoutExcluded(all, excluded)
		if len(active) == 0 || !insufficient(tester, active, threshold) {
			break
		}
		mcs := quickXplain(tester, nil, active, threshold)
		if len(mcs) == 0 {
			break
		}
		sets = append(sets, types.ConflictSet{Constraints: mcs, Stats: statsFor(tester, mcs)})
		excluded[mcs[len(mcs)-1].ID] = true
	}
	return sets
}

func withoutExcluded(all []types.TestableConstraint, excluded map[string]bool) []types.TestableConstraint {
	var out []types.TestableConstraint
	for _, c := range all {
		if !excluded[c.ID] {
			out = append(out, c)
		}
	}
	return out
}
