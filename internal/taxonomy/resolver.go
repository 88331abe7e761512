// Package taxonomy resolves free-text skill, domain, and company
// identifiers to canonical graph ids and expands a canonical id to its
// transitive hierarchy set.
//
// Resolution is a three-tier lookup: exact match, graph-backed synonym
// lookup, then Levenshtein fuzzy match. Hierarchy expansion walks
// CHILD_OF (skills, business domains) and ENCOMPASSES (composite
// technical domains) edges.
package taxonomy

import (
	"context"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/talentgraph/recommender/internal/graphstore"
	"github.com/talentgraph/recommender/internal/types"
)

// Method names how an identifier was resolved.
type Method string

const (
	MethodExact      Method = "exact"
	MethodSynonym    Method = "synonym"
	MethodFuzzy      Method = "fuzzy"
	MethodUnresolved Method = "unresolved"
)

// minFuzzyRatio is the similarity floor below which a fuzzy candidate is
// reported unresolved rather than guessed at.
const minFuzzyRatio = 0.8

// Resolved is one successfully resolved identifier.
type Resolved struct {
	Input      string
	CanonicalID string
	Method     Method
	Confidence float64
}

// Unresolved is one identifier none of the three tiers could place.
type Unresolved struct {
	Input string
}

// BatchResult is the outcome of resolving a batch of identifiers.
type BatchResult struct {
	Resolved   []Resolved
	Unresolved []Unresolved
}

// Resolver resolves identifiers against a known-skills catalogue plus the
// GraphStore's synonym table.
type Resolver struct {
	store graphstore.Store
	// known holds the exact-match universe (skill/domain ids and their
	// display names, lowercased) used by both the exact and fuzzy tiers.
	known map[string]string // lowercased name/id -> canonical id
}

// New creates a Resolver backed by store, with known pre-seeded as the
// exact/fuzzy match universe (skill or domain ids mapped to themselves,
// plus any display-name aliases the caller wants the fuzzy tier to see).
func New(store graphstore.Store, known map[string]string) *Resolver {
	normalized := make(map[string]string, len(known))
	for k, v := range known {
		normalized[strings.ToLower(k)] = v
	}
	return &Resolver{store: store, known: normalized}
}

// Resolve resolves a batch of raw identifiers deterministically for the
// Resolver's graph snapshot: exact match first, then a GraphStore synonym
// lookup for each identifier still unresolved (one call per identifier),
// then a fuzzy pass over the remainder.
func (r *Resolver) Resolve(ctx context.Context, identifiers []string) (BatchResult, error) {
	var result BatchResult
	var pendingSynonym []string

	for _, raw := range identifiers {
		if canonical, ok := r.known[strings.ToLower(raw)]; ok {
			result.Resolved = append(result.Resolved, Resolved{
				Input: raw, CanonicalID: canonical, Method: MethodExact, Confidence: 1.0,
			})
			continue
		}
		pendingSynonym = append(pendingSynonym, raw)
	}

	var stillUnresolved []string
	for _, raw := range pendingSynonym {
		canonical, err := r.store.ResolveSkillSynonym(ctx, strings.ToLower(raw))
		if err == graphstore.ErrNotFound {
			stillUnresolved = append(stillUnresolved, raw)
			continue
		}
		if err != nil {
			return BatchResult{}, err
		}
		result.Resolved = append(result.Resolved, Resolved{
			Input: raw, CanonicalID: canonical, Method: MethodSynonym, Confidence: 0.95,
		})
	}

	for _, raw := range stillUnresolved {
		canonical, ratio, ok := r.fuzzyMatch(raw)
		if !ok {
			result.Unresolved = append(result.Unresolved, Unresolved{Input: raw})
			continue
		}
		result.Resolved = append(result.Resolved, Resolved{
			Input: raw, CanonicalID: canonical, Method: MethodFuzzy, Confidence: ratio,
		})
	}

	return result, nil
}

// fuzzyMatch finds the known entry with the highest Levenshtein similarity
// ratio to raw, returning it only if the ratio clears minFuzzyRatio.
func (r *Resolver) fuzzyMatch(raw string) (canonical string, ratio float64, ok bool) {
	lowered := strings.ToLower(raw)
	bestRatio := 0.0
	var bestCanonical string

	for name, id := range r.known {
		dist := levenshtein.ComputeDistance(lowered, name)
		maxLen := len(lowered)
		if len(name) > maxLen {
			maxLen = len(name)
		}
		if maxLen == 0 {
			continue
		}
		candidateRatio := 1.0 - float64(dist)/float64(maxLen)
		if candidateRatio > bestRatio {
			bestRatio = candidateRatio
			bestCanonical = id
		}
	}

	if bestRatio < minFuzzyRatio {
		return "", 0, false
	}
	return bestCanonical, bestRatio, true
}

// ExpandHierarchy returns the transitive set of leaf skill ids under
// canonicalSkillID, including the id itself, expanding CHILD_OF edges via
// the GraphStore.
func (r *Resolver) ExpandHierarchy(ctx context.Context, canonicalSkillID string) ([]string, error) {
	seen := map[string]bool{canonicalSkillID: true}
	frontier := []string{canonicalSkillID}
	leaves := []string{canonicalSkillID}

	for len(frontier) > 0 {
		next := frontier[0]
		frontier = frontier[1:]

		children, err := r.store.SkillHierarchyChildren(ctx, next)
		if err != nil {
			return nil, err
		}
		for _, child := range children {
			if seen[child] {
				continue
			}
			seen[child] = true
			leaves = append(leaves, child)
			frontier = append(frontier, child)
		}
	}

	return leaves, nil
}

// ExpandWithProficiency expands identifier's hierarchy and applies
// proficiency to every descendant; when a descendant is reached through
// multiple expansions, the caller should merge with types.Stricter to
// keep the stricter requirement.
func (r *Resolver) ExpandWithProficiency(ctx context.Context, canonicalSkillID string, proficiency types.Proficiency) (map[string]types.Proficiency, error) {
	ids, err := r.ExpandHierarchy(ctx, canonicalSkillID)
	if err != nil {
		return nil, err
	}
	out := make(map[string]types.Proficiency, len(ids))
	for _, id := range ids {
		out[id] = proficiency
	}
	return out, nil
}
