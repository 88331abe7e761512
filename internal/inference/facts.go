package inference

import (
	"strings"

	"github.com/talentgraph/recommender/internal/types"
)

// Facts is the mutable fact base the fixed-point loop evaluates rules
// against and writes derived effects into: two named-field maps plus
// one mutable set.
type Facts struct {
	Request             map[string]any
	RequiredProperties  map[string]any
	PreferredProperties map[string]any
	AllSkills           map[string]bool
}

// NewFacts seeds a Facts value from the raw request and the expander's
// output: $.request.* mirrors request fields the rule catalogue reads;
// $.derived.allSkills starts as the expanded required skill ids (all three
// proficiency buckets); preferred skills are not included.
func NewFacts(req types.Request, expanded types.ExpandedCriteria) *Facts {
	f := &Facts{
		Request:             make(map[string]any),
		RequiredProperties:  make(map[string]any),
		PreferredProperties: make(map[string]any),
		AllSkills:           make(map[string]bool),
	}

	f.Request["required_seniority_level"] = string(req.RequiredSeniorityLevel)
	f.Request["preferred_seniority_level"] = string(req.PreferredSeniorityLevel)
	f.Request["required_max_start_time"] = string(req.RequiredMaxStartTime)
	f.Request["preferred_max_start_time"] = string(req.PreferredMaxStartTime)
	f.Request["team_focus"] = string(req.TeamFocus)

	for _, id := range expanded.SkillProficiency.AllIDs() {
		f.AllSkills[id] = true
	}

	return f
}

// Resolve looks up a scalar fact path. The second return is false if the
// path is unknown or names a set-valued fact (use ResolveSet for those).
func (f *Facts) Resolve(path string) (any, bool) {
	switch {
	case strings.HasPrefix(path, "$.request."):
		v, ok := f.Request[strings.TrimPrefix(path, "$.request.")]
		return v, ok
	case strings.HasPrefix(path, "$.derived.requiredProperties."):
		v, ok := f.RequiredProperties[strings.TrimPrefix(path, "$.derived.requiredProperties.")]
		return v, ok
	case strings.HasPrefix(path, "$.derived.preferredProperties."):
		v, ok := f.PreferredProperties[strings.TrimPrefix(path, "$.derived.preferredProperties.")]
		return v, ok
	default:
		return nil, false
	}
}

// ResolveSet looks up a set-valued fact path ($.derived.allSkills).
func (f *Facts) ResolveSet(path string) (map[string]bool, bool) {
	if path == "$.derived.allSkills" {
		return f.AllSkills, true
	}
	return nil, false
}

// ApplyFilter merges a filter effect's target value into RequiredProperties
// (and AllSkills, when the target field is derivedSkills).
func (f *Facts) ApplyFilter(targetField string, value any) {
	f.mergeInto(f.RequiredProperties, targetField, value)
	if targetField == "derivedSkills" {
		f.addToAllSkills(value)
	}
}

// ApplyBoost merges a boost effect's target value into PreferredProperties
// and tracks strength separately via the caller (the engine owns the
// per-skill boost-strength map since strength is keyed per skill id, not
// per target field).
func (f *Facts) ApplyBoost(targetField string, value any) {
	f.mergeInto(f.PreferredProperties, targetField, value)
	if targetField == "derivedSkills" {
		f.addToAllSkills(value)
	}
}

func (f *Facts) addToAllSkills(value any) {
	switch v := value.(type) {
	case string:
		f.AllSkills[v] = true
	case []string:
		for _, id := range v {
			f.AllSkills[id] = true
		}
	}
}

// mergeInto writes value under key in m: list-valued fields union, scalar
// fields are set only if not already present (first writer wins, matching
// "add to the required/preferred set" semantics for already-set scalars).
func (f *Facts) mergeInto(m map[string]any, key string, value any) {
	switch v := value.(type) {
	case []string:
		existing, _ := m[key].([]string)
		m[key] = unionStrings(existing, v)
	case string:
		if existing, ok := m[key].([]string); ok {
			m[key] = unionStrings(existing, []string{v})
			return
		}
		if _, ok := m[key]; !ok {
			m[key] = v
		}
	default:
		if _, ok := m[key]; !ok {
			m[key] = value
		}
	}
}

func unionStrings(a, b []string) []string {
	seen := make(map[string]bool, len(a))
	out := append([]string(nil), a...)
	for _, s := range a {
		seen[s] = true
	}
	for _, s := range b {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// Snapshot returns a deep-enough copy for fixed-point change detection.
func (f *Facts) Snapshot() Facts {
	return Facts{
		Request:             copyAnyMap(f.Request),
		RequiredProperties:  copyAnyMap(f.RequiredProperties),
		PreferredProperties: copyAnyMap(f.PreferredProperties),
		AllSkills:           copyBoolMap(f.AllSkills),
	}
}

func copyAnyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if list, ok := v.([]string); ok {
			out[k] = append([]string(nil), list...)
			continue
		}
		out[k] = v
	}
	return out
}

func copyBoolMap(m map[string]bool) map[string]bool {
	out := make(map[string]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Equal reports whether two snapshots carry the same derived state
// (RequiredProperties, PreferredProperties, AllSkills); Request never
// changes within a run so it is excluded from the comparison.
func (f Facts) Equal(other Facts) bool {
	return equalAnyMap(f.RequiredProperties, other.RequiredProperties) &&
		equalAnyMap(f.PreferredProperties, other.PreferredProperties) &&
		equalBoolMap(f.AllSkills, other.AllSkills)
}

func equalAnyMap(a, b map[string]any) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		bv, ok := b[k]
		if !ok {
			return false
		}
		if list, ok := v.([]string); ok {
			blist, ok := bv.([]string)
			if !ok || len(list) != len(blist) {
				return false
			}
			for i := range list {
				if list[i] != blist[i] {
					return false
				}
			}
			continue
		}
		if v != bv {
			return false
		}
	}
	return true
}

func equalBoolMap(a, b map[string]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}
