package inference

import "fmt"

// ConditionOp is a leaf condition's comparison operator.
type ConditionOp string

const (
	OpEqual    ConditionOp = "equal"
	OpIn       ConditionOp = "in"
	OpContains ConditionOp = "contains"
)

// CompositionOp combines child conditions.
type CompositionOp string

const (
	CompAll CompositionOp = "all"
	CompAny CompositionOp = "any"
)

// Condition is a small expression tree over named fact paths: a data
// value, never a host-language closure, so rule sets stay serializable.
type Condition struct {
	// Leaf fields. Path is a JSON-pointer-like string such as
	// "$.request.team_focus" or "$.derived.allSkills".
	Path  string        `json:"path,omitempty"`
	Op    ConditionOp   `json:"op,omitempty"`
	Value any           `json:"value,omitempty"`

	// Composite fields.
	Composition CompositionOp `json:"composition,omitempty"`
	Children    []Condition   `json:"children,omitempty"`
}

// Eval evaluates c against facts, returning whether it holds and the set
// of leaf fact paths that contributed to a true result, for provenance
// reconstruction.
func (c Condition) Eval(facts *Facts) (bool, []string) {
	if c.Composition != "" {
		return c.evalComposite(facts)
	}
	return c.evalLeaf(facts)
}

func (c Condition) evalLeaf(facts *Facts) (bool, []string) {
	resolved, ok := facts.Resolve(c.Path)

	switch c.Op {
	case OpEqual:
		if !ok {
			return false, nil
		}
		if fmt.Sprint(resolved) == fmt.Sprint(c.Value) {
			return true, []string{c.Path}
		}
		return false, nil

	case OpIn:
		if !ok {
			return false, nil
		}
		options, _ := c.Value.([]any)
		for _, opt := range options {
			if fmt.Sprint(resolved) == fmt.Sprint(opt) {
				return true, []string{c.Path}
			}
		}
		return false, nil

	case OpContains:
		needle := fmt.Sprint(c.Value)
		if set, isSet := facts.ResolveSet(c.Path); isSet {
			if set[needle] {
				// Value-qualified: $.derived.allSkills aggregates every
				// skill id, so provenance must key on which id was
				// actually tested, not just the path.
				return true, []string{c.Path + "::" + needle}
			}
			return false, nil
		}
		if !ok {
			return false, nil
		}
		if items, isList := resolved.([]string); isList {
			for _, item := range items {
				if item == needle {
					return true, []string{c.Path}
				}
			}
		}
		return false, nil

	default:
		return false, nil
	}
}

func (c Condition) evalComposite(facts *Facts) (bool, []string) {
	var contributing []string

	switch c.Composition {
	case CompAll:
		for _, child := range c.Children {
			ok, paths := child.Eval(facts)
			if !ok {
				return false, nil
			}
			contributing = append(contributing, paths...)
		}
		return true, contributing

	case CompAny:
		matched := false
		for _, child := range c.Children {
			ok, paths := child.Eval(facts)
			if ok {
				matched = true
				contributing = append(contributing, paths...)
			}
		}
		return matched, contributing

	default:
		return false, nil
	}
}
