package types

// TestableConstraint is the advisor's tagged-union view of a constraint: a
// scalar Property test or a SkillTraversal test. Exactly one of Property or
// SkillTraversal is populated; Tag says which.
type TestableConstraint struct {
	ID           string       `json:"id"`
	Tag          ConstraintTag `json:"tag"`
	DisplayValue string       `json:"display_value"`
	Source       FilterSource `json:"source"`

	Property       *PropertyConstraint  `json:"property,omitempty"`
	SkillTraversal *SkillTraversalConstraint `json:"skill_traversal,omitempty"`
}

// ConstraintTag says which arm of the TestableConstraint union is populated.
type ConstraintTag string

const (
	TagProperty       ConstraintTag = "Property"
	TagSkillTraversal ConstraintTag = "SkillTraversal"
)

// FieldType names the Go-level type a PropertyConstraint's Value holds, so
// the advisor's statistics code can format/parse it without reflection.
type FieldType string

const (
	FieldTypeString FieldType = "string"
	FieldTypeInt    FieldType = "int"
	FieldTypeFloat  FieldType = "float"
	FieldTypeStringSet FieldType = "string_set"
)

// PropertyConstraint tests a single scalar/set-valued candidate field.
type PropertyConstraint struct {
	Field     string      `json:"field"`
	Op        PropertyOp  `json:"op"`
	Value     interface{} `json:"value"`
	FieldType FieldType   `json:"field_type"`
}

// SkillTraversalConstraint tests whether a candidate qualifies for a set of
// skill ids (expanded from a single user or derived requirement) at a
// minimum proficiency.
type SkillTraversalConstraint struct {
	SkillIDs       []string         `json:"skill_ids"`
	Origin         ConstraintOrigin `json:"origin"`
	MinProficiency Proficiency      `json:"min_proficiency,omitempty"`
}

// DecomposedConstraints is the advisor's decomposition output: the
// individually-testable constraints plus the base Cypher/query clause that
// is always applied regardless of which constraints are being tested.
type DecomposedConstraints struct {
	Constraints     []TestableConstraint `json:"constraints"`
	BaseMatchClause string                `json:"base_match_clause"`
}
