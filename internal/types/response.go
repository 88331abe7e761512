package types

// ConstraintStats carries the per-constraint database statistics the
// advisor computes to back its explanations: how many engineers match the
// constraint alone, plus a type-specific enrichment breakdown.
type ConstraintStats struct {
	ConstraintID    string             `json:"constraint_id"`
	CountMatching   int                `json:"count_matching"`
	Type            string             `json:"type"` // "skill" | "salary" | "years" | "timezone" | "timeline" | "other"
	Enrichment      map[string]interface{} `json:"enrichment,omitempty"`
}

// ConflictSet is one minimal conflict set (MCS) found by QuickXPlain: a
// minimal subset of constraints whose joint application alone drives the
// result count below the sparse threshold.
type ConflictSet struct {
	Constraints []TestableConstraint `json:"constraints"`
	Stats       []ConstraintStats    `json:"stats"`
}

// RelaxationSuggestion proposes widening, dropping, or overriding one
// constraint, with the count that relaxation is projected to yield.
type RelaxationSuggestion struct {
	ConstraintID string      `json:"constraint_id"`
	Description  string      `json:"description"`
	NewValue     interface{} `json:"new_value,omitempty"`
	NewCount     int         `json:"new_count"`
}

// ConflictAnalysis bundles the MCSes found with the baseline count.
type ConflictAnalysis struct {
	ConflictSets       []ConflictSet `json:"conflict_sets"`
	CountMatchingAll   int           `json:"count_matching_all"`
}

// Relaxation is the advisor's output when results are too sparse.
type Relaxation struct {
	ConflictAnalysis ConflictAnalysis       `json:"conflict_analysis"`
	Suggestions      []RelaxationSuggestion `json:"suggestions"`
}

// TighteningSuggestion proposes a constraint to add when results are too
// plentiful, with the support fraction of the current result page that
// would still pass it.
type TighteningSuggestion struct {
	Critique    Critique `json:"critique"`
	Description string   `json:"description"`
	Support     float64  `json:"support"`
}

// Tightening is the advisor's output when results are too plentiful.
type Tightening struct {
	Suggestions []TighteningSuggestion `json:"suggestions"`
}

// QueryMetadata reports execution facts about how the response was produced.
type QueryMetadata struct {
	RequestID                  string   `json:"request_id"`
	ExecutionTimeMs            int64    `json:"execution_time_ms"`
	CandidatesBeforeDiversity  *int     `json:"candidates_before_diversity,omitempty"`
	DefaultsApplied            []string `json:"defaults_applied,omitempty"`
	Warnings                   []string `json:"warnings,omitempty"`
}

// Response is the top-level pipeline output.
type Response struct {
	Matches []ScoredCandidate `json:"matches"`

	TotalCount int `json:"total_count"`

	AppliedFilters     []AppliedFilter      `json:"applied_filters"`
	AppliedPreferences []AppliedPreference  `json:"applied_preferences"`
	DerivedConstraints []DerivedConstraint  `json:"derived_constraints"`

	Relaxation          *Relaxation                 `json:"relaxation,omitempty"`
	Tightening          *Tightening                 `json:"tightening,omitempty"`
	SuggestedCritiques  []DynamicCritiqueSuggestion `json:"suggested_critiques,omitempty"`

	QueryMetadata QueryMetadata `json:"query_metadata"`
}
