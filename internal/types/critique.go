package types

// Critique is a single user-facing adjustment applied to a prior request,
// e.g. "more senior" or "add Python". Operation says which handler applies;
// the handler inspects Value/Direction/Item depending on Operation.
type Critique struct {
	Property  CritiqueProperty  `json:"property"`
	Operation CritiqueOperation `json:"operation"`

	Value     interface{}     `json:"value,omitempty"`
	Direction AdjustDirection `json:"direction,omitempty"`
	Item      string          `json:"item,omitempty"`
}

// AppliedCritique records a critique that was successfully applied, plus
// any non-fatal warning (e.g. "skill already present").
type AppliedCritique struct {
	Critique Critique `json:"critique"`
	Warning  string   `json:"warning,omitempty"`
}

// FailedCritique records a critique that could not be applied, and why.
type FailedCritique struct {
	Critique Critique `json:"critique"`
	Reason   string   `json:"reason"`
}

// CritiqueResult is the interpreter's output: the modified request plus
// the applied/failed breakdown.
type CritiqueResult struct {
	Request Request           `json:"request"`
	Applied []AppliedCritique `json:"applied"`
	Failed  []FailedCritique  `json:"failed"`
}

// DynamicCritiqueSuggestion is one candidate adjustment the miner proposes,
// ranked by ascending support (non-obvious patterns first).
type DynamicCritiqueSuggestion struct {
	Critique    Critique `json:"critique"`
	Description string   `json:"description"`
	Support     float64  `json:"support"`
	Compound    bool     `json:"compound"`
}
