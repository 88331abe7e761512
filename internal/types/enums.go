// Package types defines the core data structures for the engineer-fit
// recommender: requests, expanded criteria, derived constraints, candidates,
// and the graph snapshots the similarity scorer and planner traverse.
package types

// SeniorityLevel is a closed enumeration of engineering seniority tiers.
type SeniorityLevel string

const (
	SeniorityJunior    SeniorityLevel = "junior"
	SeniorityMid       SeniorityLevel = "mid"
	SeniorityStaff     SeniorityLevel = "staff"
	SeniorityPrincipal SeniorityLevel = "principal"
	SenioritySenior    SeniorityLevel = "senior"
)

var seniorityOrder = []SeniorityLevel{
	SeniorityJunior, SeniorityMid, SenioritySenior, SeniorityStaff, SeniorityPrincipal,
}

// Valid reports whether s is one of the recognized seniority levels.
func (s SeniorityLevel) Valid() bool {
	for _, v := range seniorityOrder {
		if v == s {
			return true
		}
	}
	return false
}

// Index returns the position of s in seniorityOrder, or -1 if unrecognized.
func (s SeniorityLevel) Index() int {
	for i, v := range seniorityOrder {
		if v == s {
			return i
		}
	}
	return -1
}

// Adjust shifts s by delta steps along seniorityOrder, clamped to the ends.
func (s SeniorityLevel) Adjust(delta int) SeniorityLevel {
	idx := s.Index()
	if idx < 0 {
		return s
	}
	idx += delta
	if idx < 0 {
		idx = 0
	}
	if idx >= len(seniorityOrder) {
		idx = len(seniorityOrder) - 1
	}
	return seniorityOrder[idx]
}

// StartTimeline is the ordered enum of how soon an engineer can start.
type StartTimeline string

const (
	TimelineImmediate   StartTimeline = "immediate"
	TimelineTwoWeeks    StartTimeline = "two_weeks"
	TimelineOneMonth    StartTimeline = "one_month"
	TimelineThreeMonths StartTimeline = "three_months"
	TimelineSixMonths   StartTimeline = "six_months"
	TimelineOneYear     StartTimeline = "one_year"
)

var timelineOrder = []StartTimeline{
	TimelineImmediate, TimelineTwoWeeks, TimelineOneMonth,
	TimelineThreeMonths, TimelineSixMonths, TimelineOneYear,
}

// Valid reports whether t is a recognized timeline value.
func (t StartTimeline) Valid() bool {
	return t.Index() >= 0
}

// Index returns t's position in the fastest-to-slowest ordering.
func (t StartTimeline) Index() int {
	for i, v := range timelineOrder {
		if v == t {
			return i
		}
	}
	return -1
}

// Adjust shifts t by delta steps, clamped to the ends of timelineOrder.
func (t StartTimeline) Adjust(delta int) StartTimeline {
	idx := t.Index()
	if idx < 0 {
		return t
	}
	idx += delta
	if idx < 0 {
		idx = 0
	}
	if idx >= len(timelineOrder) {
		idx = len(timelineOrder) - 1
	}
	return timelineOrder[idx]
}

// TimelinesAtOrFaster returns every timeline whose index is <= t's.
func TimelinesAtOrFaster(t StartTimeline) []StartTimeline {
	idx := t.Index()
	if idx < 0 {
		return nil
	}
	out := make([]StartTimeline, 0, idx+1)
	out = append(out, timelineOrder[:idx+1]...)
	return out
}

// Timezone is one of the four US zones the system reasons about.
type Timezone string

const (
	TimezoneEastern  Timezone = "Eastern"
	TimezoneCentral  Timezone = "Central"
	TimezoneMountain Timezone = "Mountain"
	TimezonePacific  Timezone = "Pacific"
)

var timezoneRank = []Timezone{TimezoneEastern, TimezoneCentral, TimezoneMountain, TimezonePacific}

// Valid reports whether z is one of the four recognized US zones.
func (z Timezone) Valid() bool {
	for _, v := range timezoneRank {
		if v == z {
			return true
		}
	}
	return false
}

// Proficiency is the closed ordering learning < proficient < expert.
type Proficiency string

const (
	ProficiencyLearning   Proficiency = "learning"
	ProficiencyProficient Proficiency = "proficient"
	ProficiencyExpert     Proficiency = "expert"
)

var proficiencyOrder = []Proficiency{ProficiencyLearning, ProficiencyProficient, ProficiencyExpert}

// Valid reports whether p is a recognized proficiency tier.
func (p Proficiency) Valid() bool {
	return p.Index() >= 0
}

// Index returns p's rank (learning=0, proficient=1, expert=2), or -1.
func (p Proficiency) Index() int {
	for i, v := range proficiencyOrder {
		if v == p {
			return i
		}
	}
	return -1
}

// Stricter returns whichever of a, b ranks higher (expert > proficient > learning).
// Unrecognized values lose to recognized ones.
func Stricter(a, b Proficiency) Proficiency {
	if a.Index() >= b.Index() {
		return a
	}
	return b
}

// TeamFocus is the team's current engineering posture.
type TeamFocus string

const (
	FocusGreenfield  TeamFocus = "greenfield"
	FocusMigration   TeamFocus = "migration"
	FocusMaintenance TeamFocus = "maintenance"
	FocusScaling     TeamFocus = "scaling"
)

// Valid reports whether f is a recognized team focus.
func (f TeamFocus) Valid() bool {
	switch f {
	case FocusGreenfield, FocusMigration, FocusMaintenance, FocusScaling:
		return true
	}
	return false
}

// MatchType classifies how a candidate's skill relates to what was requested.
type MatchType string

const (
	MatchDirect     MatchType = "direct"
	MatchDescendant MatchType = "descendant"
	MatchCorrelated MatchType = "correlated"
	MatchNone       MatchType = "none"
)

// OverrideScope is how much of a derived constraint an override neutralizes.
type OverrideScope string

const (
	OverrideFull    OverrideScope = "FULL"
	OverridePartial OverrideScope = "PARTIAL"
)

// OverrideReason names why a derived constraint was overridden.
type OverrideReason string

const (
	ReasonExplicitRule  OverrideReason = "explicit-rule-override"
	ReasonImplicitField OverrideReason = "implicit-field-override"
	ReasonImplicitSkill OverrideReason = "implicit-skill-override"
)

// EffectKind is the action a fired rule contributes to the fact base.
type EffectKind string

const (
	EffectFilter EffectKind = "filter"
	EffectBoost  EffectKind = "boost"
)

// FilterSource records whether an applied filter came from the user directly
// or was derived by a rule.
type FilterSource string

const (
	SourceUser FilterSource = "user"
)

// DerivedSource builds the "derived-rule:<id>" source tag for a rule id.
func DerivedSource(ruleID string) FilterSource {
	return FilterSource("derived-rule:" + ruleID)
}

// CritiqueProperty enumerates the fields a critique can target.
type CritiqueProperty string

const (
	PropertySeniority        CritiqueProperty = "seniority"
	PropertyBudget           CritiqueProperty = "budget"
	PropertyTimeline         CritiqueProperty = "timeline"
	PropertyTimezone         CritiqueProperty = "timezone"
	PropertySkills           CritiqueProperty = "skills"
	PropertyBusinessDomains  CritiqueProperty = "business_domains"
	PropertyTechnicalDomains CritiqueProperty = "technical_domains"
)

// CritiqueOperation enumerates the kinds of adjustment a critique can apply.
type CritiqueOperation string

const (
	OperationSet    CritiqueOperation = "set"
	OperationAdjust CritiqueOperation = "adjust"
	OperationAdd    CritiqueOperation = "add"
	OperationRemove CritiqueOperation = "remove"
)

// AdjustDirection is the direction of an "adjust" critique.
type AdjustDirection string

const (
	DirectionMore    AdjustDirection = "more"
	DirectionLess    AdjustDirection = "less"
	DirectionSooner  AdjustDirection = "sooner"
	DirectionLater   AdjustDirection = "later"
	DirectionNarrower AdjustDirection = "narrower"
	DirectionWider   AdjustDirection = "wider"
)

// PropertyOp is the comparison operator a Property TestableConstraint tests.
type PropertyOp string

const (
	OpIn         PropertyOp = "IN"
	OpGTE        PropertyOp = "GTE"
	OpLTE        PropertyOp = "LTE"
	OpStartsWith PropertyOp = "STARTS_WITH"
	OpEqual      PropertyOp = "EQUAL"
)

// ConstraintOrigin distinguishes user-supplied skill traversals from
// inference-derived ones for TestableConstraint.SkillTraversal.
type ConstraintOrigin string

const (
	OriginUser    ConstraintOrigin = "user"
	OriginDerived ConstraintOrigin = "derived"
)
