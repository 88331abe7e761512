package inference

import "github.com/talentgraph/recommender/internal/types"

// Effect is the action a fired rule contributes to the fact base.
type Effect struct {
	Kind          types.EffectKind `json:"kind"`
	TargetField   string           `json:"target_field"`
	TargetValue   any              `json:"target_value"`
	BoostStrength float64          `json:"boost_strength,omitempty"`
}

// Rule is one entry in the read-only rule catalogue: a condition tree and
// the effect it contributes when that condition holds.
type Rule struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Priority  int       `json:"priority"`
	Condition Condition `json:"condition"`
	Effect    Effect    `json:"effect"`
}

// DefaultRules returns the built-in rule catalogue, ordered by descending
// priority. Rule 4 and rule 5 below demonstrate the fixed-point loop's
// rule-chaining requirement: rule 5's condition reads a fact rule 4 writes,
// so rule 5 can only fire on the iteration after rule 4 fires.
func DefaultRules() []Rule {
	return []Rule{
		{
			ID:       "scaling-prefers-senior",
			Name:     "Scaling focus prefers senior engineers",
			Priority: 10,
			Condition: Condition{
				Path: "$.request.team_focus", Op: OpEqual, Value: string(types.FocusScaling),
			},
			Effect: Effect{
				Kind: types.EffectBoost, TargetField: "preferredSeniorityLevel",
				TargetValue: string(types.SenioritySenior), BoostStrength: 0.6,
			},
		},
		{
			ID:       "greenfield-prefers-immediate",
			Name:     "Greenfield focus prefers immediate availability",
			Priority: 9,
			Condition: Condition{
				Path: "$.request.team_focus", Op: OpEqual, Value: string(types.FocusGreenfield),
			},
			Effect: Effect{
				Kind: types.EffectBoost, TargetField: "preferredMaxStartTime",
				TargetValue: string(types.TimelineImmediate), BoostStrength: 0.4,
			},
		},
		{
			ID:       "migration-prefers-expert-proficiency",
			Name:     "Migration focus prefers expert-level proficiency",
			Priority: 9,
			Condition: Condition{
				Path: "$.request.team_focus", Op: OpEqual, Value: string(types.FocusMigration),
			},
			Effect: Effect{
				Kind: types.EffectBoost, TargetField: "preferredProficiency",
				TargetValue: string(types.ProficiencyExpert), BoostStrength: 0.5,
			},
		},
		{
			ID:       "go-implies-concurrency-patterns",
			Name:     "Go skill implies a concurrency-patterns requirement",
			Priority: 8,
			Condition: Condition{
				Path: "$.derived.allSkills", Op: OpContains, Value: "go",
			},
			Effect: Effect{
				Kind: types.EffectFilter, TargetField: "derivedSkills",
				TargetValue: "concurrency-patterns",
			},
		},
		{
			ID:       "concurrency-implies-race-testing",
			Name:     "Concurrency-patterns requirement implies race-condition testing",
			Priority: 7,
			Condition: Condition{
				Path: "$.derived.allSkills", Op: OpContains, Value: "concurrency-patterns",
			},
			Effect: Effect{
				Kind: types.EffectFilter, TargetField: "derivedSkills",
				TargetValue: "race-condition-testing",
			},
		},
		{
			ID:       "principal-prefers-high-confidence",
			Name:     "Principal seniority ask prefers high-confidence matches",
			Priority: 6,
			Condition: Condition{
				Path: "$.request.required_seniority_level", Op: OpEqual, Value: string(types.SeniorityPrincipal),
			},
			Effect: Effect{
				Kind: types.EffectBoost, TargetField: "preferredConfidenceScore",
				TargetValue: 0.9, BoostStrength: 0.5,
			},
		},
	}
}
