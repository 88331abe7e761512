// Package critique implements the Critique Interpreter: a total,
// left-to-right handler for each property×operation pair that turns
// a prior request plus a batch of critiques into a modified request, and
// the Dynamic Miner that proposes further critiques from a search's results.
package critique

import (
	"fmt"

	"github.com/talentgraph/recommender/internal/types"
)

// Apply runs critiques left-to-right against base, returning the modified
// request alongside the applied/failed breakdown. base is never mutated.
func Apply(base types.Request, critiques []types.Critique) types.CritiqueResult {
	req := base.Clone()
	result := types.CritiqueResult{}

	for _, c := range critiques {
		warning, err := applyOne(&req, c)
		if err != nil {
			result.Failed = append(result.Failed, types.FailedCritique{Critique: c, Reason: err.Error()})
			continue
		}
		result.Applied = append(result.Applied, types.AppliedCritique{Critique: c, Warning: warning})
	}

	result.Request = req
	return result
}

func applyOne(req *types.Request, c types.Critique) (warning string, err error) {
	switch c.Property {
	case types.PropertySeniority:
		return applySeniority(req, c)
	case types.PropertyBudget:
		return applyBudget(req, c)
	case types.PropertyTimeline:
		return applyTimeline(req, c)
	case types.PropertyTimezone:
		return applyTimezone(req, c)
	case types.PropertySkills:
		return applySkills(req, c)
	case types.PropertyBusinessDomains:
		return applyDomains(req, c, true)
	case types.PropertyTechnicalDomains:
		return applyDomains(req, c, false)
	default:
		return "", fmt.Errorf("unrecognized critique property %q", c.Property)
	}
}

func applySeniority(req *types.Request, c types.Critique) (string, error) {
	switch c.Operation {
	case types.OperationSet:
		level, ok := c.Value.(string)
		if !ok || !types.SeniorityLevel(level).Valid() {
			return "", fmt.Errorf("seniority set requires a valid seniority level, got %v", c.Value)
		}
		req.RequiredSeniorityLevel = types.SeniorityLevel(level)
		return "", nil
	case types.OperationAdjust:
		if req.RequiredSeniorityLevel == "" {
			return "", fmt.Errorf("cannot adjust seniority: no required_seniority_level is set")
		}
		delta, err := directionDelta(c.Direction, types.DirectionMore, types.DirectionLess)
		if err != nil {
			return "", err
		}
		req.RequiredSeniorityLevel = req.RequiredSeniorityLevel.Adjust(delta)
		return "", nil
	default:
		return "", fmt.Errorf("seniority does not support operation %q", c.Operation)
	}
}

func applyBudget(req *types.Request, c types.Critique) (string, error) {
	const defaultFactor = 0.20
	const defaultFloor = 30000

	switch c.Operation {
	case types.OperationSet:
		amount, ok := numericValue(c.Value)
		if !ok {
			return "", fmt.Errorf("budget set requires a numeric value, got %v", c.Value)
		}
		v := int(amount)
		req.MaxBudget = &v
		return "", nil
	case types.OperationAdjust:
		if req.MaxBudget == nil {
			return "", fmt.Errorf("cannot adjust budget: no max_budget is set")
		}
		delta, err := directionDelta(c.Direction, types.DirectionMore, types.DirectionLess)
		if err != nil {
			return "", err
		}
		factor := 1 + float64(delta)*defaultFactor
		adjusted := int(float64(*req.MaxBudget) * factor)
		if adjusted < defaultFloor {
			adjusted = defaultFloor
		}
		req.MaxBudget = &adjusted
		return "", nil
	default:
		return "", fmt.Errorf("budget does not support operation %q", c.Operation)
	}
}

func applyTimeline(req *types.Request, c types.Critique) (string, error) {
	switch c.Operation {
	case types.OperationSet:
		v, ok := c.Value.(string)
		if !ok || !types.StartTimeline(v).Valid() {
			return "", fmt.Errorf("timeline set requires a valid timeline, got %v", c.Value)
		}
		req.RequiredMaxStartTime = types.StartTimeline(v)
		return "", nil
	case types.OperationAdjust:
		if req.RequiredMaxStartTime == "" {
			return "", fmt.Errorf("cannot adjust timeline: no required_max_start_time is set")
		}
		delta, err := directionDelta(c.Direction, types.DirectionLater, types.DirectionSooner)
		if err != nil {
			return "", err
		}
		req.RequiredMaxStartTime = req.RequiredMaxStartTime.Adjust(delta)
		return "", nil
	default:
		return "", fmt.Errorf("timeline does not support operation %q", c.Operation)
	}
}

// applyTimezone treats req.RequiredTimezone as a contiguous slice of
// timezoneOrder. narrower drops the outermost (last-added) zone; wider
// extends the range to the next adjacent zone on whichever side has room.
func applyTimezone(req *types.Request, c types.Critique) (string, error) {
	switch c.Operation {
	case types.OperationSet:
		switch v := c.Value.(type) {
		case string:
			req.RequiredTimezone = []types.Timezone{types.Timezone(v)}
		case []string:
			zones := make([]types.Timezone, len(v))
			for i, z := range v {
				zones[i] = types.Timezone(z)
			}
			req.RequiredTimezone = zones
		case []types.Timezone:
			req.RequiredTimezone = append([]types.Timezone(nil), v...)
		default:
			return "", fmt.Errorf("timezone set requires a string or string array, got %v", c.Value)
		}
		return "", nil
	case types.OperationAdjust:
		if len(req.RequiredTimezone) == 0 {
			return "", fmt.Errorf("cannot adjust timezone: no required_timezone is set")
		}
		switch c.Direction {
		case types.DirectionNarrower:
			if len(req.RequiredTimezone) > 1 {
				req.RequiredTimezone = req.RequiredTimezone[:len(req.RequiredTimezone)-1]
			}
			return "", nil
		case types.DirectionWider:
			req.RequiredTimezone = widenTimezones(req.RequiredTimezone)
			return "", nil
		default:
			return "", fmt.Errorf("timezone adjust requires direction narrower or wider, got %q", c.Direction)
		}
	default:
		return "", fmt.Errorf("timezone does not support operation %q", c.Operation)
	}
}

var timezoneOrder = []types.Timezone{
	types.TimezoneEastern, types.TimezoneCentral, types.TimezoneMountain, types.TimezonePacific,
}

func timezoneIndex(z types.Timezone) int {
	for i, v := range timezoneOrder {
		if v == z {
			return i
		}
	}
	return -1
}

func widenTimezones(zones []types.Timezone) []types.Timezone {
	present := make(map[types.Timezone]bool, len(zones))
	minIdx, maxIdx := len(timezoneOrder), -1
	for _, z := range zones {
		present[z] = true
		idx := timezoneIndex(z)
		if idx < 0 {
			continue
		}
		if idx < minIdx {
			minIdx = idx
		}
		if idx > maxIdx {
			maxIdx = idx
		}
	}
	out := append([]types.Timezone(nil), zones...)
	if minIdx > 0 {
		out = append(out, timezoneOrder[minIdx-1])
	}
	if maxIdx >= 0 && maxIdx < len(timezoneOrder)-1 {
		out = append(out, timezoneOrder[maxIdx+1])
	}
	return out
}

func directionDelta(dir, positive, negative types.AdjustDirection) (int, error) {
	switch dir {
	case positive:
		return 1, nil
	case negative:
		return -1, nil
	default:
		return 0, fmt.Errorf("unrecognized adjust direction %q", dir)
	}
}

func numericValue(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	default:
		return 0, false
	}
}
