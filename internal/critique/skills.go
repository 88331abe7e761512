package critique

import (
	"fmt"

	"github.com/talentgraph/recommender/internal/types"
)

// proficiencySteps mirrors types.Proficiency's closed ordering so adjust
// critiques can shift by one step without reaching into an unexported table.
var proficiencySteps = []types.Proficiency{
	types.ProficiencyLearning, types.ProficiencyProficient, types.ProficiencyExpert,
}

func proficiencyIndex(p types.Proficiency) int {
	for i, v := range proficiencySteps {
		if v == p {
			return i
		}
	}
	return -1
}

func adjustProficiency(p types.Proficiency, delta int) types.Proficiency {
	idx := proficiencyIndex(p)
	if idx < 0 {
		idx = 0
	}
	idx += delta
	if idx < 0 {
		idx = 0
	}
	if idx >= len(proficiencySteps) {
		idx = len(proficiencySteps) - 1
	}
	return proficiencySteps[idx]
}

func applySkills(req *types.Request, c types.Critique) (string, error) {
	switch c.Operation {
	case types.OperationAdd:
		if c.Item == "" {
			return "", fmt.Errorf("skills add requires an item identifier")
		}
		for _, s := range req.RequiredSkills {
			if s.Identifier == c.Item {
				return fmt.Sprintf("skill %q is already required", c.Item), nil
			}
		}
		req.RequiredSkills = append(req.RequiredSkills, types.SkillRequirement{Identifier: c.Item})
		return "", nil
	case types.OperationRemove:
		idx := findSkill(req.RequiredSkills, c.Item)
		if idx < 0 {
			return "", fmt.Errorf("cannot remove skill %q: not present", c.Item)
		}
		req.RequiredSkills = append(req.RequiredSkills[:idx], req.RequiredSkills[idx+1:]...)
		return "", nil
	case types.OperationAdjust:
		idx := findSkill(req.RequiredSkills, c.Item)
		if idx < 0 {
			return "", fmt.Errorf("cannot adjust skill %q: not present", c.Item)
		}
		delta, err := directionDelta(c.Direction, types.DirectionMore, types.DirectionLess)
		if err != nil {
			return "", err
		}
		req.RequiredSkills[idx].MinProficiency = adjustProficiency(req.RequiredSkills[idx].MinProficiency, delta)
		return "", nil
	case types.OperationSet:
		ids, ok := c.Value.([]string)
		if !ok {
			return "", fmt.Errorf("skills set requires a string array, got %v", c.Value)
		}
		skills := make([]types.SkillRequirement, len(ids))
		for i, id := range ids {
			skills[i] = types.SkillRequirement{Identifier: id}
		}
		req.RequiredSkills = skills
		return "", nil
	default:
		return "", fmt.Errorf("skills does not support operation %q", c.Operation)
	}
}

func findSkill(skills []types.SkillRequirement, identifier string) int {
	for i, s := range skills {
		if s.Identifier == identifier {
			return i
		}
	}
	return -1
}

// applyDomains mirrors applySkills for business/technical domain
// requirements; its "adjust" shifts the min-years floor by one year rather
// than a proficiency tier, since domain requirements carry no proficiency.
func applyDomains(req *types.Request, c types.Critique, business bool) (string, error) {
	domains := req.RequiredBusinessDomains
	if !business {
		domains = req.RequiredTechnicalDomains
	}

	switch c.Operation {
	case types.OperationAdd:
		if c.Item == "" {
			return "", fmt.Errorf("domains add requires an item identifier")
		}
		if findDomain(domains, c.Item) >= 0 {
			setDomains(req, business, domains)
			return fmt.Sprintf("domain %q is already required", c.Item), nil
		}
		domains = append(domains, types.DomainRequirement{Identifier: c.Item})
		setDomains(req, business, domains)
		return "", nil
	case types.OperationRemove:
		idx := findDomain(domains, c.Item)
		if idx < 0 {
			return "", fmt.Errorf("cannot remove domain %q: not present", c.Item)
		}
		domains = append(domains[:idx], domains[idx+1:]...)
		setDomains(req, business, domains)
		return "", nil
	case types.OperationAdjust:
		idx := findDomain(domains, c.Item)
		if idx < 0 {
			return "", fmt.Errorf("cannot adjust domain %q: not present", c.Item)
		}
		delta, err := directionDelta(c.Direction, types.DirectionMore, types.DirectionLess)
		if err != nil {
			return "", err
		}
		years := 0
		if domains[idx].MinYears != nil {
			years = *domains[idx].MinYears
		}
		years += delta
		if years < 0 {
			years = 0
		}
		domains[idx].MinYears = &years
		setDomains(req, business, domains)
		return "", nil
	case types.OperationSet:
		ids, ok := c.Value.([]string)
		if !ok {
			return "", fmt.Errorf("domains set requires a string array, got %v", c.Value)
		}
		replaced := make([]types.DomainRequirement, len(ids))
		for i, id := range ids {
			replaced[i] = types.DomainRequirement{Identifier: id}
		}
		setDomains(req, business, replaced)
		return "", nil
	default:
		return "", fmt.Errorf("domains does not support operation %q", c.Operation)
	}
}

func findDomain(domains []types.DomainRequirement, identifier string) int {
	for i, d := range domains {
		if d.Identifier == identifier {
			return i
		}
	}
	return -1
}

func setDomains(req *types.Request, business bool, domains []types.DomainRequirement) {
	if business {
		req.RequiredBusinessDomains = domains
	} else {
		req.RequiredTechnicalDomains = domains
	}
}
