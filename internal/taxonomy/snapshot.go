package taxonomy

import (
	"context"

	"github.com/talentgraph/recommender/internal/types"
)

// Snapshot is a request-scoped, ctx-bound resolution of every skill and
// domain identifier a Request names, expanded once up front so the
// Constraint Expander can run as a pure function over it with no
// GraphStore access of its own. It implements the expander package's
// SkillTaxonomy interface.
type Snapshot struct {
	skills  map[string]map[string]types.Proficiency
	domains map[string][]string
}

// BuildSnapshot resolves and expands every skill/domain identifier req
// names (required and preferred, skills and both domain kinds) through
// resolver, merging descendants reached through more than one requirement
// with the stricter proficiency. Unresolved identifiers
// are simply absent from the snapshot; ExpandedSkill/ExpandedDomain report
// them as unresolved to the expander, which records them in
// ExpandedCriteria.UnresolvedSkills rather than failing the request.
func BuildSnapshot(ctx context.Context, resolver *Resolver, req types.Request) (*Snapshot, error) {
	snap := &Snapshot{
		skills:  make(map[string]map[string]types.Proficiency),
		domains: make(map[string][]string),
	}

	skillReqs := make(map[string]types.Proficiency)
	for _, s := range req.RequiredSkills {
		mergeProficiencyFloor(skillReqs, s.Identifier, s.MinProficiency)
	}
	for _, s := range req.PreferredSkills {
		mergeProficiencyFloor(skillReqs, s.Identifier, s.PreferredMinProficiency)
	}

	var domainIdentifiers []string
	domainIdentifiers = appendDomainIdentifiers(domainIdentifiers, req.RequiredBusinessDomains)
	domainIdentifiers = appendDomainIdentifiers(domainIdentifiers, req.PreferredBusinessDomains)
	domainIdentifiers = appendDomainIdentifiers(domainIdentifiers, req.RequiredTechnicalDomains)
	domainIdentifiers = appendDomainIdentifiers(domainIdentifiers, req.PreferredTechnicalDomains)

	identifiers := make([]string, 0, len(skillReqs)+len(domainIdentifiers))
	for id := range skillReqs {
		identifiers = append(identifiers, id)
	}
	identifiers = append(identifiers, domainIdentifiers...)
	if len(identifiers) == 0 {
		return snap, nil
	}

	resolved, err := resolver.Resolve(ctx, identifiers)
	if err != nil {
		return nil, err
	}
	canonical := make(map[string]string, len(resolved.Resolved))
	for _, r := range resolved.Resolved {
		canonical[r.Input] = r.CanonicalID
	}

	for raw, minProf := range skillReqs {
		id, ok := canonical[raw]
		if !ok {
			continue
		}
		leaves, err := resolver.ExpandWithProficiency(ctx, id, minProf)
		if err != nil {
			return nil, err
		}
		for leaf, prof := range leaves {
			if existing, ok := snap.skills[raw][leaf]; ok {
				prof = types.Stricter(existing, prof)
			}
			if snap.skills[raw] == nil {
				snap.skills[raw] = make(map[string]types.Proficiency)
			}
			snap.skills[raw][leaf] = prof
		}
	}

	for _, raw := range domainIdentifiers {
		if _, done := snap.domains[raw]; done {
			continue
		}
		id, ok := canonical[raw]
		if !ok {
			continue
		}
		ids, err := resolver.ExpandHierarchy(ctx, id)
		if err != nil {
			return nil, err
		}
		snap.domains[raw] = ids
	}

	return snap, nil
}

func mergeProficiencyFloor(m map[string]types.Proficiency, identifier string, prof types.Proficiency) {
	if prof == "" {
		prof = types.ProficiencyLearning
	}
	if existing, ok := m[identifier]; ok {
		m[identifier] = types.Stricter(existing, prof)
		return
	}
	m[identifier] = prof
}

func appendDomainIdentifiers(out []string, reqs []types.DomainRequirement) []string {
	for _, d := range reqs {
		out = append(out, d.Identifier)
	}
	return out
}

// ExpandedSkill implements expander.SkillTaxonomy.
func (s *Snapshot) ExpandedSkill(identifier string) (map[string]types.Proficiency, bool) {
	leaves, ok := s.skills[identifier]
	if !ok {
		return nil, true
	}
	return leaves, false
}

// ExpandedDomain implements expander.SkillTaxonomy.
func (s *Snapshot) ExpandedDomain(identifier string) ([]string, bool) {
	ids, ok := s.domains[identifier]
	if !ok {
		return nil, true
	}
	return ids, false
}
