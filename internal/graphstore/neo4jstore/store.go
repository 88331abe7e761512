package neo4jstore

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/talentgraph/recommender/internal/graphstore"
	"github.com/talentgraph/recommender/internal/types"
)

var _ graphstore.Store = (*Store)(nil)

// Store implements graphstore.Store against a Client.
type Store struct {
	client *Client
}

// NewStore wraps client as a graphstore.Store.
func NewStore(client *Client) *Store {
	return &Store{client: client}
}

// ResolveSkillSynonym implements graphstore.Store.
func (s *Store) ResolveSkillSynonym(ctx context.Context, raw string) (string, error) {
	const query = `
		MATCH (raw:RawToken {value: $raw})-[:SYNONYM_OF]->(canonical:Skill)
		RETURN canonical.id AS id
	`
	result, err := s.client.read(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, map[string]any{"raw": raw})
		if err != nil {
			return nil, err
		}
		if res.Next(ctx) {
			return res.Record().Values[0].(string), nil
		}
		return "", res.Err()
	})
	if err != nil {
		return "", fmt.Errorf("neo4jstore: resolve synonym: %w", err)
	}
	id, _ := result.(string)
	if id == "" {
		return "", graphstore.ErrNotFound
	}
	return id, nil
}

// SkillHierarchyChildren implements graphstore.Store.
func (s *Store) SkillHierarchyChildren(ctx context.Context, parentSkillID string) ([]string, error) {
	const query = `
		MATCH (:Skill {id: $parent})<-[:CHILD_OF]-(child:Skill)
		RETURN child.id AS id
	`
	result, err := s.client.read(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, map[string]any{"parent": parentSkillID})
		if err != nil {
			return nil, err
		}
		var ids []string
		for res.Next(ctx) {
			ids = append(ids, res.Record().Values[0].(string))
		}
		return ids, res.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("neo4jstore: skill hierarchy children: %w", err)
	}
	ids, _ := result.([]string)
	return ids, nil
}

// SkillNode implements graphstore.Store.
func (s *Store) SkillNode(ctx context.Context, skillID string) (*types.SkillNode, error) {
	const query = `
		MATCH (sk:Skill {id: $id})
		OPTIONAL MATCH (sk)-[:CHILD_OF]->(parent:Skill)
		RETURN sk.id AS id, sk.name AS name, sk.category_id AS category_id, parent.id AS parent_id
	`
	result, err := s.client.read(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, map[string]any{"id": skillID})
		if err != nil {
			return nil, err
		}
		if res.Next(ctx) {
			rec := res.Record()
			node := &types.SkillNode{
				ID:         asString(rec.Values[0]),
				Name:       asString(rec.Values[1]),
				CategoryID: asString(rec.Values[2]),
				ParentID:   asString(rec.Values[3]),
			}
			return node, nil
		}
		return nil, res.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("neo4jstore: skill node: %w", err)
	}
	node, ok := result.(*types.SkillNode)
	if !ok {
		return nil, graphstore.ErrNotFound
	}
	return node, nil
}

// DomainNode implements graphstore.Store.
func (s *Store) DomainNode(ctx context.Context, domainID string) (*types.DomainNode, error) {
	const query = `
		MATCH (d:Domain {id: $id})
		OPTIONAL MATCH (composite:Domain)-[:ENCOMPASSES]->(d)
		RETURN d.id AS id, d.name AS name, d.parent_id AS parent_id, collect(composite.id) AS encompassed
	`
	result, err := s.client.read(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, map[string]any{"id": domainID})
		if err != nil {
			return nil, err
		}
		if res.Next(ctx) {
			rec := res.Record()
			node := &types.DomainNode{
				ID:       asString(rec.Values[0]),
				Name:     asString(rec.Values[1]),
				ParentID: asString(rec.Values[2]),
			}
			if raw, ok := rec.Values[3].([]any); ok {
				for _, v := range raw {
					if id, ok := v.(string); ok && id != "" {
						node.EncompassedBy = append(node.EncompassedBy, id)
					}
				}
			}
			return node, nil
		}
		return nil, res.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("neo4jstore: domain node: %w", err)
	}
	node, ok := result.(*types.DomainNode)
	if !ok {
		return nil, graphstore.ErrNotFound
	}
	return node, nil
}

// AllSkillNodes implements graphstore.Store.
func (s *Store) AllSkillNodes(ctx context.Context) ([]*types.SkillNode, error) {
	const query = `
		MATCH (sk:Skill)
		OPTIONAL MATCH (sk)-[:CHILD_OF]->(parent:Skill)
		RETURN sk.id AS id, sk.name AS name, sk.category_id AS category_id, parent.id AS parent_id
	`
	result, err := s.client.read(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, nil)
		if err != nil {
			return nil, err
		}
		var nodes []*types.SkillNode
		for res.Next(ctx) {
			rec := res.Record()
			nodes = append(nodes, &types.SkillNode{
				ID:         asString(rec.Values[0]),
				Name:       asString(rec.Values[1]),
				CategoryID: asString(rec.Values[2]),
				ParentID:   asString(rec.Values[3]),
			})
		}
		return nodes, res.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("neo4jstore: all skill nodes: %w", err)
	}
	nodes, _ := result.([]*types.SkillNode)
	return nodes, nil
}

// AllDomainNodes implements graphstore.Store.
func (s *Store) AllDomainNodes(ctx context.Context) ([]*types.DomainNode, error) {
	const query = `
		MATCH (d:Domain)
		OPTIONAL MATCH (composite:Domain)-[:ENCOMPASSES]->(d)
		RETURN d.id AS id, d.name AS name, d.parent_id AS parent_id, collect(composite.id) AS encompassed
	`
	result, err := s.client.read(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, nil)
		if err != nil {
			return nil, err
		}
		var nodes []*types.DomainNode
		for res.Next(ctx) {
			rec := res.Record()
			node := &types.DomainNode{
				ID:       asString(rec.Values[0]),
				Name:     asString(rec.Values[1]),
				ParentID: asString(rec.Values[2]),
			}
			if raw, ok := rec.Values[3].([]any); ok {
				for _, v := range raw {
					if id, ok := v.(string); ok && id != "" {
						node.EncompassedBy = append(node.EncompassedBy, id)
					}
				}
			}
			nodes = append(nodes, node)
		}
		return nodes, res.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("neo4jstore: all domain nodes: %w", err)
	}
	nodes, _ := result.([]*types.DomainNode)
	return nodes, nil
}

// SkillCorrelations implements graphstore.Store.
func (s *Store) SkillCorrelations(ctx context.Context, skillID string, minStrength float64) ([]types.Correlation, error) {
	const query = `
		MATCH (:Skill {id: $id})-[r:CORRELATES_WITH]->(other:Skill)
		WHERE r.strength >= $min_strength
		RETURN other.id AS to, r.strength AS strength, r.kind AS kind
	`
	result, err := s.client.read(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, map[string]any{"id": skillID, "min_strength": minStrength})
		if err != nil {
			return nil, err
		}
		var out []types.Correlation
		for res.Next(ctx) {
			rec := res.Record()
			out = append(out, types.Correlation{
				To:       asString(rec.Values[0]),
				Strength: asFloat(rec.Values[1]),
				Kind:     types.CorrelationKind(asString(rec.Values[2])),
			})
		}
		return out, res.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("neo4jstore: skill correlations: %w", err)
	}
	out, _ := result.([]types.Correlation)
	return out, nil
}

// Candidate implements graphstore.Store.
func (s *Store) Candidate(ctx context.Context, engineerID string) (*types.Candidate, error) {
	const query = `
		MATCH (e:Engineer {id: $id})
		RETURN e.id AS id, e.name AS name, e.headline AS headline, e.salary AS salary,
		       e.years_experience AS years_experience, e.seniority AS seniority,
		       e.start_timeline AS start_timeline, e.timezone AS timezone
	`
	result, err := s.client.read(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, map[string]any{"id": engineerID})
		if err != nil {
			return nil, err
		}
		if res.Next(ctx) {
			return recordToCandidate(res.Record()), nil
		}
		return nil, res.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("neo4jstore: candidate: %w", err)
	}
	cand, ok := result.(*types.Candidate)
	if !ok {
		return nil, graphstore.ErrNotFound
	}
	return cand, nil
}

// CandidatesMatching implements graphstore.Store by compiling plan into a
// parameterized Cypher query built around the talent graph's Engineer,
// Skill, and Domain node labels.
func (s *Store) CandidatesMatching(ctx context.Context, plan graphstore.QueryPlan) ([]*types.Candidate, error) {
	query, params := compilePlan(plan)
	result, err := s.client.read(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}
		var out []*types.Candidate
		for res.Next(ctx) {
			out = append(out, recordToCandidate(res.Record()))
		}
		return out, res.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("neo4jstore: candidates matching: %w", err)
	}
	out, _ := result.([]*types.Candidate)
	return out, nil
}

func compilePlan(plan graphstore.QueryPlan) (string, map[string]any) {
	query := `
		MATCH (e:Engineer)
		WHERE ALL(skillID IN $required_skills WHERE
			EXISTS { MATCH (e)-[:HAS_SKILL]->(:Skill {id: skillID}) })
		  AND ($domains = [] OR EXISTS {
			MATCH (e)-[:HAS_DOMAIN_EXPERIENCE]->(d:Domain) WHERE d.id IN $domains
		  })
		  AND ($timezones = [] OR e.timezone IN $timezones)
		  AND ($budget_cap = 0.0 OR e.salary <= $budget_cap)
		  AND ($min_years = -1 OR e.years_experience >= $min_years)
		  AND ($max_years = -1 OR e.years_experience <= $max_years)
		  AND ($timelines = [] OR e.start_timeline IN $timelines)
		RETURN e.id AS id, e.name AS name, e.headline AS headline, e.salary AS salary,
		       e.years_experience AS years_experience, e.seniority AS seniority,
		       e.start_timeline AS start_timeline, e.timezone AS timezone
		ORDER BY e.id
		LIMIT $limit
	`
	budgetCap := plan.StretchBudget
	if budgetCap == 0 {
		budgetCap = plan.MaxBudget
	}
	limit := plan.Limit
	if limit <= 0 {
		limit = 100
	}
	minYears, maxYears := -1, -1
	if plan.MinYearsExperience != nil {
		minYears = *plan.MinYearsExperience
	}
	if plan.MaxYearsExperience != nil {
		maxYears = *plan.MaxYearsExperience
	}
	var timelines []string
	if plan.TimelineAtOrFaster != "" {
		for _, t := range types.TimelinesAtOrFaster(types.StartTimeline(plan.TimelineAtOrFaster)) {
			timelines = append(timelines, string(t))
		}
	}
	params := map[string]any{
		"required_skills": plan.RequiredSkillIDs,
		"domains":         plan.DomainIDs,
		"timezones":       plan.Timezones,
		"budget_cap":      budgetCap,
		"min_years":       minYears,
		"max_years":       maxYears,
		"timelines":       timelines,
		"limit":           limit,
	}
	return query, params
}

func recordToCandidate(rec *neo4j.Record) *types.Candidate {
	return &types.Candidate{
		ID:              asString(rec.Values[0]),
		Name:            asString(rec.Values[1]),
		Headline:        asString(rec.Values[2]),
		Salary:          int(asFloat(rec.Values[3])),
		YearsExperience: asFloat(rec.Values[4]),
		Seniority:       types.SeniorityLevel(asString(rec.Values[5])),
		StartTimeline:   types.StartTimeline(asString(rec.Values[6])),
		Timezone:        types.Timezone(asString(rec.Values[7])),
	}
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	default:
		return 0
	}
}
