// Package graphstore defines the contract the recommender core uses to
// reach the external talent knowledge graph, plus two implementations:
// a Neo4j-backed adapter for production (neo4jstore) and an in-memory
// fixture used by every package's unit and property tests (memory).
//
// The external graph database itself is out of scope for this module:
// the core depends only on this interface, never on a concrete driver.
package graphstore

import (
	"context"
	"errors"

	"github.com/talentgraph/recommender/internal/types"
)

// ErrNotFound is returned by lookup methods when the requested node does
// not exist in the graph.
var ErrNotFound = errors.New("graphstore: not found")

// Store is the contract the core pipeline uses to read the talent
// knowledge graph. Every method takes a context so callers can bound
// query latency; implementations are expected to respect ctx deadlines.
type Store interface {
	// ResolveSkillSynonym returns the canonical skill id for a raw token,
	// via an explicit Synonym edge, or ErrNotFound if none exists.
	ResolveSkillSynonym(ctx context.Context, raw string) (string, error)

	// SkillHierarchyChildren returns the ids of skills one hierarchy
	// level below parent (e.g. "react" under "frontend").
	SkillHierarchyChildren(ctx context.Context, parentSkillID string) ([]string, error)

	// SkillNode fetches a single skill node by id.
	SkillNode(ctx context.Context, skillID string) (*types.SkillNode, error)

	// DomainNode fetches a single domain node by id.
	DomainNode(ctx context.Context, domainID string) (*types.DomainNode, error)

	// AllSkillNodes returns every skill node in the catalogue, for
	// building an in-process snapshot of the skill hierarchy (see
	// internal/graphload). Not used by the request path.
	AllSkillNodes(ctx context.Context) ([]*types.SkillNode, error)

	// AllDomainNodes returns every domain node in the catalogue, for
	// building an in-process snapshot of the domain hierarchy (see
	// internal/graphload). Not used by the request path.
	AllDomainNodes(ctx context.Context) ([]*types.DomainNode, error)

	// SkillCorrelations returns outgoing Correlation edges from a skill,
	// at or above minStrength, used by the similarity scorer's
	// graph-tiered skill comparison.
	SkillCorrelations(ctx context.Context, skillID string, minStrength float64) ([]types.Correlation, error)

	// CandidatesMatching runs the planner's compiled query plan and
	// returns the raw candidate pool before ranking.
	CandidatesMatching(ctx context.Context, plan QueryPlan) ([]*types.Candidate, error)

	// Candidate fetches a single candidate (engineer) by id, used to
	// resolve a reference_engineer_id for similarity-based search.
	Candidate(ctx context.Context, engineerID string) (*types.Candidate, error)
}

// QueryPlan is the compiled, store-agnostic representation the query
// planner produces from ExpandedCriteria. Concrete Store implementations
// translate it into their own query language (Cypher for neo4jstore,
// direct filtering for the in-memory fixture).
type QueryPlan struct {
	RequiredSkillIDs   []string
	PreferredSkillIDs  []string
	DomainIDs          []string
	MinYearsExperience *int
	MaxYearsExperience *int
	TimelineAtOrFaster string
	Timezones          []string
	MaxBudget          float64
	StretchBudget      float64
	Limit              int
}
