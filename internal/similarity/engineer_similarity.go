package similarity

import (
	"context"
	"math"

	"github.com/talentgraph/recommender/internal/types"
)

// yearsSimilarityCap bounds the logarithmic years-of-experience similarity
// curve. Reused from the ranker's years_experience cap
// (config.RankerConfig.YearsCap defaults to 20) since both measure the
// same underlying quantity.
const yearsSimilarityCap = 20.0

// EngineerSimilarity computes the weighted four-component similarity
// between reference and candidate, returning the breakdown, the combined
// score, and shared/correlated skill ids for response transparency.
func (s *Scorer) EngineerSimilarity(ctx context.Context, reference, candidate *types.Candidate) (types.SimilarityBreakdown, float64, []string, []string, error) {
	weights := s.cfg.Weights()

	skillsScore, shared, correlatedPairs, err := s.SkillSetSimilarity(ctx, skillIDs(reference), skillIDs(candidate))
	if err != nil {
		return types.SimilarityBreakdown{}, 0, nil, nil, err
	}

	domainScore, err := s.domainSimilarity(ctx, reference, candidate)
	if err != nil {
		return types.SimilarityBreakdown{}, 0, nil, nil, err
	}

	yearsScore := yearsSimilarity(reference.YearsExperience, candidate.YearsExperience, yearsSimilarityCap)
	timezoneScore := 0.0
	if reference.Timezone == candidate.Timezone {
		timezoneScore = 1.0
	}

	breakdown := types.SimilarityBreakdown{
		Skills:   skillsScore,
		Years:    yearsScore,
		Domain:   domainScore,
		Timezone: timezoneScore,
	}
	total := weights["skills"]*skillsScore + weights["years"]*yearsScore + weights["domain"]*domainScore + weights["timezone"]*timezoneScore

	var correlated []string
	for _, pair := range correlatedPairs {
		correlated = append(correlated, pair[0]+"~"+pair[1])
	}
	return breakdown, total, shared, correlated, nil
}

// domainSimilarity is the mean of the business-domain and technical-domain
// set-similarities, each using the same tiered rule as skills: exact id,
// then a shared parent domain, then a shared composite ("encompasses")
// ancestor, else 0.
func (s *Scorer) domainSimilarity(ctx context.Context, reference, candidate *types.Candidate) (float64, error) {
	business, err := s.domainSetSimilarity(ctx, domainIDs(reference.BusinessDomains), domainIDs(candidate.BusinessDomains))
	if err != nil {
		return 0, err
	}
	technical, err := s.domainSetSimilarity(ctx, domainIDs(reference.TechnicalDomains), domainIDs(candidate.TechnicalDomains))
	if err != nil {
		return 0, err
	}
	if business == 0 && technical == 0 {
		return 0, nil
	}
	return (business + technical) / 2, nil
}

func (s *Scorer) domainSetSimilarity(ctx context.Context, a, b []string) (float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return 0, nil
	}
	forward, err := s.domainBestMatchMean(ctx, a, b)
	if err != nil {
		return 0, err
	}
	backward, err := s.domainBestMatchMean(ctx, b, a)
	if err != nil {
		return 0, err
	}
	if forward+backward == 0 {
		return 0, nil
	}
	return 2 * forward * backward / (forward + backward), nil
}

func (s *Scorer) domainBestMatchMean(ctx context.Context, from, to []string) (float64, error) {
	var total float64
	for _, f := range from {
		best := 0.0
		for _, t := range to {
			sim, err := s.domainPairSimilarity(ctx, f, t)
			if err != nil {
				return 0, err
			}
			if sim > best {
				best = sim
			}
		}
		total += best
	}
	return total / float64(len(from)), nil
}

func (s *Scorer) domainPairSimilarity(ctx context.Context, a, b string) (float64, error) {
	if a == b {
		return 1.0, nil
	}
	nodeA, err := s.domainNode(ctx, a)
	if err != nil {
		return 0, err
	}
	nodeB, err := s.domainNode(ctx, b)
	if err != nil {
		return 0, err
	}
	if nodeA != nil && nodeB != nil && nodeA.ParentID != "" && nodeA.ParentID == nodeB.ParentID {
		return 0.5, nil
	}
	if sharesEncompassedBy(nodeA, nodeB) {
		return 0.3, nil
	}
	return 0, nil
}

func sharesEncompassedBy(a, b *types.DomainNode) bool {
	if a == nil || b == nil {
		return false
	}
	for _, x := range a.EncompassedBy {
		for _, y := range b.EncompassedBy {
			if x == y {
				return true
			}
		}
	}
	return false
}

// yearsSimilarity converts an absolute years gap into a logarithmic
// closeness score: 0 gap is full credit, decaying toward 0 as the gap
// approaches cap.
func yearsSimilarity(a, b, cap float64) float64 {
	if cap <= 0 {
		return 0
	}
	gap := math.Abs(a - b)
	v := 1 - math.Log(1+gap)/math.Log(1+cap)
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func skillIDs(c *types.Candidate) []string {
	ids := make([]string, len(c.Skills))
	for i, sk := range c.Skills {
		ids[i] = sk.SkillID
	}
	return ids
}

func domainIDs(d []types.DomainExperience) []string {
	ids := make([]string, len(d))
	for i, x := range d {
		ids[i] = x.DomainID
	}
	return ids
}
