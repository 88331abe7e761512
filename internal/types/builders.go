package types

// RequestBuilder provides a fluent API for constructing a Request, mirroring
// how the rest of the pipeline expects defaults to already be applied.
type RequestBuilder struct {
	request *Request
}

// NewRequest creates a RequestBuilder with sensible defaults (limit 10).
func NewRequest() *RequestBuilder {
	return &RequestBuilder{
		request: &Request{
			Limit: DefaultLimit,
		},
	}
}

// RequireSkill appends a required skill.
func (b *RequestBuilder) RequireSkill(identifier string, minProficiency Proficiency) *RequestBuilder {
	b.request.RequiredSkills = append(b.request.RequiredSkills, SkillRequirement{
		Identifier:     identifier,
		MinProficiency: minProficiency,
	})
	return b
}

// PreferSkill appends a preferred skill.
func (b *RequestBuilder) PreferSkill(identifier string, minProficiency Proficiency) *RequestBuilder {
	b.request.PreferredSkills = append(b.request.PreferredSkills, SkillRequirement{
		Identifier:     identifier,
		MinProficiency: minProficiency,
	})
	return b
}

// Seniority sets the required seniority level.
func (b *RequestBuilder) Seniority(level SeniorityLevel) *RequestBuilder {
	b.request.RequiredSeniorityLevel = level
	return b
}

// MaxStart sets the required max start time.
func (b *RequestBuilder) MaxStart(t StartTimeline) *RequestBuilder {
	b.request.RequiredMaxStartTime = t
	return b
}

// Budget sets max and optional stretch budget.
func (b *RequestBuilder) Budget(max int, stretch *int) *RequestBuilder {
	b.request.MaxBudget = &max
	b.request.StretchBudget = stretch
	return b
}

// Focus sets the team focus.
func (b *RequestBuilder) Focus(f TeamFocus) *RequestBuilder {
	b.request.TeamFocus = f
	return b
}

// Limit sets the page size.
func (b *RequestBuilder) Limit(n int) *RequestBuilder {
	b.request.Limit = n
	return b
}

// Build returns the constructed Request.
func (b *RequestBuilder) Build() Request {
	return *b.request
}

// CandidateBuilder provides a fluent API for constructing test Candidate
// fixtures, used throughout the planner/ranker/similarity test suites.
type CandidateBuilder struct {
	candidate *Candidate
}

// NewCandidate creates a CandidateBuilder for the given engineer id.
func NewCandidate(id string) *CandidateBuilder {
	return &CandidateBuilder{
		candidate: &Candidate{ID: id},
	}
}

// Salary sets the candidate's salary.
func (b *CandidateBuilder) Salary(n int) *CandidateBuilder {
	b.candidate.Salary = n
	return b
}

// Years sets years of experience.
func (b *CandidateBuilder) Years(y float64) *CandidateBuilder {
	b.candidate.YearsExperience = y
	return b
}

// Timezone sets the candidate's timezone.
func (b *CandidateBuilder) Timezone(z Timezone) *CandidateBuilder {
	b.candidate.Timezone = z
	return b
}

// StartTimeline sets the candidate's start timeline.
func (b *CandidateBuilder) StartTimeline(t StartTimeline) *CandidateBuilder {
	b.candidate.StartTimeline = t
	return b
}

// WithSkill appends a skill entry.
func (b *CandidateBuilder) WithSkill(skillID, name string, prof Proficiency, confidence, years float64, matchType MatchType) *CandidateBuilder {
	b.candidate.Skills = append(b.candidate.Skills, CandidateSkill{
		SkillID:     InternSkillID(skillID),
		Name:        name,
		Proficiency: prof,
		Confidence:  confidence,
		YearsUsed:   years,
		MatchType:   matchType,
	})
	return b
}

// Build returns the constructed Candidate.
func (b *CandidateBuilder) Build() Candidate {
	return *b.candidate
}
