package apivalidate

import (
	"testing"

	"github.com/talentgraph/recommender/internal/apierrors"
	"github.com/talentgraph/recommender/internal/types"
)

func intPtr(n int) *int { return &n }

func TestValidate_WellFormedRequestPasses(t *testing.T) {
	req := types.Request{
		RequiredSkills: []types.SkillRequirement{{Identifier: "go", MinProficiency: types.ProficiencyProficient}},
		MaxBudget:      intPtr(150000),
		StretchBudget:  intPtr(170000),
		Limit:          10,
	}
	if err := Validate(req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_StretchBudgetWithoutMaxBudgetIsRejected(t *testing.T) {
	req := types.Request{StretchBudget: intPtr(170000)}
	err := Validate(req)
	assertCode(t, err, "$.stretch_budget")
}

func TestValidate_StretchBudgetBelowMaxBudgetIsRejected(t *testing.T) {
	req := types.Request{MaxBudget: intPtr(150000), StretchBudget: intPtr(120000)}
	err := Validate(req)
	assertCode(t, err, "$.stretch_budget")
}

func TestValidate_PreferredTimelineSlowerThanRequiredIsRejected(t *testing.T) {
	req := types.Request{
		RequiredMaxStartTime:  types.TimelineTwoWeeks,
		PreferredMaxStartTime: types.TimelineThreeMonths,
	}
	err := Validate(req)
	assertCode(t, err, "$.preferred_max_start_time")
}

func TestValidate_UnknownEnumLiteralIsRejected(t *testing.T) {
	req := types.Request{RequiredSeniorityLevel: "wizard"}
	err := Validate(req)
	assertCode(t, err, "$.required_seniority_level")
}

func TestValidate_LimitOutsideRangeIsRejected(t *testing.T) {
	req := types.Request{Limit: 101}
	if err := Validate(req); err == nil {
		t.Fatalf("expected an error for a limit above 100")
	}
}

func TestValidate_NegativeOffsetIsRejected(t *testing.T) {
	req := types.Request{Offset: -1}
	if err := Validate(req); err == nil {
		t.Fatalf("expected an error for a negative offset")
	}
}

func TestValidate_NegativeDomainMinYearsIsRejected(t *testing.T) {
	req := types.Request{
		RequiredBusinessDomains: []types.DomainRequirement{{Identifier: "fintech", MinYears: intPtr(-2)}},
	}
	if err := Validate(req); err == nil {
		t.Fatalf("expected an error for a negative min_years")
	}
}

func assertCode(t *testing.T, err error, wantPath string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected a validation error")
	}
	se, ok := apierrors.As(err)
	if !ok {
		t.Fatalf("expected an *apierrors.Error, got %T: %v", err, err)
	}
	if se.Code != apierrors.ErrValidationFailed {
		t.Fatalf("expected code %s, got %s", apierrors.ErrValidationFailed, se.Code)
	}
	if se.Path != wantPath {
		t.Fatalf("expected path %s, got %s", wantPath, se.Path)
	}
}
