// Package apivalidate validates an inbound types.Request before it ever
// reaches the orchestrator: go-playground/validator/v10 struct tags cover
// per-field scalar rules (non-empty identifiers, non-negative years,
// limit/offset bounds), and this package's Validate adds the cross-field
// and enum-literal rules that no single struct tag can express.
package apivalidate

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/talentgraph/recommender/internal/apierrors"
	"github.com/talentgraph/recommender/internal/types"
)

var structValidator = validator.New()

// Validate reports the first violation it finds as an *apierrors.Error
// coded ErrValidationFailed, with Path naming the offending field in
// "$.field" form. A nil return means req is safe to hand to the
// orchestrator.
func Validate(req types.Request) error {
	if err := structValidator.Struct(req); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			fe := verrs[0]
			return apierrors.Newf(apierrors.ErrValidationFailed, "%s failed the %q rule", fe.Field(), fe.Tag()).
				AtPath("$." + fe.Field())
		}
		return apierrors.Wrap(apierrors.ErrValidationFailed, err)
	}

	if err := validateBudget(req); err != nil {
		return err
	}
	if err := validateTimelines(req); err != nil {
		return err
	}
	if err := validateEnums(req); err != nil {
		return err
	}
	return nil
}

func validateBudget(req types.Request) error {
	if req.StretchBudget == nil {
		return nil
	}
	if req.MaxBudget == nil {
		return apierrors.New(apierrors.ErrValidationFailed, "stretch_budget requires max_budget to also be set").
			AtPath("$.stretch_budget")
	}
	if *req.StretchBudget < *req.MaxBudget {
		return apierrors.New(apierrors.ErrValidationFailed, "stretch_budget must not be lower than max_budget").
			AtPath("$.stretch_budget")
	}
	return nil
}

func validateTimelines(req types.Request) error {
	if req.RequiredMaxStartTime == "" || req.PreferredMaxStartTime == "" {
		return nil
	}
	if req.PreferredMaxStartTime.Index() > req.RequiredMaxStartTime.Index() {
		return apierrors.New(apierrors.ErrValidationFailed,
			"preferred_max_start_time must be at or faster than required_max_start_time").
			AtPath("$.preferred_max_start_time")
	}
	return nil
}

func validateEnums(req types.Request) error {
	if req.RequiredSeniorityLevel != "" && !req.RequiredSeniorityLevel.Valid() {
		return enumErr("$.required_seniority_level", req.RequiredSeniorityLevel)
	}
	if req.PreferredSeniorityLevel != "" && !req.PreferredSeniorityLevel.Valid() {
		return enumErr("$.preferred_seniority_level", req.PreferredSeniorityLevel)
	}
	if req.RequiredMaxStartTime != "" && !req.RequiredMaxStartTime.Valid() {
		return enumErr("$.required_max_start_time", req.RequiredMaxStartTime)
	}
	if req.PreferredMaxStartTime != "" && !req.PreferredMaxStartTime.Valid() {
		return enumErr("$.preferred_max_start_time", req.PreferredMaxStartTime)
	}
	if req.TeamFocus != "" && !req.TeamFocus.Valid() {
		return enumErr("$.team_focus", req.TeamFocus)
	}
	for i, tz := range req.RequiredTimezone {
		if !tz.Valid() {
			return enumErr(fmt.Sprintf("$.required_timezone[%d]", i), tz)
		}
	}
	for i, tz := range req.PreferredTimezone {
		if !tz.Valid() {
			return enumErr(fmt.Sprintf("$.preferred_timezone[%d]", i), tz)
		}
	}
	for i, s := range req.RequiredSkills {
		if s.MinProficiency != "" && !s.MinProficiency.Valid() {
			return enumErr(fmt.Sprintf("$.required_skills[%d].min_proficiency", i), s.MinProficiency)
		}
	}
	for i, s := range req.PreferredSkills {
		if s.PreferredMinProficiency != "" && !s.PreferredMinProficiency.Valid() {
			return enumErr(fmt.Sprintf("$.preferred_skills[%d].preferred_min_proficiency", i), s.PreferredMinProficiency)
		}
	}
	return nil
}

func enumErr(path string, value interface{}) error {
	return apierrors.Newf(apierrors.ErrValidationFailed, "%q is not a recognized value", value).AtPath(path)
}
