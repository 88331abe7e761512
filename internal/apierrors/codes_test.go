package apierrors

import "testing"

func TestErrorCategory(t *testing.T) {
	tests := map[string]string{
		ErrReferenceNotFound:        "resource",
		ErrValidationFailed:         "validation",
		ErrGraphQueryFailed:         "external",
		ErrRuleIterationCapExceeded: "limit",
		"garbage":                   "unknown",
	}
	for code, want := range tests {
		if got := ErrorCategory(code); got != want {
			t.Errorf("ErrorCategory(%q) = %q, want %q", code, got, want)
		}
	}
}

func TestIsRecoverable(t *testing.T) {
	if !IsRecoverable(ErrLLMUnavailable) {
		t.Error("LLM unavailable should be recoverable")
	}
	if IsRecoverable(ErrValidationFailed) {
		t.Error("validation errors should not be recoverable")
	}
}

func TestError_AtPath(t *testing.T) {
	base := New(ErrValidationFailed, "stretch_budget without max_budget")
	withPath := base.AtPath("$.stretch_budget")

	if base.Path != "" {
		t.Error("AtPath must not mutate the receiver")
	}
	if withPath.Path != "$.stretch_budget" {
		t.Errorf("expected path to be set, got %q", withPath.Path)
	}
}
