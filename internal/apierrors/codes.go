// Package apierrors provides the structured error taxonomy the pipeline
// raises, one code per distinct error kind.
//
// Codes are organized into categories:
//   - 1xxx: resource errors (not found)
//   - 2xxx: validation errors (bad request shape)
//   - 4xxx: external errors (GraphStore/LLM failures)
//   - 5xxx: limit errors (iteration caps, advisor timeouts)
package apierrors

// Resource errors (1xxx).
const (
	// ErrReferenceNotFound indicates a reference_engineer_id did not resolve.
	ErrReferenceNotFound = "ERR_1001_REFERENCE_ENGINEER_NOT_FOUND"
)

// Validation errors (2xxx).
const (
	// ErrValidationFailed indicates the request failed an inbound validation rule.
	ErrValidationFailed = "ERR_2001_VALIDATION_FAILED"
	// ErrUnresolvedIdentifier indicates a taxonomy lookup declined to resolve
	// an identifier; recovered locally, never fatal, but the caller may want
	// to know which code would have been raised had it been fatal.
	ErrUnresolvedIdentifier = "ERR_2002_UNRESOLVED_IDENTIFIER"
)

// External errors (4xxx).
const (
	// ErrGraphQueryFailed indicates a GraphStore.Query call failed after one
	// retry with jittered backoff.
	ErrGraphQueryFailed = "ERR_4001_GRAPH_QUERY_FAILED"
	// ErrLLMUnavailable indicates the optional LLMProvider was absent or
	// timed out; recovered locally by falling back to template-only output.
	ErrLLMUnavailable = "ERR_4002_LLM_UNAVAILABLE"
)

// Limit errors (5xxx).
const (
	// ErrRuleIterationCapExceeded indicates the inference engine's
	// fixed-point loop hit its iteration ceiling; recovered by degrading to
	// the last stable fact map.
	ErrRuleIterationCapExceeded = "ERR_5001_RULE_ITERATION_CAP_EXCEEDED"
	// ErrAdvisorTimeout indicates the constraint advisor's MCS search
	// exceeded its per-request budget; recovered by returning partial MCSes.
	ErrAdvisorTimeout = "ERR_5002_ADVISOR_TIMEOUT"
)

// ErrorCategory returns the category name for a code, by its numeric prefix.
func ErrorCategory(code string) string {
	if len(code) < 5 {
		return "unknown"
	}
	switch code[4] {
	case '1':
		return "resource"
	case '2':
		return "validation"
	case '4':
		return "external"
	case '5':
		return "limit"
	default:
		return "unknown"
	}
}

// IsRecoverable reports whether the pipeline is expected to continue
// (with a warning) rather than fail the request outright for this code.
func IsRecoverable(code string) bool {
	switch code {
	case ErrUnresolvedIdentifier, ErrLLMUnavailable, ErrRuleIterationCapExceeded, ErrAdvisorTimeout:
		return true
	default:
		return false
	}
}
