package presence

import "errors"

// Validation failures returned by the evaluators. All are recoverable:
// callers surface them as user-facing messages, never as crashes.
var (
	// ErrInvalidInterval means an interval's start date is after its end date.
	ErrInvalidInterval = errors.New("invalid interval: start date after end date")

	// ErrInvalidReferenceDate means an ongoing interval starts after the
	// reference date it is being evaluated against.
	ErrInvalidReferenceDate = errors.New("invalid reference date: precedes ongoing interval start")

	// ErrMissingCurrentYearEntry means the weighted evaluator was called
	// without a current-year (offset 0) data point.
	ErrMissingCurrentYearEntry = errors.New("missing current-year entry")

	// ErrUnsupportedRuleKind means a jurisdiction rule carries a kind the
	// evaluator does not know how to interpret. The engine fails closed
	// rather than falling through to a default.
	ErrUnsupportedRuleKind = errors.New("unsupported rule kind")

	// ErrNotFound means a jurisdiction has no rule in the registry.
	ErrNotFound = errors.New("jurisdiction not found")
)
