package api

// OutcomeKind classifies a create attempt against a review sub-resource.
type OutcomeKind int

const (
	// Created means the sub-resource was created.
	Created OutcomeKind = iota
	// Conflict means the sub-resource already exists; retry as an update.
	Conflict
	// Failed means any other error; the submission must abort.
	Failed
)

func (k OutcomeKind) String() string {
	switch k {
	case Created:
		return "created"
	case Conflict:
		return "conflict"
	default:
		return "failed"
	}
}

// Outcome is the tagged result of a create attempt, so create-then-update
// fallback logic is a plain branch instead of error-string inspection.
type Outcome struct {
	Kind OutcomeKind
	Err  error // set only when Kind == Failed
}
