package adminclient

// Outcome tells callers of an operation whose backend route may not exist
// whether it ran. An error is returned if and only if the outcome is
// OutcomeFailed.
type Outcome int

const (
	OutcomeApplied Outcome = iota
	OutcomeFailed
	OutcomeUnavailable
)

func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomeFailed:
		return "failed"
	case OutcomeUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Available reports whether the backend implements the operation.
func (o Outcome) Available() bool {
	return o != OutcomeUnavailable
}
