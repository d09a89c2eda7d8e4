package domain

// Application statuses. APPLIED is the initial state; HIRED is terminal.
const (
	StatusApplied     = "APPLIED"
	StatusShortlisted = "SHORTLISTED"
	StatusInterview   = "INTERVIEW"
	StatusHired       = "HIRED"
	StatusRejected    = "REJECTED"
)

// ApplicationStatuses lists every recognized status
var ApplicationStatuses = []string{
	StatusApplied,
	StatusShortlisted,
	StatusInterview,
	StatusHired,
	StatusRejected,
}

// statusTransitions is the full transition table. Movement between
// non-terminal states is free in either direction; the two forbidden edges
// are: anything out of HIRED, and REJECTED straight to HIRED (a rejected
// candidate must pass through another state first).
var statusTransitions = map[string]map[string]bool{
	StatusApplied: {
		StatusApplied:     true,
		StatusShortlisted: true,
		StatusInterview:   true,
		StatusHired:       true,
		StatusRejected:    true,
	},
	StatusShortlisted: {
		StatusApplied:     true,
		StatusShortlisted: true,
		StatusInterview:   true,
		StatusHired:       true,
		StatusRejected:    true,
	},
	StatusInterview: {
		StatusApplied:     true,
		StatusShortlisted: true,
		StatusInterview:   true,
		StatusHired:       true,
		StatusRejected:    true,
	},
	StatusHired: {
		StatusApplied:     false,
		StatusShortlisted: false,
		StatusInterview:   false,
		StatusHired:       true,
		StatusRejected:    false,
	},
	StatusRejected: {
		StatusApplied:     true,
		StatusShortlisted: true,
		StatusInterview:   true,
		StatusHired:       false,
		StatusRejected:    true,
	},
}

// ValidApplicationStatus reports whether s is a recognized status value
func ValidApplicationStatus(s string) bool {
	_, ok := statusTransitions[s]
	return ok
}

// CanTransition reports whether an application may move from one status to
// another. Unrecognized values are never allowed.
func CanTransition(from, to string) bool {
	targets, ok := statusTransitions[from]
	if !ok {
		return false
	}
	return targets[to]
}
