package common

var (
	// TaskStatuses is the full set of allowed task states. Transitions are
	// not order-enforced; only membership is validated.
	TaskStatuses = map[string]bool{
		StatusTodo:            true,
		StatusInProgress:      true,
		StatusIssuedForReview: true,
		StatusDone:            true,
	}

	// ImageExtensions is the upload allow-list for job images.
	ImageExtensions = map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
		".webp": true,
	}
)

const (
	StatusTodo            = "todo"
	StatusInProgress      = "in_progress"
	StatusIssuedForReview = "issued_for_review"
	StatusDone            = "done"

	RoleManager = "manager"
	RoleMember  = "member"

	// SessionCookie carries the signed session token.
	SessionCookie = "tt_session"

	// DateLayout is the wire format for due dates (forms, filters, CSV).
	DateLayout = "2006-01-02"
)

// ValidStatus reports whether s is one of the four task states.
func ValidStatus(s string) bool {
	return TaskStatuses[s]
}
