package constants

// Session and context keys
const (
	ContextKeyUserID = "user_id"
	SessionKeyVisits = "num_visits"
)

// Pagination
const (
	MinPage           = 1
	WorkerPageSize    = 5
	TaskPageSize      = 8
	MaxPageSize       = 100
)

// Auth
const (
	MinPasswordLength = 8
)

// DueSoonDays is the notification window for upcoming deadlines.
const DueSoonDays = 3
