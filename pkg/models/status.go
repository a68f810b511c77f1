package models

// Board statuses.
const (
	BoardOpen   = "OPEN"
	BoardClosed = "CLOSED"
)

// Task statuses. New tasks start IN_PROGRESS, not OPEN.
const (
	TaskOpen       = "OPEN"
	TaskInProgress = "IN_PROGRESS"
	TaskComplete   = "COMPLETE"
)

// ValidTaskStatus reports whether s is one of the accepted task statuses.
func ValidTaskStatus(s string) bool {
	switch s {
	case TaskOpen, TaskInProgress, TaskComplete:
		return true
	}
	return false
}

// Field limits, counted in Unicode code points.
const (
	MaxNameLen        = 64
	MaxDescriptionLen = 128
	MaxTeamMembers    = 50
)

// TimeLayout is the layout used for every persisted timestamp.
const TimeLayout = "2006-01-02 15:04:05"

// Collection names.
const (
	CollectionBoards = "boards"
	CollectionTeams  = "teams"
	CollectionUsers  = "users"
)
