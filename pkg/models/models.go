// Package models provides the persisted record types and the request/response
// payloads shared by the planner API, the CLI and external tools.
package models

// Board is a named unit of delivery scoped to a team. It owns its tasks.
type Board struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"board_name" yaml:"board_name"`
	Description string `json:"board_description" yaml:"board_description"`
	TeamID      string `json:"team_id" yaml:"team_id"`
	CreatedAt   string `json:"creation_time" yaml:"creation_time"`
	Status      string `json:"status" yaml:"status"`
	EndTime     string `json:"end_time,omitempty" yaml:"end_time,omitempty"`
	Tasks       []Task `json:"tasks" yaml:"tasks"`
}

// Task is a unit of work nested inside a board.
type Task struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	UserID      string `json:"user_id" yaml:"user_id"`
	Status      string `json:"status" yaml:"status"`
	CreatedAt   string `json:"creation_time" yaml:"creation_time"`
	LastUpdated string `json:"last_updated,omitempty" yaml:"last_updated,omitempty"`
}

// Team groups users under an admin.
type Team struct {
	ID          string   `json:"id"`
	Name        string   `json:"team_name"`
	Description string   `json:"team_description"`
	Admin       string   `json:"admin"`
	CreatedAt   string   `json:"creation_time"`
	Members     []string `json:"members,omitempty"`
}

// User is a person that can administer or belong to teams.
type User struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
	CreatedAt   string `json:"creation_time"`
}

// ErrorResponse is the payload returned for every business failure.
type ErrorResponse struct {
	Error string `json:"error"`
}

// IDResponse is returned by create operations.
type IDResponse struct {
	ID string `json:"id"`
}

// MessageResponse is returned by operations that only acknowledge.
type MessageResponse struct {
	Message string `json:"message"`
}

// BoardSummary is one entry of the board listing.
type BoardSummary struct {
	ID   string `json:"id"`
	Name string `json:"board_name"`
}

// ExportResponse names the file written by an export.
type ExportResponse struct {
	OutFile string `json:"out_file"`
}

// TeamSummary is one entry of the team listing.
type TeamSummary struct {
	Name         string `json:"team_name"`
	Description  string `json:"team_description"`
	CreationTime string `json:"creation_time"`
	Admin        string `json:"admin"`
}

// UserSummary is one entry of the user listing.
type UserSummary struct {
	Name         string `json:"name"`
	DisplayName  string `json:"display_name"`
	CreationTime string `json:"creation_time"`
}

// UserDetail is the describe-user payload.
type UserDetail struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	CreationTime string `json:"creation_time"`
}

// MemberSummary is one entry of a team's user listing.
type MemberSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

// UserTeam is one entry of a user's team listing.
type UserTeam struct {
	Name         string `json:"team_name"`
	Description  string `json:"description"`
	CreationTime string `json:"creation_time"`
}
