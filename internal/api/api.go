// Package api exposes every planner operation as a JSON request/response
// function. Business failures are encoded as {"error": "..."} payloads; only
// malformed requests and storage faults are returned as Go errors.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/renukapawar30/Project-Planner-Tool/internal/apperr"
	"github.com/renukapawar30/Project-Planner-Tool/internal/board"
	"github.com/renukapawar30/Project-Planner-Tool/internal/directory"
	"github.com/renukapawar30/Project-Planner-Tool/pkg/models"
)

// Handler serves one operation.
type Handler func(ctx context.Context, req []byte) ([]byte, error)

// API binds the services to their JSON contract.
type API struct {
	boards *board.Store
	tasks  *board.TaskManager
	dir    *directory.Service
}

// New returns an API over the given services.
func New(boards *board.Store, tasks *board.TaskManager, dir *directory.Service) *API {
	return &API{boards: boards, tasks: tasks, dir: dir}
}

// Operations returns the handlers keyed by operation name.
func (a *API) Operations() map[string]Handler {
	return map[string]Handler{
		"create_board":           a.CreateBoard,
		"close_board":            a.CloseBoard,
		"list_boards":            a.ListBoards,
		"export_board":           a.ExportBoard,
		"describe_board":         a.DescribeBoard,
		"add_task":               a.AddTask,
		"update_task_status":     a.UpdateTaskStatus,
		"create_user":            a.CreateUser,
		"list_users":             a.ListUsers,
		"describe_user":          a.DescribeUser,
		"update_user":            a.UpdateUser,
		"get_user_teams":         a.GetUserTeams,
		"create_team":            a.CreateTeam,
		"list_teams":             a.ListTeams,
		"describe_team":          a.DescribeTeam,
		"update_team":            a.UpdateTeam,
		"add_users_to_team":      a.AddUsersToTeam,
		"remove_users_from_team": a.RemoveUsersFromTeam,
		"list_team_users":        a.ListTeamUsers,
	}
}

// OperationNames returns the sorted operation names.
func (a *API) OperationNames() []string {
	ops := a.Operations()
	names := make([]string, 0, len(ops))
	for n := range ops {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// idRequest is the request shape of every operation keyed by a single id.
type idRequest struct {
	ID string `json:"id"`
}

// decode parses req into v. A blank request decodes as {}.
func decode(req []byte, v any) error {
	if len(bytes.TrimSpace(req)) == 0 {
		return nil
	}
	if err := json.Unmarshal(req, v); err != nil {
		return fmt.Errorf("decode request: %w", err)
	}
	return nil
}

// respond encodes v, or the business error carried by err.
func respond(v any, err error) ([]byte, error) {
	if e, ok := apperr.As(err); ok {
		return json.Marshal(models.ErrorResponse{Error: e.Message})
	}
	if err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

// serve decodes req into a Req and responds with the result of fn.
func serve[Req, Resp any](req []byte, fn func(Req) (Resp, error)) ([]byte, error) {
	var in Req
	if err := decode(req, &in); err != nil {
		return nil, err
	}
	return respond(fn(in))
}

func message(text string, err error) (models.MessageResponse, error) {
	if err != nil {
		return models.MessageResponse{}, err
	}
	return models.MessageResponse{Message: text}, nil
}

func created(id string, err error) (models.IDResponse, error) {
	if err != nil {
		return models.IDResponse{}, err
	}
	return models.IDResponse{ID: id}, nil
}
