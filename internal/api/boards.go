package api

import (
	"context"

	"github.com/renukapawar30/Project-Planner-Tool/internal/board"
	"github.com/renukapawar30/Project-Planner-Tool/pkg/models"
)

type taskStatusRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// CreateBoard serves {"board_name", "board_description", "team_id"} with {"id"}.
func (a *API) CreateBoard(ctx context.Context, req []byte) ([]byte, error) {
	return serve(req, func(in board.CreateBoardInput) (models.IDResponse, error) {
		return created(a.boards.CreateBoard(ctx, in))
	})
}

// CloseBoard serves {"id"} with {"message"}.
func (a *API) CloseBoard(ctx context.Context, req []byte) ([]byte, error) {
	return serve(req, func(in idRequest) (models.MessageResponse, error) {
		return message("Board closed successfully", a.boards.CloseBoard(ctx, in.ID))
	})
}

// ListBoards serves {"id": team id} with [{"id", "board_name"}].
func (a *API) ListBoards(ctx context.Context, req []byte) ([]byte, error) {
	return serve(req, func(in idRequest) ([]models.BoardSummary, error) {
		return a.boards.ListBoards(ctx, in.ID)
	})
}

// ExportBoard serves {"id"} with {"out_file"}.
func (a *API) ExportBoard(ctx context.Context, req []byte) ([]byte, error) {
	return serve(req, func(in idRequest) (models.ExportResponse, error) {
		name, err := a.boards.ExportBoard(ctx, in.ID)
		if err != nil {
			return models.ExportResponse{}, err
		}
		return models.ExportResponse{OutFile: name}, nil
	})
}

// DescribeBoard serves {"id"} with the full board record.
func (a *API) DescribeBoard(ctx context.Context, req []byte) ([]byte, error) {
	return serve(req, func(in idRequest) (models.Board, error) {
		return a.boards.DescribeBoard(ctx, in.ID)
	})
}

// AddTask serves {"id": board id, "title", "description", "user_id",
// "creation_time"} with {"id"}.
func (a *API) AddTask(ctx context.Context, req []byte) ([]byte, error) {
	return serve(req, func(in board.AddTaskInput) (models.IDResponse, error) {
		return created(a.tasks.AddTask(ctx, in))
	})
}

// UpdateTaskStatus serves {"id", "status"} with {"message"}.
func (a *API) UpdateTaskStatus(ctx context.Context, req []byte) ([]byte, error) {
	return serve(req, func(in taskStatusRequest) (models.MessageResponse, error) {
		return message("Task status updated successfully", a.tasks.UpdateTaskStatus(ctx, in.ID, in.Status))
	})
}
