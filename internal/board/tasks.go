package board

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/renukapawar30/Project-Planner-Tool/internal/apperr"
	"github.com/renukapawar30/Project-Planner-Tool/internal/store"
	"github.com/renukapawar30/Project-Planner-Tool/pkg/models"
)

// AddTaskInput is the request for AddTask. UserID is the team the task is
// assigned to. CreationTime defaults to now when empty.
type AddTaskInput struct {
	BoardID      string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	UserID       string `json:"user_id"`
	CreationTime string `json:"creation_time,omitempty"`
}

// TaskManager adds tasks to boards and moves them between statuses.
type TaskManager struct {
	core
}

// NewTaskManager returns a TaskManager persisting through st.
func NewTaskManager(st store.Store, teams TeamLookup, opts ...Option) *TaskManager {
	return &TaskManager{core: newCore(st, teams, opts)}
}

// AddTask appends a new IN_PROGRESS task to an OPEN board and returns its id.
// Titles are unique within a board regardless of case.
func (m *TaskManager) AddTask(ctx context.Context, in AddTaskInput) (id string, err error) {
	defer func(start time.Time) {
		m.observe(ctx, "add_task", start, err, zap.String("board_id", in.BoardID), zap.String("task_id", id))
	}(time.Now())

	if err := m.checkTeam(ctx, in.UserID, "TeamBase not found", "Team id does not exist"); err != nil {
		return "", err
	}
	if utf8.RuneCountInString(in.Title) > models.MaxNameLen {
		return "", apperr.Validation("Title exceeds 64 characters")
	}
	if utf8.RuneCountInString(in.Description) > models.MaxDescriptionLen {
		return "", apperr.Validation("Description exceeds 128 characters")
	}
	if in.BoardID == "" {
		return "", apperr.Validation("Missing board id")
	}
	err = m.store.Do(ctx, func(a store.Accessor) error {
		ar, err := loadArena(ctx, a)
		if err != nil {
			return err
		}
		b, ok := ar.get(in.BoardID)
		if !ok {
			return apperr.NotFound("Board not found")
		}
		if b.Status == models.BoardClosed {
			return apperr.Conflict("Board already closed")
		}
		for _, t := range b.Tasks {
			if strings.EqualFold(t.Title, in.Title) {
				return apperr.AlreadyExists("Task title already exists in board")
			}
		}
		created := in.CreationTime
		if created == "" {
			created = m.timestamp()
		}
		id = m.newID()
		b.Tasks = append(b.Tasks, models.Task{
			ID:          id,
			Title:       in.Title,
			Description: in.Description,
			UserID:      in.UserID,
			Status:      models.TaskInProgress,
			CreatedAt:   created,
		})
		ar.put(b)
		return ar.save(ctx, a)
	})
	if err != nil {
		id = ""
		return "", err
	}
	m.metrics.RecordTaskStatus(ctx, models.TaskInProgress)
	return id, nil
}

// UpdateTaskStatus sets the status of the task with id and stamps
// last_updated. Any transition between valid statuses is accepted.
func (m *TaskManager) UpdateTaskStatus(ctx context.Context, id, status string) (err error) {
	defer func(start time.Time) {
		m.observe(ctx, "update_task_status", start, err, zap.String("task_id", id), zap.String("status", status))
	}(time.Now())

	if id == "" || status == "" {
		return apperr.Validation("Missing task id or status")
	}
	if !models.ValidTaskStatus(status) {
		return apperr.Validation("Invalid status value")
	}
	err = m.store.Do(ctx, func(a store.Accessor) error {
		ar, err := loadArena(ctx, a)
		if err != nil {
			return err
		}
		bid, ok := ar.boardOfTask(id)
		if !ok {
			return apperr.NotFound("Task not found")
		}
		b, _ := ar.get(bid)
		for i := range b.Tasks {
			if b.Tasks[i].ID == id {
				b.Tasks[i].Status = status
				b.Tasks[i].LastUpdated = m.timestamp()
				break
			}
		}
		ar.put(b)
		return ar.save(ctx, a)
	})
	if err != nil {
		return err
	}
	m.metrics.RecordTaskStatus(ctx, status)
	return nil
}
