package board

import (
	"context"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/renukapawar30/Project-Planner-Tool/internal/apperr"
	"github.com/renukapawar30/Project-Planner-Tool/internal/store"
	"github.com/renukapawar30/Project-Planner-Tool/pkg/models"
)

// CreateBoardInput is the request for CreateBoard.
type CreateBoardInput struct {
	Name        string `json:"board_name"`
	Description string `json:"board_description"`
	TeamID      string `json:"team_id"`
}

// Store manages the board lifecycle.
type Store struct {
	core
}

// NewStore returns a Store persisting through st and resolving teams via teams.
func NewStore(st store.Store, teams TeamLookup, opts ...Option) *Store {
	return &Store{core: newCore(st, teams, opts)}
}

// CreateBoard creates an OPEN board for an existing team and returns its id.
// Board names are unique across all teams.
func (s *Store) CreateBoard(ctx context.Context, in CreateBoardInput) (id string, err error) {
	defer func(start time.Time) {
		s.observe(ctx, "create_board", start, err, zap.String("board_id", id), zap.String("team_id", in.TeamID))
	}(time.Now())

	if utf8.RuneCountInString(in.Name) > models.MaxNameLen {
		return "", apperr.Validation("Board name exceed 64 character")
	}
	if utf8.RuneCountInString(in.Description) > models.MaxDescriptionLen {
		return "", apperr.Validation("Board description exceed 128 character")
	}
	if in.TeamID == "" {
		return "", apperr.Validation("Missing team id")
	}
	if err := s.checkTeam(ctx, in.TeamID, "Team Base not found", "Team id does not exist"); err != nil {
		return "", err
	}
	err = s.store.Do(ctx, func(a store.Accessor) error {
		ar, err := loadArena(ctx, a)
		if err != nil {
			return err
		}
		if ar.nameTaken(in.Name) {
			return apperr.AlreadyExists("Board Name already exists")
		}
		id = s.newID()
		ar.put(models.Board{
			ID:          id,
			Name:        in.Name,
			Description: in.Description,
			TeamID:      in.TeamID,
			CreatedAt:   s.timestamp(),
			Status:      models.BoardOpen,
			Tasks:       []models.Task{},
		})
		return ar.save(ctx, a)
	})
	if err != nil {
		id = ""
		return "", err
	}
	return id, nil
}

// CloseBoard closes the board with id once every task in it is COMPLETE.
func (s *Store) CloseBoard(ctx context.Context, id string) (err error) {
	defer func(start time.Time) {
		s.observe(ctx, "close_board", start, err, zap.String("board_id", id))
	}(time.Now())

	if id == "" {
		return apperr.Validation("Board ID is required")
	}
	return s.store.Do(ctx, func(a store.Accessor) error {
		ar, err := loadArena(ctx, a)
		if err != nil {
			return err
		}
		b, ok := ar.get(id)
		if !ok {
			return apperr.NotFound("Board not found")
		}
		if b.Status == models.BoardClosed {
			return apperr.Conflict("Board already closed")
		}
		for _, t := range b.Tasks {
			if t.Status != models.TaskComplete {
				return apperr.Conflict("All tasks must be COMPLETE to close the board")
			}
		}
		b.Status = models.BoardClosed
		b.EndTime = s.timestamp()
		ar.put(b)
		return ar.save(ctx, a)
	})
}

// ListBoards returns the boards holding at least one task whose user_id is
// teamID.
func (s *Store) ListBoards(ctx context.Context, teamID string) (out []models.BoardSummary, err error) {
	defer func(start time.Time) {
		s.observe(ctx, "list_boards", start, err, zap.String("team_id", teamID))
	}(time.Now())

	if teamID == "" {
		return nil, apperr.Validation("Missing team id")
	}
	if err := s.checkTeam(ctx, teamID, "TeamBase not found", "Team ID does not exist"); err != nil {
		return nil, err
	}
	out = []models.BoardSummary{}
	err = s.store.Do(ctx, func(a store.Accessor) error {
		ar, err := loadArena(ctx, a)
		if err != nil {
			return err
		}
		for _, b := range ar.all() {
			for _, t := range b.Tasks {
				if t.UserID == teamID {
					out = append(out, models.BoardSummary{ID: b.ID, Name: b.Name})
					break
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DescribeBoard returns the full board with id, tasks included.
func (s *Store) DescribeBoard(ctx context.Context, id string) (out models.Board, err error) {
	defer func(start time.Time) {
		s.observe(ctx, "describe_board", start, err, zap.String("board_id", id))
	}(time.Now())

	if id == "" {
		return models.Board{}, apperr.Validation("Missing board id")
	}
	err = s.store.Do(ctx, func(a store.Accessor) error {
		ar, err := loadArena(ctx, a)
		if err != nil {
			return err
		}
		b, ok := ar.get(id)
		if !ok {
			return apperr.NotFound("Board not found")
		}
		if b.Tasks == nil {
			b.Tasks = []models.Task{}
		}
		out = b
		return nil
	})
	return out, err
}

// ExportBoard renders the board with id as plain text into the export
// directory and returns the file name written.
func (s *Store) ExportBoard(ctx context.Context, id string) (file string, err error) {
	defer func(start time.Time) {
		s.observe(ctx, "export_board", start, err, zap.String("board_id", id), zap.String("file", file))
	}(time.Now())

	if id == "" {
		return "", apperr.Validation("Missing board id")
	}
	var b models.Board
	err = s.store.Do(ctx, func(a store.Accessor) error {
		ar, err := loadArena(ctx, a)
		if err != nil {
			return err
		}
		var ok bool
		if b, ok = ar.get(id); !ok {
			return apperr.NotFound("Board not found")
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return writeExport(s.exportDir, b, s.timestamp())
}

// ExportDir returns the directory ExportBoard writes into.
func (s *Store) ExportDir() string { return s.exportDir }
