package board

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renukapawar30/Project-Planner-Tool/internal/apperr"
	"github.com/renukapawar30/Project-Planner-Tool/internal/directory"
	"github.com/renukapawar30/Project-Planner-Tool/internal/store"
	"github.com/renukapawar30/Project-Planner-Tool/pkg/models"
)

type teamSet map[string]bool

func (t teamSet) TeamExists(_ context.Context, id string) (bool, error) {
	if t == nil {
		return false, directory.ErrTeamBaseNotFound
	}
	return t[id], nil
}

type fixture struct {
	mem    *store.MemoryStore
	boards *Store
	tasks  *TaskManager
	dir    string
}

var fixedNow = time.Date(2024, 5, 6, 10, 11, 12, 0, time.Local)

func newFixture(t *testing.T, teams TeamLookup) *fixture {
	t.Helper()
	mem := store.NewMemory()
	st := store.NewGuarded(mem, "")
	dir := filepath.Join(t.TempDir(), "out")
	n := 0
	opts := []Option{
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
		WithExportDir(dir),
	}
	return &fixture{
		mem:    mem,
		boards: NewStore(st, teams, opts...),
		tasks:  NewTaskManager(st, teams, opts...),
		dir:    dir,
	}
}

func requireAppErr(t *testing.T, err error, msg string) {
	t.Helper()
	e, ok := apperr.As(err)
	require.True(t, ok, "expected *apperr.Error, got %v", err)
	assert.Equal(t, msg, e.Message)
}

func TestCreateBoard(t *testing.T) {
	t.Parallel()
	f := newFixture(t, teamSet{"T1": true})
	ctx := context.Background()

	id, err := f.boards.CreateBoard(ctx, CreateBoardInput{Name: "Sprint1", Description: "first", TeamID: "T1"})
	require.NoError(t, err)
	assert.Equal(t, "id-1", id)

	b, err := f.boards.DescribeBoard(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Sprint1", b.Name)
	assert.Equal(t, "T1", b.TeamID)
	assert.Equal(t, models.BoardOpen, b.Status)
	assert.Equal(t, "2024-05-06 10:11:12", b.CreatedAt)
	assert.Empty(t, b.EndTime)
	assert.NotNil(t, b.Tasks)
	assert.Empty(t, b.Tasks)
}

func TestCreateBoard_validation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t, teamSet{"T1": true, "T2": true})
	_, err := f.boards.CreateBoard(ctx, CreateBoardInput{Name: "Sprint1", TeamID: "T1"})
	require.NoError(t, err)

	cases := []struct {
		name string
		in   CreateBoardInput
		want string
	}{
		{"name too long", CreateBoardInput{Name: strings.Repeat("x", 65), TeamID: "T1"}, "Board name exceed 64 character"},
		{"name checked before description", CreateBoardInput{Name: strings.Repeat("x", 65), Description: strings.Repeat("d", 129)}, "Board name exceed 64 character"},
		{"description too long", CreateBoardInput{Name: "ok", Description: strings.Repeat("d", 129), TeamID: "T1"}, "Board description exceed 128 character"},
		{"missing team", CreateBoardInput{Name: "ok"}, "Missing team id"},
		{"unknown team", CreateBoardInput{Name: "ok", TeamID: "T9"}, "Team id does not exist"},
		{"duplicate across teams", CreateBoardInput{Name: "Sprint1", TeamID: "T2"}, "Board Name already exists"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.boards.CreateBoard(ctx, tc.in)
			requireAppErr(t, err, tc.want)
		})
	}

	// Exactly at the limits is accepted, counted in runes.
	_, err = f.boards.CreateBoard(ctx, CreateBoardInput{
		Name:        strings.Repeat("é", 64),
		Description: strings.Repeat("ü", 128),
		TeamID:      "T1",
	})
	require.NoError(t, err)
}

func TestCreateBoard_teamBaseAbsent(t *testing.T) {
	t.Parallel()
	f := newFixture(t, teamSet(nil))
	_, err := f.boards.CreateBoard(context.Background(), CreateBoardInput{Name: "b", TeamID: "T1"})
	requireAppErr(t, err, "Team Base not found")
	assert.True(t, apperr.HasCode(err, apperr.CodeStorageAbsent))
}

func TestCloseBoard(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t, teamSet{"T1": true})

	requireAppErr(t, f.boards.CloseBoard(ctx, ""), "Board ID is required")
	requireAppErr(t, f.boards.CloseBoard(ctx, "nope"), "Board not found")

	id, err := f.boards.CreateBoard(ctx, CreateBoardInput{Name: "empty", TeamID: "T1"})
	require.NoError(t, err)
	require.NoError(t, f.boards.CloseBoard(ctx, id))

	b, err := f.boards.DescribeBoard(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.BoardClosed, b.Status)
	assert.Equal(t, "2024-05-06 10:11:12", b.EndTime)

	requireAppErr(t, f.boards.CloseBoard(ctx, id), "Board already closed")
}

func TestCloseBoard_requiresCompleteTasks(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t, teamSet{"T1": true})
	bid, err := f.boards.CreateBoard(ctx, CreateBoardInput{Name: "Sprint1", TeamID: "T1"})
	require.NoError(t, err)
	t1, err := f.tasks.AddTask(ctx, AddTaskInput{BoardID: bid, Title: "a", UserID: "T1"})
	require.NoError(t, err)
	t2, err := f.tasks.AddTask(ctx, AddTaskInput{BoardID: bid, Title: "b", UserID: "T1"})
	require.NoError(t, err)

	require.NoError(t, f.tasks.UpdateTaskStatus(ctx, t1, models.TaskComplete))
	requireAppErr(t, f.boards.CloseBoard(ctx, bid), "All tasks must be COMPLETE to close the board")

	b, err := f.boards.DescribeBoard(ctx, bid)
	require.NoError(t, err)
	assert.Equal(t, models.BoardOpen, b.Status)
	assert.Empty(t, b.EndTime)

	require.NoError(t, f.tasks.UpdateTaskStatus(ctx, t2, models.TaskComplete))
	require.NoError(t, f.boards.CloseBoard(ctx, bid))

	_, err = f.tasks.AddTask(ctx, AddTaskInput{BoardID: bid, Title: "c", UserID: "T1"})
	requireAppErr(t, err, "Board already closed")
}

func TestAddTask(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t, teamSet{"T1": true})
	bid, err := f.boards.CreateBoard(ctx, CreateBoardInput{Name: "Sprint1", TeamID: "T1"})
	require.NoError(t, err)

	tid, err := f.tasks.AddTask(ctx, AddTaskInput{BoardID: bid, Title: "Fix bug", Description: "crash", UserID: "T1"})
	require.NoError(t, err)
	_, err = f.tasks.AddTask(ctx, AddTaskInput{BoardID: bid, Title: "Backdated", UserID: "T1", CreationTime: "2023-01-01 00:00:00"})
	require.NoError(t, err)

	b, err := f.boards.DescribeBoard(ctx, bid)
	require.NoError(t, err)
	require.Len(t, b.Tasks, 2)
	assert.Equal(t, tid, b.Tasks[0].ID)
	assert.Equal(t, models.TaskInProgress, b.Tasks[0].Status)
	assert.Equal(t, "2024-05-06 10:11:12", b.Tasks[0].CreatedAt)
	assert.Equal(t, "T1", b.Tasks[0].UserID)
	assert.Empty(t, b.Tasks[0].LastUpdated)
	assert.Equal(t, "2023-01-01 00:00:00", b.Tasks[1].CreatedAt)

	_, err = f.tasks.AddTask(ctx, AddTaskInput{BoardID: bid, Title: "FIX BUG", UserID: "T1"})
	requireAppErr(t, err, "Task title already exists in board")
}

func TestAddTask_validationOrder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	long := strings.Repeat("t", 65)

	_, err := newFixture(t, teamSet(nil)).tasks.AddTask(ctx, AddTaskInput{Title: long})
	requireAppErr(t, err, "TeamBase not found")

	f := newFixture(t, teamSet{"T1": true})
	cases := []struct {
		name string
		in   AddTaskInput
		want string
	}{
		{"team before title", AddTaskInput{Title: long, UserID: "T9"}, "Team id does not exist"},
		{"title", AddTaskInput{Title: long, UserID: "T1"}, "Title exceeds 64 characters"},
		{"description", AddTaskInput{Title: "t", Description: strings.Repeat("d", 129), UserID: "T1"}, "Description exceeds 128 characters"},
		{"board id", AddTaskInput{Title: "t", UserID: "T1"}, "Missing board id"},
		{"board", AddTaskInput{BoardID: "nope", Title: "t", UserID: "T1"}, "Board not found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.tasks.AddTask(ctx, tc.in)
			requireAppErr(t, err, tc.want)
		})
	}
}

func TestUpdateTaskStatus(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t, teamSet{"T1": true})
	b1, err := f.boards.CreateBoard(ctx, CreateBoardInput{Name: "one", TeamID: "T1"})
	require.NoError(t, err)
	b2, err := f.boards.CreateBoard(ctx, CreateBoardInput{Name: "two", TeamID: "T1"})
	require.NoError(t, err)
	_, err = f.tasks.AddTask(ctx, AddTaskInput{BoardID: b1, Title: "a", UserID: "T1"})
	require.NoError(t, err)
	tid, err := f.tasks.AddTask(ctx, AddTaskInput{BoardID: b2, Title: "a", UserID: "T1"})
	require.NoError(t, err)

	requireAppErr(t, f.tasks.UpdateTaskStatus(ctx, "", models.TaskOpen), "Missing task id or status")
	requireAppErr(t, f.tasks.UpdateTaskStatus(ctx, tid, ""), "Missing task id or status")
	requireAppErr(t, f.tasks.UpdateTaskStatus(ctx, tid, "DONE"), "Invalid status value")
	requireAppErr(t, f.tasks.UpdateTaskStatus(ctx, "ghost", models.TaskOpen), "Task not found")

	for _, st := range []string{models.TaskComplete, models.TaskOpen, models.TaskInProgress, models.TaskComplete} {
		require.NoError(t, f.tasks.UpdateTaskStatus(ctx, tid, st))
	}
	got, err := f.boards.DescribeBoard(ctx, b2)
	require.NoError(t, err)
	assert.Equal(t, models.TaskComplete, got.Tasks[0].Status)
	assert.Equal(t, "2024-05-06 10:11:12", got.Tasks[0].LastUpdated)

	other, err := f.boards.DescribeBoard(ctx, b1)
	require.NoError(t, err)
	assert.Equal(t, models.TaskInProgress, other.Tasks[0].Status)
}

func TestListBoards(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t, teamSet{"T1": true, "T2": true})

	_, err := f.boards.ListBoards(ctx, "")
	requireAppErr(t, err, "Missing team id")
	_, err = f.boards.ListBoards(ctx, "T9")
	requireAppErr(t, err, "Team ID does not exist")
	_, err = newFixture(t, teamSet(nil)).boards.ListBoards(ctx, "T1")
	requireAppErr(t, err, "TeamBase not found")

	_, err = f.boards.CreateBoard(ctx, CreateBoardInput{Name: "owned-by-T1", TeamID: "T1"})
	require.NoError(t, err)
	assigned, err := f.boards.CreateBoard(ctx, CreateBoardInput{Name: "owned-by-T2", TeamID: "T2"})
	require.NoError(t, err)
	_, err = f.tasks.AddTask(ctx, AddTaskInput{BoardID: assigned, Title: "x", UserID: "T1"})
	require.NoError(t, err)
	_, err = f.tasks.AddTask(ctx, AddTaskInput{BoardID: assigned, Title: "y", UserID: "T1"})
	require.NoError(t, err)

	// Boards are selected by task assignment, not by the board's team.
	got, err := f.boards.ListBoards(ctx, "T1")
	require.NoError(t, err)
	assert.Equal(t, []models.BoardSummary{{ID: assigned, Name: "owned-by-T2"}}, got)

	got, err = f.boards.ListBoards(ctx, "T2")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestExportBoard(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t, teamSet{"T1": true})

	_, err := f.boards.ExportBoard(ctx, "")
	requireAppErr(t, err, "Missing board id")
	_, err = f.boards.ExportBoard(ctx, "nope")
	requireAppErr(t, err, "Board not found")

	bid, err := f.boards.CreateBoard(ctx, CreateBoardInput{Name: "Sprint 1/α", Description: "first", TeamID: "T1"})
	require.NoError(t, err)
	_, err = f.tasks.AddTask(ctx, AddTaskInput{BoardID: bid, Title: "Fix bug", Description: "crash on start", UserID: "T1"})
	require.NoError(t, err)

	name, err := f.boards.ExportBoard(ctx, bid)
	require.NoError(t, err)
	assert.Equal(t, "Sprint_1_α_"+bid+".txt", name)

	data, err := os.ReadFile(filepath.Join(f.dir, name))
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "BOARD NAME     : Sprint 1/α")
	assert.Contains(t, out, "TASK COUNT     : 1")
	assert.Contains(t, out, "END TIME       : -")
	assert.Contains(t, out, "  Title       : Fix bug")
	assert.Contains(t, out, "  Assigned To : T1")
	assert.Contains(t, out, "  Status      : IN_PROGRESS")
}

func TestExportBoard_noTasks(t *testing.T) {
	t.Parallel()
	out := renderExport(models.Board{ID: "b", Name: "empty", Status: models.BoardOpen}, "now")
	assert.Contains(t, out, "TASK COUNT     : 0")
	assert.True(t, strings.HasSuffix(out, "No tasks available in this board.\n"))
}

func TestSanitize(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Q3_Launch__v2_", sanitize("Q3 Launch (v2)"))
	assert.Equal(t, "日本語", sanitize("日本語"))
	assert.Equal(t, "Ⅻ_x²", sanitize("Ⅻ-x²"))
}

func TestStorageFaultIsNotBusinessError(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t, teamSet{"T1": true})
	f.mem.Put(models.CollectionBoards, []byte(`{"not": "an array"`))

	_, err := f.boards.CreateBoard(ctx, CreateBoardInput{Name: "b", TeamID: "T1"})
	require.Error(t, err)
	_, isApp := apperr.As(err)
	assert.False(t, isApp)
	var de *store.DecodeError
	assert.True(t, errors.As(err, &de))
}

func TestLegacyBoardWithoutStatusIsOpen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t, teamSet{"T1": true})
	f.mem.Put(models.CollectionBoards, []byte(`[{"id": "b1", "board_name": "old", "board_description": "", "team_id": "T1", "creation_time": "2020-01-01 00:00:00"}]`))

	_, err := f.tasks.AddTask(ctx, AddTaskInput{BoardID: "b1", Title: "t", UserID: "T1"})
	require.NoError(t, err)
	b, err := f.boards.DescribeBoard(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, models.BoardOpen, b.Status)
	assert.Len(t, b.Tasks, 1)
}

func TestUpdateTaskStatus_duplicateIDFirstBoardWins(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t, teamSet{"T1": true})
	task := `{"id": "dup", "title": "t", "description": "", "user_id": "T1", "status": "OPEN", "creation_time": "2020-01-01 00:00:00"}`
	f.mem.Put(models.CollectionBoards, []byte(`[`+
		`{"id": "b1", "board_name": "one", "board_description": "", "team_id": "T1", "creation_time": "2020-01-01 00:00:00", "status": "OPEN", "tasks": [`+task+`]},`+
		`{"id": "b2", "board_name": "two", "board_description": "", "team_id": "T1", "creation_time": "2020-01-01 00:00:00", "status": "OPEN", "tasks": [`+task+`]}]`))

	require.NoError(t, f.tasks.UpdateTaskStatus(ctx, "dup", models.TaskComplete))
	require.NoError(t, f.tasks.UpdateTaskStatus(ctx, "dup", models.TaskInProgress))

	b1, err := f.boards.DescribeBoard(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, models.TaskInProgress, b1.Tasks[0].Status)
	b2, err := f.boards.DescribeBoard(ctx, "b2")
	require.NoError(t, err)
	assert.Equal(t, models.TaskOpen, b2.Tasks[0].Status)
}
