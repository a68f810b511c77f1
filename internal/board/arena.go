package board

import (
	"context"
	"slices"

	"github.com/renukapawar30/Project-Planner-Tool/internal/store"
	"github.com/renukapawar30/Project-Planner-Tool/pkg/models"
)

// arena is the board collection of one unit of work: boards keyed by id in
// load order, plus a task id to board id index.
type arena struct {
	boards map[string]*models.Board
	order  []string
	tasks  map[string]string
}

func loadArena(ctx context.Context, a store.Accessor) (*arena, error) {
	recs, err := a.Load(ctx, models.CollectionBoards)
	if err != nil {
		return nil, err
	}
	boards, err := store.Unmarshal[models.Board](models.CollectionBoards, recs)
	if err != nil {
		return nil, err
	}
	ar := &arena{
		boards: make(map[string]*models.Board, len(boards)),
		order:  make([]string, 0, len(boards)),
		tasks:  make(map[string]string),
	}
	for i := range boards {
		b := boards[i]
		if b.Status == "" {
			b.Status = models.BoardOpen
		}
		ar.put(b)
	}
	return ar, nil
}

// get returns a copy of the board with id. Callers modify the copy and hand
// it back through put.
func (ar *arena) get(id string) (models.Board, bool) {
	b, ok := ar.boards[id]
	if !ok {
		return models.Board{}, false
	}
	cp := *b
	cp.Tasks = slices.Clone(b.Tasks)
	return cp, true
}

// put inserts or replaces b and reindexes its tasks. A task id repeated
// across boards stays owned by the first board in load order.
func (ar *arena) put(b models.Board) {
	if old, ok := ar.boards[b.ID]; ok {
		for _, t := range old.Tasks {
			if ar.tasks[t.ID] == b.ID {
				delete(ar.tasks, t.ID)
			}
		}
	} else {
		ar.order = append(ar.order, b.ID)
	}
	ar.boards[b.ID] = &b
	for _, t := range b.Tasks {
		if _, taken := ar.tasks[t.ID]; !taken {
			ar.tasks[t.ID] = b.ID
		}
	}
}

func (ar *arena) nameTaken(name string) bool {
	for _, b := range ar.boards {
		if b.Name == name {
			return true
		}
	}
	return false
}

// boardOfTask returns the id of the board holding task id.
func (ar *arena) boardOfTask(id string) (string, bool) {
	bid, ok := ar.tasks[id]
	return bid, ok
}

// all returns the boards in load order.
func (ar *arena) all() []*models.Board {
	out := make([]*models.Board, 0, len(ar.order))
	for _, id := range ar.order {
		out = append(out, ar.boards[id])
	}
	return out
}

func (ar *arena) save(ctx context.Context, a store.Accessor) error {
	boards := make([]models.Board, 0, len(ar.order))
	for _, b := range ar.all() {
		cp := *b
		if cp.Tasks == nil {
			cp.Tasks = []models.Task{}
		}
		boards = append(boards, cp)
	}
	recs, err := store.Records(boards)
	if err != nil {
		return err
	}
	return a.Save(ctx, models.CollectionBoards, recs)
}
