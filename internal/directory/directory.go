// Package directory manages the user and team collections and answers the
// existence lookups the board subsystem depends on.
package directory

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/renukapawar30/Project-Planner-Tool/internal/logging"
	"github.com/renukapawar30/Project-Planner-Tool/internal/store"
	"github.com/renukapawar30/Project-Planner-Tool/pkg/models"
)

var (
	// ErrTeamBaseNotFound means the team collection was never persisted.
	ErrTeamBaseNotFound = errors.New("team collection not found")
	// ErrUserBaseNotFound means the user collection was never persisted.
	ErrUserBaseNotFound = errors.New("user collection not found")
)

// Service implements user and team management on top of a store.Store.
type Service struct {
	store  store.Store
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source used for creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator overrides record id generation.
func WithIDGenerator(gen func() string) Option {
	return func(s *Service) { s.newID = gen }
}

// New returns a Service. A nil logger discards output.
func New(st store.Store, logger *zap.Logger, opts ...Option) *Service {
	s := &Service{
		store:  st,
		logger: logging.OrNop(logger).Named("directory"),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Service) timestamp() string {
	return s.now().Format(models.TimeLayout)
}

func tooLong(v string, max int) bool {
	return utf8.RuneCountInString(v) > max
}

func loadUsers(ctx context.Context, a store.Accessor) ([]models.User, error) {
	recs, err := a.Load(ctx, models.CollectionUsers)
	if err != nil {
		return nil, err
	}
	return store.Unmarshal[models.User](models.CollectionUsers, recs)
}

func saveUsers(ctx context.Context, a store.Accessor, users []models.User) error {
	recs, err := store.Records(users)
	if err != nil {
		return err
	}
	return a.Save(ctx, models.CollectionUsers, recs)
}

func loadTeams(ctx context.Context, a store.Accessor) ([]models.Team, error) {
	recs, err := a.Load(ctx, models.CollectionTeams)
	if err != nil {
		return nil, err
	}
	return store.Unmarshal[models.Team](models.CollectionTeams, recs)
}

func saveTeams(ctx context.Context, a store.Accessor, teams []models.Team) error {
	recs, err := store.Records(teams)
	if err != nil {
		return err
	}
	return a.Save(ctx, models.CollectionTeams, recs)
}

// requireCollection returns absent when the collection was never saved.
func requireCollection(ctx context.Context, a store.Accessor, collection string, absent error) error {
	ok, err := a.Exists(ctx, collection)
	if err != nil {
		return err
	}
	if !ok {
		return absent
	}
	return nil
}

// TeamExists reports whether a team with id exists. It returns
// ErrTeamBaseNotFound when no team was ever stored.
func (s *Service) TeamExists(ctx context.Context, id string) (bool, error) {
	var found bool
	err := s.store.Do(ctx, func(a store.Accessor) error {
		if err := requireCollection(ctx, a, models.CollectionTeams, ErrTeamBaseNotFound); err != nil {
			return err
		}
		teams, err := loadTeams(ctx, a)
		if err != nil {
			return err
		}
		found = findTeam(teams, id) >= 0
		return nil
	})
	return found, err
}

// UserExists reports whether a user with id exists. It returns
// ErrUserBaseNotFound when no user was ever stored.
func (s *Service) UserExists(ctx context.Context, id string) (bool, error) {
	var found bool
	err := s.store.Do(ctx, func(a store.Accessor) error {
		if err := requireCollection(ctx, a, models.CollectionUsers, ErrUserBaseNotFound); err != nil {
			return err
		}
		users, err := loadUsers(ctx, a)
		if err != nil {
			return err
		}
		found = findUser(users, id) >= 0
		return nil
	})
	return found, err
}

func findTeam(teams []models.Team, id string) int {
	for i := range teams {
		if teams[i].ID == id {
			return i
		}
	}
	return -1
}

func findUser(users []models.User, id string) int {
	for i := range users {
		if users[i].ID == id {
			return i
		}
	}
	return -1
}
