// Package board implements project boards and the tasks nested inside them.
//
// Every operation is one unit of work: the board collection is loaded fresh
// into an arena, validated and mutated in memory, then saved whole before the
// call returns. Business rule violations are returned as *apperr.Error.
package board

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/renukapawar30/Project-Planner-Tool/internal/apperr"
	"github.com/renukapawar30/Project-Planner-Tool/internal/directory"
	"github.com/renukapawar30/Project-Planner-Tool/internal/logging"
	"github.com/renukapawar30/Project-Planner-Tool/internal/otel"
	"github.com/renukapawar30/Project-Planner-Tool/internal/store"
	"github.com/renukapawar30/Project-Planner-Tool/pkg/models"
)

// TeamLookup answers whether a team exists. Implementations return
// directory.ErrTeamBaseNotFound when no team was ever stored.
type TeamLookup interface {
	TeamExists(ctx context.Context, id string) (bool, error)
}

// Option configures a Store or TaskManager.
type Option func(*core)

// WithLogger sets the logger. Nil discards output.
func WithLogger(l *zap.Logger) Option {
	return func(c *core) { c.logger = logging.OrNop(l) }
}

// WithMetrics records operation counters on m.
func WithMetrics(m *otel.Metrics) Option {
	return func(c *core) { c.metrics = m }
}

// WithClock overrides the time source for creation, close and update stamps.
func WithClock(now func() time.Time) Option {
	return func(c *core) { c.now = now }
}

// WithIDGenerator overrides board and task id generation.
func WithIDGenerator(gen func() string) Option {
	return func(c *core) { c.newID = gen }
}

// WithExportDir sets the directory ExportBoard writes into.
func WithExportDir(dir string) Option {
	return func(c *core) { c.exportDir = dir }
}

// core holds the dependencies shared by Store and TaskManager.
type core struct {
	store     store.Store
	teams     TeamLookup
	logger    *zap.Logger
	metrics   *otel.Metrics
	now       func() time.Time
	newID     func() string
	exportDir string
}

func newCore(st store.Store, teams TeamLookup, opts []Option) core {
	c := core{
		store:     st,
		teams:     teams,
		logger:    zap.NewNop(),
		now:       time.Now,
		newID:     uuid.NewString,
		exportDir: "out",
	}
	for _, o := range opts {
		o(&c)
	}
	return c
}

func (c *core) timestamp() string {
	return c.now().Format(models.TimeLayout)
}

// checkTeam resolves teamID through the lookup, mapping a missing team
// collection to baseMissing and an unknown id to unknown.
func (c *core) checkTeam(ctx context.Context, teamID, baseMissing, unknown string) error {
	ok, err := c.teams.TeamExists(ctx, teamID)
	if errors.Is(err, directory.ErrTeamBaseNotFound) {
		return apperr.StorageAbsent(baseMissing)
	}
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound(unknown)
	}
	return nil
}

// observe logs and counts the outcome of op.
func (c *core) observe(ctx context.Context, op string, start time.Time, err error, fields ...zap.Field) {
	outcome := otel.OutcomeOK
	switch e, ok := apperr.As(err); {
	case err == nil:
		c.logger.Debug(op, fields...)
	case ok:
		outcome = otel.OutcomeRejected
		c.logger.Info(op+" rejected", append(fields, zap.String("reason", e.Message))...)
	default:
		outcome = otel.OutcomeError
		c.logger.Error(op+" failed", append(fields, zap.Error(err))...)
	}
	c.metrics.RecordOp(ctx, op, outcome, time.Since(start))
}
