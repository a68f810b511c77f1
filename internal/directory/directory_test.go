package directory

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renukapawar30/Project-Planner-Tool/internal/apperr"
	"github.com/renukapawar30/Project-Planner-Tool/internal/store"
)

func newService(t *testing.T) *Service {
	t.Helper()
	n := 0
	clock := time.Date(2024, 3, 1, 9, 30, 0, 0, time.Local)
	return New(store.NewGuarded(store.NewMemory(), ""), nil,
		WithClock(func() time.Time { return clock }),
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
	)
}

func requireAppErr(t *testing.T, err error, code, msg string) {
	t.Helper()
	e, ok := apperr.As(err)
	require.True(t, ok, "expected *apperr.Error, got %v", err)
	assert.Equal(t, code, e.Code)
	assert.Equal(t, msg, e.Message)
}

func TestCreateUser(t *testing.T) {
	t.Parallel()
	s := newService(t)
	ctx := context.Background()

	id, err := s.CreateUser(ctx, CreateUserInput{Name: "alice", DisplayName: "Alice"})
	require.NoError(t, err)
	assert.Equal(t, "id-1", id)

	_, err = s.CreateUser(ctx, CreateUserInput{Name: "alice", DisplayName: "Other"})
	requireAppErr(t, err, apperr.CodeAlreadyExists, "Username already exists")

	_, err = s.CreateUser(ctx, CreateUserInput{Name: strings.Repeat("a", 65)})
	requireAppErr(t, err, apperr.CodeValidation, "Name or Display_name exceeds 64 characters")

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Alice", users[0].DisplayName)
	assert.Equal(t, "2024-03-01 09:30:00", users[0].CreationTime)
}

func TestListUsers_emptyWhenAbsent(t *testing.T) {
	t.Parallel()
	users, err := newService(t).ListUsers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestDescribeAndUpdateUser(t *testing.T) {
	t.Parallel()
	s := newService(t)
	ctx := context.Background()

	_, err := s.DescribeUser(ctx, "id-1")
	requireAppErr(t, err, apperr.CodeStorageAbsent, "User base file not found")

	id, err := s.CreateUser(ctx, CreateUserInput{Name: "bob", DisplayName: "Bob", Description: "ops"})
	require.NoError(t, err)

	_, err = s.DescribeUser(ctx, "")
	requireAppErr(t, err, apperr.CodeValidation, "Missing user id")
	_, err = s.DescribeUser(ctx, "nope")
	requireAppErr(t, err, apperr.CodeNotFound, "User not found")

	rename := "robert"
	err = s.UpdateUser(ctx, id, UserPatch{Name: &rename})
	requireAppErr(t, err, apperr.CodeConflict, "User cannot be updated")

	long := strings.Repeat("d", 129)
	err = s.UpdateUser(ctx, id, UserPatch{DisplayName: &long})
	requireAppErr(t, err, apperr.CodeValidation, "Display name exceed 128 characters")

	// 100 runes is fine on update even though create caps display names at 64.
	display := strings.Repeat("é", 100)
	desc := "platform"
	require.NoError(t, s.UpdateUser(ctx, id, UserPatch{DisplayName: &display, Description: &desc}))

	got, err := s.DescribeUser(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "bob", got.Name)
	assert.Equal(t, "platform", got.Description)
}

func TestCreateTeam(t *testing.T) {
	t.Parallel()
	s := newService(t)
	ctx := context.Background()

	_, err := s.CreateTeam(ctx, CreateTeamInput{Name: "core", Admin: "u"})
	requireAppErr(t, err, apperr.CodeStorageAbsent, "UserBase not found")

	admin, err := s.CreateUser(ctx, CreateUserInput{Name: "alice"})
	require.NoError(t, err)

	_, err = s.CreateTeam(ctx, CreateTeamInput{Name: "core", Admin: "ghost"})
	requireAppErr(t, err, apperr.CodeNotFound, "Admin user id does not exist")

	_, err = s.CreateTeam(ctx, CreateTeamInput{Name: strings.Repeat("n", 65), Admin: admin})
	requireAppErr(t, err, apperr.CodeValidation, "Team name exceed 64 character")
	_, err = s.CreateTeam(ctx, CreateTeamInput{Name: "core", Description: strings.Repeat("d", 129), Admin: admin})
	requireAppErr(t, err, apperr.CodeValidation, "Team description exceed 128 character")

	id, err := s.CreateTeam(ctx, CreateTeamInput{Name: "core", Description: "platform", Admin: admin})
	require.NoError(t, err)

	_, err = s.CreateTeam(ctx, CreateTeamInput{Name: "core", Admin: admin})
	requireAppErr(t, err, apperr.CodeAlreadyExists, "Team Name already exists")

	got, err := s.DescribeTeam(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "core", got.Name)
	assert.Equal(t, admin, got.Admin)

	teams, err := s.ListTeams(ctx)
	require.NoError(t, err)
	assert.Len(t, teams, 1)

	mine, err := s.GetUserTeams(ctx, admin)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "platform", mine[0].Description)
}

func TestUpdateTeam(t *testing.T) {
	t.Parallel()
	s := newService(t)
	ctx := context.Background()
	admin, err := s.CreateUser(ctx, CreateUserInput{Name: "alice"})
	require.NoError(t, err)
	other, err := s.CreateUser(ctx, CreateUserInput{Name: "bob"})
	require.NoError(t, err)
	id, err := s.CreateTeam(ctx, CreateTeamInput{Name: "core", Admin: admin})
	require.NoError(t, err)

	rename := "edge"
	requireAppErr(t, s.UpdateTeam(ctx, id, TeamPatch{Name: &rename}), apperr.CodeConflict, "Team cannot be updated")

	ghost := "ghost"
	requireAppErr(t, s.UpdateTeam(ctx, id, TeamPatch{Admin: &ghost}), apperr.CodeNotFound, "Admin user id does not exist")

	desc := "new"
	require.NoError(t, s.UpdateTeam(ctx, id, TeamPatch{Admin: &other, Description: &desc}))
	got, err := s.DescribeTeam(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, other, got.Admin)
	assert.Equal(t, "new", got.Description)
}

func TestTeamMembership(t *testing.T) {
	t.Parallel()
	s := newService(t)
	ctx := context.Background()
	admin, err := s.CreateUser(ctx, CreateUserInput{Name: "alice", DisplayName: "Alice"})
	require.NoError(t, err)
	bob, err := s.CreateUser(ctx, CreateUserInput{Name: "bob", DisplayName: "Bob"})
	require.NoError(t, err)
	carol, err := s.CreateUser(ctx, CreateUserInput{Name: "carol", DisplayName: "Carol"})
	require.NoError(t, err)
	id, err := s.CreateTeam(ctx, CreateTeamInput{Name: "core", Admin: admin})
	require.NoError(t, err)

	require.NoError(t, s.AddUsersToTeam(ctx, id, []string{bob, carol, bob}))
	require.NoError(t, s.AddUsersToTeam(ctx, id, []string{carol}))

	members, err := s.ListTeamUsers(ctx, id)
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "Bob", members[0].DisplayName)
	assert.Equal(t, "Carol", members[1].DisplayName)

	requireAppErr(t, s.AddUsersToTeam(ctx, id, []string{"ghost"}), apperr.CodeNotFound, "User id does not exist")
	requireAppErr(t, s.AddUsersToTeam(ctx, "nope", []string{bob}), apperr.CodeNotFound, "Team not found")

	require.NoError(t, s.RemoveUsersFromTeam(ctx, id, []string{bob, "not-a-member"}))
	members, err = s.ListTeamUsers(ctx, id)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, carol, members[0].ID)
}

func TestAddUsersToTeam_limit(t *testing.T) {
	t.Parallel()
	s := newService(t)
	ctx := context.Background()
	admin, err := s.CreateUser(ctx, CreateUserInput{Name: "admin"})
	require.NoError(t, err)
	id, err := s.CreateTeam(ctx, CreateTeamInput{Name: "big", Admin: admin})
	require.NoError(t, err)

	ids := make([]string, 0, 51)
	for i := range 51 {
		uid, err := s.CreateUser(ctx, CreateUserInput{Name: fmt.Sprintf("user%d", i)})
		require.NoError(t, err)
		ids = append(ids, uid)
	}
	requireAppErr(t, s.AddUsersToTeam(ctx, id, ids), apperr.CodeValidation, "Cannot exceed 50 user in team")

	require.NoError(t, s.AddUsersToTeam(ctx, id, ids[:50]))
	requireAppErr(t, s.AddUsersToTeam(ctx, id, ids[50:]), apperr.CodeValidation, "Cannot exceed 50 user in team")
}

func TestTeamExists(t *testing.T) {
	t.Parallel()
	s := newService(t)
	ctx := context.Background()

	_, err := s.TeamExists(ctx, "x")
	require.ErrorIs(t, err, ErrTeamBaseNotFound)
	_, err = s.UserExists(ctx, "x")
	require.ErrorIs(t, err, ErrUserBaseNotFound)

	admin, err := s.CreateUser(ctx, CreateUserInput{Name: "alice"})
	require.NoError(t, err)
	id, err := s.CreateTeam(ctx, CreateTeamInput{Name: "core", Admin: admin})
	require.NoError(t, err)

	ok, err := s.TeamExists(ctx, id)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.TeamExists(ctx, "other")
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = s.UserExists(ctx, admin)
	require.NoError(t, err)
	assert.True(t, ok)
}
