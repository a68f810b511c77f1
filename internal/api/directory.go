package api

import (
	"context"
	"encoding/json"

	"github.com/renukapawar30/Project-Planner-Tool/internal/apperr"
	"github.com/renukapawar30/Project-Planner-Tool/internal/directory"
	"github.com/renukapawar30/Project-Planner-Tool/pkg/models"
)

type updateUserRequest struct {
	ID   string              `json:"id"`
	User directory.UserPatch `json:"user"`
}

type updateTeamRequest struct {
	ID   string              `json:"id"`
	Team directory.TeamPatch `json:"team"`
}

type teamUsersRequest struct {
	ID    string          `json:"id"`
	Users json.RawMessage `json:"users"`
}

// userIDs parses the users field, which must be a JSON array of strings.
func (r teamUsersRequest) userIDs() ([]string, error) {
	if len(r.Users) == 0 {
		return nil, nil
	}
	var ids []string
	if err := json.Unmarshal(r.Users, &ids); err != nil {
		return nil, apperr.Validation("Invalid user format.Expected a list of user IDs")
	}
	return ids, nil
}

func (a *API) CreateUser(ctx context.Context, req []byte) ([]byte, error) {
	return serve(req, func(in directory.CreateUserInput) (models.IDResponse, error) {
		return created(a.dir.CreateUser(ctx, in))
	})
}

func (a *API) ListUsers(ctx context.Context, req []byte) ([]byte, error) {
	return serve(req, func(struct{}) ([]models.UserSummary, error) {
		return a.dir.ListUsers(ctx)
	})
}

func (a *API) DescribeUser(ctx context.Context, req []byte) ([]byte, error) {
	return serve(req, func(in idRequest) (models.UserDetail, error) {
		return a.dir.DescribeUser(ctx, in.ID)
	})
}

func (a *API) UpdateUser(ctx context.Context, req []byte) ([]byte, error) {
	return serve(req, func(in updateUserRequest) (models.MessageResponse, error) {
		return message("User updated successfully", a.dir.UpdateUser(ctx, in.ID, in.User))
	})
}

func (a *API) GetUserTeams(ctx context.Context, req []byte) ([]byte, error) {
	return serve(req, func(in idRequest) ([]models.UserTeam, error) {
		return a.dir.GetUserTeams(ctx, in.ID)
	})
}

func (a *API) CreateTeam(ctx context.Context, req []byte) ([]byte, error) {
	return serve(req, func(in directory.CreateTeamInput) (models.IDResponse, error) {
		return created(a.dir.CreateTeam(ctx, in))
	})
}

func (a *API) ListTeams(ctx context.Context, req []byte) ([]byte, error) {
	return serve(req, func(struct{}) ([]models.TeamSummary, error) {
		return a.dir.ListTeams(ctx)
	})
}

func (a *API) DescribeTeam(ctx context.Context, req []byte) ([]byte, error) {
	return serve(req, func(in idRequest) (models.TeamSummary, error) {
		return a.dir.DescribeTeam(ctx, in.ID)
	})
}

func (a *API) UpdateTeam(ctx context.Context, req []byte) ([]byte, error) {
	return serve(req, func(in updateTeamRequest) (models.MessageResponse, error) {
		return message("Team updated successfully", a.dir.UpdateTeam(ctx, in.ID, in.Team))
	})
}

func (a *API) AddUsersToTeam(ctx context.Context, req []byte) ([]byte, error) {
	return serve(req, func(in teamUsersRequest) (models.MessageResponse, error) {
		ids, err := in.userIDs()
		if err != nil {
			return models.MessageResponse{}, err
		}
		return message("Users successfully added to team", a.dir.AddUsersToTeam(ctx, in.ID, ids))
	})
}

func (a *API) RemoveUsersFromTeam(ctx context.Context, req []byte) ([]byte, error) {
	return serve(req, func(in teamUsersRequest) (models.MessageResponse, error) {
		ids, err := in.userIDs()
		if err != nil {
			return models.MessageResponse{}, err
		}
		return message("Users successfully removed from team", a.dir.RemoveUsersFromTeam(ctx, in.ID, ids))
	})
}

func (a *API) ListTeamUsers(ctx context.Context, req []byte) ([]byte, error) {
	return serve(req, func(in idRequest) ([]models.MemberSummary, error) {
		return a.dir.ListTeamUsers(ctx, in.ID)
	})
}
