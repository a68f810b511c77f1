package directory

import (
	"context"

	"go.uber.org/zap"

	"github.com/renukapawar30/Project-Planner-Tool/internal/apperr"
	"github.com/renukapawar30/Project-Planner-Tool/internal/store"
	"github.com/renukapawar30/Project-Planner-Tool/pkg/models"
)

const (
	maxDisplayNameUpdateLen = 128
	userBaseMissing         = "User base file not found"
)

// CreateUserInput is the request for CreateUser.
type CreateUserInput struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
}

// UserPatch holds the fields UpdateUser may change. Nil fields are left alone.
type UserPatch struct {
	Name        *string `json:"name,omitempty"`
	DisplayName *string `json:"display_name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// CreateUser stores a new user and returns its id. Names are unique.
func (s *Service) CreateUser(ctx context.Context, in CreateUserInput) (string, error) {
	if tooLong(in.Name, models.MaxNameLen) || tooLong(in.DisplayName, models.MaxNameLen) {
		return "", apperr.Validation("Name or Display_name exceeds 64 characters")
	}
	var id string
	err := s.store.Do(ctx, func(a store.Accessor) error {
		users, err := loadUsers(ctx, a)
		if err != nil {
			return err
		}
		for _, u := range users {
			if u.Name == in.Name {
				return apperr.AlreadyExists("Username already exists")
			}
		}
		id = s.newID()
		users = append(users, models.User{
			ID:          id,
			Name:        in.Name,
			DisplayName: in.DisplayName,
			Description: in.Description,
			CreatedAt:   s.timestamp(),
		})
		return saveUsers(ctx, a, users)
	})
	if err != nil {
		return "", err
	}
	s.logger.Info("user created", zap.String("user_id", id), zap.String("name", in.Name))
	return id, nil
}

// ListUsers returns every stored user. A missing collection yields an empty list.
func (s *Service) ListUsers(ctx context.Context) ([]models.UserSummary, error) {
	out := []models.UserSummary{}
	err := s.store.Do(ctx, func(a store.Accessor) error {
		users, err := loadUsers(ctx, a)
		if err != nil {
			return err
		}
		for _, u := range users {
			out = append(out, models.UserSummary{
				Name:         u.Name,
				DisplayName:  u.DisplayName,
				CreationTime: u.CreatedAt,
			})
		}
		return nil
	})
	return out, err
}

// DescribeUser returns the user with id.
func (s *Service) DescribeUser(ctx context.Context, id string) (models.UserDetail, error) {
	if id == "" {
		return models.UserDetail{}, apperr.Validation("Missing user id")
	}
	var out models.UserDetail
	err := s.store.Do(ctx, func(a store.Accessor) error {
		users, err := existingUsers(ctx, a)
		if err != nil {
			return err
		}
		i := findUser(users, id)
		if i < 0 {
			return apperr.NotFound("User not found")
		}
		out = models.UserDetail{
			Name:         users[i].Name,
			Description:  users[i].Description,
			CreationTime: users[i].CreatedAt,
		}
		return nil
	})
	return out, err
}

// UpdateUser applies patch to the user with id. The name is immutable.
func (s *Service) UpdateUser(ctx context.Context, id string, patch UserPatch) error {
	if id == "" {
		return apperr.Validation("Missing user id")
	}
	if patch.DisplayName != nil && tooLong(*patch.DisplayName, maxDisplayNameUpdateLen) {
		return apperr.Validation("Display name exceed 128 characters")
	}
	err := s.store.Do(ctx, func(a store.Accessor) error {
		users, err := existingUsers(ctx, a)
		if err != nil {
			return err
		}
		i := findUser(users, id)
		if i < 0 {
			return apperr.NotFound("User not found")
		}
		if patch.Name != nil && *patch.Name != users[i].Name {
			return apperr.Conflict("User cannot be updated")
		}
		if patch.DisplayName != nil {
			users[i].DisplayName = *patch.DisplayName
		}
		if patch.Description != nil {
			users[i].Description = *patch.Description
		}
		return saveUsers(ctx, a, users)
	})
	if err != nil {
		return err
	}
	s.logger.Info("user updated", zap.String("user_id", id))
	return nil
}

// GetUserTeams lists the teams administered by the user with id.
func (s *Service) GetUserTeams(ctx context.Context, id string) ([]models.UserTeam, error) {
	if id == "" {
		return nil, apperr.Validation("Missing user id")
	}
	out := []models.UserTeam{}
	err := s.store.Do(ctx, func(a store.Accessor) error {
		users, err := existingUsers(ctx, a)
		if err != nil {
			return err
		}
		if findUser(users, id) < 0 {
			return apperr.NotFound("User not found")
		}
		teams, err := loadTeams(ctx, a)
		if err != nil {
			return err
		}
		for _, t := range teams {
			if t.Admin == id {
				out = append(out, models.UserTeam{
					Name:         t.Name,
					Description:  t.Description,
					CreationTime: t.CreatedAt,
				})
			}
		}
		return nil
	})
	return out, err
}

func existingUsers(ctx context.Context, a store.Accessor) ([]models.User, error) {
	if err := requireCollection(ctx, a, models.CollectionUsers, apperr.StorageAbsent(userBaseMissing)); err != nil {
		return nil, err
	}
	return loadUsers(ctx, a)
}
