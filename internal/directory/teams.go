package directory

import (
	"context"
	"slices"

	"go.uber.org/zap"

	"github.com/renukapawar30/Project-Planner-Tool/internal/apperr"
	"github.com/renukapawar30/Project-Planner-Tool/internal/store"
	"github.com/renukapawar30/Project-Planner-Tool/pkg/models"
)

const teamBaseMissing = "Team base file not found"

// CreateTeamInput is the request for CreateTeam.
type CreateTeamInput struct {
	Name        string `json:"team_name"`
	Description string `json:"team_description"`
	Admin       string `json:"admin"`
}

// TeamPatch holds the fields UpdateTeam may change. Nil fields are left alone.
type TeamPatch struct {
	Name        *string `json:"team_name,omitempty"`
	Description *string `json:"team_description,omitempty"`
	Admin       *string `json:"admin,omitempty"`
}

// CreateTeam stores a new team administered by an existing user.
func (s *Service) CreateTeam(ctx context.Context, in CreateTeamInput) (string, error) {
	if tooLong(in.Name, models.MaxNameLen) {
		return "", apperr.Validation("Team name exceed 64 character")
	}
	if tooLong(in.Description, models.MaxDescriptionLen) {
		return "", apperr.Validation("Team description exceed 128 character")
	}
	var id string
	err := s.store.Do(ctx, func(a store.Accessor) error {
		if err := requireCollection(ctx, a, models.CollectionUsers, apperr.StorageAbsent("UserBase not found")); err != nil {
			return err
		}
		users, err := loadUsers(ctx, a)
		if err != nil {
			return err
		}
		if findUser(users, in.Admin) < 0 {
			return apperr.NotFound("Admin user id does not exist")
		}
		teams, err := loadTeams(ctx, a)
		if err != nil {
			return err
		}
		for _, t := range teams {
			if t.Name == in.Name {
				return apperr.AlreadyExists("Team Name already exists")
			}
		}
		id = s.newID()
		teams = append(teams, models.Team{
			ID:          id,
			Name:        in.Name,
			Description: in.Description,
			Admin:       in.Admin,
			CreatedAt:   s.timestamp(),
		})
		return saveTeams(ctx, a, teams)
	})
	if err != nil {
		return "", err
	}
	s.logger.Info("team created", zap.String("team_id", id), zap.String("name", in.Name))
	return id, nil
}

// ListTeams returns every stored team. A missing collection yields an empty list.
func (s *Service) ListTeams(ctx context.Context) ([]models.TeamSummary, error) {
	out := []models.TeamSummary{}
	err := s.store.Do(ctx, func(a store.Accessor) error {
		teams, err := loadTeams(ctx, a)
		if err != nil {
			return err
		}
		for _, t := range teams {
			out = append(out, summarizeTeam(t))
		}
		return nil
	})
	return out, err
}

// DescribeTeam returns the team with id.
func (s *Service) DescribeTeam(ctx context.Context, id string) (models.TeamSummary, error) {
	if id == "" {
		return models.TeamSummary{}, apperr.Validation("Missing team id")
	}
	var out models.TeamSummary
	err := s.store.Do(ctx, func(a store.Accessor) error {
		teams, err := existingTeams(ctx, a)
		if err != nil {
			return err
		}
		i := findTeam(teams, id)
		if i < 0 {
			return apperr.NotFound("Team not found")
		}
		out = summarizeTeam(teams[i])
		return nil
	})
	return out, err
}

// UpdateTeam applies patch to the team with id. The name is immutable.
func (s *Service) UpdateTeam(ctx context.Context, id string, patch TeamPatch) error {
	if id == "" {
		return apperr.Validation("Missing team id")
	}
	if patch.Description != nil && tooLong(*patch.Description, models.MaxDescriptionLen) {
		return apperr.Validation("Description exceed 128 characters")
	}
	err := s.store.Do(ctx, func(a store.Accessor) error {
		teams, err := existingTeams(ctx, a)
		if err != nil {
			return err
		}
		i := findTeam(teams, id)
		if i < 0 {
			return apperr.NotFound("Team not found")
		}
		if patch.Name != nil && *patch.Name != teams[i].Name {
			return apperr.Conflict("Team cannot be updated")
		}
		if patch.Admin != nil && *patch.Admin != teams[i].Admin {
			users, err := loadUsers(ctx, a)
			if err != nil {
				return err
			}
			if findUser(users, *patch.Admin) < 0 {
				return apperr.NotFound("Admin user id does not exist")
			}
			teams[i].Admin = *patch.Admin
		}
		if patch.Description != nil {
			teams[i].Description = *patch.Description
		}
		return saveTeams(ctx, a, teams)
	})
	if err != nil {
		return err
	}
	s.logger.Info("team updated", zap.String("team_id", id))
	return nil
}

// AddUsersToTeam adds users to the team's member set. Every user must exist
// and the resulting set may hold at most models.MaxTeamMembers ids.
func (s *Service) AddUsersToTeam(ctx context.Context, id string, userIDs []string) error {
	if id == "" {
		return apperr.Validation("Missing team ID")
	}
	if len(userIDs) > models.MaxTeamMembers {
		return apperr.Validation("Cannot exceed 50 user in team")
	}
	err := s.store.Do(ctx, func(a store.Accessor) error {
		teams, err := existingTeams(ctx, a)
		if err != nil {
			return err
		}
		i := findTeam(teams, id)
		if i < 0 {
			return apperr.NotFound("Team not found")
		}
		users, err := loadUsers(ctx, a)
		if err != nil {
			return err
		}
		members := slices.Clone(teams[i].Members)
		for _, uid := range userIDs {
			if findUser(users, uid) < 0 {
				return apperr.NotFound("User id does not exist")
			}
			if !slices.Contains(members, uid) {
				members = append(members, uid)
			}
		}
		if len(members) > models.MaxTeamMembers {
			return apperr.Validation("Cannot exceed 50 user in team")
		}
		teams[i].Members = members
		return saveTeams(ctx, a, teams)
	})
	if err != nil {
		return err
	}
	s.logger.Info("team members added", zap.String("team_id", id), zap.Int("count", len(userIDs)))
	return nil
}

// RemoveUsersFromTeam removes users from the team's member set. Ids that are
// not members are ignored.
func (s *Service) RemoveUsersFromTeam(ctx context.Context, id string, userIDs []string) error {
	if id == "" {
		return apperr.Validation("Missing team ID")
	}
	err := s.store.Do(ctx, func(a store.Accessor) error {
		teams, err := existingTeams(ctx, a)
		if err != nil {
			return err
		}
		i := findTeam(teams, id)
		if i < 0 {
			return apperr.NotFound("Team not found")
		}
		teams[i].Members = slices.DeleteFunc(slices.Clone(teams[i].Members), func(m string) bool {
			return slices.Contains(userIDs, m)
		})
		return saveTeams(ctx, a, teams)
	})
	if err != nil {
		return err
	}
	s.logger.Info("team members removed", zap.String("team_id", id), zap.Int("count", len(userIDs)))
	return nil
}

// ListTeamUsers returns the members of the team with id. Member ids with no
// matching user are skipped.
func (s *Service) ListTeamUsers(ctx context.Context, id string) ([]models.MemberSummary, error) {
	if id == "" {
		return nil, apperr.Validation("Missing team ID")
	}
	out := []models.MemberSummary{}
	err := s.store.Do(ctx, func(a store.Accessor) error {
		teams, err := existingTeams(ctx, a)
		if err != nil {
			return err
		}
		i := findTeam(teams, id)
		if i < 0 {
			return apperr.NotFound("Team not found")
		}
		users, err := loadUsers(ctx, a)
		if err != nil {
			return err
		}
		for _, m := range teams[i].Members {
			j := findUser(users, m)
			if j < 0 {
				continue
			}
			out = append(out, models.MemberSummary{
				ID:          users[j].ID,
				Name:        users[j].Name,
				DisplayName: users[j].DisplayName,
			})
		}
		return nil
	})
	return out, err
}

func existingTeams(ctx context.Context, a store.Accessor) ([]models.Team, error) {
	if err := requireCollection(ctx, a, models.CollectionTeams, apperr.StorageAbsent(teamBaseMissing)); err != nil {
		return nil, err
	}
	return loadTeams(ctx, a)
}

func summarizeTeam(t models.Team) models.TeamSummary {
	return models.TeamSummary{
		Name:         t.Name,
		Description:  t.Description,
		CreationTime: t.CreatedAt,
		Admin:        t.Admin,
	}
}
