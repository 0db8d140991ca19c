package service

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mishasvintus/teams_api/internal/domain"
	"github.com/mishasvintus/teams_api/internal/repository"
	"github.com/mishasvintus/teams_api/internal/repository/membership"
	"github.com/mishasvintus/teams_api/internal/repository/team"
)

// TeamService handles team business logic.
type TeamService struct {
	db *sql.DB
}

// NewTeamService creates a new team service.
func NewTeamService(db *sql.DB) *TeamService {
	return &TeamService{db: db}
}

// ListTeams returns all teams with their member counts.
func (s *TeamService) ListTeams() ([]domain.TeamWithCount, error) {
	teams, err := team.ListWithCount(s.db)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, nil
}

// GetTeam retrieves a team with its member count.
func (s *TeamService) GetTeam(teamID int64) (*domain.TeamWithCount, error) {
	t, err := team.GetWithCount(s.db, teamID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return t, nil
}

// CreateTeam creates a team. Fails with ErrTeamNameTaken if the name is in use.
func (s *TeamService) CreateTeam(name string) (*domain.Team, error) {
	t, err := team.Create(s.db, name)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrTeamNameTaken
		}
		return nil, err
	}
	return t, nil
}

// UpdateTeam applies a patch to a team and returns the result.
func (s *TeamService) UpdateTeam(teamID int64, patch domain.TeamPatch) (*domain.Team, error) {
	var (
		t   *domain.Team
		err error
	)
	if patch.Name == nil {
		t, err = team.Get(s.db, teamID)
	} else {
		t, err = team.Update(s.db, teamID, *patch.Name)
	}

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		if repository.IsUniqueViolation(err) {
			return nil, ErrTeamNameTaken
		}
		return nil, err
	}
	return t, nil
}

// DeleteTeam removes a team together with all of its membership links.
func (s *TeamService) DeleteTeam(teamID int64) error {
	if err := team.Delete(s.db, teamID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTeamNotFound
		}
		return err
	}
	return nil
}

// ListMembers returns the current members of a team.
func (s *TeamService) ListMembers(teamID int64) ([]domain.Person, error) {
	exists, err := team.Exists(s.db, teamID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrTeamNotFound
	}

	members, err := membership.Members(s.db, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}
	return members, nil
}

// AddMembers adds people to a team in a single transaction.
// Every id must refer to an existing person, otherwise nothing is added.
// People who already are members are left as they are.
func (s *TeamService) AddMembers(teamID int64, personIDs []int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	exists, err := team.Exists(tx, teamID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrTeamNotFound
	}

	personIDs, err = ValidateIDsExist(tx, personIDs, domain.KindPerson)
	if err != nil {
		return err
	}

	if err := membership.AddMembers(tx, teamID, personIDs); err != nil {
		if repository.IsForeignKeyViolation(err) {
			_ = tx.Rollback()
			return resolveLinkViolation(s.db, teamID, team.Exists, ErrTeamNotFound, personIDs, domain.KindPerson, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetMember returns a person if they are a member of the team.
// Missing teams, missing people and non-members all yield ErrMemberNotFound.
func (s *TeamService) GetMember(teamID, personID int64) (*domain.Person, error) {
	p, err := membership.Member(s.db, teamID, personID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return p, nil
}

// RemoveMember removes exactly one person from a team.
func (s *TeamService) RemoveMember(teamID, personID int64) error {
	if err := membership.Remove(s.db, teamID, personID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrMemberNotFound
		}
		return err
	}
	return nil
}
