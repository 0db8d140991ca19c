package service

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mishasvintus/teams_api/internal/domain"
	"github.com/mishasvintus/teams_api/internal/repository"
	"github.com/mishasvintus/teams_api/internal/repository/membership"
	"github.com/mishasvintus/teams_api/internal/repository/person"
)

// PersonService handles person business logic.
type PersonService struct {
	db *sql.DB
}

// NewPersonService creates a new person service.
func NewPersonService(db *sql.DB) *PersonService {
	return &PersonService{db: db}
}

// ListPeople returns all people with their teams.
// Teams are fetched for everyone at once rather than per person.
func (s *PersonService) ListPeople() ([]domain.PersonWithTeams, error) {
	people, err := person.List(s.db)
	if err != nil {
		return nil, fmt.Errorf("failed to list people: %w", err)
	}

	ids := make([]int64, len(people))
	for i, p := range people {
		ids[i] = p.ID
	}

	teams, err := person.TeamsByPeople(s.db, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list people: %w", err)
	}

	result := make([]domain.PersonWithTeams, len(people))
	for i, p := range people {
		result[i] = domain.PersonWithTeams{Person: p, Teams: teams[p.ID]}
	}
	return result, nil
}

// GetPerson retrieves a person with their teams.
func (s *PersonService) GetPerson(personID int64) (*domain.PersonWithTeams, error) {
	p, err := person.Get(s.db, personID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPersonNotFound
		}
		return nil, fmt.Errorf("failed to get person: %w", err)
	}

	teams, err := membership.Teams(s.db, personID)
	if err != nil {
		return nil, fmt.Errorf("failed to get person: %w", err)
	}

	return &domain.PersonWithTeams{Person: *p, Teams: teams}, nil
}

// CreatePerson creates a person and returns it with the assigned ID.
func (s *PersonService) CreatePerson(p domain.Person) (*domain.Person, error) {
	if err := person.Create(s.db, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdatePerson applies a patch to a person in a single transaction.
func (s *PersonService) UpdatePerson(personID int64, patch domain.PersonPatch) (*domain.Person, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	p, err := person.Get(tx, personID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPersonNotFound
		}
		return nil, err
	}

	patch.Apply(p)

	if err := person.Update(tx, p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPersonNotFound
		}
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return p, nil
}

// DeletePerson removes a person together with all of their membership links.
func (s *PersonService) DeletePerson(personID int64) error {
	if err := person.Delete(s.db, personID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrPersonNotFound
		}
		return err
	}
	return nil
}

// ListPersonTeams returns the teams a person belongs to.
func (s *PersonService) ListPersonTeams(personID int64) ([]domain.Team, error) {
	exists, err := person.Exists(s.db, personID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrPersonNotFound
	}

	teams, err := membership.Teams(s.db, personID)
	if err != nil {
		return nil, fmt.Errorf("failed to list person teams: %w", err)
	}
	return teams, nil
}

// AddPersonToTeams adds a person to teams in a single transaction.
// Every id must refer to an existing team, otherwise nothing is added.
func (s *PersonService) AddPersonToTeams(personID int64, teamIDs []int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	exists, err := person.Exists(tx, personID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrPersonNotFound
	}

	teamIDs, err = ValidateIDsExist(tx, teamIDs, domain.KindTeam)
	if err != nil {
		return err
	}

	if err := membership.AddTeams(tx, personID, teamIDs); err != nil {
		if repository.IsForeignKeyViolation(err) {
			_ = tx.Rollback()
			return resolveLinkViolation(s.db, personID, person.Exists, ErrPersonNotFound, teamIDs, domain.KindTeam, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetPersonTeam returns a team if the person belongs to it.
func (s *PersonService) GetPersonTeam(personID, teamID int64) (*domain.Team, error) {
	t, err := membership.Team(s.db, personID, teamID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPersonTeamNotFound
		}
		return nil, err
	}
	return t, nil
}

// RemovePersonFromTeam removes exactly one team from the person's teams.
func (s *PersonService) RemovePersonFromTeam(personID, teamID int64) error {
	if err := membership.Remove(s.db, teamID, personID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrPersonTeamNotFound
		}
		return err
	}
	return nil
}
