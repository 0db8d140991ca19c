package handler

import (
	"github.com/mishasvintus/teams_api/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

// TeamServiceInterface defines the interface for team operations.
type TeamServiceInterface interface {
	ListTeams() ([]domain.TeamWithCount, error)
	GetTeam(teamID int64) (*domain.TeamWithCount, error)
	CreateTeam(name string) (*domain.Team, error)
	UpdateTeam(teamID int64, patch domain.TeamPatch) (*domain.Team, error)
	DeleteTeam(teamID int64) error
	ListMembers(teamID int64) ([]domain.Person, error)
	AddMembers(teamID int64, personIDs []int64) error
	GetMember(teamID, personID int64) (*domain.Person, error)
	RemoveMember(teamID, personID int64) error
}

// PersonServiceInterface defines the interface for person operations.
type PersonServiceInterface interface {
	ListPeople() ([]domain.PersonWithTeams, error)
	GetPerson(personID int64) (*domain.PersonWithTeams, error)
	CreatePerson(p domain.Person) (*domain.Person, error)
	UpdatePerson(personID int64, patch domain.PersonPatch) (*domain.Person, error)
	DeletePerson(personID int64) error
	ListPersonTeams(personID int64) ([]domain.Team, error)
	AddPersonToTeams(personID int64, teamIDs []int64) error
	GetPersonTeam(personID, teamID int64) (*domain.Team, error)
	RemovePersonFromTeam(personID, teamID int64) error
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping() error
}
