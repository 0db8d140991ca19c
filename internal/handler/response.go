package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mishasvintus/teams_api/internal/domain"
	"github.com/mishasvintus/teams_api/internal/service"
)

// Shape selects the representation of an entity in a response.
// List and retrieve operations render ShapeExpanded, everything else ShapeBase.
type Shape int

const (
	ShapeBase Shape = iota
	ShapeExpanded
)

// TeamResponse is the base team representation.
type TeamResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// TeamExpandedResponse is a team annotated with its member count.
type TeamExpandedResponse struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	NumberOfMembers int64  `json:"number_of_members"`
}

// PersonResponse is the base person representation. It never embeds teams.
type PersonResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// PersonExpandedResponse is a person with the teams they belong to.
type PersonExpandedResponse struct {
	ID        int64          `json:"id"`
	FirstName string         `json:"first_name"`
	LastName  string         `json:"last_name"`
	Email     string         `json:"email"`
	Teams     []TeamResponse `json:"teams"`
}

// ErrorResponse is the body of 404 and 500 responses.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// FieldErrors is the body of 400 responses: field name to messages.
type FieldErrors map[string][]string

// nonFieldErrors keys messages that are not tied to a single field.
const nonFieldErrors = "non_field_errors"

func renderTeam(t domain.TeamWithCount, shape Shape) any {
	if shape == ShapeExpanded {
		return TeamExpandedResponse{ID: t.ID, Name: t.Name, NumberOfMembers: t.NumberOfMembers}
	}
	return TeamResponse{ID: t.ID, Name: t.Name}
}

func renderTeams(teams []domain.TeamWithCount, shape Shape) []any {
	out := make([]any, len(teams))
	for i, t := range teams {
		out[i] = renderTeam(t, shape)
	}
	return out
}

func renderPerson(p domain.PersonWithTeams, shape Shape) any {
	if shape == ShapeExpanded {
		teams := make([]TeamResponse, len(p.Teams))
		for i, t := range p.Teams {
			teams[i] = TeamResponse{ID: t.ID, Name: t.Name}
		}
		return PersonExpandedResponse{
			ID:        p.ID,
			FirstName: p.FirstName,
			LastName:  p.LastName,
			Email:     p.Email,
			Teams:     teams,
		}
	}
	return PersonResponse{
		ID:        p.ID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
	}
}

func renderPeople(people []domain.PersonWithTeams, shape Shape) []any {
	out := make([]any, len(people))
	for i, p := range people {
		out[i] = renderPerson(p, shape)
	}
	return out
}

// baseTeams lifts plain teams into the annotated form for rendering.
func baseTeams(teams []domain.Team) []domain.TeamWithCount {
	out := make([]domain.TeamWithCount, len(teams))
	for i, t := range teams {
		out[i] = domain.TeamWithCount{Team: t}
	}
	return out
}

// basePeople lifts plain people into the with-teams form for rendering.
func basePeople(people []domain.Person) []domain.PersonWithTeams {
	out := make([]domain.PersonWithTeams, len(people))
	for i, p := range people {
		out[i] = domain.PersonWithTeams{Person: p}
	}
	return out
}

// NotFound sends 404 error.
func NotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Detail: message})
}

// BadRequest sends 400 error with per-field messages.
func BadRequest(c *gin.Context, errs FieldErrors) {
	c.JSON(http.StatusBadRequest, errs)
}

// InternalError records the cause for the request logger and sends 500 error.
func InternalError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: "internal server error"})
}

// respondError maps service errors onto HTTP responses. field names the
// request field that carried the ids checked by membership validation.
func respondError(c *gin.Context, err error, field string) {
	var validationErr *service.ValidationError
	switch {
	case errors.Is(err, service.ErrTeamNotFound),
		errors.Is(err, service.ErrPersonNotFound),
		errors.Is(err, service.ErrMemberNotFound),
		errors.Is(err, service.ErrPersonTeamNotFound):
		NotFound(c, err.Error())
	case errors.Is(err, service.ErrTeamNameTaken):
		BadRequest(c, FieldErrors{"name": {err.Error()}})
	case errors.As(err, &validationErr):
		BadRequest(c, FieldErrors{field: {validationErr.Error()}})
	default:
		InternalError(c, err)
	}
}
