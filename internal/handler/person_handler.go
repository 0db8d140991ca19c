package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mishasvintus/teams_api/internal/domain"
)

const (
	personNotFound     = "person not found"
	personTeamNotFound = "team membership not found"
)

// PersonHandler handles person-related HTTP requests.
type PersonHandler struct {
	personService PersonServiceInterface
}

// NewPersonHandler creates a new person handler.
func NewPersonHandler(personService PersonServiceInterface) *PersonHandler {
	return &PersonHandler{personService: personService}
}

// ListPeople handles GET /people.
func (h *PersonHandler) ListPeople(c *gin.Context) {
	people, err := h.personService.ListPeople()
	if err != nil {
		InternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, renderPeople(people, ShapeExpanded))
}

// CreatePerson handles POST /people.
func (h *PersonHandler) CreatePerson(c *gin.Context) {
	var req PersonRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.personService.CreatePerson(domain.Person{
		FirstName: string(*req.FirstName),
		LastName:  string(*req.LastName),
		Email:     string(*req.Email),
	})
	if err != nil {
		respondError(c, err, "")
		return
	}

	c.JSON(http.StatusCreated, renderPerson(domain.PersonWithTeams{Person: *p}, ShapeBase))
}

// GetPerson handles GET /people/:id.
func (h *PersonHandler) GetPerson(c *gin.Context) {
	personID, ok := pathID(c, "id", personNotFound)
	if !ok {
		return
	}

	p, err := h.personService.GetPerson(personID)
	if err != nil {
		respondError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, renderPerson(*p, ShapeExpanded))
}

// UpdatePerson handles PUT /people/:id.
func (h *PersonHandler) UpdatePerson(c *gin.Context) {
	personID, ok := pathID(c, "id", personNotFound)
	if !ok {
		return
	}

	var req PersonRequest
	if !bindJSON(c, &req) {
		return
	}

	h.update(c, personID, domain.PersonPatch{
		FirstName: req.FirstName.Value(),
		LastName:  req.LastName.Value(),
		Email:     req.Email.Value(),
	})
}

// PatchPerson handles PATCH /people/:id.
func (h *PersonHandler) PatchPerson(c *gin.Context) {
	personID, ok := pathID(c, "id", personNotFound)
	if !ok {
		return
	}

	var req PersonPatchRequest
	if !bindJSON(c, &req) {
		return
	}

	h.update(c, personID, domain.PersonPatch{
		FirstName: req.FirstName.Value(),
		LastName:  req.LastName.Value(),
		Email:     req.Email.Value(),
	})
}

func (h *PersonHandler) update(c *gin.Context, personID int64, patch domain.PersonPatch) {
	p, err := h.personService.UpdatePerson(personID, patch)
	if err != nil {
		respondError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, renderPerson(domain.PersonWithTeams{Person: *p}, ShapeBase))
}

// DeletePerson handles DELETE /people/:id.
func (h *PersonHandler) DeletePerson(c *gin.Context) {
	personID, ok := pathID(c, "id", personNotFound)
	if !ok {
		return
	}

	if err := h.personService.DeletePerson(personID); err != nil {
		respondError(c, err, "")
		return
	}

	c.Status(http.StatusNoContent)
}

// ListTeams handles GET /people/:id/teams.
func (h *PersonHandler) ListTeams(c *gin.Context) {
	personID, ok := pathID(c, "id", personNotFound)
	if !ok {
		return
	}

	teams, err := h.personService.ListPersonTeams(personID)
	if err != nil {
		respondError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, renderTeams(baseTeams(teams), ShapeBase))
}

// AddToTeams handles PUT /people/:id/teams.
func (h *PersonHandler) AddToTeams(c *gin.Context) {
	personID, ok := pathID(c, "id", personNotFound)
	if !ok {
		return
	}

	var req AddToTeamsRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.personService.AddPersonToTeams(personID, req.AddToTeams); err != nil {
		respondError(c, err, "add_to_teams")
		return
	}

	c.Status(http.StatusOK)
}

// GetTeam handles GET /people/:id/teams/:team_id.
func (h *PersonHandler) GetTeam(c *gin.Context) {
	personID, teamID, ok := personTeamPath(c)
	if !ok {
		return
	}

	team, err := h.personService.GetPersonTeam(personID, teamID)
	if err != nil {
		respondError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, renderTeam(domain.TeamWithCount{Team: *team}, ShapeBase))
}

// RemoveFromTeam handles DELETE /people/:id/teams/:team_id.
func (h *PersonHandler) RemoveFromTeam(c *gin.Context) {
	personID, teamID, ok := personTeamPath(c)
	if !ok {
		return
	}

	if err := h.personService.RemovePersonFromTeam(personID, teamID); err != nil {
		respondError(c, err, "")
		return
	}

	c.Status(http.StatusOK)
}

func personTeamPath(c *gin.Context) (personID, teamID int64, ok bool) {
	if personID, ok = pathID(c, "id", personTeamNotFound); !ok {
		return 0, 0, false
	}
	if teamID, ok = pathID(c, "team_id", personTeamNotFound); !ok {
		return 0, 0, false
	}
	return personID, teamID, true
}
