package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mishasvintus/teams_api/internal/domain"
)

const (
	teamNotFound   = "team not found"
	memberNotFound = "member not found"
)

// TeamHandler handles team-related HTTP requests.
type TeamHandler struct {
	teamService TeamServiceInterface
}

// NewTeamHandler creates a new team handler.
func NewTeamHandler(teamService TeamServiceInterface) *TeamHandler {
	return &TeamHandler{teamService: teamService}
}

// ListTeams handles GET /teams.
func (h *TeamHandler) ListTeams(c *gin.Context) {
	teams, err := h.teamService.ListTeams()
	if err != nil {
		InternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, renderTeams(teams, ShapeExpanded))
}

// CreateTeam handles POST /teams.
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	var req TeamRequest
	if !bindJSON(c, &req) {
		return
	}

	team, err := h.teamService.CreateTeam(string(*req.Name))
	if err != nil {
		respondError(c, err, "")
		return
	}

	c.JSON(http.StatusCreated, renderTeam(domain.TeamWithCount{Team: *team}, ShapeBase))
}

// GetTeam handles GET /teams/:id.
func (h *TeamHandler) GetTeam(c *gin.Context) {
	teamID, ok := pathID(c, "id", teamNotFound)
	if !ok {
		return
	}

	team, err := h.teamService.GetTeam(teamID)
	if err != nil {
		respondError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, renderTeam(*team, ShapeExpanded))
}

// UpdateTeam handles PUT /teams/:id.
func (h *TeamHandler) UpdateTeam(c *gin.Context) {
	teamID, ok := pathID(c, "id", teamNotFound)
	if !ok {
		return
	}

	var req TeamRequest
	if !bindJSON(c, &req) {
		return
	}

	h.update(c, teamID, domain.TeamPatch{Name: req.Name.Value()})
}

// PatchTeam handles PATCH /teams/:id.
func (h *TeamHandler) PatchTeam(c *gin.Context) {
	teamID, ok := pathID(c, "id", teamNotFound)
	if !ok {
		return
	}

	var req TeamPatchRequest
	if !bindJSON(c, &req) {
		return
	}

	h.update(c, teamID, domain.TeamPatch{Name: req.Name.Value()})
}

func (h *TeamHandler) update(c *gin.Context, teamID int64, patch domain.TeamPatch) {
	team, err := h.teamService.UpdateTeam(teamID, patch)
	if err != nil {
		respondError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, renderTeam(domain.TeamWithCount{Team: *team}, ShapeBase))
}

// DeleteTeam handles DELETE /teams/:id.
func (h *TeamHandler) DeleteTeam(c *gin.Context) {
	teamID, ok := pathID(c, "id", teamNotFound)
	if !ok {
		return
	}

	if err := h.teamService.DeleteTeam(teamID); err != nil {
		respondError(c, err, "")
		return
	}

	c.Status(http.StatusNoContent)
}

// ListMembers handles GET /teams/:id/members.
func (h *TeamHandler) ListMembers(c *gin.Context) {
	teamID, ok := pathID(c, "id", teamNotFound)
	if !ok {
		return
	}

	members, err := h.teamService.ListMembers(teamID)
	if err != nil {
		respondError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, renderPeople(basePeople(members), ShapeBase))
}

// AddMembers handles PUT /teams/:id/members.
func (h *TeamHandler) AddMembers(c *gin.Context) {
	teamID, ok := pathID(c, "id", teamNotFound)
	if !ok {
		return
	}

	var req AddMembersRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.teamService.AddMembers(teamID, req.MembersToAdd); err != nil {
		respondError(c, err, "members_to_add")
		return
	}

	c.Status(http.StatusOK)
}

// GetMember handles GET /teams/:id/members/:person_id.
func (h *TeamHandler) GetMember(c *gin.Context) {
	teamID, personID, ok := memberPath(c)
	if !ok {
		return
	}

	member, err := h.teamService.GetMember(teamID, personID)
	if err != nil {
		respondError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, renderPerson(domain.PersonWithTeams{Person: *member}, ShapeBase))
}

// RemoveMember handles DELETE /teams/:id/members/:person_id.
func (h *TeamHandler) RemoveMember(c *gin.Context) {
	teamID, personID, ok := memberPath(c)
	if !ok {
		return
	}

	if err := h.teamService.RemoveMember(teamID, personID); err != nil {
		respondError(c, err, "")
		return
	}

	c.Status(http.StatusOK)
}

func memberPath(c *gin.Context) (teamID, personID int64, ok bool) {
	if teamID, ok = pathID(c, "id", memberNotFound); !ok {
		return 0, 0, false
	}
	if personID, ok = pathID(c, "person_id", memberNotFound); !ok {
		return 0, 0, false
	}
	return teamID, personID, true
}
