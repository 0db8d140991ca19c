package handler

import (
	"encoding/json"
	"strings"
)

// Text is a JSON string with surrounding whitespace removed on decode,
// so length and blank checks apply to the trimmed value.
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*t = Text(strings.TrimSpace(s))
	return nil
}

// Value returns the text as a *string, nil when t is nil.
func (t *Text) Value() *string {
	if t == nil {
		return nil
	}
	s := string(*t)
	return &s
}

// TeamRequest represents request body for POST /teams and PUT /teams/:id.
type TeamRequest struct {
	Name *Text `json:"name" binding:"required,min=1,max=255"`
}

// TeamPatchRequest represents request body for PATCH /teams/:id.
type TeamPatchRequest struct {
	Name *Text `json:"name" binding:"omitnil,min=1,max=255"`
}

// PersonRequest represents request body for POST /people and PUT /people/:id.
type PersonRequest struct {
	FirstName *Text `json:"first_name" binding:"required,min=1,max=255"`
	LastName  *Text `json:"last_name" binding:"required,min=1,max=255"`
	Email     *Text `json:"email" binding:"required,min=1,email,max=254"`
}

// PersonPatchRequest represents request body for PATCH /people/:id.
type PersonPatchRequest struct {
	FirstName *Text `json:"first_name" binding:"omitnil,min=1,max=255"`
	LastName  *Text `json:"last_name" binding:"omitnil,min=1,max=255"`
	Email     *Text `json:"email" binding:"omitnil,min=1,email,max=254"`
}

// AddMembersRequest represents request body for PUT /teams/:id/members.
type AddMembersRequest struct {
	MembersToAdd []int64 `json:"members_to_add" binding:"required"`
}

// AddToTeamsRequest represents request body for PUT /people/:id/teams.
type AddToTeamsRequest struct {
	AddToTeams []int64 `json:"add_to_teams" binding:"required"`
}
