package service

import (
	"errors"
	"fmt"

	"github.com/mishasvintus/teams_api/internal/domain"
)

var (
	ErrTeamNotFound       = errors.New("team not found")
	ErrPersonNotFound     = errors.New("person not found")
	ErrMemberNotFound     = errors.New("member not found")
	ErrPersonTeamNotFound = errors.New("team membership not found")
	ErrTeamNameTaken      = errors.New("team with this name already exists")
)

// ReasonDoesNotExist is reported when a referenced identifier has no record.
const ReasonDoesNotExist = "does not exist"

// ValidationError rejects a membership change that references a missing entity.
type ValidationError struct {
	Kind      domain.EntityKind
	InvalidID int64
	Reason    string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s with id %d %s", e.Kind, e.InvalidID, e.Reason)
}
