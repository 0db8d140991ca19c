package service

import (
	"fmt"

	"github.com/mishasvintus/teams_api/internal/domain"
	"github.com/mishasvintus/teams_api/internal/repository"
	"github.com/mishasvintus/teams_api/internal/repository/person"
	"github.com/mishasvintus/teams_api/internal/repository/team"
)

// ValidateIDsExist checks that every id refers to an existing entity of the
// given kind. The ids are returned unchanged on success. Otherwise the first
// missing id, in input order, is reported as a *ValidationError.
func ValidateIDsExist(exec repository.DBTX, ids []int64, kind domain.EntityKind) ([]int64, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("unknown entity kind %q", kind)
	}
	if len(ids) == 0 {
		return ids, nil
	}

	var (
		existing []int64
		err      error
	)
	if kind == domain.KindPerson {
		existing, err = person.ExistingIDs(exec, ids)
	} else {
		existing, err = team.ExistingIDs(exec, ids)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to validate %s ids: %w", kind, err)
	}

	found := make(map[int64]struct{}, len(existing))
	for _, id := range existing {
		found[id] = struct{}{}
	}

	for _, id := range ids {
		if _, ok := found[id]; !ok {
			return nil, &ValidationError{Kind: kind, InvalidID: id, Reason: ReasonDoesNotExist}
		}
	}

	return ids, nil
}

// resolveLinkViolation explains a foreign key violation raised while linking
// ids to an owner, which happens when a row is deleted between validation and
// insert. It re-checks against db and returns ownerNotFound or the
// *ValidationError the request would have failed with. If everything exists
// again, cause is returned.
func resolveLinkViolation(
	db repository.DBTX,
	ownerID int64,
	ownerExists func(repository.DBTX, int64) (bool, error),
	ownerNotFound error,
	ids []int64,
	kind domain.EntityKind,
	cause error,
) error {
	exists, err := ownerExists(db, ownerID)
	if err != nil {
		return err
	}
	if !exists {
		return ownerNotFound
	}

	if _, err := ValidateIDsExist(db, ids, kind); err != nil {
		return err
	}
	return fmt.Errorf("failed to link %s ids: %w", kind, cause)
}
