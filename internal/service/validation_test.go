package service_test

import (
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mishasvintus/teams_api/internal/domain"
	"github.com/mishasvintus/teams_api/internal/repository"
	"github.com/mishasvintus/teams_api/internal/repository/membership"
	"github.com/mishasvintus/teams_api/internal/repository/team"
	"github.com/mishasvintus/teams_api/internal/service"
	"github.com/mishasvintus/teams_api/internal/testdb"
)

func TestValidateIDsExist(t *testing.T) {
	db := testdb.Setup(t)

	laura := createPerson(t, db, "Laura", "laura@gmail.com")
	john := createPerson(t, db, "John", "john@example.com")
	tm, err := team.Create(db, "Test team")
	require.NoError(t, err)

	tests := []struct {
		name        string
		ids         []int64
		kind        domain.EntityKind
		expectedErr *service.ValidationError
	}{
		{
			name: "all people exist - ids returned unchanged",
			ids:  []int64{john.ID, laura.ID, john.ID},
			kind: domain.KindPerson,
		},
		{
			name: "empty input",
			ids:  []int64{},
			kind: domain.KindPerson,
		},
		{
			name: "team ids",
			ids:  []int64{tm.ID},
			kind: domain.KindTeam,
		},
		{
			name: "first missing id in input order is reported",
			ids:  []int64{laura.ID, john.ID + 200, john.ID + 100},
			kind: domain.KindPerson,
			expectedErr: &service.ValidationError{
				Kind:      domain.KindPerson,
				InvalidID: john.ID + 200,
				Reason:    service.ReasonDoesNotExist,
			},
		},
		{
			name: "person id is not a team id",
			ids:  []int64{tm.ID + 100},
			kind: domain.KindTeam,
			expectedErr: &service.ValidationError{
				Kind:      domain.KindTeam,
				InvalidID: tm.ID + 100,
				Reason:    service.ReasonDoesNotExist,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids, err := service.ValidateIDsExist(db, tt.ids, tt.kind)
			if tt.expectedErr != nil {
				var validationErr *service.ValidationError
				require.ErrorAs(t, err, &validationErr)
				assert.Equal(t, tt.expectedErr, validationErr)
				assert.Nil(t, ids)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.ids, ids)
		})
	}

	t.Run("unknown kind", func(t *testing.T) {
		_, err := service.ValidateIDsExist(db, []int64{laura.ID}, domain.EntityKind("membership"))
		assert.Error(t, err)
	})
}

func TestValidationError_Error(t *testing.T) {
	err := &service.ValidationError{Kind: domain.KindPerson, InvalidID: 9, Reason: service.ReasonDoesNotExist}
	assert.Equal(t, "person with id 9 does not exist", err.Error())
}

func TestValidateIDsExist_UnknownKindSkipsStore(t *testing.T) {
	ids, err := service.ValidateIDsExist(nil, []int64{1}, domain.EntityKind("membership"))
	assert.EqualError(t, err, `unknown entity kind "membership"`)
	assert.Nil(t, ids)
}

func TestResolveLinkViolation_Owner(t *testing.T) {
	cause := &pq.Error{Code: "23503"}

	t.Run("owner deleted concurrently", func(t *testing.T) {
		missing := func(repository.DBTX, int64) (bool, error) { return false, nil }

		err := service.ResolveLinkViolation(nil, 1, missing, service.ErrTeamNotFound, []int64{2}, domain.KindPerson, cause)
		assert.ErrorIs(t, err, service.ErrTeamNotFound)
	})

	t.Run("lookup fails", func(t *testing.T) {
		failing := func(repository.DBTX, int64) (bool, error) { return false, assert.AnError }

		err := service.ResolveLinkViolation(nil, 1, failing, service.ErrPersonNotFound, []int64{2}, domain.KindTeam, cause)
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestResolveLinkViolation_DeletedTarget(t *testing.T) {
	db := testdb.Setup(t)

	laura := createPerson(t, db, "Laura", "laura@gmail.com")
	tm, err := team.Create(db, "Test team")
	require.NoError(t, err)
	missing := laura.ID + 100

	linkErr := membership.AddMembers(db, tm.ID, []int64{laura.ID, missing})
	require.Error(t, linkErr)
	require.True(t, repository.IsForeignKeyViolation(linkErr))

	t.Run("reports the deleted person", func(t *testing.T) {
		err := service.ResolveLinkViolation(db, tm.ID, team.Exists, service.ErrTeamNotFound,
			[]int64{laura.ID, missing}, domain.KindPerson, linkErr)

		var validationErr *service.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, missing, validationErr.InvalidID)
		assert.Equal(t, domain.KindPerson, validationErr.Kind)
	})

	t.Run("everything exists again", func(t *testing.T) {
		err := service.ResolveLinkViolation(db, tm.ID, team.Exists, service.ErrTeamNotFound,
			[]int64{laura.ID}, domain.KindPerson, linkErr)
		assert.ErrorIs(t, err, linkErr)
	})

	t.Run("team deleted", func(t *testing.T) {
		require.NoError(t, team.Delete(db, tm.ID))

		err := service.ResolveLinkViolation(db, tm.ID, team.Exists, service.ErrTeamNotFound,
			[]int64{laura.ID}, domain.KindPerson, linkErr)
		assert.ErrorIs(t, err, service.ErrTeamNotFound)
	})
}
