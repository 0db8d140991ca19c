package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mishasvintus/teams_api/internal/domain"
	"github.com/mishasvintus/teams_api/internal/service"
)

var laura = domain.Person{ID: 1, FirstName: "Laura", LastName: "Smith", Email: "laura@gmail.com"}

func TestPersonHandler_ListPeople(t *testing.T) {
	s := newTestServer(t)
	s.people.EXPECT().ListPeople().Return([]domain.PersonWithTeams{
		{Person: laura, Teams: []domain.Team{{ID: 1, Name: "Test team"}, {ID: 3, Name: "Ops"}}},
		{Person: domain.Person{ID: 2, FirstName: "John", LastName: "Smith", Email: "john@example.com"}, Teams: []domain.Team{}},
	}, nil)

	w := s.do(t, http.MethodGet, "/people", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[
		{"id": 1, "first_name": "Laura", "last_name": "Smith", "email": "laura@gmail.com",
		 "teams": [{"id": 1, "name": "Test team"}, {"id": 3, "name": "Ops"}]},
		{"id": 2, "first_name": "John", "last_name": "Smith", "email": "john@example.com",
		 "teams": []}
	]`, w.Body.String())
}

func TestPersonHandler_CreatePerson(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    any
		mockSetup      func(*testServer)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success - returns base shape",
			requestBody: map[string]any{
				"first_name": "Laura",
				"last_name":  "Smith",
				"email":      "laura@gmail.com",
			},
			mockSetup: func(s *testServer) {
				s.people.EXPECT().
					CreatePerson(domain.Person{FirstName: "Laura", LastName: "Smith", Email: "laura@gmail.com"}).
					Return(&laura, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `{"id": 1, "first_name": "Laura", "last_name": "Smith", "email": "laura@gmail.com"}`,
		},
		{
			name: "error - invalid email",
			requestBody: map[string]any{
				"first_name": "Laura",
				"last_name":  "Smith",
				"email":      "not-an-email",
			},
			mockSetup:      func(s *testServer) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"email": ["enter a valid email address"]}`,
		},
		{
			name: "error - blank names",
			requestBody: map[string]any{
				"first_name": "  ",
				"last_name":  "",
				"email":      "laura@gmail.com",
			},
			mockSetup:      func(s *testServer) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody: `{
				"first_name": ["this field may not be blank"],
				"last_name": ["this field may not be blank"]
			}`,
		},
		{
			name: "success - fields are trimmed",
			requestBody: map[string]any{
				"first_name": " Laura",
				"last_name":  "Smith ",
				"email":      " laura@gmail.com ",
			},
			mockSetup: func(s *testServer) {
				s.people.EXPECT().
					CreatePerson(domain.Person{FirstName: "Laura", LastName: "Smith", Email: "laura@gmail.com"}).
					Return(&domain.Person{ID: 1, FirstName: "Laura", LastName: "Smith", Email: "laura@gmail.com"}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `{"id": 1, "first_name": "Laura", "last_name": "Smith", "email": "laura@gmail.com"}`,
		},
		{
			name:           "error - every missing field is reported",
			requestBody:    map[string]any{},
			mockSetup:      func(s *testServer) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody: `{
				"first_name": ["this field is required"],
				"last_name": ["this field is required"],
				"email": ["this field is required"]
			}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			tt.mockSetup(s)

			w := s.do(t, http.MethodPost, "/people", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestPersonHandler_GetPerson(t *testing.T) {
	t.Run("success - expanded shape embeds teams", func(t *testing.T) {
		s := newTestServer(t)
		s.people.EXPECT().GetPerson(int64(1)).Return(&domain.PersonWithTeams{
			Person: laura,
			Teams:  []domain.Team{{ID: 1, Name: "Test team"}},
		}, nil)

		w := s.do(t, http.MethodGet, "/people/1", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{
			"id": 1, "first_name": "Laura", "last_name": "Smith", "email": "laura@gmail.com",
			"teams": [{"id": 1, "name": "Test team"}]
		}`, w.Body.String())
	})

	t.Run("error - person not found", func(t *testing.T) {
		s := newTestServer(t)
		s.people.EXPECT().GetPerson(int64(9)).Return(nil, service.ErrPersonNotFound)

		w := s.do(t, http.MethodGet, "/people/9", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"detail": "person not found"}`, w.Body.String())
	})
}

func TestPersonHandler_UpdatePerson(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		requestBody    any
		mockSetup      func(*testServer)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "success - put replaces all fields",
			method: http.MethodPut,
			requestBody: map[string]any{
				"first_name": "Laura",
				"last_name":  "Jones",
				"email":      "laura@jones.com",
			},
			mockSetup: func(s *testServer) {
				s.people.EXPECT().
					UpdatePerson(int64(1), domain.PersonPatch{
						FirstName: strPtr("Laura"),
						LastName:  strPtr("Jones"),
						Email:     strPtr("laura@jones.com"),
					}).
					Return(&domain.Person{ID: 1, FirstName: "Laura", LastName: "Jones", Email: "laura@jones.com"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"id": 1, "first_name": "Laura", "last_name": "Jones", "email": "laura@jones.com"}`,
		},
		{
			name:           "error - put with missing fields",
			method:         http.MethodPut,
			requestBody:    map[string]any{"first_name": "Laura", "last_name": "Jones"},
			mockSetup:      func(s *testServer) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"email": ["this field is required"]}`,
		},
		{
			name:        "success - patch changes only given fields",
			method:      http.MethodPatch,
			requestBody: map[string]any{"last_name": "Jones"},
			mockSetup: func(s *testServer) {
				s.people.EXPECT().
					UpdatePerson(int64(1), domain.PersonPatch{LastName: strPtr("Jones")}).
					Return(&domain.Person{ID: 1, FirstName: "Laura", LastName: "Jones", Email: "laura@gmail.com"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"id": 1, "first_name": "Laura", "last_name": "Jones", "email": "laura@gmail.com"}`,
		},
		{
			name:           "error - patch with blank email",
			method:         http.MethodPatch,
			requestBody:    map[string]any{"email": "  "},
			mockSetup:      func(s *testServer) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"email": ["this field may not be blank"]}`,
		},
		{
			name:           "error - patch with invalid email",
			method:         http.MethodPatch,
			requestBody:    map[string]any{"email": "laura"},
			mockSetup:      func(s *testServer) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"email": ["enter a valid email address"]}`,
		},
		{
			name:        "error - person not found",
			method:      http.MethodPatch,
			requestBody: map[string]any{"first_name": "Kate"},
			mockSetup: func(s *testServer) {
				s.people.EXPECT().
					UpdatePerson(int64(1), domain.PersonPatch{FirstName: strPtr("Kate")}).
					Return(nil, service.ErrPersonNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"detail": "person not found"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			tt.mockSetup(s)

			w := s.do(t, tt.method, "/people/1", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestPersonHandler_DeletePerson(t *testing.T) {
	s := newTestServer(t)
	s.people.EXPECT().DeletePerson(int64(1)).Return(nil)

	w := s.do(t, http.MethodDelete, "/people/1", nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestPersonHandler_Teams(t *testing.T) {
	t.Run("list - base team shape without count", func(t *testing.T) {
		s := newTestServer(t)
		s.people.EXPECT().ListPersonTeams(int64(1)).Return([]domain.Team{{ID: 1, Name: "Test team"}}, nil)

		w := s.do(t, http.MethodGet, "/people/1/teams", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[{"id": 1, "name": "Test team"}]`, w.Body.String())
	})

	t.Run("list - person not found", func(t *testing.T) {
		s := newTestServer(t)
		s.people.EXPECT().ListPersonTeams(int64(1)).Return(nil, service.ErrPersonNotFound)

		w := s.do(t, http.MethodGet, "/people/1/teams", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("add - success", func(t *testing.T) {
		s := newTestServer(t)
		s.people.EXPECT().AddPersonToTeams(int64(1), []int64{2, 3}).Return(nil)

		w := s.do(t, http.MethodPut, "/people/1/teams", map[string]any{"add_to_teams": []int64{2, 3}})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("add - unknown team id", func(t *testing.T) {
		s := newTestServer(t)
		s.people.EXPECT().AddPersonToTeams(int64(1), []int64{2, 77}).Return(&service.ValidationError{
			Kind:      domain.KindTeam,
			InvalidID: 77,
			Reason:    service.ReasonDoesNotExist,
		})

		w := s.do(t, http.MethodPut, "/people/1/teams", map[string]any{"add_to_teams": []int64{2, 77}})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"add_to_teams": ["team with id 77 does not exist"]}`, w.Body.String())
	})

	t.Run("get - team the person belongs to", func(t *testing.T) {
		s := newTestServer(t)
		s.people.EXPECT().GetPersonTeam(int64(1), int64(2)).Return(&domain.Team{ID: 2, Name: "Ops"}, nil)

		w := s.do(t, http.MethodGet, "/people/1/teams/2", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id": 2, "name": "Ops"}`, w.Body.String())
	})

	t.Run("get - not a member", func(t *testing.T) {
		s := newTestServer(t)
		s.people.EXPECT().GetPersonTeam(int64(1), int64(2)).Return(nil, service.ErrPersonTeamNotFound)

		w := s.do(t, http.MethodGet, "/people/1/teams/2", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"detail": "team membership not found"}`, w.Body.String())
	})

	t.Run("remove - success", func(t *testing.T) {
		s := newTestServer(t)
		s.people.EXPECT().RemovePersonFromTeam(int64(1), int64(2)).Return(nil)

		w := s.do(t, http.MethodDelete, "/people/1/teams/2", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("remove - not a member", func(t *testing.T) {
		s := newTestServer(t)
		s.people.EXPECT().RemovePersonFromTeam(int64(1), int64(2)).Return(service.ErrPersonTeamNotFound)

		w := s.do(t, http.MethodDelete, "/people/1/teams/2", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
