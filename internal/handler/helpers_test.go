package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/mishasvintus/teams_api/internal/handler"
	"github.com/mishasvintus/teams_api/internal/handler/mocks"
	"github.com/mishasvintus/teams_api/internal/router"
)

type testServer struct {
	engine  *gin.Engine
	teams   *mocks.MockTeamServiceInterface
	people  *mocks.MockPersonServiceInterface
	storage *mocks.MockPinger
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	s := &testServer{
		teams:   mocks.NewMockTeamServiceInterface(ctrl),
		people:  mocks.NewMockPersonServiceInterface(ctrl),
		storage: mocks.NewMockPinger(ctrl),
	}
	s.engine = router.SetupRoutes(
		zap.NewNop(),
		handler.NewTeamHandler(s.teams),
		handler.NewPersonHandler(s.people),
		handler.NewHealthHandler(s.storage),
	)
	return s
}

// do sends a request through the full router. body may be nil, a string
// sent verbatim, or any value encoded as JSON.
func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewBuffer(raw)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}
