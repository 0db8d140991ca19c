package service_test

import (
	"os"
	"testing"

	"github.com/mishasvintus/teams_api/internal/testdb"
)

func TestMain(m *testing.M) {
	os.Exit(testdb.Main(m))
}
