package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/mishasvintus/teams_api/internal/handler"
	"github.com/mishasvintus/teams_api/internal/middleware"
)

// SetupRoutes configures all API routes.
func SetupRoutes(
	log *zap.Logger,
	teamHandler *handler.TeamHandler,
	personHandler *handler.PersonHandler,
	healthHandler *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logging(log),
		middleware.Recovery(log),
		middleware.Metrics(),
	)

	// Service endpoints
	r.GET("/health", healthHandler.Check)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Team endpoints
	teams := r.Group("/teams")
	teams.GET("", teamHandler.ListTeams)
	teams.POST("", teamHandler.CreateTeam)
	teams.GET("/:id", teamHandler.GetTeam)
	teams.PUT("/:id", teamHandler.UpdateTeam)
	teams.PATCH("/:id", teamHandler.PatchTeam)
	teams.DELETE("/:id", teamHandler.DeleteTeam)

	// Team membership endpoints
	teams.GET("/:id/members", teamHandler.ListMembers)
	teams.PUT("/:id/members", teamHandler.AddMembers)
	teams.GET("/:id/members/:person_id", teamHandler.GetMember)
	teams.DELETE("/:id/members/:person_id", teamHandler.RemoveMember)

	// Person endpoints
	people := r.Group("/people")
	people.GET("", personHandler.ListPeople)
	people.POST("", personHandler.CreatePerson)
	people.GET("/:id", personHandler.GetPerson)
	people.PUT("/:id", personHandler.UpdatePerson)
	people.PATCH("/:id", personHandler.PatchPerson)
	people.DELETE("/:id", personHandler.DeletePerson)

	// Person membership endpoints
	people.GET("/:id/teams", personHandler.ListTeams)
	people.PUT("/:id/teams", personHandler.AddToTeams)
	people.GET("/:id/teams/:team_id", personHandler.GetTeam)
	people.DELETE("/:id/teams/:team_id", personHandler.RemoveFromTeam)

	return r
}
