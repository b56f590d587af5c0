// Package router wires HTTP routes to handlers.  Browse endpoints are
// public (optionally cached); every mutating endpoint requires a JWT with
// the ADMIN role.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/wrestling-roster/internal/handler"
	"github.com/iliyamo/wrestling-roster/internal/lifecycle"
	"github.com/iliyamo/wrestling-roster/internal/middleware"
	"github.com/iliyamo/wrestling-roster/internal/model"
)

// Handlers collects every handler the router registers.
type Handlers struct {
	Auth        *handler.AuthHandler
	Wrestlers   *handler.WrestlerHandler
	Referees    *handler.RefereeHandler
	Managers    *handler.ManagerHandler
	TagTeams    *handler.TagTeamHandler
	Stables     *handler.StableHandler
	Titles      *handler.TitleHandler
	Venues      *handler.VenueHandler
	Events      *handler.EventHandler
	Transitions *handler.TransitionHandler
}

// rosterTransitions is every lifecycle transition exposed for individual
// roster entities.  The path segment equals the transition name.
var rosterTransitions = []lifecycle.Transition{
	lifecycle.TransitionEmploy,
	lifecycle.TransitionRelease,
	lifecycle.TransitionSuspend,
	lifecycle.TransitionReinstate,
	lifecycle.TransitionInjure,
	lifecycle.TransitionClearInjury,
	lifecycle.TransitionRetire,
	lifecycle.TransitionUnretire,
}

// tagTeamTransitions excludes injure/clear-injury: tag teams have no
// injury ledger.
var tagTeamTransitions = []lifecycle.Transition{
	lifecycle.TransitionEmploy,
	lifecycle.TransitionRelease,
	lifecycle.TransitionSuspend,
	lifecycle.TransitionReinstate,
	lifecycle.TransitionRetire,
	lifecycle.TransitionUnretire,
}

var titleTransitions = []lifecycle.Transition{
	lifecycle.TransitionActivate,
	lifecycle.TransitionDeactivate,
	lifecycle.TransitionRetire,
	lifecycle.TransitionUnretire,
}

// RegisterRoutes registers routes that need no authentication beyond the
// health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers authentication routes.  Register/login/refresh
// and token-based logout are open; /v1/me requires a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("ADMIN", "VIEWER"))
	auth.GET("/me", a.Me)
	auth.POST("/logout", a.Logout)
}

// RegisterRoster registers the roster API.  The public middleware chain
// (response cache, rate limit) applies to unauthenticated GETs only, so
// admins never read stale state through the cache.
func RegisterRoster(e *echo.Echo, h Handlers, jwtSecret string, public ...echo.MiddlewareFunc) {
	browse := e.Group("/v1", public...)

	browse.GET("/wrestlers", h.Wrestlers.List)
	browse.GET("/wrestlers/:id", h.Wrestlers.Get)
	browse.GET("/wrestlers/:id/history", h.Wrestlers.History)
	browse.GET("/referees", h.Referees.List)
	browse.GET("/referees/:id", h.Referees.Get)
	browse.GET("/referees/:id/history", h.Referees.History)
	browse.GET("/managers", h.Managers.List)
	browse.GET("/managers/:id", h.Managers.Get)
	browse.GET("/managers/:id/history", h.Managers.History)
	browse.GET("/tag-teams", h.TagTeams.List)
	browse.GET("/tag-teams/:id", h.TagTeams.Get)
	browse.GET("/tag-teams/:id/history", h.TagTeams.History)
	browse.GET("/stables", h.Stables.List)
	browse.GET("/stables/:id", h.Stables.Get)
	browse.GET("/titles", h.Titles.List)
	browse.GET("/titles/:id", h.Titles.Get)
	browse.GET("/titles/:id/reigns", h.Titles.Reigns)
	browse.GET("/venues", h.Venues.List)
	browse.GET("/venues/:id", h.Venues.Get)
	browse.GET("/events", h.Events.List)
	browse.GET("/events/:id", h.Events.Get)

	admin := e.Group("/v1")
	admin.Use(middleware.JWTAuth(jwtSecret))
	admin.Use(middleware.RequireRole("ADMIN"))

	admin.POST("/wrestlers", h.Wrestlers.Create)
	admin.PUT("/wrestlers/:id", h.Wrestlers.Update)
	admin.DELETE("/wrestlers/:id", h.Wrestlers.Delete)
	admin.POST("/wrestlers/:id/restore", h.Wrestlers.Restore)
	for _, tr := range rosterTransitions {
		admin.POST("/wrestlers/:id/"+string(tr), h.Transitions.Apply(model.EntityWrestler, tr))
	}

	admin.POST("/referees", h.Referees.Create)
	admin.PUT("/referees/:id", h.Referees.Update)
	admin.DELETE("/referees/:id", h.Referees.Delete)
	admin.POST("/referees/:id/restore", h.Referees.Restore)
	for _, tr := range rosterTransitions {
		admin.POST("/referees/:id/"+string(tr), h.Transitions.Apply(model.EntityReferee, tr))
	}

	admin.POST("/managers", h.Managers.Create)
	admin.PUT("/managers/:id", h.Managers.Update)
	admin.DELETE("/managers/:id", h.Managers.Delete)
	admin.POST("/managers/:id/restore", h.Managers.Restore)
	for _, tr := range rosterTransitions {
		admin.POST("/managers/:id/"+string(tr), h.Transitions.Apply(model.EntityManager, tr))
	}

	admin.POST("/tag-teams", h.TagTeams.Create)
	admin.PUT("/tag-teams/:id", h.TagTeams.Update)
	admin.DELETE("/tag-teams/:id", h.TagTeams.Delete)
	admin.POST("/tag-teams/:id/restore", h.TagTeams.Restore)
	admin.POST("/tag-teams/:id/partners", h.TagTeams.AddPartner)
	admin.DELETE("/tag-teams/:id/partners/:wrestler_id", h.TagTeams.RemovePartner)
	for _, tr := range tagTeamTransitions {
		admin.POST("/tag-teams/:id/"+string(tr), h.Transitions.Apply(model.EntityTagTeam, tr))
	}

	admin.POST("/stables", h.Stables.Create)
	admin.PUT("/stables/:id", h.Stables.Update)
	admin.DELETE("/stables/:id", h.Stables.Delete)
	admin.POST("/stables/:id/restore", h.Stables.Restore)
	admin.POST("/stables/:id/members", h.Stables.AddMember)
	admin.DELETE("/stables/:id/members/:member_type/:member_id", h.Stables.RemoveMember)

	admin.POST("/titles", h.Titles.Create)
	admin.PUT("/titles/:id", h.Titles.Update)
	admin.DELETE("/titles/:id", h.Titles.Delete)
	admin.POST("/titles/:id/restore", h.Titles.Restore)
	admin.POST("/titles/:id/crown", h.Titles.Crown)
	admin.POST("/titles/:id/vacate", h.Titles.Vacate)
	for _, tr := range titleTransitions {
		admin.POST("/titles/:id/"+string(tr), h.Titles.Transition(tr))
	}

	admin.POST("/venues", h.Venues.Create)
	admin.PUT("/venues/:id", h.Venues.Update)
	admin.DELETE("/venues/:id", h.Venues.Delete)
	admin.POST("/venues/:id/restore", h.Venues.Restore)

	admin.POST("/events", h.Events.Create)
	admin.PUT("/events/:id", h.Events.Update)
	admin.DELETE("/events/:id", h.Events.Delete)
	admin.POST("/events/:id/restore", h.Events.Restore)
}
