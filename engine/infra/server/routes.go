package server

import (
	"github.com/gin-gonic/gin"
	agentrouter "github.com/integraph/integraph/engine/agent/router"
	authrouter "github.com/integraph/integraph/engine/auth/router"
	connectorrouter "github.com/integraph/integraph/engine/connector/router"
	fieldrouter "github.com/integraph/integraph/engine/field/router"
	processrouter "github.com/integraph/integraph/engine/process/router"
	schedulerouter "github.com/integraph/integraph/engine/schedule/router"
	taskrouter "github.com/integraph/integraph/engine/task/router"
	transformationrouter "github.com/integraph/integraph/engine/transformation/router"
)

// registerRoutes mounts the versioned API. The health and login endpoints
// stay open; everything else sits behind bearer auth when enabled.
func (s *Server) registerRoutes(r *gin.Engine) {
	api := r.Group("/api/v0")
	api.GET("/health", s.handleHealth)
	authrouter.Register(api, s.repos.Users, s.tokens)

	protected := api.Group("")
	if s.cfg.Auth.Enabled {
		protected.Use(AuthMiddleware(s.tokens))
	}
	agentrouter.Register(protected, s.repos.Agents, s.repos.Processes)
	processrouter.Register(protected, s.repos.Processes, s.repos.Agents)
	schedulerouter.Register(protected, s.repos.Schedules, s.repos.Processes)
	taskrouter.Register(protected, s.repos.Tasks, s.repos.Processes)
	fieldrouter.Register(protected, s.repos.Fields, s.repos.Tasks)
	connectorrouter.Register(protected, s.repos.Connectors, s.repos.Tasks)
	transformationrouter.Register(protected, s.repos.Transformations, s.repos.Tasks, s.repos.Fields)
}
