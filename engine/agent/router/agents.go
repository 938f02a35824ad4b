package agentrouter

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/integraph/integraph/engine/agent"
	agentuc "github.com/integraph/integraph/engine/agent/uc"
	"github.com/integraph/integraph/engine/core"
	"github.com/integraph/integraph/engine/infra/server/router"
	"github.com/integraph/integraph/engine/process"
)

type handlers struct {
	agents    agent.Repository
	processes process.Repository
}

// Register mounts the agent routes on the given group.
func Register(grp gin.IRouter, agents agent.Repository, processes process.Repository) {
	h := &handlers{agents: agents, processes: processes}
	grp.POST("/agents", h.create)
	grp.GET("/agents", h.list)
	grp.GET("/agents/:id", h.get)
	grp.PUT("/agents/:id", h.update)
	grp.DELETE("/agents/:id", h.remove)
}

func (h *handlers) create(c *gin.Context) {
	var input agentuc.CreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		router.RespondProblem(c, &core.Problem{Status: http.StatusBadRequest, Detail: "invalid request body"})
		return
	}
	created, err := agentuc.NewCreate(h.agents, &input).Execute(c.Request.Context())
	if err != nil {
		router.RespondError(c, err)
		return
	}
	router.RespondCreated(c, "agent created", created)
}

func (h *handlers) get(c *gin.Context) {
	id, ok := router.IDParam(c, "id")
	if !ok {
		return
	}
	found, err := agentuc.NewGet(h.agents, id).Execute(c.Request.Context())
	if err != nil {
		router.RespondError(c, err)
		return
	}
	router.RespondOK(c, "agent retrieved", found)
}

func (h *handlers) list(c *gin.Context) {
	agents, err := agentuc.NewList(h.agents, router.PageQuery(c)).Execute(c.Request.Context())
	if err != nil {
		router.RespondError(c, err)
		return
	}
	router.RespondOK(c, "agents retrieved", agents)
}

func (h *handlers) update(c *gin.Context) {
	id, ok := router.IDParam(c, "id")
	if !ok {
		return
	}
	var input agentuc.UpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		router.RespondProblem(c, &core.Problem{Status: http.StatusBadRequest, Detail: "invalid request body"})
		return
	}
	updated, err := agentuc.NewUpdate(h.agents, id, &input).Execute(c.Request.Context())
	if err != nil {
		router.RespondError(c, err)
		return
	}
	router.RespondOK(c, "agent updated", updated)
}

func (h *handlers) remove(c *gin.Context) {
	id, ok := router.IDParam(c, "id")
	if !ok {
		return
	}
	deleted, err := agentuc.NewDelete(h.agents, h.processes, id).Execute(c.Request.Context())
	if err != nil {
		router.RespondError(c, err)
		return
	}
	router.RespondOK(c, "agent deleted", deleted)
}
