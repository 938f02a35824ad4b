package processrouter

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/integraph/integraph/engine/agent"
	"github.com/integraph/integraph/engine/core"
	"github.com/integraph/integraph/engine/infra/server/router"
	"github.com/integraph/integraph/engine/process"
	processuc "github.com/integraph/integraph/engine/process/uc"
)

type handlers struct {
	processes process.Repository
	agents    agent.Repository
}

// Register mounts the process routes on the given group. Listing accepts
// an agent_id filter; start and stop drive the status machine.
func Register(grp gin.IRouter, processes process.Repository, agents agent.Repository) {
	h := &handlers{processes: processes, agents: agents}
	grp.POST("/processes", h.create)
	grp.GET("/processes", h.list)
	grp.GET("/processes/:id", h.get)
	grp.PUT("/processes/:id", h.update)
	grp.DELETE("/processes/:id", h.remove)
	grp.POST("/processes/:id/start", h.start)
	grp.POST("/processes/:id/stop", h.stop)
}

func (h *handlers) create(c *gin.Context) {
	var input processuc.CreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		router.RespondProblem(c, &core.Problem{Status: http.StatusBadRequest, Detail: "invalid request body"})
		return
	}
	created, err := processuc.NewCreate(h.processes, h.agents, &input).Execute(c.Request.Context())
	if err != nil {
		router.RespondError(c, err)
		return
	}
	router.RespondCreated(c, "process created", created)
}

func (h *handlers) get(c *gin.Context) {
	id, ok := router.IDParam(c, "id")
	if !ok {
		return
	}
	found, err := processuc.NewGet(h.processes, id).Execute(c.Request.Context())
	if err != nil {
		router.RespondError(c, err)
		return
	}
	router.RespondOK(c, "process retrieved", found)
}

func (h *handlers) list(c *gin.Context) {
	agentID, ok := router.OptionalIDQuery(c, "agent_id")
	if !ok {
		return
	}
	filter := process.Filter{AgentID: agentID}
	processes, err := processuc.NewList(h.processes, filter, router.PageQuery(c)).Execute(c.Request.Context())
	if err != nil {
		router.RespondError(c, err)
		return
	}
	router.RespondOK(c, "processes retrieved", processes)
}

func (h *handlers) update(c *gin.Context) {
	id, ok := router.IDParam(c, "id")
	if !ok {
		return
	}
	var input processuc.UpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		router.RespondProblem(c, &core.Problem{Status: http.StatusBadRequest, Detail: "invalid request body"})
		return
	}
	updated, err := processuc.NewUpdate(h.processes, h.agents, id, &input).Execute(c.Request.Context())
	if err != nil {
		router.RespondError(c, err)
		return
	}
	router.RespondOK(c, "process updated", updated)
}

func (h *handlers) remove(c *gin.Context) {
	id, ok := router.IDParam(c, "id")
	if !ok {
		return
	}
	deleted, err := processuc.NewDelete(h.processes, id).Execute(c.Request.Context())
	if err != nil {
		router.RespondError(c, err)
		return
	}
	router.RespondOK(c, "process deleted", deleted)
}

func (h *handlers) start(c *gin.Context) {
	id, ok := router.IDParam(c, "id")
	if !ok {
		return
	}
	started, err := processuc.NewStart(h.processes, id).Execute(c.Request.Context())
	if err != nil {
		router.RespondError(c, err)
		return
	}
	router.RespondOK(c, "process started", started)
}

func (h *handlers) stop(c *gin.Context) {
	id, ok := router.IDParam(c, "id")
	if !ok {
		return
	}
	stopped, err := processuc.NewStop(h.processes, id).Execute(c.Request.Context())
	if err != nil {
		router.RespondError(c, err)
		return
	}
	router.RespondOK(c, "process stopped", stopped)
}
