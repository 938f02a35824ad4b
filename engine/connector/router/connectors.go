package connectorrouter

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/integraph/integraph/engine/connector"
	connectoruc "github.com/integraph/integraph/engine/connector/uc"
	"github.com/integraph/integraph/engine/core"
	"github.com/integraph/integraph/engine/infra/server/router"
	"github.com/integraph/integraph/engine/task"
)

type handlers struct {
	connectors connector.Repository
	tasks      task.Repository
}

// Register mounts the connector routes on the given group. Listing accepts
// a task_id filter.
func Register(grp gin.IRouter, connectors connector.Repository, tasks task.Repository) {
	h := &handlers{connectors: connectors, tasks: tasks}
	grp.POST("/connectors", h.create)
	grp.GET("/connectors", h.list)
	grp.GET("/connectors/:id", h.get)
	grp.PUT("/connectors/:id", h.update)
	grp.DELETE("/connectors/:id", h.remove)
}

func (h *handlers) create(c *gin.Context) {
	var input connectoruc.Input
	if err := c.ShouldBindJSON(&input); err != nil {
		router.RespondProblem(c, &core.Problem{Status: http.StatusBadRequest, Detail: "invalid request body"})
		return
	}
	created, err := connectoruc.NewCreate(h.connectors, h.tasks, &input).Execute(c.Request.Context())
	if err != nil {
		router.RespondError(c, err)
		return
	}
	router.RespondCreated(c, "connector created", created)
}

func (h *handlers) get(c *gin.Context) {
	id, ok := router.IDParam(c, "id")
	if !ok {
		return
	}
	found, err := connectoruc.NewGet(h.connectors, id).Execute(c.Request.Context())
	if err != nil {
		router.RespondError(c, err)
		return
	}
	router.RespondOK(c, "connector retrieved", found)
}

func (h *handlers) list(c *gin.Context) {
	taskID, ok := router.OptionalIDQuery(c, "task_id")
	if !ok {
		return
	}
	filter := connector.Filter{TaskID: taskID}
	connectors, err := connectoruc.NewList(h.connectors, filter, router.PageQuery(c)).Execute(c.Request.Context())
	if err != nil {
		router.RespondError(c, err)
		return
	}
	router.RespondOK(c, "connectors retrieved", connectors)
}

func (h *handlers) update(c *gin.Context) {
	id, ok := router.IDParam(c, "id")
	if !ok {
		return
	}
	var input connectoruc.Input
	if err := c.ShouldBindJSON(&input); err != nil {
		router.RespondProblem(c, &core.Problem{Status: http.StatusBadRequest, Detail: "invalid request body"})
		return
	}
	updated, err := connectoruc.NewUpdate(h.connectors, h.tasks, id, &input).Execute(c.Request.Context())
	if err != nil {
		router.RespondError(c, err)
		return
	}
	router.RespondOK(c, "connector updated", updated)
}

func (h *handlers) remove(c *gin.Context) {
	id, ok := router.IDParam(c, "id")
	if !ok {
		return
	}
	deleted, err := connectoruc.NewDelete(h.connectors, id).Execute(c.Request.Context())
	if err != nil {
		router.RespondError(c, err)
		return
	}
	router.RespondOK(c, "connector deleted", deleted)
}
