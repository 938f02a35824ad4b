package transformationrouter

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/integraph/integraph/engine/core"
	"github.com/integraph/integraph/engine/field"
	"github.com/integraph/integraph/engine/infra/server/router"
	"github.com/integraph/integraph/engine/task"
	"github.com/integraph/integraph/engine/transformation"
	transformationuc "github.com/integraph/integraph/engine/transformation/uc"
)

type handlers struct {
	transformations transformation.Repository
	tasks           task.Repository
	fields          field.Repository
}

// Register mounts the transformation routes on the given group. Listing
// accepts a task_id filter; the nested task route creates a whole batch
// atomically.
func Register(grp gin.IRouter, transformations transformation.Repository, tasks task.Repository, fields field.Repository) {
	h := &handlers{transformations: transformations, tasks: tasks, fields: fields}
	grp.POST("/transformations", h.create)
	grp.GET("/transformations", h.list)
	grp.GET("/transformations/:id", h.get)
	grp.PUT("/transformations/:id", h.update)
	grp.DELETE("/transformations/:id", h.remove)
	grp.POST("/tasks/:id/transformations", h.createBatch)
}

func (h *handlers) create(c *gin.Context) {
	var input transformationuc.Input
	if err := c.ShouldBindJSON(&input); err != nil {
		router.RespondProblem(c, &core.Problem{Status: http.StatusBadRequest, Detail: "invalid request body"})
		return
	}
	created, err := transformationuc.NewCreate(h.transformations, h.tasks, h.fields, &input).
		Execute(c.Request.Context())
	if err != nil {
		router.RespondError(c, err)
		return
	}
	router.RespondCreated(c, "transformation created", created)
}

func (h *handlers) createBatch(c *gin.Context) {
	taskID, ok := router.IDParam(c, "id")
	if !ok {
		return
	}
	var inputs []*transformationuc.Input
	if err := c.ShouldBindJSON(&inputs); err != nil {
		router.RespondProblem(c, &core.Problem{Status: http.StatusBadRequest, Detail: "invalid request body"})
		return
	}
	created, err := transformationuc.NewCreateBatch(h.transformations, h.tasks, h.fields, taskID, inputs).
		Execute(c.Request.Context())
	if err != nil {
		router.RespondError(c, err)
		return
	}
	router.RespondCreated(c, "transformations created", created)
}

func (h *handlers) get(c *gin.Context) {
	id, ok := router.IDParam(c, "id")
	if !ok {
		return
	}
	found, err := transformationuc.NewGet(h.transformations, id).Execute(c.Request.Context())
	if err != nil {
		router.RespondError(c, err)
		return
	}
	router.RespondOK(c, "transformation retrieved", found)
}

func (h *handlers) list(c *gin.Context) {
	taskID, ok := router.OptionalIDQuery(c, "task_id")
	if !ok {
		return
	}
	filter := transformation.Filter{TaskID: taskID}
	transformations, err := transformationuc.NewList(h.transformations, filter, router.PageQuery(c)).
		Execute(c.Request.Context())
	if err != nil {
		router.RespondError(c, err)
		return
	}
	router.RespondOK(c, "transformations retrieved", transformations)
}

func (h *handlers) update(c *gin.Context) {
	id, ok := router.IDParam(c, "id")
	if !ok {
		return
	}
	var input transformationuc.Input
	if err := c.ShouldBindJSON(&input); err != nil {
		router.RespondProblem(c, &core.Problem{Status: http.StatusBadRequest, Detail: "invalid request body"})
		return
	}
	updated, err := transformationuc.NewUpdate(h.transformations, h.tasks, h.fields, id, &input).
		Execute(c.Request.Context())
	if err != nil {
		router.RespondError(c, err)
		return
	}
	router.RespondOK(c, "transformation updated", updated)
}

func (h *handlers) remove(c *gin.Context) {
	id, ok := router.IDParam(c, "id")
	if !ok {
		return
	}
	deleted, err := transformationuc.NewDelete(h.transformations, id).Execute(c.Request.Context())
	if err != nil {
		router.RespondError(c, err)
		return
	}
	router.RespondOK(c, "transformation deleted", deleted)
}
