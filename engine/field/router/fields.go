package fieldrouter

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/integraph/integraph/engine/core"
	"github.com/integraph/integraph/engine/field"
	fielduc "github.com/integraph/integraph/engine/field/uc"
	"github.com/integraph/integraph/engine/infra/server/router"
	"github.com/integraph/integraph/engine/task"
)

type handlers struct {
	fields field.Repository
	tasks  task.Repository
}

// Register mounts the field routes on the given group. Listing accepts a
// task_id filter; the nested task route creates a whole batch atomically.
func Register(grp gin.IRouter, fields field.Repository, tasks task.Repository) {
	h := &handlers{fields: fields, tasks: tasks}
	grp.POST("/fields", h.create)
	grp.GET("/fields", h.list)
	grp.GET("/fields/:id", h.get)
	grp.PUT("/fields/:id", h.update)
	grp.DELETE("/fields/:id", h.remove)
	grp.POST("/tasks/:id/fields", h.createBatch)
}

func (h *handlers) create(c *gin.Context) {
	var input fielduc.Input
	if err := c.ShouldBindJSON(&input); err != nil {
		router.RespondProblem(c, &core.Problem{Status: http.StatusBadRequest, Detail: "invalid request body"})
		return
	}
	created, err := fielduc.NewCreate(h.fields, h.tasks, &input).Execute(c.Request.Context())
	if err != nil {
		router.RespondError(c, err)
		return
	}
	router.RespondCreated(c, "field created", created)
}

func (h *handlers) createBatch(c *gin.Context) {
	taskID, ok := router.IDParam(c, "id")
	if !ok {
		return
	}
	var inputs []*fielduc.Input
	if err := c.ShouldBindJSON(&inputs); err != nil {
		router.RespondProblem(c, &core.Problem{Status: http.StatusBadRequest, Detail: "invalid request body"})
		return
	}
	created, err := fielduc.NewCreateBatch(h.fields, h.tasks, taskID, inputs).Execute(c.Request.Context())
	if err != nil {
		router.RespondError(c, err)
		return
	}
	router.RespondCreated(c, "fields created", created)
}

func (h *handlers) get(c *gin.Context) {
	id, ok := router.IDParam(c, "id")
	if !ok {
		return
	}
	found, err := fielduc.NewGet(h.fields, id).Execute(c.Request.Context())
	if err != nil {
		router.RespondError(c, err)
		return
	}
	router.RespondOK(c, "field retrieved", found)
}

func (h *handlers) list(c *gin.Context) {
	taskID, ok := router.OptionalIDQuery(c, "task_id")
	if !ok {
		return
	}
	filter := field.Filter{TaskID: taskID}
	fields, err := fielduc.NewList(h.fields, filter, router.PageQuery(c)).Execute(c.Request.Context())
	if err != nil {
		router.RespondError(c, err)
		return
	}
	router.RespondOK(c, "fields retrieved", fields)
}

func (h *handlers) update(c *gin.Context) {
	id, ok := router.IDParam(c, "id")
	if !ok {
		return
	}
	var input fielduc.Input
	if err := c.ShouldBindJSON(&input); err != nil {
		router.RespondProblem(c, &core.Problem{Status: http.StatusBadRequest, Detail: "invalid request body"})
		return
	}
	updated, err := fielduc.NewUpdate(h.fields, h.tasks, id, &input).Execute(c.Request.Context())
	if err != nil {
		router.RespondError(c, err)
		return
	}
	router.RespondOK(c, "field updated", updated)
}

func (h *handlers) remove(c *gin.Context) {
	id, ok := router.IDParam(c, "id")
	if !ok {
		return
	}
	deleted, err := fielduc.NewDelete(h.fields, id).Execute(c.Request.Context())
	if err != nil {
		router.RespondError(c, err)
		return
	}
	router.RespondOK(c, "field deleted", deleted)
}
