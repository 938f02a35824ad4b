package taskrouter

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/integraph/integraph/engine/core"
	"github.com/integraph/integraph/engine/infra/server/router"
	"github.com/integraph/integraph/engine/process"
	"github.com/integraph/integraph/engine/task"
	taskuc "github.com/integraph/integraph/engine/task/uc"
)

type handlers struct {
	tasks     task.Repository
	processes process.Repository
}

// ReorderRequest carries the full task order for one process, first to
// last.
type ReorderRequest struct {
	TaskIDs []core.ID `json:"task_ids"`
}

// Register mounts the task routes on the given group. Listing accepts a
// process_id filter; reorder rewrites the sequence numbers of a process's
// tasks.
func Register(grp gin.IRouter, tasks task.Repository, processes process.Repository) {
	h := &handlers{tasks: tasks, processes: processes}
	grp.POST("/tasks", h.create)
	grp.GET("/tasks", h.list)
	grp.GET("/tasks/:id", h.get)
	grp.PUT("/tasks/:id", h.update)
	grp.DELETE("/tasks/:id", h.remove)
	grp.POST("/processes/:id/tasks/reorder", h.reorder)
}

func (h *handlers) create(c *gin.Context) {
	var input taskuc.Input
	if err := c.ShouldBindJSON(&input); err != nil {
		router.RespondProblem(c, &core.Problem{Status: http.StatusBadRequest, Detail: "invalid request body"})
		return
	}
	created, err := taskuc.NewCreate(h.tasks, h.processes, &input).Execute(c.Request.Context())
	if err != nil {
		router.RespondError(c, err)
		return
	}
	router.RespondCreated(c, "task created", created)
}

func (h *handlers) get(c *gin.Context) {
	id, ok := router.IDParam(c, "id")
	if !ok {
		return
	}
	found, err := taskuc.NewGet(h.tasks, id).Execute(c.Request.Context())
	if err != nil {
		router.RespondError(c, err)
		return
	}
	router.RespondOK(c, "task retrieved", found)
}

func (h *handlers) list(c *gin.Context) {
	processID, ok := router.OptionalIDQuery(c, "process_id")
	if !ok {
		return
	}
	filter := task.Filter{ProcessID: processID}
	tasks, err := taskuc.NewList(h.tasks, filter, router.PageQuery(c)).Execute(c.Request.Context())
	if err != nil {
		router.RespondError(c, err)
		return
	}
	router.RespondOK(c, "tasks retrieved", tasks)
}

func (h *handlers) update(c *gin.Context) {
	id, ok := router.IDParam(c, "id")
	if !ok {
		return
	}
	var input taskuc.Input
	if err := c.ShouldBindJSON(&input); err != nil {
		router.RespondProblem(c, &core.Problem{Status: http.StatusBadRequest, Detail: "invalid request body"})
		return
	}
	updated, err := taskuc.NewUpdate(h.tasks, h.processes, id, &input).Execute(c.Request.Context())
	if err != nil {
		router.RespondError(c, err)
		return
	}
	router.RespondOK(c, "task updated", updated)
}

func (h *handlers) remove(c *gin.Context) {
	id, ok := router.IDParam(c, "id")
	if !ok {
		return
	}
	deleted, err := taskuc.NewDelete(h.tasks, id).Execute(c.Request.Context())
	if err != nil {
		router.RespondError(c, err)
		return
	}
	router.RespondOK(c, "task deleted", deleted)
}

func (h *handlers) reorder(c *gin.Context) {
	processID, ok := router.IDParam(c, "id")
	if !ok {
		return
	}
	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		router.RespondProblem(c, &core.Problem{Status: http.StatusBadRequest, Detail: "invalid request body"})
		return
	}
	tasks, err := taskuc.NewReorder(h.tasks, h.processes, processID, req.TaskIDs).Execute(c.Request.Context())
	if err != nil {
		router.RespondError(c, err)
		return
	}
	router.RespondOK(c, "tasks reordered", tasks)
}
