package schedulerouter

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/integraph/integraph/engine/core"
	"github.com/integraph/integraph/engine/infra/server/router"
	"github.com/integraph/integraph/engine/process"
	"github.com/integraph/integraph/engine/schedule"
	scheduleuc "github.com/integraph/integraph/engine/schedule/uc"
)

type handlers struct {
	schedules schedule.Repository
	processes process.Repository
}

// Register mounts the schedule routes on the given group. Listing accepts
// a process_id filter.
func Register(grp gin.IRouter, schedules schedule.Repository, processes process.Repository) {
	h := &handlers{schedules: schedules, processes: processes}
	grp.POST("/schedules", h.create)
	grp.GET("/schedules", h.list)
	grp.GET("/schedules/:id", h.get)
	grp.PUT("/schedules/:id", h.update)
	grp.DELETE("/schedules/:id", h.remove)
}

func (h *handlers) create(c *gin.Context) {
	var input scheduleuc.Input
	if err := c.ShouldBindJSON(&input); err != nil {
		router.RespondProblem(c, &core.Problem{Status: http.StatusBadRequest, Detail: "invalid request body"})
		return
	}
	created, err := scheduleuc.NewCreate(h.schedules, h.processes, &input).Execute(c.Request.Context())
	if err != nil {
		router.RespondError(c, err)
		return
	}
	router.RespondCreated(c, "schedule created", created)
}

func (h *handlers) get(c *gin.Context) {
	id, ok := router.IDParam(c, "id")
	if !ok {
		return
	}
	found, err := scheduleuc.NewGet(h.schedules, id).Execute(c.Request.Context())
	if err != nil {
		router.RespondError(c, err)
		return
	}
	router.RespondOK(c, "schedule retrieved", found)
}

func (h *handlers) list(c *gin.Context) {
	processID, ok := router.OptionalIDQuery(c, "process_id")
	if !ok {
		return
	}
	filter := schedule.Filter{ProcessID: processID}
	schedules, err := scheduleuc.NewList(h.schedules, filter, router.PageQuery(c)).Execute(c.Request.Context())
	if err != nil {
		router.RespondError(c, err)
		return
	}
	router.RespondOK(c, "schedules retrieved", schedules)
}

func (h *handlers) update(c *gin.Context) {
	id, ok := router.IDParam(c, "id")
	if !ok {
		return
	}
	var input scheduleuc.Input
	if err := c.ShouldBindJSON(&input); err != nil {
		router.RespondProblem(c, &core.Problem{Status: http.StatusBadRequest, Detail: "invalid request body"})
		return
	}
	updated, err := scheduleuc.NewUpdate(h.schedules, h.processes, id, &input).Execute(c.Request.Context())
	if err != nil {
		router.RespondError(c, err)
		return
	}
	router.RespondOK(c, "schedule updated", updated)
}

func (h *handlers) remove(c *gin.Context) {
	id, ok := router.IDParam(c, "id")
	if !ok {
		return
	}
	deleted, err := scheduleuc.NewDelete(h.schedules, id).Execute(c.Request.Context())
	if err != nil {
		router.RespondError(c, err)
		return
	}
	router.RespondOK(c, "schedule deleted", deleted)
}
