package router

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/integraph/integraph/engine/core"
)

// IDParam parses the named path parameter as an entity id. On failure it
// writes a 400 problem and reports false; handlers should return
// immediately.
func IDParam(c *gin.Context, name string) (core.ID, bool) {
	id, err := core.ParseID(c.Param(name))
	if err != nil {
		RespondProblem(c, &core.Problem{
			Status: http.StatusBadRequest,
			Detail: "invalid " + name + " parameter",
		})
		return 0, false
	}
	return id, true
}

// OptionalIDQuery parses the named query parameter as an entity id when
// present. A malformed value writes a 400 problem and reports false.
func OptionalIDQuery(c *gin.Context, name string) (*core.ID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := core.ParseID(raw)
	if err != nil {
		RespondProblem(c, &core.Problem{
			Status: http.StatusBadRequest,
			Detail: "invalid " + name + " parameter",
		})
		return nil, false
	}
	return &id, true
}

// PageQuery reads offset and limit query parameters; missing or malformed
// values fall back to the defaults applied by Normalize.
func PageQuery(c *gin.Context) core.PageQuery {
	var page core.PageQuery
	if v, err := strconv.Atoi(c.Query("offset")); err == nil {
		page.Offset = v
	}
	if v, err := strconv.Atoi(c.Query("limit")); err == nil {
		page.Limit = v
	}
	return page.Normalize()
}
