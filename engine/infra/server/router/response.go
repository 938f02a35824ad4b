package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/integraph/integraph/engine/core"
)

// Response is the success envelope for API responses.
type Response struct {
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// RespondOK writes a 200 response with the standard envelope.
func RespondOK(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, Response{Data: data, Message: message})
}

// RespondCreated writes a 201 response with the standard envelope.
func RespondCreated(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, Response{Data: data, Message: message})
}

// RespondProblem writes an RFC 7807 style error body and aborts the
// request.
func RespondProblem(c *gin.Context, problem *core.Problem) {
	problem = core.NormalizeProblem(problem)
	c.Header("Content-Type", "application/problem+json")
	c.AbortWithStatusJSON(problem.Status, core.BuildProblemBody(problem))
}

// RespondError maps a domain error to its problem representation and
// writes it.
func RespondError(c *gin.Context, err error) {
	RespondProblem(c, core.ProblemFromError(err))
}
