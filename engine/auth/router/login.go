package authrouter

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/integraph/integraph/engine/auth"
	authuc "github.com/integraph/integraph/engine/auth/uc"
	"github.com/integraph/integraph/engine/core"
	"github.com/integraph/integraph/engine/infra/server/router"
)

type handlers struct {
	users  auth.Repository
	tokens *auth.TokenManager
}

// Register mounts the login route on the given group.
func Register(grp gin.IRouter, users auth.Repository, tokens *auth.TokenManager) {
	h := &handlers{users: users, tokens: tokens}
	grp.POST("/auth/login", h.login)
}

func (h *handlers) login(c *gin.Context) {
	var input authuc.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		router.RespondProblem(c, &core.Problem{Status: http.StatusBadRequest, Detail: "invalid request body"})
		return
	}
	out, err := authuc.NewLogin(h.users, h.tokens, &input).Execute(c.Request.Context())
	if err != nil {
		router.RespondError(c, err)
		return
	}
	router.RespondOK(c, "login succeeded", out)
}
