package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/integraph/integraph/engine/auth"
	"github.com/integraph/integraph/engine/core"
	"github.com/integraph/integraph/engine/infra/server/router"
	"github.com/integraph/integraph/pkg/logger"
)

// LoggerMiddleware injects the logger into the request context and logs
// each completed request.
func LoggerMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}
		c.Request = c.Request.WithContext(
			logger.ContextWithLogger(c.Request.Context(), log),
		)
		c.Next()
		log.Info("Request completed",
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
			"method", c.Request.Method,
			"status_code", c.Writer.Status(),
			"path", path,
		)
	}
}

// CORSMiddleware allows browser requests from the configured origins. An
// empty allow list permits none.
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		for _, allowed := range allowedOrigins {
			if origin == allowed {
				c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
				c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
				break
			}
		}
		c.Writer.Header().Set(
			"Access-Control-Allow-Headers",
			"Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With",
		)
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// usernameKey carries the authenticated username in the gin context.
const usernameKey = "auth.username"

// AuthMiddleware rejects requests without a valid bearer token.
func AuthMiddleware(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") {
			router.RespondProblem(c, &core.Problem{
				Status: http.StatusUnauthorized,
				Detail: "missing or malformed authorization header",
			})
			return
		}
		username, err := tokens.Verify(strings.TrimSpace(token))
		if err != nil {
			router.RespondProblem(c, &core.Problem{
				Status: http.StatusUnauthorized,
				Detail: "invalid or expired token",
			})
			return
		}
		c.Set(usernameKey, username)
		c.Next()
	}
}
