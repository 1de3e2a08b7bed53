package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/PIEROLS15/TaskMasterBackend/internal/services"
)

const userIDCtxKey = "user_id"

// HandleAuthMiddleware resolves the bearer token to a user and stores
// the identity in the request context. Handlers never see the token
// itself, only the resolved user id.
func (h *handlerImpl) HandleAuthMiddleware(c *gin.Context) {
	const authHeader = "Authorization"
	header := c.GetHeader(authHeader)
	if header == "" {
		h.logger.Warn().Msg("authorization header required")
		abortMessage(c, http.StatusUnauthorized, msgNotAuthenticated)
		return
	}

	const bearerPrefix = "Bearer"
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != bearerPrefix {
		h.logger.Warn().Msg("invalid authorization header")
		abortMessage(c, http.StatusUnauthorized, msgNotAuthenticated)
		return
	}

	user, err := h.auth.Authenticate(c, parts[1])
	if err != nil {
		if errors.Is(err, services.ErrInvalidToken) {
			h.logger.Warn().Msg("unknown access token")
			abortMessage(c, http.StatusUnauthorized, msgNotAuthenticated)
			return
		}

		h.logger.Error().
			Err(err).
			Msg("failed to authenticate token")
		abortError(c, http.StatusInternalServerError, errServerError)
		return
	}

	c.Set(userIDCtxKey, user.ID)
	c.Next()
}

func (h *handlerImpl) HandleRequestLogMiddleware(c *gin.Context) {
	requestID := uuid.NewString()
	c.Writer.Header().Set("X-Request-Id", requestID)

	start := time.Now()
	c.Next()

	h.logger.Info().
		Str("request_id", requestID).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Int("status", c.Writer.Status()).
		Dur("latency", time.Since(start)).
		Msg("handled request")
}

func getUserIDFromContext(c *gin.Context) (int64, bool) {
	value, exists := c.Get(userIDCtxKey)
	if !exists {
		return 0, false
	}
	id, ok := value.(int64)
	return id, ok
}
