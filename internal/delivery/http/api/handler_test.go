package api

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/rs/zerolog"

	"github.com/PIEROLS15/TaskMasterBackend/internal/services"
)

func newTestRouter(t *testing.T) (*gin.Engine, pgxmock.PgxPoolIface) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	t.Cleanup(mock.Close)

	logger := zerolog.Nop()
	handler := New(logger,
		services.NewAuthService(logger, mock),
		services.NewTaskService(logger, mock))

	router := gin.New()
	r := router.Group("/api")
	r.POST("/register", handler.HandleRegister)
	r.POST("/login", handler.HandleLogin)

	authorized := r.Group("")
	authorized.Use(handler.HandleAuthMiddleware)
	authorized.POST("/logout", handler.HandleLogout)
	authorized.GET("/tasks", handler.HandleListTasks)
	authorized.POST("/tasks", handler.HandleCreateTask)
	authorized.GET("/tasks/:id", handler.HandleShowTask)
	authorized.PUT("/tasks/:id", handler.HandleUpdateTask)
	authorized.DELETE("/tasks/:id", handler.HandleDeleteTask)

	return router, mock
}

func doRequest(router *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// expectAuthenticated queues the token lookup the auth middleware
// performs for a request carrying a bearer token.
func expectAuthenticated(mock pgxmock.PgxPoolIface, userID int64) {
	mock.ExpectQuery(`FROM access_tokens`).
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "email"}).
			AddRow(userID, "Ana Gil", "ana@x.com"))
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	body := make(map[string]any)
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body %q: %v", w.Body.String(), err)
	}
	return body
}
