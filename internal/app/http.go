package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/PIEROLS15/TaskMasterBackend/internal/config"
	"github.com/PIEROLS15/TaskMasterBackend/internal/delivery/http/api"
	"github.com/PIEROLS15/TaskMasterBackend/internal/services"
)

func MustListenAndServeHTTP() {
	cfg := config.Global()
	if cfg.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	httpCfg := cfg.HTTP

	router := gin.New()
	router.Use(gin.Recovery())
	registerRoutes(router)

	server := &http.Server{
		Addr:    net.JoinHostPort(httpCfg.Host, httpCfg.Port),
		Handler: router,
	}

	go func() {
		globalLogger.Info().
			Str("host", httpCfg.Host).
			Str("port", httpCfg.Port).
			Msg("setting up http server")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			globalLogger.Error().
				Err(err).
				Msg("failed to listen and serve http")
			panic(err)
		}
	}()

	// Wait for the interrupt signal to gracefully
	// shut down the server with a timeout of 5 seconds.
	quit := make(chan os.Signal, 1)
	// kill (no params) by default sends syscall.SIGTERM
	// kill -2 is syscall.SIGINT
	// kill -9 is syscall.SIGKILL but can't be caught, so don't need to add it
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	globalLogger.Info().
		Msg("shutting down http server")

	ctx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer cancel()

	err := server.Shutdown(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to shutdown http server")
		panic(err)
	}
	globalLogger.Info().Msg("shut down http server")
}

func registerRoutes(router gin.IRouter) {
	authService := services.NewAuthService(globalLogger, globalPostgresPool)
	taskService := services.NewTaskService(globalLogger, globalPostgresPool)
	apiHandler := api.New(globalLogger, authService, taskService)

	router = router.Group("/api")
	router.Use(apiHandler.HandleRequestLogMiddleware)

	router.POST("/register", apiHandler.HandleRegister)
	router.POST("/login", apiHandler.HandleLogin)

	authorized := router.Group("")
	authorized.Use(apiHandler.HandleAuthMiddleware)
	authorized.POST("/logout", apiHandler.HandleLogout)
	authorized.GET("/tasks", apiHandler.HandleListTasks)
	authorized.POST("/tasks", apiHandler.HandleCreateTask)
	authorized.GET("/tasks/:id", apiHandler.HandleShowTask)
	authorized.PUT("/tasks/:id", apiHandler.HandleUpdateTask)
	authorized.DELETE("/tasks/:id", apiHandler.HandleDeleteTask)
}
