// Command pulsed runs the pulse real-time fan-out gateway.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/pulse/auth"
	"github.com/skillsenselab/pulse/component"
	"github.com/skillsenselab/pulse/config"
	"github.com/skillsenselab/pulse/logger"
	"github.com/skillsenselab/pulse/observability"
	"github.com/skillsenselab/pulse/server"
	"github.com/skillsenselab/pulse/stream"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "pulsed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var cfg config.Config
	if err := config.Load("pulsed", &cfg); err != nil {
		return err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger.Init(cfg.Logging)
	log := logger.GetGlobalLogger()

	var authSvc *auth.Service
	if cfg.Auth.Secret != "" {
		svc, err := auth.NewService(auth.Config{
			Secret:   cfg.Auth.Secret,
			Issuer:   cfg.Auth.Issuer,
			Audience: cfg.Auth.Audience,
		})
		if err != nil {
			return err
		}
		authSvc = svc
	}

	registry := component.NewRegistry()

	obs := observability.NewComponent(cfg.Observability, cfg.Name, cfg.Version, cfg.Environment)
	if err := registry.Register(obs); err != nil {
		return err
	}

	hub := stream.NewHub(cfg.Stream, log)
	hubComponent := stream.NewComponent(hub)
	if err := registry.Register(hubComponent); err != nil {
		return err
	}

	srv := server.New(cfg.Server, log)
	srv.ApplyMiddleware()

	stream.NewHandler(hub, log).RegisterRoutes(srv.GinEngine(), authSvc)
	srv.GinEngine().GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, registry.HealthAll(c.Request.Context()))
	})

	srvComponent := server.NewComponent(srv)
	if err := registry.Register(srvComponent); err != nil {
		return err
	}

	ctx := context.Background()
	if err := registry.StartAll(ctx); err != nil {
		_ = registry.StopAll(ctx)
		return err
	}

	for _, c := range []component.Component{obs, hubComponent, srvComponent} {
		if d, ok := c.(component.Describable); ok {
			desc := d.Describe()
			log.Info("Component ready", logger.Fields(
				"name", desc.Name,
				"details", desc.Details,
			))
		}
	}
	log.Info("pulsed is up", logger.Fields(
		"addr", srv.Addr(),
		"environment", cfg.Environment,
	))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return registry.StopAll(shutdownCtx)
}
