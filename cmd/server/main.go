package main

import (
	"context"
	"net/http"
	"time"

	"github.com/CEOAlmaloco/Boleta-Detalle-Cliente/internal/api"
	v1 "github.com/CEOAlmaloco/Boleta-Detalle-Cliente/internal/api/v1"
	catalogclient "github.com/CEOAlmaloco/Boleta-Detalle-Cliente/internal/clients/catalog"
	invoiceclient "github.com/CEOAlmaloco/Boleta-Detalle-Cliente/internal/clients/invoice"
	"github.com/CEOAlmaloco/Boleta-Detalle-Cliente/internal/config"
	"github.com/CEOAlmaloco/Boleta-Detalle-Cliente/internal/httpclient"
	"github.com/CEOAlmaloco/Boleta-Detalle-Cliente/internal/logger"
	"github.com/CEOAlmaloco/Boleta-Detalle-Cliente/internal/postgres"
	"github.com/CEOAlmaloco/Boleta-Detalle-Cliente/internal/repository"
	"github.com/CEOAlmaloco/Boleta-Detalle-Cliente/internal/service"
	"github.com/CEOAlmaloco/Boleta-Detalle-Cliente/internal/validator"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

// @title Boleta Detalle API
// @version 1.0
// @description Line item service for the Boleta platform
// @BasePath /v1
// @schemes http

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	app := fx.New(
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Postgres
			postgres.NewDB,

			// HTTP Client
			httpclient.NewDefaultClient,

			// Remote service clients
			invoiceclient.NewClient,
			catalogclient.NewClient,

			// Repositories
			repository.NewLineItemRepository,

			// Services
			service.NewServiceParams,
			service.NewLineItemService,

			// API
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(startServer),
	)

	app.Run()
}

func provideHandlers(
	log *logger.Logger,
	lineItemService service.LineItemService,
) api.Handlers {
	return api.Handlers{
		LineItem: v1.NewLineItemHandler(lineItemService, log),
		Health:   v1.NewHealthHandler(log),
	}
}

func provideRouter(handlers api.Handlers) *gin.Engine {
	return api.NewRouter(handlers)
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	log *logger.Logger,
) {
	srv := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting server", "address", cfg.Server.Address)
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatalw("failed to start server", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Infow("shutting down server")
			return srv.Shutdown(ctx)
		},
	})
}
