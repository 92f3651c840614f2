// Package server runs the development credential backend: an in-memory
// account store behind the gRPC credential service.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/headerauth/internal/logging"
	"github.com/dmitrijs2005/headerauth/internal/server/config"
	"github.com/dmitrijs2005/headerauth/internal/server/users"

	gs "github.com/dmitrijs2005/headerauth/internal/server/grpc"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	userService *users.Service
}

func NewApp(c *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	us, err := users.NewService(c)
	if err != nil {
		return nil, fmt.Errorf("user service init error: %w", err)
	}

	return &App{config: c, logger: logger, userService: us}, nil
}

// Run serves until SIGINT, SIGTERM or SIGQUIT, or until ctx is done.
func (app *App) Run(ctx context.Context) error {

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app.logger.Info(ctx, "Starting app...")

	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.userService, app.config.SecretKey)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		return err
	}
	return nil
}
