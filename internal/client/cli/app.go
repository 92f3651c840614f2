package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/headerauth/internal/client/client"
	"github.com/dmitrijs2005/headerauth/internal/client/config"
	"github.com/dmitrijs2005/headerauth/internal/client/events"
	"github.com/dmitrijs2005/headerauth/internal/client/repositories/slots"
	"github.com/dmitrijs2005/headerauth/internal/client/session"
	"github.com/dmitrijs2005/headerauth/internal/client/ui"
	"github.com/dmitrijs2005/headerauth/internal/logging"
)

const redisKeyPrefix = "headerauth:"

// App wires storage, the credential client and the header, and drives the
// header from terminal commands.
type App struct {
	config   *config.Config
	log      logging.Logger
	out      io.Writer
	store    *session.Store
	client   client.Client
	notifier *consoleNotifier
	router   *router
	closers  []func() error
	doc      *events.Document
	header   *ui.Header
}

// NewApp opens the configured session storage and dials the backend.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	persistent, closeStorage, err := openStorage(ctx, c)
	if err != nil {
		log.Error(ctx, "error opening session storage", "driver", c.StorageDriver, "error", err)
		return nil, err
	}

	// The logged-out marker lives as long as the process, like a browser tab.
	store := session.NewStore(persistent, slots.NewMemoryRepository(), log)

	apiClient, err := client.NewGRPCClient(c.ServerEndpointAddr,
		client.WithTimeout(c.RequestTimeout),
		client.WithTokenSource(store.Token),
		client.WithLogger(log),
	)
	if err != nil {
		_ = closeStorage()
		return nil, err
	}

	a := newApp(c, store, apiClient, os.Stdout, log)
	a.closers = append(a.closers, apiClient.Close, closeStorage)
	return a, nil
}

func newApp(c *config.Config, store *session.Store, apiClient client.Client, out io.Writer, log logging.Logger) *App {
	return &App{
		config:   c,
		log:      log,
		out:      out,
		store:    store,
		client:   apiClient,
		notifier: newConsoleNotifier(out),
		router:   newRouter(out, c.HomeRoute),
	}
}

func openStorage(ctx context.Context, c *config.Config) (slots.Repository, func() error, error) {
	switch c.StorageDriver {
	case config.StorageRedis:
		rdb, err := slots.NewRedisClient(ctx, c.RedisAddr, c.RedisPassword, 0)
		if err != nil {
			return nil, nil, err
		}
		return slots.NewRedisRepository(rdb, redisKeyPrefix), rdb.Close, nil
	default:
		db, err := slots.OpenSQLite(ctx, c.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return slots.NewSQLiteRepository(db), db.Close, nil
	}
}

// mount builds a fresh document and header, the equivalent of a page load.
func (a *App) mount(ctx context.Context) error {
	a.doc = events.NewDocument()
	a.header = ui.NewHeader(a.store, a.client, a.doc, a.notifier, a.router, a.log,
		ui.WithFormOptions(
			ui.WithHomeRoute(a.config.HomeRoute),
			ui.WithPhoneRegion(a.config.PhoneRegion),
		),
	)
	return a.header.Mount(ctx)
}

func (a *App) unmount() {
	if a.header != nil {
		a.header.Unmount()
	}
}

// Run mounts the header and blocks in the REPL until the user exits.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()
	if err := a.mount(ctx); err != nil {
		return err
	}
	defer a.unmount()
	a.Root(ctx)
	return nil
}

// Close releases the client connection and storage.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("close app: %w", err)
	}
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.store.Authenticated()
}
