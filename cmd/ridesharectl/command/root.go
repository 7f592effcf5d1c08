// Package command provides the ridesharectl command tree. The root
// command wires configuration, logging, the backend gateway and the
// session store; sub-commands drive the passenger, driver and admin
// workflows through the same pages the client library exposes.
package command

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spec-kit/rideshare-client/internal/config"
	"github.com/spec-kit/rideshare-client/internal/events"
	"github.com/spec-kit/rideshare-client/internal/gateway"
	"github.com/spec-kit/rideshare-client/internal/guard"
	"github.com/spec-kit/rideshare-client/internal/notify"
	"github.com/spec-kit/rideshare-client/internal/observability"
	"github.com/spec-kit/rideshare-client/internal/session"
)

// app holds the wired client, shared by all sub-commands.
type app struct {
	cfg        *config.Config
	logger     *zap.Logger
	gateway    *gateway.Gateway
	store      *session.Store
	dispatcher events.Dispatcher
	nav        guard.Navigator
}

var client app

var rootCmd = &cobra.Command{
	Use:   "ridesharectl",
	Short: "Command-line client for the ride-sharing marketplace",
	Long: `ridesharectl is a terminal client for the ride-sharing marketplace.
Passengers search and book rides, drivers post ride offers, and
administrators moderate users, rides, bookings and payments. The session
is persisted locally, so login survives across invocations.`,
	SilenceUsage:      true,
	PersistentPreRunE: initClient,
}

func initClient(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	dispatcher := events.NewInMemoryDispatcher()
	notify.NewNotifier(dispatcher, logger).RegisterHandlers()

	var storage session.Storage
	switch cfg.Session.Backend {
	case "redis":
		storage = session.NewRedisStorage(cfg.Redis, logger)
	default:
		storage = session.NewFileStorage(cfg.Session.FilePath)
	}

	cache := session.NewTokenCache()
	metrics := observability.NewMetrics()
	gw := gateway.New(cfg.API, cache, metrics, logger)
	store := session.NewStore(gw, storage, cache, dispatcher, logger)
	if err := store.Hydrate(cmd.Context()); err != nil {
		logger.Warn("session hydrate failed", zap.Error(err))
	}

	client = app{
		cfg:        cfg,
		logger:     logger,
		gateway:    gw,
		store:      store,
		dispatcher: dispatcher,
		nav:        &cliNavigator{logger: logger},
	}
	return nil
}

// cliNavigator maps page redirects onto log lines; in the terminal
// there is nowhere to navigate, the command simply stops.
type cliNavigator struct {
	logger *zap.Logger
}

func (n *cliNavigator) NavigateTo(path string) {
	n.logger.Debug("redirect", zap.String("path", path))
}

// redirectError translates a guard redirect into a user-facing message.
func redirectError(err error) error {
	if err == guard.ErrRedirected {
		return fmt.Errorf("access denied: login with a suitable account first")
	}
	return err
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
