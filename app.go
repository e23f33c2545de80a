package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"time"

	"jarvis/internal/agentruntime"
	"jarvis/internal/config"
	"jarvis/internal/events"
	"jarvis/internal/llm/tools"
	"jarvis/internal/services"
	"jarvis/internal/utils"
)

const runtimeTimeout = 2 * time.Minute

// App holds the process-wide state the commands share. Settings and logger
// are loaded for every command; the context store is only opened by the
// commands that need it.
type App struct {
	ctx      context.Context
	settings *config.Settings
	logger   *slog.Logger
	logOut   io.Writer

	// runtime and rng are overridden by tests.
	runtime agentruntime.Invoker
	rng     *rand.Rand

	services   *services.Services
	registry   *tools.Registry
	storeClose func() error
}

// NewApp creates a new App application struct
func NewApp(logOut io.Writer) *App {
	return &App{logOut: logOut}
}

// startup resolves settings and the logger. It is run before every command.
func (a *App) startup(ctx context.Context, envFile string) error {
	a.ctx = ctx

	settings, err := config.Load(envFile, services.NewKeyringService())
	if err != nil {
		return err
	}
	a.settings = settings
	a.logger = utils.NewLogger(a.logOut, settings.LogLevel)
	events.EnableLogEmitter(a.logger)

	if a.runtime == nil {
		a.runtime = agentruntime.NewHTTPClient(settings.AgentRuntimeURL, runtimeTimeout)
	}
	a.services = services.NewServices(nil, a.runtime, settings, a.rng, a.logger)
	return nil
}

// openStore connects the context store and the tool registry on first use.
func (a *App) openStore() error {
	if a.services.Contexts != nil {
		return nil
	}
	store, closeFn, err := services.InitContextStore(a.ctx, a.settings, a.logger)
	if err != nil {
		return err
	}
	a.services.Contexts = store
	a.storeClose = closeFn
	return nil
}

// toolRegistry builds the registry over the current services. The context
// tools need the store.
func (a *App) toolRegistry() (*tools.Registry, error) {
	if a.registry != nil {
		return a.registry, nil
	}
	if err := a.openStore(); err != nil {
		return nil, err
	}
	registry, err := tools.NewRegistry(tools.NewToolset(a.services.Jokes, a.services.Weather, a.services.Contexts))
	if err != nil {
		return nil, fmt.Errorf("failed to build tools: %w", err)
	}
	a.registry = registry
	return registry, nil
}

// shutdown releases the store. It is safe to call more than once.
func (a *App) shutdown() error {
	var err error
	if a.storeClose != nil {
		err = a.storeClose()
		a.storeClose = nil
		if err != nil && a.logger != nil {
			a.logger.Error("failed to close context store", "error", err)
		}
	}
	events.SetCustomEmitter(nil)
	return err
}
