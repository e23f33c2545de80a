package services

import (
	"log/slog"
	"math/rand/v2"

	"jarvis/internal/agentruntime"
	"jarvis/internal/config"
)

// Services aggregates the jarvis domain services. Fields use plural names
// where they hold a collection-like service, matching the store containers
// elsewhere in the codebase.
type Services struct {
	Contexts *ContextStore
	Jokes    *JokeService
	Weather  *WeatherService
	Invoke   *InvokeService
	Batch    *BatchService
	Secrets  *KeyringService
}

// NewServices wires every service around an already opened store. rng may be
// nil outside tests.
func NewServices(store *ContextStore, runtime agentruntime.Invoker, settings *config.Settings, rng *rand.Rand, logger *slog.Logger) *Services {
	return &Services{
		Contexts: store,
		Jokes:    NewJokeService(rng),
		Weather:  NewWeatherService(rng),
		Invoke:   NewInvokeService(runtime, logger),
		Batch:    NewBatchService(runtime, settings.BatchAgents, settings.BatchConcurrency, logger),
		Secrets:  NewKeyringService(),
	}
}
