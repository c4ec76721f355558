package main

import (
	"fmt"
	"os"

	"github.com/ersonp/chrono-core/internal/application/handlers"
	"github.com/ersonp/chrono-core/internal/domain/ports"
	"github.com/ersonp/chrono-core/internal/domain/services"
	"github.com/ersonp/chrono-core/internal/infrastructure/config"
	cachesqlite "github.com/ersonp/chrono-core/internal/infrastructure/factcache/sqlite"
	sourceopenai "github.com/ersonp/chrono-core/internal/infrastructure/factsource/openai"
	"github.com/ersonp/chrono-core/internal/infrastructure/factsource/wikipedia"
)

// Deps holds high-level dependencies for commands. Only handlers are
// exposed - services and adapters are internal.
type Deps struct {
	Config    *config.Config
	Cache     ports.FactCache
	Game      *handlers.GameHandler
	Submit    *handlers.SubmitHandler
	Challenge *handlers.ChallengeHandler
}

// withDeps loads config and builds dependencies, then calls the provided
// function. It handles cleanup automatically.
func withDeps(fn func(*Deps) error) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	source, err := buildSource(cfg)
	if err != nil {
		return err
	}

	cache, err := cachesqlite.New(cfg.CachePath(cwd), cfg.Cache.Capacity)
	if err != nil {
		return fmt.Errorf("opening result cache: %w", err)
	}
	defer cache.Close()

	classifier := services.NewClassifierService(source, cache).
		WithLimits(cfg.Game.MaxCandidates, cfg.Game.SearchLimit)
	policy := services.NewBufferPolicy(cfg.BufferRules)
	seeder := services.NewSeeder(classifier)
	games := services.NewGameService(policy, seeder, cfg.Game.SeedCentury)

	deps := &Deps{
		Config:    cfg,
		Cache:     cache,
		Game:      handlers.NewGameHandler(games),
		Submit:    handlers.NewSubmitHandler(classifier, games),
		Challenge: handlers.NewChallengeHandler(games),
	}

	return fn(deps)
}

// buildSource constructs the configured fact source adapter.
func buildSource(cfg *config.Config) (ports.FactSource, error) {
	switch cfg.Source.Provider {
	case "", "wikipedia":
		source, err := wikipedia.NewClient(cfg.Source)
		if err != nil {
			return nil, fmt.Errorf("creating wikipedia source: %w", err)
		}
		return source, nil
	case "openai":
		source, err := sourceopenai.NewClient(cfg.Source)
		if err != nil {
			return nil, fmt.Errorf("creating openai source: %w", err)
		}
		return source, nil
	default:
		return nil, fmt.Errorf("unknown source provider %q", cfg.Source.Provider)
	}
}
