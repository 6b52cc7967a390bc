package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aretw0/scribe/internal/config"
	"github.com/aretw0/scribe/pkg/adapters/file"
	"github.com/aretw0/scribe/pkg/adapters/gemini"
	scribehttp "github.com/aretw0/scribe/pkg/adapters/http"
	"github.com/aretw0/scribe/pkg/adapters/loam"
	"github.com/aretw0/scribe/pkg/adapters/memory"
	"github.com/aretw0/scribe/pkg/adapters/mongo"
	"github.com/aretw0/scribe/pkg/adapters/ollama"
	"github.com/aretw0/scribe/pkg/adapters/redis"
	"github.com/aretw0/scribe/pkg/article"
	"github.com/aretw0/scribe/pkg/chat"
	"github.com/aretw0/scribe/pkg/observability"
	"github.com/aretw0/scribe/pkg/persistence"
	"github.com/aretw0/scribe/pkg/ports"
	"github.com/aretw0/scribe/pkg/prompt"
	"github.com/aretw0/scribe/pkg/session"
)

// App is the fully wired assistant shared by the serve, chat and mcp commands.
type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	Sessions *session.Manager
	Router   *chat.Router
	Articles *article.Service
	Metrics  *observability.Metrics

	closers []func(context.Context) error
}

// Build wires stores, document lookup and the generation backend from cfg.
// The caller must Close the returned App.
func Build(ctx context.Context, cfg *config.Config, logger *slog.Logger) (app *App, err error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	app = &App{
		Config:  cfg,
		Logger:  logger,
		Metrics: observability.NewMetrics(),
	}
	defer func() {
		if err != nil {
			_ = app.Close(context.WithoutCancel(ctx))
		}
	}()

	hooks := app.Metrics.Hooks().Merge(observability.LoggingHooks(logger))

	store, managerOpts, err := app.buildSessionStore(cfg.Session)
	if err != nil {
		return nil, err
	}
	managerOpts = append(managerOpts, session.WithLogger(logger), session.WithLifecycleHooks(hooks))
	app.Sessions = session.NewManager(store, managerOpts...)

	docs, err := app.buildDocuments(ctx, cfg.Documents)
	if err != nil {
		return nil, err
	}

	gen, err := app.buildGenerator(cfg.LLM)
	if err != nil {
		return nil, err
	}
	gen = app.Metrics.InstrumentGenerator(gen)

	app.Router = chat.NewRouter(app.Sessions, gen,
		chat.WithLogger(logger),
		chat.WithDocuments(docs, cfg.Documents.ArticleID),
		chat.WithLifecycleHooks(hooks),
	)
	app.Articles = article.NewService(docs, gen, article.WithLogger(logger))

	logger.Info("Assistant ready",
		"session_store", cfg.Session.Store,
		"document_store", cfg.Documents.Store,
		"llm_provider", cfg.LLM.Provider,
	)
	return app, nil
}

// Handler returns the HTTP API for the app.
func (a *App) Handler(version string) http.Handler {
	return scribehttp.NewHandler(&scribehttp.Server{
		Router:      a.Router,
		Articles:    a.Articles,
		Metrics:     a.Metrics,
		Logger:      a.Logger,
		CorsOrigins: a.Config.Server.CorsOrigins,
		Version:     version,
	})
}

// StartJanitor expires idle sessions in the background until ctx is done.
// It is a no-op unless SESSION_IDLE_TTL is set.
func (a *App) StartJanitor(ctx context.Context) {
	idle := a.Config.Session.IdleTTL
	if idle <= 0 {
		return
	}
	interval := a.Config.Session.SweepInterval
	if interval <= 0 {
		interval = idle
	}
	go a.Sessions.RunJanitor(ctx, interval, idle)
}

// Close releases backend connections in reverse order of creation.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i](ctx))
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) buildSessionStore(cfg config.SessionConfig) (ports.SessionStore, []session.Option, error) {
	codec, err := buildCodec(cfg)
	if err != nil {
		return nil, nil, err
	}

	switch cfg.Store {
	case "file":
		var opts []file.Option
		if codec != nil {
			opts = append(opts, file.WithCodec(codec))
		}
		return file.New(cfg.Dir, opts...), nil, nil

	case "redis":
		opts := []redis.Option{redis.WithTTL(cfg.TTL)}
		if codec != nil {
			opts = append(opts, redis.WithCodec(codec))
		}
		store, err := redis.New(cfg.RedisURL, opts...)
		if err != nil {
			return nil, nil, err
		}
		a.closers = append(a.closers, func(context.Context) error { return store.Close() })
		locker := redis.NewLocker(store.Client(), store.Prefix())
		return store, []session.Option{session.WithLocker(locker)}, nil

	default:
		if codec != nil {
			a.Logger.Warn("SESSION_ENCRYPTION_KEY has no effect on the memory session store")
		}
		return memory.NewStore(), nil, nil
	}
}

// buildCodec returns nil when encryption is not configured.
func buildCodec(cfg config.SessionConfig) (persistence.Codec, error) {
	if cfg.EncryptionKey == "" {
		return nil, nil
	}
	active, err := persistence.ParseKey(cfg.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("SESSION_ENCRYPTION_KEY: %w", err)
	}
	if len(active) != persistence.KeySize {
		return nil, fmt.Errorf("SESSION_ENCRYPTION_KEY must decode to %d bytes, got %d", persistence.KeySize, len(active))
	}
	var fallbacks [][]byte
	if cfg.FallbackKeys != "" {
		if fallbacks, err = persistence.ParseKeys(cfg.FallbackKeys); err != nil {
			return nil, fmt.Errorf("SESSION_ENCRYPTION_FALLBACK_KEYS: %w", err)
		}
	}
	return persistence.NewEncryptedCodec(persistence.JSONCodec{}, persistence.EncryptionConfig{
		ActiveKey:    active,
		FallbackKeys: fallbacks,
	}), nil
}

func (a *App) buildDocuments(ctx context.Context, cfg config.DocumentConfig) (ports.DocumentLookup, error) {
	switch cfg.Store {
	case "loam":
		return loam.Open(cfg.Dir)

	case "mongo":
		docs, err := mongo.Connect(ctx, cfg.MongoURI, cfg.Database, cfg.Collection, mongo.WithLogger(a.Logger))
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, docs.Close)
		return docs, nil

	default:
		if cfg.ArticleFile == "" {
			return memory.NewDocuments(), nil
		}
		return memory.LoadDocumentsFile(cfg.ArticleFile)
	}
}

func (a *App) buildGenerator(cfg config.LLMConfig) (ports.Generator, error) {
	var completer ports.Completer
	switch cfg.Provider {
	case "memory":
		return memory.NewGenerator(), nil
	case "ollama":
		completer = ollama.New(cfg.OllamaBaseURL, cfg.OllamaModel, cfg.Timeout)
	default:
		completer = gemini.New(cfg.GeminiAPIKey, gemini.WithModel(cfg.GeminiModel), gemini.WithTimeout(cfg.Timeout))
	}

	opts := []prompt.GeneratorOption{prompt.WithLogger(a.Logger)}
	if cfg.PromptsFile != "" {
		catalog, err := prompt.Load(cfg.PromptsFile)
		if err != nil {
			return nil, err
		}
		opts = append(opts, prompt.WithCatalog(catalog))
	}
	return prompt.NewGenerator(completer, opts...), nil
}
