package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/redis/go-redis/v9"
	openai "github.com/sashabaranov/go-openai"

	"lumina/internal/catalog"
	"lumina/internal/chat"
	"lumina/internal/config"
	"lumina/internal/db"
	"lumina/internal/lang"
	"lumina/internal/model"
	"lumina/internal/repository"
	"lumina/internal/shipping"
)

// App reúne as dependências montadas a partir da configuração.
type App struct {
	Config  *config.Config
	Service *chat.Service

	closers []func()
}

// New monta catálogo, frete, modelo generativo, memória de sessão e dispatcher.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	a := &App{Config: cfg}

	source, err := a.catalogSource(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	sessions, err := a.sessionStore(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	detector := lang.NewDetector()
	learnCatalog(ctx, detector, source)

	dispatcher := chat.NewDispatcher(
		detector,
		catalog.NewStore(source, cfg.CatalogTTL),
		shipping.NewEstimator(shipping.NewViaCEPClient(cfg.ViaCEPURL, cfg.LookupTimeout)),
		chat.NewAssistant(newOpenAIClient(cfg), chat.AssistantOptions{
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
			Timeout:     cfg.LLMTimeout,
		}),
	)
	a.Service = chat.NewService(dispatcher, sessions)

	return a, nil
}

// Close libera conexões abertas, na ordem inversa da abertura.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func (a *App) catalogSource(ctx context.Context) (catalog.Source, error) {
	if a.Config.CatalogSource != config.CatalogPostgres {
		return &catalog.FileSource{Path: a.Config.CatalogPath}, nil
	}

	pool, err := db.NewPool(ctx, a.Config.DatabaseURL)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, pool.Close)

	slog.Info("catálogo lido do Postgres")
	return repository.NewCatalogRepository(pool), nil
}

// learnCatalog ensina ao detector o vocabulário de cada bundle. Falhas aqui
// só deixam o detector com as palavras embutidas.
func learnCatalog(ctx context.Context, detector *lang.Detector, source catalog.Source) {
	for _, l := range []model.Language{model.Portuguese, model.English} {
		bundle, err := source.Load(ctx, l)
		if err != nil {
			slog.Warn("vocabulário do catálogo indisponível para o detector", "lang", l, "error", err)
			continue
		}
		detector.LearnBundle(l, bundle)
	}
}

func (a *App) sessionStore(ctx context.Context) (chat.ConversationStore, error) {
	if a.Config.SessionStore != config.SessionRedis {
		return chat.NewMemoryConversationStore(), nil
	}

	opts, err := redisOptions(a.Config.RedisURL)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	a.closers = append(a.closers, func() { _ = client.Close() })

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis %s: %w", opts.Addr, err)
	}

	slog.Info("memória de sessão no Redis", "addr", opts.Addr, "ttl", a.Config.SessionTTL)
	return chat.NewRedisConversationStore(client, a.Config.SessionTTL), nil
}

// redisOptions aceita tanto host:porta quanto uma URL redis://.
func redisOptions(raw string) (*redis.Options, error) {
	if strings.HasPrefix(raw, "redis://") || strings.HasPrefix(raw, "rediss://") {
		opts, err := redis.ParseURL(raw)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		return opts, nil
	}
	return &redis.Options{Addr: raw}, nil
}

func newOpenAIClient(cfg *config.Config) *openai.Client {
	oc := openai.DefaultConfig(cfg.OpenAIKey)
	if cfg.OpenAIBaseURL != "" {
		oc.BaseURL = cfg.OpenAIBaseURL
	}
	return openai.NewClientWithConfig(oc)
}
