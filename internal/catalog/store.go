package catalog

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"lumina/internal/model"
	"lumina/internal/observability"
)

type cachedBundle struct {
	bundle   model.Bundle
	loadedAt time.Time
}

// Store guarda um bundle por idioma. ttl zero mantém o bundle pela vida do
// processo; bundles de fallback nunca entram no cache.
type Store struct {
	source Source
	ttl    time.Duration
	now    func() time.Time

	mu    sync.Mutex
	cache map[model.Language]cachedBundle
}

func NewStore(source Source, ttl time.Duration) *Store {
	return &Store{
		source: source,
		ttl:    ttl,
		now:    time.Now,
		cache:  make(map[model.Language]cachedBundle),
	}
}

// Bundle nunca falha: se a fonte não responder, devolve Fallback(lang).
func (s *Store) Bundle(ctx context.Context, lang model.Language) model.Bundle {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cached, ok := s.cache[lang]; ok {
		if s.ttl <= 0 || s.now().Sub(cached.loadedAt) < s.ttl {
			return cached.bundle
		}
	}

	bundle, err := s.source.Load(ctx, lang)
	if err != nil {
		storeLogger().Warn("catálogo indisponível, usando bundle mínimo", "lang", lang, "error", err)
		observability.CatalogFallbacksTotal.Inc()
		return Fallback(lang)
	}

	s.cache[lang] = cachedBundle{bundle: bundle, loadedAt: s.now()}
	return bundle
}

func storeLogger() *slog.Logger {
	return slog.Default().With("component", "catalog.store")
}
