package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lumina/internal/catalog"
	"lumina/internal/model"
)

type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// CatalogRepository lê os bundles do catálogo gravados no Postgres.
// Implementa catalog.Source.
type CatalogRepository struct {
	DB rowQuerier
}

func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{DB: pool}
}

// Load devolve o bundle do idioma ou, na falta dele, o português.
func (r *CatalogRepository) Load(ctx context.Context, lang model.Language) (model.Bundle, error) {
	var raw []byte
	err := r.DB.QueryRow(ctx, `
		SELECT document
		FROM catalog_bundles
		WHERE lang IN ($1, $2)
		ORDER BY lang = $1 DESC
		LIMIT 1
	`, string(lang), string(model.Portuguese)).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Bundle{}, fmt.Errorf("load catalog %s: %w", lang, catalog.ErrNoBundle)
	}
	if err != nil {
		return model.Bundle{}, fmt.Errorf("load catalog %s: %w", lang, err)
	}

	var bundle model.Bundle
	if err := json.Unmarshal(raw, &bundle); err != nil {
		return model.Bundle{}, fmt.Errorf("decode catalog %s: %w", lang, err)
	}
	return bundle, nil
}
