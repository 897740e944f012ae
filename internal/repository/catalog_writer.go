package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"

	"lumina/internal/catalog"
	"lumina/internal/markup"
	"lumina/internal/model"
)

const catalogSchema = `
	CREATE TABLE IF NOT EXISTS catalog_bundles (
		lang       TEXT PRIMARY KEY,
		document   JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)
`

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// CatalogWriter grava o documento do catálogo, um registro por idioma.
type CatalogWriter struct {
	DB execer
}

func NewCatalogWriter(db *sql.DB) *CatalogWriter {
	return &CatalogWriter{DB: db}
}

func (w *CatalogWriter) EnsureSchema(ctx context.Context) error {
	if _, err := w.DB.ExecContext(ctx, catalogSchema); err != nil {
		return fmt.Errorf("create catalog_bundles: %w", err)
	}
	return nil
}

// Save grava (ou substitui) o bundle de um idioma.
func (w *CatalogWriter) Save(ctx context.Context, lang model.Language, bundle model.Bundle) error {
	b, err := json.Marshal(bundle)
	if err != nil {
		return fmt.Errorf("encode catalog %s: %w", lang, err)
	}

	_, err = w.DB.ExecContext(ctx, `
		INSERT INTO catalog_bundles (lang, document, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (lang) DO UPDATE
		SET document = EXCLUDED.document, updated_at = now()
	`, string(lang), string(b))
	if err != nil {
		return fmt.Errorf("save catalog %s: %w", lang, err)
	}
	return nil
}

// Import grava todos os bundles do documento, em ordem de idioma.
// Descrições com HTML são reduzidas a texto antes de gravar.
func (w *CatalogWriter) Import(ctx context.Context, doc catalog.Document) (int, error) {
	langs := make([]model.Language, 0, len(doc))
	for lang := range doc {
		langs = append(langs, lang)
	}
	sort.Slice(langs, func(i, j int) bool { return langs[i] < langs[j] })

	for _, lang := range langs {
		if err := w.Save(ctx, lang, plainDescriptions(doc[lang])); err != nil {
			return 0, err
		}
	}
	return len(langs), nil
}

func plainDescriptions(bundle model.Bundle) model.Bundle {
	products := make([]model.Product, len(bundle.Products))
	for i, p := range bundle.Products {
		p.Description = markup.Text(p.Description)
		products[i] = p
	}
	bundle.Products = products
	return bundle
}
