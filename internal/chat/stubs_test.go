package chat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"lumina/internal/catalog"
	"lumina/internal/model"
)

type fixedDetector model.Language

func (d fixedDetector) Detect(string) model.Language { return model.Language(d) }

type staticCatalog struct {
	bundles map[model.Language]model.Bundle
}

func (c staticCatalog) Bundle(_ context.Context, lang model.Language) model.Bundle {
	return c.bundles[lang]
}

type panicCatalog struct{}

func (panicCatalog) Bundle(context.Context, model.Language) model.Bundle {
	panic("catalog exploded")
}

type stubEstimator struct {
	calls []string
}

func (s *stubEstimator) Estimate(_ context.Context, rawCEP string, lang model.Language) string {
	s.calls = append(s.calls, rawCEP)
	return lang.Pick("frete para ", "shipping to ") + rawCEP
}

type stubResponder struct {
	text  string
	err   error
	calls int
	conv  Conversation
}

func (s *stubResponder) Reply(_ context.Context, _ string, _ model.Language, _ model.Bundle, conv Conversation) (string, error) {
	s.calls++
	s.conv = conv
	return s.text, s.err
}

func loadCatalog(t *testing.T) staticCatalog {
	t.Helper()

	source := &catalog.FileSource{Path: "../../data/bd.json"}
	bundles := make(map[model.Language]model.Bundle)
	for _, lang := range []model.Language{model.Portuguese, model.English} {
		b, err := source.Load(context.Background(), lang)
		require.NoError(t, err)
		bundles[lang] = b
	}
	return staticCatalog{bundles: bundles}
}
