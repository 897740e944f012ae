package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"lumina/internal/model"
)

var ErrNoBundle = errors.New("catalog document has no bundle for the language or for pt")

// Source entrega o bundle de um idioma. Implementações podem falhar;
// quem degrada para o bundle mínimo é o Store.
type Source interface {
	Load(ctx context.Context, lang model.Language) (model.Bundle, error)
}

// Document é o catálogo completo, um bundle por idioma.
type Document map[model.Language]model.Bundle

// ParseDocument lê o documento no formato {"pt": {...}, "en": {...}}.
func ParseDocument(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog document: %w", err)
	}
	return doc, nil
}

// Bundle devolve o bundle do idioma pedido ou, na falta dele, o português.
func (d Document) Bundle(lang model.Language) (model.Bundle, error) {
	if b, ok := d[lang]; ok {
		return b, nil
	}
	if b, ok := d[model.Portuguese]; ok {
		return b, nil
	}
	return model.Bundle{}, ErrNoBundle
}

// FileSource lê o documento do disco a cada Load.
type FileSource struct {
	Path string
}

func (s *FileSource) Load(_ context.Context, lang model.Language) (model.Bundle, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return model.Bundle{}, fmt.Errorf("read catalog %s: %w", s.Path, err)
	}

	doc, err := ParseDocument(data)
	if err != nil {
		return model.Bundle{}, err
	}
	return doc.Bundle(lang)
}

// Fallback é o bundle mínimo usado quando a fonte do catálogo falha.
func Fallback(lang model.Language) model.Bundle {
	if lang == model.English {
		return model.Bundle{
			Topics:   map[string]string{"payment": "Error.", "support": "Error."},
			Products: []model.Product{},
		}
	}
	return model.Bundle{
		Topics:   map[string]string{"pagamento": "Erro.", "suporte": "Erro."},
		Products: []model.Product{},
	}
}
