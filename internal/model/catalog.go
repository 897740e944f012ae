package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"unicode/utf8"
)

// ProductsKey é a chave que guarda a lista de produtos dentro de um bundle.
const ProductsKey = "produtos"

// Bundle é o conjunto localizado de produtos e respostas prontas (tópicos).
type Bundle struct {
	Topics   map[string]string
	Products []Product
}

// UnmarshalJSON lê um bundle no formato do bd.json: "produtos" é a lista,
// qualquer outra chave com valor string vira tópico.
func (b *Bundle) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	b.Topics = make(map[string]string, len(raw))
	b.Products = nil
	for key, value := range raw {
		if key == ProductsKey {
			if err := json.Unmarshal(value, &b.Products); err != nil {
				return fmt.Errorf("decode %s: %w", ProductsKey, err)
			}
			continue
		}

		var text string
		if err := json.Unmarshal(value, &text); err != nil {
			// Valores que não são texto não são tópicos
			continue
		}
		b.Topics[key] = text
	}

	return nil
}

// MarshalJSON devolve o bundle no mesmo formato aceito por UnmarshalJSON.
func (b Bundle) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(b.Topics)+1)
	for key, text := range b.Topics {
		out[key] = text
	}
	products := b.Products
	if products == nil {
		products = []Product{}
	}
	out[ProductsKey] = products

	// Sem escape de HTML: o documento vai inteiro para o prompt do modelo
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// TopicKeys devolve as chaves de tópico em ordem de prioridade de match:
// a chave mais longa primeiro, empate em ordem alfabética.
func (b Bundle) TopicKeys() []string {
	keys := make([]string, 0, len(b.Topics))
	for key := range b.Topics {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		li, lj := utf8.RuneCountInString(keys[i]), utf8.RuneCountInString(keys[j])
		if li != lj {
			return li > lj
		}
		return keys[i] < keys[j]
	})
	return keys
}
