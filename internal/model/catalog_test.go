package model

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBundleUnmarshalSplitsProductsAndTopics(t *testing.T) {
	var b Bundle
	err := json.Unmarshal([]byte(`{
		"produtos": [{"nome": "Anel Signo", "preco": 39.90, "emoji": "💍", "categorias": ["anel"], "descricao": "Ajustável."}],
		"suporte": "📞 Suporte 08h–18h",
		"ativo": true
	}`), &b)
	require.NoError(t, err)

	require.Len(t, b.Products, 1)
	assert.Equal(t, "Anel Signo", b.Products[0].Name)
	assert.True(t, b.Products[0].Price.Equal(decimal.RequireFromString("39.90")))
	assert.Empty(t, b.Products[0].Colors)
	assert.Equal(t, map[string]string{"suporte": "📞 Suporte 08h–18h"}, b.Topics)
}

func TestBundleUnmarshalRejectsBadProducts(t *testing.T) {
	var b Bundle
	assert.Error(t, json.Unmarshal([]byte(`{"produtos": "nenhum"}`), &b))
}

func TestBundleMarshalKeepsDocumentShape(t *testing.T) {
	b := Bundle{Topics: map[string]string{"pagamento": "PIX"}}

	data, err := json.Marshal(b)
	require.NoError(t, err)
	assert.JSONEq(t, `{"pagamento": "PIX", "produtos": []}`, string(data))
}

func TestTopicKeysLongestFirst(t *testing.T) {
	b := Bundle{Topics: map[string]string{
		"pix":               "a",
		"frete":             "b",
		"tabela de medidas": "c",
		"menu":              "d",
		"troca":             "e",
	}}

	assert.Equal(t, []string{"tabela de medidas", "frete", "troca", "menu", "pix"}, b.TopicKeys())
}
