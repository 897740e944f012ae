package model

import "github.com/shopspring/decimal"

// Language identifica um dos bundles localizados do catálogo.
type Language string

const (
	Portuguese Language = "pt"
	English    Language = "en"
)

// Product é um item do catálogo. As tags JSON seguem o documento bd.json.
type Product struct {
	Name        string          `json:"nome"`
	Price       decimal.Decimal `json:"preco"`
	Emoji       string          `json:"emoji"`
	Colors      []string        `json:"cores,omitempty"`
	Categories  []string        `json:"categorias,omitempty"`
	Description string          `json:"descricao"`
}

// Pick devolve en quando o idioma é inglês e pt para todo o resto.
func (l Language) Pick(pt, en string) string {
	if l == English {
		return en
	}
	return pt
}
