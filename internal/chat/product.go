package chat

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"lumina/internal/model"
)

const separatorWidth = 40

// ResolveProduct procura o primeiro produto do bundle cujo nome ou categoria
// aparece na mensagem. Sem match, uma mensagem só com quantidade reaproveita o
// produto lembrado na conversa. ok é false quando nada se aplica.
func ResolveProduct(message string, bundle model.Bundle, lang model.Language, conv Conversation) (text string, next Conversation, ok bool) {
	lower := strings.ToLower(message)
	qty := ExtractQuantity(lower)

	for _, p := range bundle.Products {
		if matchesProduct(lower, p) {
			return RenderProduct(p, qty, lang), conv.remember(p), true
		}
	}

	if conv.LastProduct != nil && hasQuantityHint(lower) {
		return RenderProduct(*conv.LastProduct, qty, lang), conv, true
	}

	return "", conv, false
}

func matchesProduct(lower string, p model.Product) bool {
	if name := strings.ToLower(strings.TrimSpace(p.Name)); name != "" && strings.Contains(lower, name) {
		return true
	}
	for _, category := range p.Categories {
		// Categoria vazia casaria com qualquer mensagem
		category = strings.ToLower(strings.TrimSpace(category))
		if category != "" && strings.Contains(lower, category) {
			return true
		}
	}
	return false
}

// RenderProduct monta o cartão do produto; o total só aparece com qty > 1.
func RenderProduct(p model.Product, qty int, lang model.Language) string {
	currency := lang.Pick("R$", "$")

	var sb strings.Builder
	fmt.Fprintf(&sb, "\n%s %s - %s%s", p.Emoji, p.Name, currency, p.Price.StringFixed(2))
	if qty > 1 {
		total := p.Price.Mul(decimal.NewFromInt(int64(qty)))
		fmt.Fprintf(&sb, " (%s %d %s - %s%s)",
			lang.Pick("Total para", "Total for"), qty, lang.Pick("unidades", "units"),
			currency, total.StringFixed(2))
	}
	fmt.Fprintf(&sb, "\n%s - %s", lang.Pick("Cores", "Colors"), strings.Join(p.Colors, ", "))
	fmt.Fprintf(&sb, "\n%s - %s\n", lang.Pick("Descrição", "Description"), p.Description)
	sb.WriteString(strings.Repeat("-", separatorWidth))

	return sb.String()
}
