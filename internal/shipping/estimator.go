package shipping

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"lumina/internal/model"
	"lumina/internal/observability"
)

var nonDigits = regexp.MustCompile(`\D`)

// Tier é uma faixa fixa de prazo e preço.
type Tier struct {
	Name       string
	Price      decimal.Decimal
	leadTimePT string
	leadTimeEN string
}

func (t Tier) LeadTime(lang model.Language) string {
	return lang.Pick(t.leadTimePT, t.leadTimeEN)
}

// PriceLabel formata o preço da faixa: "R$ 12,00" em português, "$ 12.00" em inglês.
func (t Tier) PriceLabel(lang model.Language) string {
	amount := t.Price.StringFixed(2)
	if lang == model.English {
		return "$ " + amount
	}
	return "R$ " + strings.Replace(amount, ".", ",", 1)
}

var (
	tierA = Tier{Name: "A", Price: decimal.RequireFromString("12.00"), leadTimePT: "2 a 4 dias úteis", leadTimeEN: "2-4 business days"}
	tierB = Tier{Name: "B", Price: decimal.RequireFromString("25.50"), leadTimePT: "5 a 9 dias úteis", leadTimeEN: "5-9 business days"}
	tierC = Tier{Name: "C", Price: decimal.RequireFromString("35.00"), leadTimePT: "10 a 15 dias úteis", leadTimeEN: "10-15 business days"}
)

var tierBRegions = map[string]bool{"RJ": true, "MG": true, "PR": true, "SC": true, "RS": true}

// TierFor mapeia a UF para a faixa: SP é A, Sul/Sudeste restante é B, o resto C.
func TierFor(region string) Tier {
	region = strings.ToUpper(strings.TrimSpace(region))
	switch {
	case region == "SP":
		return tierA
	case tierBRegions[region]:
		return tierB
	default:
		return tierC
	}
}

// Quote é a cotação de frete já localizada.
type Quote struct {
	Region   string
	City     string
	LeadTime string
	Price    string
}

func NewQuote(addr Address, lang model.Language) Quote {
	tier := TierFor(addr.Region)
	return Quote{
		Region:   addr.Region,
		City:     addr.City,
		LeadTime: tier.LeadTime(lang),
		Price:    tier.PriceLabel(lang),
	}
}

func (q Quote) Render(lang model.Language) string {
	return fmt.Sprintf("🚚 %s %s-%s:\n- %s: %s\n- %s: %s",
		lang.Pick("Para", "To"), q.City, q.Region,
		lang.Pick("Frete", "Shipping"), q.Price,
		lang.Pick("Prazo", "Estimate"), q.LeadTime,
	)
}

// Estimator transforma um CEP em resposta de frete. Nunca devolve erro:
// toda falha vira mensagem localizada.
type Estimator struct {
	lookup AddressLookup
}

func NewEstimator(lookup AddressLookup) *Estimator {
	return &Estimator{lookup: lookup}
}

func (e *Estimator) Estimate(ctx context.Context, rawCEP string, lang model.Language) string {
	cep := nonDigits.ReplaceAllString(rawCEP, "")
	if len(cep) != 8 {
		observability.ShippingLookupsTotal.WithLabelValues("invalid_format").Inc()
		return lang.Pick("❌ CEP inválido.", "❌ Invalid ZIP code.")
	}

	addr, err := e.lookup.Lookup(ctx, cep)
	if err != nil {
		kind := KindOf(err)
		observability.ShippingLookupsTotal.WithLabelValues(string(kind)).Inc()
		if kind == KindNotFound {
			return lang.Pick("❌ CEP não encontrado.", "❌ ZIP code not found.")
		}
		estimatorLogger().Warn("falha ao consultar frete", "cep", cep, "kind", kind, "error", err)
		return lang.Pick("⚠️ Erro ao consultar frete.", "⚠️ Error checking shipping.")
	}

	observability.ShippingLookupsTotal.WithLabelValues("ok").Inc()
	return NewQuote(addr, lang).Render(lang)
}

func estimatorLogger() *slog.Logger {
	return slog.Default().With("component", "shipping.estimator")
}
