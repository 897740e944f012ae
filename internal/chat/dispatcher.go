package chat

import (
	"context"
	"log/slog"
	"strings"

	"lumina/internal/model"
	"lumina/internal/observability"
)

// Strategy identifica quem produziu a resposta.
type Strategy string

const (
	StrategyTopic     Strategy = "topic"
	StrategyShipping  Strategy = "shipping"
	StrategyProduct   Strategy = "product"
	StrategyAssistant Strategy = "assistant"
)

type Detector interface {
	Detect(text string) model.Language
}

type BundleProvider interface {
	Bundle(ctx context.Context, lang model.Language) model.Bundle
}

type ShippingEstimator interface {
	Estimate(ctx context.Context, rawCEP string, lang model.Language) string
}

type Responder interface {
	Reply(ctx context.Context, message string, lang model.Language, bundle model.Bundle, conv Conversation) (string, error)
}

type Reply struct {
	Text     string
	Strategy Strategy
	Lang     model.Language
}

// Dispatcher tenta as estratégias numa ordem fixa: tópico, frete, produto e,
// por último, o modelo generativo. A primeira resposta não vazia vence.
type Dispatcher struct {
	detector  Detector
	catalog   BundleProvider
	shipping  ShippingEstimator
	assistant Responder
}

func NewDispatcher(detector Detector, catalog BundleProvider, shipping ShippingEstimator, assistant Responder) *Dispatcher {
	return &Dispatcher{
		detector:  detector,
		catalog:   catalog,
		shipping:  shipping,
		assistant: assistant,
	}
}

// Process responde uma mensagem e devolve a conversa atualizada.
func (d *Dispatcher) Process(ctx context.Context, conv Conversation, message string) (Reply, Conversation) {
	return d.dispatch(ctx, conv, message, d.detector.Detect(message))
}

func (d *Dispatcher) dispatch(ctx context.Context, conv Conversation, message string, lang model.Language) (Reply, Conversation) {
	bundle := d.catalog.Bundle(ctx, lang)
	lower := strings.ToLower(message)

	reply := Reply{Lang: lang}
	if text, ok := MatchTopic(lower, bundle); ok {
		reply.Text, reply.Strategy = text, StrategyTopic
	} else if cep := ExtractCEP(message); cep != "" {
		reply.Text, reply.Strategy = d.shipping.Estimate(ctx, cep, lang), StrategyShipping
	} else if text, next, ok := ResolveProduct(message, bundle, lang, conv); ok {
		reply.Text, reply.Strategy = text, StrategyProduct
		conv = next
	} else {
		reply.Strategy = StrategyAssistant
		text, err := d.assistant.Reply(ctx, message, lang, bundle, conv)
		if err != nil {
			text = completionFailureMessage(err, lang)
		}
		reply.Text = text
	}

	observability.MessagesTotal.WithLabelValues(string(reply.Strategy), string(lang)).Inc()
	dispatcherLogger().Debug("mensagem despachada", "strategy", reply.Strategy, "lang", lang, "product", conv.ProductName())

	return reply, conv
}

// MatchTopic devolve a resposta pronta do primeiro tópico contido na mensagem
// (já em minúsculas). Chaves mais longas são testadas antes.
func MatchTopic(lower string, bundle model.Bundle) (string, bool) {
	for _, key := range bundle.TopicKeys() {
		text := bundle.Topics[key]
		if key == "" || text == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(key)) {
			return text, true
		}
	}
	return "", false
}

func dispatcherLogger() *slog.Logger {
	return slog.Default().With("component", "chat.dispatcher")
}
