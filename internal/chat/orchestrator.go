package chat

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"lumina/internal/markup"
	"lumina/internal/model"
	"lumina/internal/observability"
)

// ChatCompleter é a parte do cliente OpenAI usada aqui (*openai.Client serve).
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type AssistantOptions struct {
	Model       string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
}

// Assistant é o fallback generativo: responde o que as regras não cobrem.
type Assistant struct {
	client ChatCompleter
	opts   AssistantOptions
}

func NewAssistant(client ChatCompleter, opts AssistantOptions) *Assistant {
	return &Assistant{client: client, opts: opts}
}

// Reply consulta o modelo com o catálogo inteiro como contexto e devolve o
// texto já limpo de marcação. Erros são sempre *CompletionError.
func (a *Assistant) Reply(ctx context.Context, message string, lang model.Language, bundle model.Bundle, conv Conversation) (string, error) {
	storeData, err := StoreData(bundle)
	if err != nil {
		return "", &CompletionError{Kind: CompletionTransport, Err: err}
	}

	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: SystemPrompt(lang, conv)},
		{Role: openai.ChatMessageRoleSystem, Content: storeData},
		{Role: openai.ChatMessageRoleUser, Content: message},
	}

	answer, err := a.complete(ctx, messages)
	if err == nil {
		answer = markup.Clean(answer)
		if strings.TrimSpace(answer) == "" {
			err = &CompletionError{Kind: CompletionEmpty}
		}
	}
	if err != nil {
		observability.CompletionsTotal.WithLabelValues(string(CompletionKindOf(err))).Inc()
		assistantLogger().Warn("falha no modelo generativo", "lang", lang, "error", err)
		return "", err
	}

	observability.CompletionsTotal.WithLabelValues("ok").Inc()
	return answer, nil
}

func (a *Assistant) complete(ctx context.Context, messages []openai.ChatCompletionMessage) (string, error) {
	if a.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.opts.Timeout)
		defer cancel()
	}

	chars := 0
	for _, m := range messages {
		chars += len(m.Content)
	}
	// Estimativa média: 1 token ~= 4 caracteres
	assistantLogger().Debug("enviando payload", "model", a.opts.Model, "messages", len(messages), "chars", chars, "tokens_est", chars/4)

	start := time.Now()
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       a.opts.Model,
		Messages:    messages,
		Temperature: a.opts.Temperature,
		MaxTokens:   a.opts.MaxTokens,
	})
	observability.CompletionSeconds.Observe(time.Since(start).Seconds())
	if err != nil {
		kind := CompletionTransport
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			kind = CompletionTimeout
		}
		return "", &CompletionError{Kind: kind, Err: err}
	}

	if len(resp.Choices) == 0 {
		return "", &CompletionError{Kind: CompletionEmpty}
	}
	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	if answer == "" {
		return "", &CompletionError{Kind: CompletionEmpty}
	}

	return answer, nil
}

func assistantLogger() *slog.Logger {
	return slog.Default().With("component", "chat.assistant")
}
