package chat

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumina/internal/model"
)

type stubCompleter struct {
	req   openai.ChatCompletionRequest
	resp  openai.ChatCompletionResponse
	err   error
	block bool
}

func (s *stubCompleter) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	s.req = req
	if s.block {
		<-ctx.Done()
		return openai.ChatCompletionResponse{}, ctx.Err()
	}
	return s.resp, s.err
}

func answer(content string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: content}}},
	}
}

var testOptions = AssistantOptions{
	Model:       "llama-3.1-8b-instant",
	Temperature: 0.1,
	MaxTokens:   250,
	Timeout:     time.Second,
}

func TestAssistantBuildsPrompt(t *testing.T) {
	client := &stubCompleter{resp: answer("Sim, temos em **azul**.")}
	a := NewAssistant(client, testOptions)
	bundle := loadCatalog(t).bundles[model.English]
	conv := Conversation{}.remember(bundle.Products[4])

	got, err := a.Reply(context.Background(), "is it waterproof?", model.English, bundle, conv)

	require.NoError(t, err)
	assert.Equal(t, "Sim, temos em azul.", got)

	req := client.req
	assert.Equal(t, "llama-3.1-8b-instant", req.Model)
	assert.InDelta(t, 0.1, req.Temperature, 1e-6)
	assert.Equal(t, 250, req.MaxTokens)

	require.Len(t, req.Messages, 3)
	assert.Equal(t, openai.ChatMessageRoleSystem, req.Messages[0].Role)
	assert.Equal(t,
		"You are the Lumina Style assistant. Respond only in ENGLISH. Do not use bold (**). Use '-' for lists. Context: Urban Cargo Pants.",
		req.Messages[0].Content)
	assert.Equal(t, openai.ChatMessageRoleSystem, req.Messages[1].Role)
	assert.True(t, strings.HasPrefix(req.Messages[1].Content, "Store Data: {"))
	assert.Contains(t, req.Messages[1].Content, `"payment"`)
	assert.Contains(t, req.Messages[1].Content, "Urban Anti-theft Backpack")
	assert.Equal(t, openai.ChatMessageRoleUser, req.Messages[2].Role)
	assert.Equal(t, "is it waterproof?", req.Messages[2].Content)
}

func TestSystemPromptWithoutMemory(t *testing.T) {
	got := SystemPrompt(model.Portuguese, Conversation{})

	assert.Equal(t,
		"You are the Lumina Style assistant. Responda apenas em PORTUGUÊS. Do not use bold (**). Use '-' for lists. Context: none.",
		got)
}

func TestAssistantFailures(t *testing.T) {
	tests := []struct {
		name   string
		client *stubCompleter
		opts   AssistantOptions
		want   CompletionKind
	}{
		{"transport", &stubCompleter{err: errors.New("connection refused")}, testOptions, CompletionTransport},
		{"no choices", &stubCompleter{resp: openai.ChatCompletionResponse{}}, testOptions, CompletionEmpty},
		{"blank content", &stubCompleter{resp: answer("   ")}, testOptions, CompletionEmpty},
		{"only markup", &stubCompleter{resp: answer("****")}, testOptions, CompletionEmpty},
		{"timeout", &stubCompleter{block: true}, AssistantOptions{Timeout: 20 * time.Millisecond}, CompletionTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAssistant(tt.client, tt.opts)

			got, err := a.Reply(context.Background(), "oi", model.Portuguese, model.Bundle{}, Conversation{})

			require.Error(t, err)
			assert.Empty(t, got)
			var ce *CompletionError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.want, ce.Kind)
			assert.Equal(t, tt.want, CompletionKindOf(err))
		})
	}
}

func TestCompletionKindOfForeignErrors(t *testing.T) {
	assert.Equal(t, CompletionTimeout, CompletionKindOf(context.DeadlineExceeded))
	assert.Equal(t, CompletionTransport, CompletionKindOf(errors.New("boom")))
}
