package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumina/internal/chat"
	"lumina/internal/config"
	"lumina/internal/model"
)

const productQuestion = "quanto custa a mochila preta que vocês vendem na loja?"

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	// Nenhum teste deve chegar ao modelo de verdade
	llm := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	t.Cleanup(llm.Close)

	cfg := config.DefaultConfig()
	cfg.CatalogPath = "../../data/bd.json"
	cfg.OpenAIBaseURL = llm.URL
	return cfg
}

func TestNewWithDefaults(t *testing.T) {
	a, err := New(context.Background(), testConfig(t))
	require.NoError(t, err)
	defer a.Close()

	reply, err := a.Service.Turn(context.Background(), "s1", productQuestion)
	require.NoError(t, err)
	assert.Equal(t, chat.StrategyProduct, reply.Strategy)
	assert.Contains(t, reply.Text, "Mochila Anti-furto Urban - R$149.90")

	reply, err = a.Service.Turn(context.Background(), "s1", "2")
	require.NoError(t, err)
	assert.Contains(t, reply.Text, "(Total para 2 unidades - R$299.80)")
}

func TestNewAnswersEnglishTopics(t *testing.T) {
	a, err := New(context.Background(), testConfig(t))
	require.NoError(t, err)
	defer a.Close()

	reply, err := a.Service.Turn(context.Background(), "s1", "What payment methods do you take?")

	require.NoError(t, err)
	assert.Equal(t, chat.StrategyTopic, reply.Strategy)
	assert.Equal(t, model.English, reply.Lang)
}

func TestNewWithRedisSessions(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig(t)
	cfg.SessionStore = config.SessionRedis
	cfg.RedisURL = "redis://" + mr.Addr() + "/0"

	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer a.Close()

	_, err = a.Service.Turn(context.Background(), "s1", productQuestion)
	require.NoError(t, err)
	assert.Len(t, mr.Keys(), 1)

	reply, err := a.Service.Turn(context.Background(), "s1", "3")
	require.NoError(t, err)
	assert.Contains(t, reply.Text, "(Total para 3 unidades - R$449.70)")
}

func TestNewFailures(t *testing.T) {
	cfg := testConfig(t)
	cfg.SessionStore = "memcached"
	_, err := New(context.Background(), cfg)
	assert.Error(t, err)

	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg = testConfig(t)
	cfg.SessionStore = config.SessionRedis
	cfg.RedisURL = addr
	_, err = New(context.Background(), cfg)
	assert.ErrorContains(t, err, "ping redis")
}

func TestAssistantFailureIsLocalized(t *testing.T) {
	a, err := New(context.Background(), testConfig(t))
	require.NoError(t, err)
	defer a.Close()

	reply, err := a.Service.Turn(context.Background(), "s1", "vocês abrem no domingo de manhã?")

	require.NoError(t, err)
	assert.Equal(t, chat.StrategyAssistant, reply.Strategy)
	assert.Equal(t, "Conexão instável. Pode repetir? 🌐", reply.Text)
}

func TestRedisOptions(t *testing.T) {
	opts, err := redisOptions("localhost:6379")
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", opts.Addr)

	opts, err = redisOptions("redis://:secret@cache:6380/2")
	require.NoError(t, err)
	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 2, opts.DB)

	_, err = redisOptions("redis://cache:6380/notadb")
	assert.Error(t, err)
}
