package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultSessionTTL = 30 * time.Minute
	sessionKeyPrefix  = "lumina:conversation:"
)

// ConversationStore guarda a memória de cada sessão entre mensagens.
type ConversationStore interface {
	Load(ctx context.Context, sessionID string) (Conversation, error)
	Save(ctx context.Context, sessionID string, conv Conversation) error
}

// RedisConversationStore persiste a conversa como JSON com expiração.
// A expiração é renovada a cada leitura.
type RedisConversationStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisConversationStore(client *redis.Client, ttl time.Duration) *RedisConversationStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &RedisConversationStore{Client: client, TTL: ttl}
}

func (s *RedisConversationStore) Load(ctx context.Context, sessionID string) (Conversation, error) {
	key := sessionKeyPrefix + sessionID

	val, err := s.Client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return Conversation{}, nil
	}
	if err != nil {
		return Conversation{}, fmt.Errorf("load conversation %s: %w", sessionID, err)
	}

	var conv Conversation
	if err := json.Unmarshal([]byte(val), &conv); err != nil {
		return Conversation{}, fmt.Errorf("decode conversation %s: %w", sessionID, err)
	}

	if err := s.Client.Expire(ctx, key, s.TTL).Err(); err != nil {
		return conv, fmt.Errorf("refresh conversation %s: %w", sessionID, err)
	}

	return conv, nil
}

func (s *RedisConversationStore) Save(ctx context.Context, sessionID string, conv Conversation) error {
	b, err := json.Marshal(conv)
	if err != nil {
		return fmt.Errorf("encode conversation %s: %w", sessionID, err)
	}
	if err := s.Client.Set(ctx, sessionKeyPrefix+sessionID, b, s.TTL).Err(); err != nil {
		return fmt.Errorf("save conversation %s: %w", sessionID, err)
	}
	return nil
}

// MemoryConversationStore guarda as conversas no processo, sem expiração.
type MemoryConversationStore struct {
	mu       sync.Mutex
	sessions map[string]Conversation
}

func NewMemoryConversationStore() *MemoryConversationStore {
	return &MemoryConversationStore{sessions: make(map[string]Conversation)}
}

func (s *MemoryConversationStore) Load(_ context.Context, sessionID string) (Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[sessionID], nil
}

func (s *MemoryConversationStore) Save(_ context.Context, sessionID string, conv Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = conv
	return nil
}
