package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "LUMINA_"

const (
	CatalogFile     = "file"
	CatalogPostgres = "postgres"

	SessionMemory = "memory"
	SessionRedis  = "redis"
)

type Config struct {
	CatalogSource string        `koanf:"catalog_source"`
	CatalogPath   string        `koanf:"catalog_path"`
	CatalogTTL    time.Duration `koanf:"catalog_ttl"`

	DatabaseURL string `koanf:"database_url"`
	RedisURL    string `koanf:"redis_url"`

	OpenAIKey     string        `koanf:"openai_key"`
	OpenAIBaseURL string        `koanf:"openai_base_url"`
	Model         string        `koanf:"model"`
	Temperature   float32       `koanf:"temperature"`
	MaxTokens     int           `koanf:"max_tokens"`
	LLMTimeout    time.Duration `koanf:"llm_timeout"`

	ViaCEPURL     string        `koanf:"viacep_url"`
	LookupTimeout time.Duration `koanf:"lookup_timeout"`

	SessionStore string        `koanf:"session_store"`
	SessionTTL   time.Duration `koanf:"session_ttl"`

	HTTPAddr    string   `koanf:"http_addr"`
	CORSOrigins []string `koanf:"cors_origins"`
	MetricsPort string   `koanf:"metrics_port"`

	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`
}

// DefaultConfig devolve a configuração usada quando nada é informado.
func DefaultConfig() *Config {
	return &Config{
		CatalogSource: CatalogFile,
		CatalogPath:   "data/bd.json",
		OpenAIBaseURL: "https://api.groq.com/openai/v1",
		Model:         "llama-3.1-8b-instant",
		Temperature:   0.1,
		MaxTokens:     250,
		LLMTimeout:    10 * time.Second,
		ViaCEPURL:     "https://viacep.com.br/ws",
		LookupTimeout: 5 * time.Second,
		SessionStore:  SessionMemory,
		SessionTTL:    30 * time.Minute,
		HTTPAddr:      ":8080",
		CORSOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		MetricsPort:   "9090",
		LogLevel:      "info",
		LogFormat:     "text",
	}
}

// Load monta a configuração: padrões, arquivo YAML opcional, variáveis
// convencionais (DATABASE_URL, REDIS_URL, ...) e por fim LUMINA_*.
func Load(path string) (*Config, error) {
	// Carrega .env da raiz do projeto
	_ = godotenv.Load("../../.env")
	// Se não encontrar, tenta no diretório atual
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			k := koanf.New(".")
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
			if err := k.Unmarshal("", cfg); err != nil {
				return nil, fmt.Errorf("unmarshalling config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	applyConventionalEnv(cfg)

	k := koanf.New(".")
	// Variáveis vazias não sobrescrevem o que veio antes
	if err := k.Load(env.ProviderWithValue(envPrefix, ".", func(key, value string) (string, interface{}) {
		if strings.TrimSpace(value) == "" {
			return "", nil
		}
		return strings.ToLower(strings.TrimPrefix(key, envPrefix)), value
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling env overrides: %w", err)
	}

	return cfg, nil
}

// applyConventionalEnv aplica os nomes de variável usados fora do projeto.
func applyConventionalEnv(cfg *Config) {
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.RedisURL = getEnv("REDIS_URL", cfg.RedisURL)
	cfg.MetricsPort = getEnv("METRICS_PORT", cfg.MetricsPort)
	cfg.OpenAIKey = getEnv("GROQ_API_KEY", cfg.OpenAIKey)
	cfg.OpenAIKey = getEnv("OPENAI_API_KEY", cfg.OpenAIKey)
}

func getEnv(k, d string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return d
}

// Validate confere enums, timeouts e dependências entre campos.
func (c *Config) Validate() error {
	switch c.CatalogSource {
	case CatalogFile:
		if c.CatalogPath == "" {
			return fmt.Errorf("catalog_path is required for the %s catalog source", CatalogFile)
		}
	case CatalogPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("database_url is required for the %s catalog source", CatalogPostgres)
		}
	default:
		return fmt.Errorf("invalid catalog_source %q: must be one of file, postgres", c.CatalogSource)
	}

	switch c.SessionStore {
	case SessionMemory:
	case SessionRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("redis_url is required for the %s session store", SessionRedis)
		}
	default:
		return fmt.Errorf("invalid session_store %q: must be one of memory, redis", c.SessionStore)
	}

	if c.Model == "" {
		return fmt.Errorf("model is required")
	}
	if c.LLMTimeout <= 0 {
		return fmt.Errorf("llm_timeout must be positive")
	}
	if c.LookupTimeout <= 0 {
		return fmt.Errorf("lookup_timeout must be positive")
	}
	if c.MaxTokens < 0 {
		return fmt.Errorf("max_tokens must be non-negative")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0 and 2")
	}
	if c.CatalogTTL < 0 || c.SessionTTL < 0 {
		return fmt.Errorf("catalog_ttl and session_ttl must be non-negative")
	}

	return nil
}
