package shipping

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Address é o que o estimador precisa saber de um CEP.
type Address struct {
	City   string
	Region string
}

// AddressLookup resolve um CEP normalizado (8 dígitos) em cidade/UF.
type AddressLookup interface {
	Lookup(ctx context.Context, cep string) (Address, error)
}

type viaCEPResponse struct {
	CEP        string `json:"cep"`
	Localidade string `json:"localidade"`
	UF         string `json:"uf"`
	Erro       any    `json:"erro"`
}

// ViaCEPClient consulta https://viacep.com.br com prazo fixo por chamada.
type ViaCEPClient struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
}

func NewViaCEPClient(baseURL string, timeout time.Duration) *ViaCEPClient {
	return &ViaCEPClient{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{},
		Timeout:    timeout,
	}
}

func (c *ViaCEPClient) Lookup(ctx context.Context, cep string) (Address, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	url := fmt.Sprintf("%s/%s/json/", c.BaseURL, cep)
	log := lookupLogger().With("cep", cep)
	startedAt := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Address{}, &LookupError{Kind: KindTransport, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		kind := KindTransport
		if errors.Is(ctx.Err(), context.DeadlineExceeded) || KindOf(err) == KindTimeout {
			kind = KindTimeout
		}
		log.Debug("consulta de CEP falhou", "duration_ms", time.Since(startedAt).Milliseconds(), "error", err)
		return Address{}, &LookupError{Kind: kind, Err: fmt.Errorf("request failed: %w", err)}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusBadRequest:
		// ViaCEP responde 400 para CEP com formato que ele não aceita
		return Address{}, &LookupError{Kind: KindNotFound, Err: fmt.Errorf("API returned status %d", resp.StatusCode)}
	case resp.StatusCode != http.StatusOK:
		return Address{}, &LookupError{Kind: KindTransport, Err: fmt.Errorf("API returned status %d", resp.StatusCode)}
	}

	var result viaCEPResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		kind := KindMalformed
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			kind = KindTimeout
		}
		return Address{}, &LookupError{Kind: kind, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	// Qualquer valor em "erro", inclusive false, significa CEP inexistente
	if result.Erro != nil {
		return Address{}, &LookupError{Kind: KindNotFound}
	}
	if strings.TrimSpace(result.Localidade) == "" || strings.TrimSpace(result.UF) == "" {
		return Address{}, &LookupError{Kind: KindMalformed, Err: errors.New("response without localidade/uf")}
	}

	log.Debug("consulta de CEP concluída", "duration_ms", time.Since(startedAt).Milliseconds(), "uf", result.UF)
	return Address{
		City:   strings.TrimSpace(result.Localidade),
		Region: strings.ToUpper(strings.TrimSpace(result.UF)),
	}, nil
}

func lookupLogger() *slog.Logger {
	return slog.Default().With("component", "shipping.viacep")
}
