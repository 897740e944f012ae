package chat

import (
	"context"
	"errors"
	"fmt"
	"net"

	"lumina/internal/model"
)

// CompletionKind classifica falhas da chamada ao modelo generativo.
type CompletionKind string

const (
	CompletionTimeout   CompletionKind = "timeout"
	CompletionTransport CompletionKind = "transport"
	CompletionEmpty     CompletionKind = "empty_response"
)

type CompletionError struct {
	Kind CompletionKind
	Err  error
}

func (e *CompletionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("completion failed: %s", e.Kind)
	}
	return fmt.Sprintf("completion failed (%s): %v", e.Kind, e.Err)
}

func (e *CompletionError) Unwrap() error {
	return e.Err
}

// CompletionKindOf devolve o tipo da falha; erros desconhecidos contam como transporte.
func CompletionKindOf(err error) CompletionKind {
	var ce *CompletionError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return CompletionTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return CompletionTimeout
	}
	return CompletionTransport
}

// completionFailureMessage é o texto mostrado ao usuário quando o modelo falha.
func completionFailureMessage(err error, lang model.Language) string {
	if CompletionKindOf(err) == CompletionTimeout {
		return lang.Pick(
			"⏳ O assistente demorou para responder. Pode repetir? 🌐",
			"⏳ The assistant took too long to answer. Could you repeat? 🌐",
		)
	}
	return lang.Pick(
		"Conexão instável. Pode repetir? 🌐",
		"Connection unstable. Could you repeat? 🌐",
	)
}

// TurnError é uma falha inesperada ao processar uma mensagem.
type TurnError struct {
	Lang  model.Language
	Cause any
}

func (e *TurnError) Error() string {
	return fmt.Sprintf("unexpected failure processing message: %v", e.Cause)
}

// Message devolve o diagnóstico localizado para o usuário.
func (e *TurnError) Message() string {
	return fmt.Sprintf("🚨 %s: %v", e.Lang.Pick("Erro inesperado", "Unexpected error"), e.Cause)
}
