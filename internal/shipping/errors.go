package shipping

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Kind classifica a falha de uma consulta de endereço.
type Kind string

const (
	KindNotFound  Kind = "not_found"
	KindTimeout   Kind = "timeout"
	KindMalformed Kind = "malformed_response"
	KindTransport Kind = "transport"
)

// LookupError é a falha categorizada devolvida por um AddressLookup.
type LookupError struct {
	Kind Kind
	Err  error
}

func (e *LookupError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// KindOf devolve a categoria de qualquer erro de consulta. Erros sem
// categoria contam como falha de transporte, exceto estouro de prazo.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}

	var lookupErr *LookupError
	if errors.As(err, &lookupErr) {
		return lookupErr.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}

	return KindTransport
}
