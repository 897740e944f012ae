package chat

import (
	"context"
	"log/slog"

	"lumina/internal/model"
)

// Service junta o Dispatcher com a memória das sessões.
type Service struct {
	Dispatcher *Dispatcher
	Sessions   ConversationStore
}

func NewService(dispatcher *Dispatcher, sessions ConversationStore) *Service {
	return &Service{Dispatcher: dispatcher, Sessions: sessions}
}

// Turn processa uma mensagem de uma sessão: carrega a memória, despacha e
// salva quando um produto novo foi resolvido. Falhas do store não interrompem a resposta; pânicos viram *TurnError.
func (s *Service) Turn(ctx context.Context, sessionID, message string) (reply Reply, err error) {
	lang := model.Portuguese
	defer func() {
		if r := recover(); r != nil {
			serviceLogger().Error("falha inesperada", "session", sessionID, "panic", r)
			reply, err = Reply{}, &TurnError{Lang: lang, Cause: r}
		}
	}()

	lang = s.Dispatcher.detector.Detect(message)

	conv, loadErr := s.Sessions.Load(ctx, sessionID)
	if loadErr != nil {
		serviceLogger().Warn("memória da sessão indisponível", "session", sessionID, "error", loadErr)
	}

	loaded := conv
	reply, conv = s.Dispatcher.dispatch(ctx, conv, message, lang)

	// A memória só muda quando um produto novo foi resolvido
	if conv.LastProduct == loaded.LastProduct {
		return reply, nil
	}
	if saveErr := s.Sessions.Save(ctx, sessionID, conv); saveErr != nil {
		serviceLogger().Warn("não foi possível salvar a sessão", "session", sessionID, "error", saveErr)
	}

	return reply, nil
}

func serviceLogger() *slog.Logger {
	return slog.Default().With("component", "chat.service")
}
