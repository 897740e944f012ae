package chat

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"lumina/internal/markup"
	"lumina/internal/model"
)

const maxRequestBytes = 64 << 10

type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type ChatResponse struct {
	SessionID string         `json:"session_id"`
	Answer    string         `json:"answer"`
	Strategy  Strategy       `json:"strategy,omitempty"`
	Lang      model.Language `json:"lang"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handler atende POST /chat. Sem session_id, uma nova sessão é criada e
// devolvida na resposta.
func Handler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ChatRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
			return
		}

		message := strings.TrimSpace(req.Message)
		if message == "" {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "message is required"})
			return
		}
		if req.SessionID == "" {
			req.SessionID = uuid.NewString()
		}

		reply, err := svc.Turn(r.Context(), req.SessionID, message)
		if err != nil {
			var turnErr *TurnError
			if errors.As(err, &turnErr) {
				writeJSON(w, http.StatusInternalServerError, ChatResponse{
					SessionID: req.SessionID,
					Answer:    turnErr.Message(),
					Lang:      turnErr.Lang,
				})
				return
			}
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
			return
		}

		handlerLogger().Info("resposta enviada", "session", req.SessionID, "strategy", reply.Strategy, "lang", reply.Lang)

		writeJSON(w, http.StatusOK, ChatResponse{
			SessionID: req.SessionID,
			Answer:    markup.Clean(reply.Text),
			Strategy:  reply.Strategy,
			Lang:      reply.Lang,
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		handlerLogger().Warn("falha ao escrever resposta", "error", err)
	}
}

func handlerLogger() *slog.Logger {
	return slog.Default().With("component", "chat.handler")
}
