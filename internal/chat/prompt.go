package chat

import (
	"bytes"
	"encoding/json"
	"fmt"

	"lumina/internal/model"
)

const persona = "You are the Lumina Style assistant."

// SystemPrompt monta a instrução principal: persona, idioma obrigatório,
// regras de formato e o produto que está em contexto.
func SystemPrompt(lang model.Language, conv Conversation) string {
	product := conv.ProductName()
	if product == "" {
		product = "none"
	}

	return fmt.Sprintf("%s %s Do not use bold (**). Use '-' for lists. Context: %s.",
		persona,
		lang.Pick("Responda apenas em PORTUGUÊS.", "Respond only in ENGLISH."),
		product,
	)
}

// StoreData serializa o bundle inteiro (tópicos e produtos) para o modelo.
func StoreData(bundle model.Bundle) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(bundle); err != nil {
		return "", fmt.Errorf("encode store data: %w", err)
	}
	return "Store Data: " + string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}
