package chat

import "lumina/internal/model"

// Conversation é a memória de uma sessão: só o último produto resolvido.
type Conversation struct {
	LastProduct *model.Product `json:"last_product,omitempty"`
}

// ProductName devolve o nome do produto lembrado, ou "" sem memória.
func (c Conversation) ProductName() string {
	if c.LastProduct == nil {
		return ""
	}
	return c.LastProduct.Name
}

func (c Conversation) remember(p model.Product) Conversation {
	c.LastProduct = &p
	return c
}
