package lang

// Palavras frequentes em mensagens de loja. Ficam de fora as que existem nos
// dois idiomas (a, as, do, no, me, for, menu, pix).
var englishWords = []string{
	"i", "you", "your", "we", "they", "it", "my", "our",
	"the", "an", "and", "or", "of", "in", "on", "at", "to", "with", "about", "from",
	"what", "which", "how", "where", "when", "who", "why",
	"is", "are", "was", "were", "be", "will", "would", "could", "can", "does", "did",
	"have", "has", "want", "need", "like", "get", "take", "accept", "send", "buy",
	"this", "that", "these", "those", "there", "any", "much", "many", "more",
	"please", "thanks", "thank", "hello", "hi", "hey", "yes", "not",
	"price", "cost", "costs", "payment", "pay", "methods", "shipping", "delivery",
	"order", "size", "sizes", "color", "colors", "colour", "available", "store", "open",
}

var portugueseWords = []string{
	"eu", "você", "voce", "vocês", "voces", "meu", "minha", "seu", "sua",
	"o", "os", "um", "uma", "de", "da", "dos", "das", "em", "na", "nos", "nas", "e", "ou",
	"que", "qual", "quais", "quanto", "quanta", "quantos", "como", "onde", "quando", "porque",
	"com", "para", "pra", "por", "sem",
	"é", "são", "está", "esta", "tem", "têm", "ter", "ser", "quero", "queria", "gostaria",
	"isso", "isto", "esse", "essa", "mais", "muito", "também", "tambem",
	"olá", "ola", "oi", "obrigado", "obrigada", "sim", "não", "nao",
	"custa", "preço", "preco", "pagamento", "formas", "frete", "entrega", "comprar",
	"tamanho", "tamanhos", "cor", "cores", "loja", "aberta", "aceita", "aceitam",
}
