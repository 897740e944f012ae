package chat

import (
	"regexp"
	"strconv"
)

var (
	cepPattern   = regexp.MustCompile(`\b\d{5}-?\d{3}\b`)
	digitPattern = regexp.MustCompile(`\d+`)
)

type numberWord struct {
	pattern *regexp.Regexp
	value   int
}

// Ordem da tabela importa: a primeira palavra encontrada decide.
var numberWords = func() []numberWord {
	table := []struct {
		word  string
		value int
	}{
		{"um", 1}, {"dois", 2}, {"três", 3}, {"quatro", 4}, {"cinco", 5}, {"dez", 10},
		{"one", 1}, {"two", 2}, {"three", 3}, {"four", 4}, {"five", 5}, {"ten", 10},
	}

	words := make([]numberWord, 0, len(table))
	for _, entry := range table {
		words = append(words, numberWord{
			pattern: regexp.MustCompile(`(?i)(^|[^\p{L}\p{N}])` + regexp.QuoteMeta(entry.word) + `($|[^\p{L}\p{N}])`),
			value:   entry.value,
		})
	}
	return words
}()

// ExtractCEP devolve o primeiro CEP (8 dígitos, hífen opcional) da mensagem,
// ou "" se não houver.
func ExtractCEP(text string) string {
	return cepPattern.FindString(text)
}

// ExtractQuantity lê a quantidade pedida: a primeira sequência de dígitos,
// senão a primeira palavra-número da tabela, senão 1. Nunca devolve menos que 1.
func ExtractQuantity(text string) int {
	if digits := digitPattern.FindString(text); digits != "" {
		n, err := strconv.Atoi(digits)
		if err != nil || n < 1 {
			return 1
		}
		return n
	}

	for _, w := range numberWords {
		if w.pattern.MatchString(text) {
			return w.value
		}
	}

	return 1
}

// hasQuantityHint diz se a mensagem menciona alguma quantidade.
func hasQuantityHint(text string) bool {
	if digitPattern.MatchString(text) {
		return true
	}
	for _, w := range numberWords {
		if w.pattern.MatchString(text) {
			return true
		}
	}
	return false
}
