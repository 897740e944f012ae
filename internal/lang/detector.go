package lang

import (
	"strings"
	"sync"
	"unicode"

	"github.com/abadojack/whatlanggo"

	"lumina/internal/model"
)

// minLetters é o mínimo de letras para tentar a detecção; abaixo disso vale o padrão.
const minLetters = 3

// Detector classifica mensagens entre português e inglês. Primeiro conta
// palavras típicas de cada idioma; só no empate consulta o modelo de
// trigramas. Qualquer outro resultado, ou falta de sinal, vira português.
type Detector struct {
	options whatlanggo.Options

	mu    sync.RWMutex
	words map[model.Language]map[string]struct{}
}

func NewDetector() *Detector {
	d := &Detector{
		options: whatlanggo.Options{
			Whitelist: map[whatlanggo.Lang]bool{
				whatlanggo.Eng: true,
				whatlanggo.Por: true,
			},
		},
		words: map[model.Language]map[string]struct{}{
			model.English:    {},
			model.Portuguese: {},
		},
	}
	d.Learn(model.English, englishWords...)
	d.Learn(model.Portuguese, portugueseWords...)
	return d
}

// Learn acrescenta palavras que indicam o idioma. Palavras conhecidas nos
// dois idiomas deixam de contar para ambos.
func (d *Detector) Learn(lang model.Language, words ...string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	set, ok := d.words[lang]
	if !ok {
		return
	}
	for _, w := range words {
		for _, token := range tokenize(w) {
			set[token] = struct{}{}
		}
	}
}

// LearnBundle usa o vocabulário do catálogo (tópicos, nomes e categorias).
func (d *Detector) LearnBundle(lang model.Language, bundle model.Bundle) {
	words := make([]string, 0, len(bundle.Topics)+len(bundle.Products)*3)
	for key := range bundle.Topics {
		words = append(words, key)
	}
	for _, p := range bundle.Products {
		words = append(words, p.Name)
		words = append(words, p.Categories...)
	}
	d.Learn(lang, words...)
}

func (d *Detector) Detect(text string) model.Language {
	if countLetters(text) < minLetters {
		return model.Portuguese
	}

	en, pt := d.score(text)
	switch {
	case en > pt:
		return model.English
	case pt > en:
		return model.Portuguese
	}

	info := whatlanggo.DetectWithOptions(strings.ToLower(text), d.options)
	if info.Lang == whatlanggo.Eng {
		return model.English
	}
	return model.Portuguese
}

func (d *Detector) score(text string) (en, pt int) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	enWords, ptWords := d.words[model.English], d.words[model.Portuguese]
	for _, token := range tokenize(text) {
		_, inEN := enWords[token]
		_, inPT := ptWords[token]
		switch {
		case inEN && !inPT:
			en++
		case inPT && !inEN:
			pt++
		}
	}

	// Acentos e cedilha não aparecem em inglês
	if strings.ContainsAny(strings.ToLower(text), "ãõçáéíóúâêôà") {
		pt++
	}
	return en, pt
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
}

func countLetters(text string) int {
	n := 0
	for _, r := range text {
		if unicode.IsLetter(r) {
			n++
		}
	}
	return n
}
