package markup

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var htmlTag = regexp.MustCompile(`</?[a-zA-Z][^>]*>`)

// Clean remove marcação de ênfase de um texto que vai para a tela:
// asteriscos sempre e tags HTML quando aparecem.
func Clean(text string) string {
	if htmlTag.MatchString(text) {
		text = Text(text)
	}
	return strings.ReplaceAll(text, "*", "")
}

// Text extrai o texto visível de um fragmento HTML. <br> vira quebra de linha.
func Text(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}

	doc.Find("script, style").Remove()
	doc.Find("br").ReplaceWithHtml("\n")

	return strings.TrimSpace(doc.Find("body").Text())
}
