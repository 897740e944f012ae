package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "markdown bold", in: "A **Mochila** custa R$149.90", want: "A Mochila custa R$149.90"},
		{name: "single asterisks", in: "*nota* importante", want: "nota importante"},
		{name: "html bold", in: "Temos a <b>Calça Cargo</b> em estoque", want: "Temos a Calça Cargo em estoque"},
		{name: "comparison is not a tag", in: "preço < 100 e > 50", want: "preço < 100 e > 50"},
		{name: "plain text untouched", in: "- Preto\n- Azul", want: "- Preto\n- Azul"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.in))
		})
	}
}

func TestText(t *testing.T) {
	got := Text("<p>Segurança e estilo<br>com compartimento oculto</p><script>alert(1)</script>")
	assert.Equal(t, "Segurança e estilo\ncom compartimento oculto", got)
}
