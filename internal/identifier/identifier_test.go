package identifier

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		label string
		index int
		want  string
	}{
		{name: "plain word", label: "Data", index: 0, want: "data"},
		{name: "spaces become underscores", label: "Hora de la incidència", index: 1, want: "hora_de_la_incidencia"},
		{name: "slash dropped and accent folded", label: "Àrea/Despatx", index: 2, want: "areadespatx"},
		{name: "apostrophe dropped", label: "Tipus d'incidència", index: 3, want: "tipus_dincidencia"},
		{name: "parentheses dropped, hyphen kept", label: "Equip afectat (codi equip XXXXX-000)", index: 4, want: "equip_afectat_codi_equip_xxxxx-000"},
		{name: "surrounding whitespace trimmed", label: "  Nom  ", index: 5, want: "nom"},
		{name: "empty label with index", label: "", index: 3, want: "col_3"},
		{name: "blank label without index", label: "   ", index: -1, want: "col_x"},
		{name: "leading digit gets prefix", label: "123abc", index: 0, want: "col_123abc"},
		{name: "leading dot gets prefix", label: ".hidden", index: 0, want: "col_.hidden"},
		{name: "leading hyphen gets prefix", label: "-x", index: 0, want: "col_-x"},
		{name: "no ASCII base collapses to prefix", label: "日本語", index: 7, want: "col_"},
		{name: "underscore start is legal", label: "_private", index: 0, want: "_private"},
		{name: "tilde folded", label: "Ñandú", index: 0, want: "nandu"},
		{name: "colon removed", label: "Prioritat:", index: 0, want: "prioritat"},
		{name: "uppercase accents", label: "DESCRIPCIÓ", index: 0, want: "descripcio"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize(tt.label, tt.index)
			assert.Equal(t, tt.want, got)
			assert.True(t, IsValid(got), "result %q must be a valid identifier", got)
		})
	}
}

func TestSanitizeAlwaysValid(t *testing.T) {
	alphabet := []rune("aZ09 _-./:;'\"()[]{}éàÇñü·€日\t\n")
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 2000; i++ {
		n := rng.Intn(12)
		label := make([]rune, n)
		for j := range label {
			label[j] = alphabet[rng.Intn(len(alphabet))]
		}

		got := Sanitize(string(label), i%5-1)
		assert.True(t, IsValid(got), "Sanitize(%q) = %q is not valid", string(label), got)
	}
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("data"))
	assert.True(t, IsValid("_x.y-z_2"))
	assert.False(t, IsValid(""))
	assert.False(t, IsValid("2data"))
	assert.False(t, IsValid("Data"))
	assert.False(t, IsValid("àrea"))
	assert.False(t, IsValid("a b"))
}
