package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "ALFA", "alfa"},
		{"trims", "  alfa  ", "alfa"},
		{"collapses inner whitespace", "linha   de  producao", "linha de producao"},
		{"mixed", "  Linha DE\tProducao ", "linha de producao"},
		{"empty", "", ""},
		{"whitespace only", "   \t ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeKey(tt.input))
		})
	}
}

func TestNormalizeKeyCollisions(t *testing.T) {
	// the same label typed three ways must land on one key
	assert.Equal(t, NormalizeKey("Alfa"), NormalizeKey("alfa "))
	assert.Equal(t, NormalizeKey("Alfa"), NormalizeKey("ALFA"))
}

func TestTrimOptional(t *testing.T) {
	assert.Nil(t, TrimOptional(""))
	assert.Nil(t, TrimOptional("   "))

	got := TrimOptional("  nota  ")
	if assert.NotNil(t, got) {
		assert.Equal(t, "nota", *got)
	}
}
