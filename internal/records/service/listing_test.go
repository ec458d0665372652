package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/riskintel/riskintel-backend/internal/records/domain"
)

func TestMatchesAny(t *testing.T) {
	query := domain.NormalizeKey("  LINHA ")

	assert.True(t, matchesAny(query, "Linha de Producao", ""))
	assert.True(t, matchesAny(query, "", "primeira linha"))
	assert.False(t, matchesAny(query, "Logistica", "Manutencao"))
	assert.False(t, matchesAny(query))
}

func TestSortByTextTieBreak(t *testing.T) {
	type record struct{ city, name string }
	items := []*record{
		{"Campinas", "Gama"},
		{"Campinas", "Alfa"},
		{"Aracaju", "Beta"},
	}

	sortByText(items,
		func(r *record) string { return r.city },
		func(r *record) string { return r.name },
	)

	assert.Equal(t, "Beta", items[0].name)
	assert.Equal(t, "Alfa", items[1].name)
	assert.Equal(t, "Gama", items[2].name)
}

func TestSortByValueDesc(t *testing.T) {
	type record struct {
		level float64
		name  string
	}
	items := []*record{
		{6, "Ruido"},
		{20, "Queda"},
		{6, "Corte"},
	}

	sortByValueDesc(items,
		func(r *record) float64 { return r.level },
		func(r *record) string { return r.name },
	)

	assert.Equal(t, "Queda", items[0].name)
	// equal levels fall back to alphabetical order
	assert.Equal(t, "Corte", items[1].name)
	assert.Equal(t, "Ruido", items[2].name)
}

func TestFilterRecordsPreservesOrder(t *testing.T) {
	items := []*int{ptr(1), ptr(2), ptr(3), ptr(4)}
	kept := filterRecords(items, func(v *int) bool { return *v%2 == 0 })

	assert.Len(t, kept, 2)
	assert.Equal(t, 2, *kept[0])
	assert.Equal(t, 4, *kept[1])
}

func ptr(v int) *int { return &v }
