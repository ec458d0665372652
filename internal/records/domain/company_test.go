package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompanyKey(t *testing.T) {
	a := &Company{Name: "Alfa"}
	b := &Company{Name: "alfa "}
	c := &Company{Name: "ALFA"}

	assert.Equal(t, a.Key(), b.Key())
	assert.Equal(t, a.Key(), c.Key())

	d := &Company{Name: "Beta"}
	assert.NotEqual(t, a.Key(), d.Key())
}

func TestCompanyValidate(t *testing.T) {
	valid := &Company{Name: "Metalurgica Alfa"}
	assert.Empty(t, valid.Validate())

	short := &Company{Name: " a "}
	assert.Contains(t, short.Validate(), "name")

	state := "XYZ"
	badState := &Company{Name: "Alfa", State: &state}
	assert.Contains(t, badState.Validate(), "state")

	sp := "sp"
	okState := &Company{Name: "Alfa", State: &sp}
	assert.Empty(t, okState.Validate())
}

func TestCompanyNormalize(t *testing.T) {
	state := " sp "
	cnpj := "  12.345.678/0001-90  "
	empty := "   "

	c := &Company{
		Name:  "  Metalurgica Alfa  ",
		State: &state,
		CNPJ:  &cnpj,
		City:  &empty,
	}
	c.Normalize()

	assert.Equal(t, "Metalurgica Alfa", c.Name)
	require.NotNil(t, c.State)
	assert.Equal(t, "SP", *c.State)
	require.NotNil(t, c.CNPJ)
	assert.Equal(t, "12.345.678/0001-90", *c.CNPJ)
	assert.Nil(t, c.City)
}

func TestSectorKey(t *testing.T) {
	role := "Operador"
	roleVariant := " OPERADOR "
	a := &Sector{CompanyID: "c1", SectorName: "Producao", RoleName: &role}
	b := &Sector{CompanyID: "c1", SectorName: " producao", RoleName: &roleVariant}
	assert.Equal(t, a.Key(), b.Key())

	// same labels under another company are a different key
	c := &Sector{CompanyID: "c2", SectorName: "Producao", RoleName: &role}
	assert.NotEqual(t, a.Key(), c.Key())

	// no role and empty role collapse to the same key
	emptyRole := ""
	d := &Sector{CompanyID: "c1", SectorName: "Producao"}
	e := &Sector{CompanyID: "c1", SectorName: "Producao", RoleName: &emptyRole}
	assert.Equal(t, d.Key(), e.Key())
}

func TestRiskLevel(t *testing.T) {
	r := &Risk{Probability: 4, Severity: 5}
	assert.Equal(t, 20, r.Level())
}

func TestRiskValidate(t *testing.T) {
	valid := &Risk{
		CompanyID:       "c1",
		Hazard:          "Ruido",
		RiskDescription: "Exposicao continua acima do limite",
		Probability:     3,
		Severity:        4,
	}
	assert.Empty(t, valid.Validate())

	invalid := &Risk{Probability: 0, Severity: 6}
	details := invalid.Validate()
	assert.Contains(t, details, "company_id")
	assert.Contains(t, details, "hazard")
	assert.Contains(t, details, "risk_description")
	assert.Contains(t, details, "probability")
	assert.Contains(t, details, "severity")
}
