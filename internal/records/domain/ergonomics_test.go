package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClampFactor(t *testing.T) {
	assert.Equal(t, 1, ClampFactor(0))
	assert.Equal(t, 1, ClampFactor(-3))
	assert.Equal(t, 5, ClampFactor(9))
	assert.Equal(t, 3, ClampFactor(3))
	assert.Equal(t, 4, ClampFactor(4.2))
	assert.Equal(t, 5, ClampFactor(4.6))
}

func TestClampFactorValue(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		want  int
	}{
		{"int", 4, 4},
		{"float", 4.0, 4},
		{"numeric string", "4", 4},
		{"numeric string with spaces", " 4 ", 4},
		{"float string", "3.7", 4},
		{"above range", 12, 5},
		{"below range", "0", 1},
		{"junk string", "high", FactorFallback},
		{"nil", nil, FactorFallback},
		{"bool", true, FactorFallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampFactorValue(tt.input))
		})
	}
}

func TestFactorValueUnmarshal(t *testing.T) {
	var payload struct {
		Posture FactorValue `json:"posture"`
	}

	// number, numeric string and float all land on the same score
	for _, raw := range []string{`{"posture": 4}`, `{"posture": "4"}`, `{"posture": 4.0}`} {
		require.NoError(t, json.Unmarshal([]byte(raw), &payload))
		assert.Equal(t, 4, payload.Posture.Int(), "input %s", raw)
	}

	// junk degrades to the fallback instead of failing the decode
	require.NoError(t, json.Unmarshal([]byte(`{"posture": "muito alto"}`), &payload))
	assert.Equal(t, FactorFallback, payload.Posture.Int())

	require.NoError(t, json.Unmarshal([]byte(`{"posture": null}`), &payload))
	assert.Equal(t, FactorFallback, payload.Posture.Int())
}

func TestScore(t *testing.T) {
	a := &ErgonomicAssessment{
		Posture:        1,
		Repetitiveness: 2,
		ForceEffort:    3,
		LiftingLoad:    4,
		PacePressure:   5,
		BreakAdequacy:  1,
		Environment:    2,
		Organization:   3,
	}
	// sum 21, mean 2.625, rounded to one decimal
	assert.Equal(t, 2.6, a.Score())

	all3 := &ErgonomicAssessment{
		Posture: 3, Repetitiveness: 3, ForceEffort: 3, LiftingLoad: 3,
		PacePressure: 3, BreakAdequacy: 3, Environment: 3, Organization: 3,
	}
	assert.Equal(t, 3.0, all3.Score())
}

func TestErgonomicAssessmentValidate(t *testing.T) {
	a := &ErgonomicAssessment{
		CompanyID:   "company-1",
		WorkerName:  "Maria Souza",
		RoleName:    "Operadora",
		Workstation: "Linha 2",
	}
	assert.Empty(t, a.Validate())

	missing := &ErgonomicAssessment{WorkerName: "M"}
	details := missing.Validate()
	assert.Contains(t, details, "company_id")
	assert.Contains(t, details, "worker_name")
	assert.Contains(t, details, "role_name")
	assert.Contains(t, details, "workstation")
}

func TestErgonomicAssessmentNormalize(t *testing.T) {
	notes := "  obs  "
	a := &ErgonomicAssessment{
		WorkerName:  "  Maria  ",
		RoleName:    " Operadora ",
		Workstation: " Linha 2 ",
		Posture:     9,
		Environment: 0,
		Notes:       &notes,
	}
	a.Normalize()

	assert.Equal(t, "Maria", a.WorkerName)
	assert.Equal(t, 5, a.Posture)
	assert.Equal(t, 1, a.Environment)
	require.NotNil(t, a.Notes)
	assert.Equal(t, "obs", *a.Notes)
}
