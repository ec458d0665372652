package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// Factor score bounds for NR-17 assessments. Inputs outside the range are
// clamped; anything non-numeric falls back to FactorFallback.
const (
	FactorMin      = 1
	FactorMax      = 5
	FactorFallback = 2
)

// ErgonomicAssessment is an NR-17 workstation evaluation: one worker at one
// workstation, scored across eight ergonomic factors on a 1-5 scale.
type ErgonomicAssessment struct {
	ID                 string    `db:"id" json:"id"`
	OwnerID            string    `db:"owner_id" json:"owner_id"`
	CompanyID          string    `db:"company_id" json:"company_id"`
	SectorID           *string   `db:"sector_id" json:"sector_id,omitempty"`
	WorkerName         string    `db:"worker_name" json:"worker_name"`
	RoleName           string    `db:"role_name" json:"role_name"`
	Workstation        string    `db:"workstation" json:"workstation"`
	Posture            int       `db:"posture" json:"posture"`
	Repetitiveness     int       `db:"repetitiveness" json:"repetitiveness"`
	ForceEffort        int       `db:"force_effort" json:"force_effort"`
	LiftingLoad        int       `db:"lifting_load" json:"lifting_load"`
	PacePressure       int       `db:"pace_pressure" json:"pace_pressure"`
	BreakAdequacy      int       `db:"break_adequacy" json:"break_adequacy"`
	Environment        int       `db:"environment" json:"environment"`
	Organization       int       `db:"organization" json:"organization"`
	Notes              *string   `db:"notes" json:"notes,omitempty"`
	RecommendedActions *string   `db:"recommended_actions" json:"recommended_actions,omitempty"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
}

// Factors returns the eight factor scores in their fixed order
func (a *ErgonomicAssessment) Factors() [8]int {
	return [8]int{
		a.Posture,
		a.Repetitiveness,
		a.ForceEffort,
		a.LiftingLoad,
		a.PacePressure,
		a.BreakAdequacy,
		a.Environment,
		a.Organization,
	}
}

// Score returns the overall assessment score: the arithmetic mean of the
// eight factors rounded to one decimal. Factors all 3 score 3.0;
// {1,2,3,4,5,1,2,3} sums to 21, mean 2.625, score 2.6.
func (a *ErgonomicAssessment) Score() float64 {
	sum := 0
	for _, f := range a.Factors() {
		sum += f
	}
	return math.Round(float64(sum)/8*10) / 10
}

// Validate checks the assessment fields
func (a *ErgonomicAssessment) Validate() map[string]string {
	details := make(map[string]string)

	if a.CompanyID == "" {
		details["company_id"] = "this field is required"
	}
	if len(strings.TrimSpace(a.WorkerName)) < 2 {
		details["worker_name"] = "must be at least 2 characters"
	}
	if len(strings.TrimSpace(a.RoleName)) < 2 {
		details["role_name"] = "must be at least 2 characters"
	}
	if len(strings.TrimSpace(a.Workstation)) < 2 {
		details["workstation"] = "must be at least 2 characters"
	}

	return details
}

// Normalize trims text fields and clamps every factor into range. Factors
// arrive pre-clamped when decoded through FactorValue, but records built in
// code go through the same clamp.
func (a *ErgonomicAssessment) Normalize() {
	a.WorkerName = strings.TrimSpace(a.WorkerName)
	a.RoleName = strings.TrimSpace(a.RoleName)
	a.Workstation = strings.TrimSpace(a.Workstation)
	if a.Notes != nil {
		a.Notes = TrimOptional(*a.Notes)
	}
	if a.RecommendedActions != nil {
		a.RecommendedActions = TrimOptional(*a.RecommendedActions)
	}

	a.Posture = ClampFactor(a.Posture)
	a.Repetitiveness = ClampFactor(a.Repetitiveness)
	a.ForceEffort = ClampFactor(a.ForceEffort)
	a.LiftingLoad = ClampFactor(a.LiftingLoad)
	a.PacePressure = ClampFactor(a.PacePressure)
	a.BreakAdequacy = ClampFactor(a.BreakAdequacy)
	a.Environment = ClampFactor(a.Environment)
	a.Organization = ClampFactor(a.Organization)
}

// ClampFactor maps any numeric input to an integer factor score in
// [FactorMin, FactorMax].
func ClampFactor[T int | float64](v T) int {
	n := int(math.Round(float64(v)))
	if n < FactorMin {
		return FactorMin
	}
	if n > FactorMax {
		return FactorMax
	}
	return n
}

// ClampFactorValue maps an arbitrary decoded JSON value to a factor score.
// Numbers and numeric strings clamp into range; anything else falls back to
// FactorFallback.
func ClampFactorValue(v interface{}) int {
	switch value := v.(type) {
	case float64:
		return ClampFactor(value)
	case int:
		return ClampFactor(value)
	case json.Number:
		f, err := value.Float64()
		if err != nil {
			return FactorFallback
		}
		return ClampFactor(f)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return FactorFallback
		}
		return ClampFactor(f)
	default:
		return FactorFallback
	}
}

// FactorValue is a factor score that clamps itself while decoding, so forms
// posting "4", 4 or 4.0 all land on the same value and junk input degrades
// to the fallback instead of failing the request.
type FactorValue int

// UnmarshalJSON implements json.Unmarshaler
func (f *FactorValue) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		*f = FactorFallback
		return nil
	}
	*f = FactorValue(ClampFactorValue(raw))
	return nil
}

// Int returns the clamped score as a plain int
func (f FactorValue) Int() int {
	return int(f)
}
