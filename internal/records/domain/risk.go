package domain

import (
	"strings"
	"time"
)

// Risk is a PGR (NR-01) risk inventory entry: a hazard source observed at a
// company, optionally pinned to one of its sectors, graded by probability
// and severity on a 1-5 scale.
type Risk struct {
	ID                 string    `db:"id" json:"id"`
	OwnerID            string    `db:"owner_id" json:"owner_id"`
	CompanyID          string    `db:"company_id" json:"company_id"`
	SectorID           *string   `db:"sector_id" json:"sector_id,omitempty"`
	Hazard             string    `db:"hazard" json:"hazard"`
	RiskDescription    string    `db:"risk_description" json:"risk_description"`
	RiskType           *string   `db:"risk_type" json:"risk_type,omitempty"`
	ExistingControls   *string   `db:"existing_controls" json:"existing_controls,omitempty"`
	RecommendedActions *string   `db:"recommended_actions" json:"recommended_actions,omitempty"`
	Probability        int       `db:"probability" json:"probability"`
	Severity           int       `db:"severity" json:"severity"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
}

// Level returns probability x severity, the usual PGR ranking value.
func (r *Risk) Level() int {
	return r.Probability * r.Severity
}

// Validate checks the risk fields
func (r *Risk) Validate() map[string]string {
	details := make(map[string]string)

	if r.CompanyID == "" {
		details["company_id"] = "this field is required"
	}
	if strings.TrimSpace(r.Hazard) == "" {
		details["hazard"] = "this field is required"
	}
	if strings.TrimSpace(r.RiskDescription) == "" {
		details["risk_description"] = "this field is required"
	}
	if r.Probability < 1 || r.Probability > 5 {
		details["probability"] = "must be between 1 and 5"
	}
	if r.Severity < 1 || r.Severity > 5 {
		details["severity"] = "must be between 1 and 5"
	}

	return details
}

// Normalize trims the fields for storage
func (r *Risk) Normalize() {
	r.Hazard = strings.TrimSpace(r.Hazard)
	r.RiskDescription = strings.TrimSpace(r.RiskDescription)
	if r.RiskType != nil {
		r.RiskType = TrimOptional(*r.RiskType)
	}
	if r.ExistingControls != nil {
		r.ExistingControls = TrimOptional(*r.ExistingControls)
	}
	if r.RecommendedActions != nil {
		r.RecommendedActions = TrimOptional(*r.RecommendedActions)
	}
}
