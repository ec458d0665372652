package domain

import (
	"strings"
	"time"
)

// Sector is a work area or role grouping inside a company. The optional role
// label distinguishes functions within the same physical sector.
type Sector struct {
	ID         string    `db:"id" json:"id"`
	OwnerID    string    `db:"owner_id" json:"owner_id"`
	CompanyID  string    `db:"company_id" json:"company_id"`
	SectorName string    `db:"sector_name" json:"sector_name"`
	RoleName   *string   `db:"role_name" json:"role_name,omitempty"`
	Note       *string   `db:"note" json:"note,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// Key returns the duplicate-check key: sectors are unique per owner by the
// (company, sector label, role label) triple, case and whitespace
// insensitive.
func (s *Sector) Key() string {
	role := ""
	if s.RoleName != nil {
		role = *s.RoleName
	}
	return s.CompanyID + "|" + NormalizeKey(s.SectorName) + "|" + NormalizeKey(role)
}

// Validate checks the sector fields
func (s *Sector) Validate() map[string]string {
	details := make(map[string]string)

	if s.CompanyID == "" {
		details["company_id"] = "this field is required"
	}
	if strings.TrimSpace(s.SectorName) == "" {
		details["sector_name"] = "this field is required"
	}

	return details
}

// Normalize trims the fields for storage
func (s *Sector) Normalize() {
	s.SectorName = strings.TrimSpace(s.SectorName)
	if s.RoleName != nil {
		s.RoleName = TrimOptional(*s.RoleName)
	}
	if s.Note != nil {
		s.Note = TrimOptional(*s.Note)
	}
}
