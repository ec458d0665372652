package domain

import (
	"strings"
	"time"
	"unicode"
)

// Company is a registered employer whose workplaces are being assessed.
// Every row belongs to the user who created it; owner scoping happens in the
// repository layer and the owner is never rewritten on update.
type Company struct {
	ID        string    `db:"id" json:"id"`
	OwnerID   string    `db:"owner_id" json:"owner_id"`
	Name      string    `db:"name" json:"name"`
	CNPJ      *string   `db:"cnpj" json:"cnpj,omitempty"`
	City      *string   `db:"city" json:"city,omitempty"`
	State     *string   `db:"state" json:"state,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Key returns the duplicate-check key: companies are unique per owner by
// normalized name.
func (c *Company) Key() string {
	return NormalizeKey(c.Name)
}

// Validate checks the company fields, returning a field → message map for
// anything wrong. An empty map means the record is saveable.
func (c *Company) Validate() map[string]string {
	details := make(map[string]string)

	if len(strings.TrimSpace(c.Name)) < 2 {
		details["name"] = "must be at least 2 characters"
	}

	if c.State != nil {
		state := strings.TrimSpace(*c.State)
		if state != "" && !isRegionCode(state) {
			details["state"] = "must be a 2-letter region code"
		}
	}

	return details
}

// Normalize trims the fields for storage. The region code is uppercased the
// way the form did it.
func (c *Company) Normalize() {
	c.Name = strings.TrimSpace(c.Name)
	if c.CNPJ != nil {
		c.CNPJ = TrimOptional(*c.CNPJ)
	}
	if c.City != nil {
		c.City = TrimOptional(*c.City)
	}
	if c.State != nil {
		if state := TrimOptional(*c.State); state != nil {
			upper := strings.ToUpper(*state)
			c.State = &upper
		} else {
			c.State = nil
		}
	}
}

func isRegionCode(s string) bool {
	if len(s) != 2 {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
