//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const maxAddressLen = 255

// Property is a homeowner-registered property that damage reports attach to.
type Property struct {
	ID         string    `json:"id"          db:"id"`
	OwnerID    string    `json:"owner_id"    db:"owner_id"`
	Address    string    `json:"address"     db:"address"`
	City       string    `json:"city"        db:"city"`
	State      string    `json:"state"       db:"state"`
	PostalCode string    `json:"postal_code" db:"postal_code"`
	YearBuilt  *int      `json:"year_built,omitempty" db:"year_built"`
	CreatedAt  time.Time `json:"created_at"  db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"  db:"updated_at"`
}

// PropertiesListOptions controls paging and filtering for listing properties.
// Q matches address via ILIKE substring; OwnerID matches exactly.
type PropertiesListOptions struct {
	Limit   int
	Offset  int
	OwnerID *string
	Q       *string
	Sort    string // allowed: "created_at", "address"
	Dir     string // allowed: "asc", "desc"
}

// CreatePropertyRequest represents parameters to register a Property.
type CreatePropertyRequest struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	YearBuilt  *int   `json:"year_built,omitempty"`
}

// UpdatePropertyRequest represents parameters to update a Property.
type UpdatePropertyRequest struct {
	Address    *string `json:"address,omitempty"`
	City       *string `json:"city,omitempty"`
	State      *string `json:"state,omitempty"`
	PostalCode *string `json:"postal_code,omitempty"`
	YearBuilt  *int    `json:"year_built,omitempty"`
}

// Validate validates CreatePropertyRequest.
func (r *CreatePropertyRequest) Validate() error {
	address := strings.TrimSpace(r.Address)
	if address == "" {
		return errors.New("address is required and cannot be empty")
	}
	if utf8.RuneCountInString(address) > maxAddressLen {
		return errors.New("address cannot exceed 255 characters")
	}
	if strings.TrimSpace(r.City) == "" {
		return errors.New("city is required")
	}
	if strings.TrimSpace(r.State) == "" {
		return errors.New("state is required")
	}
	if strings.TrimSpace(r.PostalCode) == "" {
		return errors.New("postal_code is required")
	}
	if r.YearBuilt != nil && (*r.YearBuilt < 1800 || *r.YearBuilt > time.Now().Year()+1) {
		return errors.New("year_built is out of range")
	}
	return nil
}

// Validate validates UpdatePropertyRequest.
func (r *UpdatePropertyRequest) Validate() error {
	if r.Address != nil {
		address := strings.TrimSpace(*r.Address)
		if address == "" {
			return errors.New("address cannot be empty")
		}
		if utf8.RuneCountInString(address) > maxAddressLen {
			return errors.New("address cannot exceed 255 characters")
		}
	}
	if r.City != nil && strings.TrimSpace(*r.City) == "" {
		return errors.New("city cannot be empty")
	}
	if r.State != nil && strings.TrimSpace(*r.State) == "" {
		return errors.New("state cannot be empty")
	}
	if r.PostalCode != nil && strings.TrimSpace(*r.PostalCode) == "" {
		return errors.New("postal_code cannot be empty")
	}
	if r.YearBuilt != nil && (*r.YearBuilt < 1800 || *r.YearBuilt > time.Now().Year()+1) {
		return errors.New("year_built is out of range")
	}
	return nil
}

// HasUpdates reports whether any field is set in UpdatePropertyRequest.
func (r *UpdatePropertyRequest) HasUpdates() bool {
	return r.Address != nil || r.City != nil || r.State != nil || r.PostalCode != nil || r.YearBuilt != nil
}
