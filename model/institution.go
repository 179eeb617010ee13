package model

import "time"

// DefaultInstitutionLogo is applied when an institution is created without a logo.
const DefaultInstitutionLogo = "/generic-institution-logo.png"

// Institution represents an educational institution registered on the platform.
type Institution struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Website   string    `json:"website,omitempty"`
	Address   string    `json:"address"`
	LogoURL   string    `json:"logoUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// InstitutionPatch carries a partial update. Nil fields are left untouched.
type InstitutionPatch struct {
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Website *string `json:"website,omitempty"`
	Address *string `json:"address,omitempty"`
	LogoURL *string `json:"logoUrl,omitempty"`
}

// Apply merges the patch into the institution, field by field.
func (p InstitutionPatch) Apply(inst *Institution) {
	if p.Name != nil {
		inst.Name = *p.Name
	}
	if p.Email != nil {
		inst.Email = *p.Email
	}
	if p.Phone != nil {
		inst.Phone = *p.Phone
	}
	if p.Website != nil {
		inst.Website = *p.Website
	}
	if p.Address != nil {
		inst.Address = *p.Address
	}
	if p.LogoURL != nil {
		inst.LogoURL = *p.LogoURL
	}
}
