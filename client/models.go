// Package client models the counterparties the office invoices.
package client

import (
	"slices"
	"time"

	"github.com/xraph/daftar/id"
	"github.com/xraph/daftar/types"
)

// Type distinguishes natural persons from registered establishments.
type Type string

const (
	TypeIndividual Type = "individual"
	TypeFacility   Type = "facility"
)

// Valid reports whether t is a known client type.
func (t Type) Valid() bool { return t == TypeIndividual || t == TypeFacility }

// RegistrationType records whether an individual dealt with the office
// directly or through an agent.
type RegistrationType string

const (
	RegistrationDirect RegistrationType = "direct"
	RegistrationAgent  RegistrationType = "agent"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// DirectInfo holds the identity details of an individual client.
type DirectInfo struct {
	IDNumber  string     `json:"id_number"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	Gender    Gender     `json:"gender,omitempty"`
}

// Age returns the completed years between BirthDate and asOf, or 0 when the
// birth date is unknown.
func (d DirectInfo) Age(asOf time.Time) int {
	if d.BirthDate == nil {
		return 0
	}
	b := *d.BirthDate
	years := asOf.Year() - b.Year()
	if asOf.YearDay() < b.YearDay() {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

// Agent acts on behalf of an individual client.
type Agent struct {
	Name         string `json:"name"`
	IDNumber     string `json:"id_number"`
	Phone        string `json:"phone,omitempty"`
	AgencyNumber string `json:"agency_number,omitempty"`
}

// AuthorizedPerson signs for a facility.
type AuthorizedPerson struct {
	Name     string `json:"name"`
	IDNumber string `json:"id_number,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Gender   Gender `json:"gender,omitempty"`
	Title    string `json:"title,omitempty"`
}

// FacilityInfo holds the registration of a facility client.
type FacilityInfo struct {
	CommercialRegister string            `json:"commercial_register"`
	RegisterExpiry     *time.Time        `json:"register_expiry,omitempty"`
	VATNumber          string            `json:"vat_number,omitempty"`
	AuthorizedPerson   *AuthorizedPerson `json:"authorized_person,omitempty"`
}

// Client is a customer of the office. Individuals carry DirectInfo and
// optionally an Agent; facilities carry FacilityInfo. The two are exclusive.
type Client struct {
	types.Entity
	ID               id.ClientID      `json:"id"`
	Name             string           `json:"name"`
	Email            string           `json:"email,omitempty"`
	Phone            string           `json:"phone,omitempty"`
	Address          string           `json:"address,omitempty"`
	Type             Type             `json:"type"`
	RegistrationType RegistrationType `json:"registration_type,omitempty"`
	DirectInfo       *DirectInfo      `json:"direct_info,omitempty"`
	Agent            *Agent           `json:"agent,omitempty"`
	FacilityInfo     *FacilityInfo    `json:"facility_info,omitempty"`
	Projects         []id.ProjectID   `json:"projects,omitempty"`
	Notes            string           `json:"notes,omitempty"`
}

// VATNumber returns the facility VAT registration number, or "".
func (c *Client) VATNumber() string {
	if c.FacilityInfo == nil {
		return ""
	}
	return c.FacilityInfo.VATNumber
}

// AddProject appends pid to Projects unless it is already present.
func (c *Client) AddProject(pid id.ProjectID) {
	if !slices.Contains(c.Projects, pid) {
		c.Projects = append(c.Projects, pid)
	}
}

// RemoveProject drops pid from Projects.
func (c *Client) RemoveProject(pid id.ProjectID) {
	c.Projects = slices.DeleteFunc(c.Projects, func(p id.ProjectID) bool { return p == pid })
}

// Clone returns a deep copy of c.
func (c *Client) Clone() *Client {
	out := *c
	out.Projects = slices.Clone(c.Projects)
	if c.DirectInfo != nil {
		d := *c.DirectInfo
		d.BirthDate = cloneTime(c.DirectInfo.BirthDate)
		out.DirectInfo = &d
	}
	if c.Agent != nil {
		a := *c.Agent
		out.Agent = &a
	}
	if c.FacilityInfo != nil {
		f := *c.FacilityInfo
		f.RegisterExpiry = cloneTime(c.FacilityInfo.RegisterExpiry)
		if c.FacilityInfo.AuthorizedPerson != nil {
			p := *c.FacilityInfo.AuthorizedPerson
			f.AuthorizedPerson = &p
		}
		out.FacilityInfo = &f
	}
	return &out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
