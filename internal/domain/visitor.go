package domain

import (
	"strings"
	"time"
)

// Visitor is one physical person, keyed by their document number.
// Repeat visits reuse the same row; only the photo references are
// refreshed on re-registration.
type Visitor struct {
	ID             int64     `json:"id"`
	DocumentNumber string    `json:"documentNumber"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Email          string    `json:"email,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	Company        string    `json:"company,omitempty"`
	PhotoPath      string    `json:"photoPath,omitempty"`
	IDPhotoPath    string    `json:"idPhotoPath,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (v *Visitor) FullName() string {
	return strings.TrimSpace(v.FirstName + " " + v.LastName)
}

// RegisterVisitReq carries everything the front desk captures at check-in.
type RegisterVisitReq struct {
	DocumentNumber string   `json:"documentNumber"`
	FirstName      string   `json:"firstName"`
	LastName       string   `json:"lastName"`
	Email          string   `json:"email"`
	Phone          string   `json:"phone"`
	Company        string   `json:"company"`
	PhotoPath      string   `json:"photoPath"`
	IDPhotoPath    string   `json:"idPhotoPath"`
	HostName       string   `json:"hostName"`
	Department     string   `json:"department"`
	Purpose        string   `json:"purpose"`
	AccessAreas    []string `json:"accessAreas"`
}

// Validate reports the first missing required field.
func (r *RegisterVisitReq) Validate() string {
	switch {
	case strings.TrimSpace(r.DocumentNumber) == "":
		return "Document number is required"
	case strings.TrimSpace(r.FirstName) == "":
		return "First name is required"
	case strings.TrimSpace(r.LastName) == "":
		return "Last name is required"
	case strings.TrimSpace(r.HostName) == "":
		return "Host name is required"
	case strings.TrimSpace(r.Department) == "":
		return "Department is required"
	case strings.TrimSpace(r.Purpose) == "":
		return "Purpose is required"
	}
	return ""
}
