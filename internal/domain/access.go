package domain

import "time"

// Decision reasons exposed to callers and persisted on every log row.
const (
	ReasonGranted   = "Access granted"
	ReasonNotActive = "Visit is not active"
	ReasonDenied    = "Department not in allowed areas"
)

// AccessPolicy tags how an area is authorized. Universal-entry areas
// (the front door) are modeled explicitly instead of as a string
// comparison buried in the decision path.
type AccessPolicy int

const (
	RequiresMembership AccessPolicy = iota
	AlwaysAllowed
)

// AccessPolicies maps area names to their policy. Unknown areas
// require membership.
type AccessPolicies map[string]AccessPolicy

// DefaultAccessPolicies marks Reception as reachable by any active visit.
func DefaultAccessPolicies() AccessPolicies {
	return AccessPolicies{"Reception": AlwaysAllowed}
}

func NewAccessPolicies(universalAreas []string) AccessPolicies {
	p := make(AccessPolicies, len(universalAreas))
	for _, area := range universalAreas {
		p[area] = AlwaysAllowed
	}
	return p
}

func (p AccessPolicies) For(area string) AccessPolicy {
	return p[area]
}

// Authorize decides whether a visit may enter a department.
// Rules are evaluated in order; first match wins.
func Authorize(v *Visit, department string, policies AccessPolicies) (granted bool, reason string) {
	if v.Status != VisitActive {
		return false, ReasonNotActive
	}
	if policies.For(department) == AlwaysAllowed {
		return true, ReasonGranted
	}
	if department == v.Department {
		return true, ReasonGranted
	}
	for _, area := range v.AccessAreas {
		if area == department {
			return true, ReasonGranted
		}
	}
	return false, ReasonDenied
}

// AccessLogEntry is one immutable audit row. Every decision appends
// exactly one entry; entries are never updated or deleted.
type AccessLogEntry struct {
	ID            int64     `json:"id"`
	VisitID       int64     `json:"visitId"`
	Department    string    `json:"department"`
	AccessTime    time.Time `json:"accessTime"`
	AccessGranted bool      `json:"accessGranted"`
	Reason        string    `json:"reason"`
	CreatedAt     time.Time `json:"createdAt"`
}

// AccessDecision is the access-check response payload.
type AccessDecision struct {
	AccessGranted bool      `json:"accessGranted"`
	Reason        string    `json:"reason"`
	Visit         *VisitDTO `json:"visit"`
}
