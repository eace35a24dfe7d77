package domain_test

import (
	"testing"

	"github.com/entryline/visitdesk/internal/domain"
)

func activeVisit(department string, areas ...string) *domain.Visit {
	return &domain.Visit{
		ID:          1,
		Department:  department,
		AccessAreas: areas,
		Status:      domain.VisitActive,
	}
}

func TestAuthorizeInactiveVisitAlwaysDenied(t *testing.T) {
	policies := domain.DefaultAccessPolicies()

	for _, status := range []domain.VisitStatus{domain.VisitCompleted, domain.VisitCancelled} {
		v := activeVisit("Ventas", "Planta Baja")
		v.Status = status

		// Even Reception and the visit's own department are denied.
		for _, dept := range []string{"Reception", "Ventas", "Planta Baja", "IT"} {
			granted, reason := domain.Authorize(v, dept, policies)
			if granted {
				t.Errorf("status=%s dept=%s: granted, want denied", status, dept)
			}
			if reason != domain.ReasonNotActive {
				t.Errorf("status=%s dept=%s: reason=%q, want %q", status, dept, reason, domain.ReasonNotActive)
			}
		}
	}
}

func TestAuthorizeReceptionBypassesMembership(t *testing.T) {
	policies := domain.DefaultAccessPolicies()
	v := activeVisit("Ventas", "Planta Baja") // Reception nowhere in sight

	granted, reason := domain.Authorize(v, "Reception", policies)
	if !granted {
		t.Fatal("Reception should be reachable by any active visit")
	}
	if reason != domain.ReasonGranted {
		t.Errorf("reason = %q, want %q", reason, domain.ReasonGranted)
	}
}

func TestAuthorizeMembershipRules(t *testing.T) {
	policies := domain.DefaultAccessPolicies()

	cases := []struct {
		name    string
		dept    string
		granted bool
		reason  string
	}{
		{"primary department", "Ventas", true, domain.ReasonGranted},
		{"authorized area", "Planta Baja", true, domain.ReasonGranted},
		{"reception bypass", "Reception", true, domain.ReasonGranted},
		{"unknown department", "IT", false, domain.ReasonDenied},
		{"case sensitive", "ventas", false, domain.ReasonDenied},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := activeVisit("Ventas", "Planta Baja")
			granted, reason := domain.Authorize(v, tc.dept, policies)
			if granted != tc.granted {
				t.Errorf("granted = %v, want %v", granted, tc.granted)
			}
			if reason != tc.reason {
				t.Errorf("reason = %q, want %q", reason, tc.reason)
			}
		})
	}
}

func TestNewAccessPoliciesConfigurableUniversalAreas(t *testing.T) {
	policies := domain.NewAccessPolicies([]string{"Reception", "Lobby"})

	if policies.For("Lobby") != domain.AlwaysAllowed {
		t.Error("Lobby should be AlwaysAllowed")
	}
	if policies.For("Reception") != domain.AlwaysAllowed {
		t.Error("Reception should be AlwaysAllowed")
	}
	if policies.For("IT") != domain.RequiresMembership {
		t.Error("unlisted areas should require membership")
	}

	v := activeVisit("Ventas")
	if granted, _ := domain.Authorize(v, "Lobby", policies); !granted {
		t.Error("configured universal area should be granted to any active visit")
	}
}
