package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/entryline/visitdesk/internal/domain"
	"github.com/entryline/visitdesk/internal/service"
)

func newAccessFixture(t *testing.T) (service.AccessService, *fakeVisitRepo, *fakeAccessLogRepo, *fakePublisher) {
	t.Helper()
	visits := newFakeVisitRepo()
	logs := newFakeAccessLogRepo()
	bus := &fakePublisher{}
	svc := service.NewAccessService(visits, logs, domain.DefaultAccessPolicies(), bus)
	return svc, visits, logs, bus
}

func seedActiveVisit(visits *fakeVisitRepo) *domain.Visit {
	return visits.add(domain.Visit{
		VisitorID:   1,
		HostName:    "Laura Mendez",
		Department:  "Ventas",
		Purpose:     "Quarterly review",
		Status:      domain.VisitActive,
		AccessAreas: []string{"Planta Baja"},
		CheckInAt:   time.Now().Add(-10 * time.Minute),
	})
}

func TestCheckAccessScenario(t *testing.T) {
	svc, visits, _, _ := newAccessFixture(t)
	v := seedActiveVisit(visits)

	cases := []struct {
		dept    string
		granted bool
		reason  string
	}{
		{"Ventas", true, domain.ReasonGranted},
		{"Planta Baja", true, domain.ReasonGranted},
		{"IT", false, domain.ReasonDenied},
		{"Reception", true, domain.ReasonGranted},
	}

	for _, tc := range cases {
		decision, err := svc.CheckAccess(context.Background(), v.ID, tc.dept)
		if err != nil {
			t.Fatalf("CheckAccess(%q): unexpected error %v", tc.dept, err)
		}
		if decision.AccessGranted != tc.granted {
			t.Errorf("CheckAccess(%q) granted = %v, want %v", tc.dept, decision.AccessGranted, tc.granted)
		}
		if decision.Reason != tc.reason {
			t.Errorf("CheckAccess(%q) reason = %q, want %q", tc.dept, decision.Reason, tc.reason)
		}
		if decision.Visit == nil {
			t.Fatalf("CheckAccess(%q): decision carries no visit", tc.dept)
		}
	}
}

func TestCheckAccessInactiveVisitDenied(t *testing.T) {
	svc, visits, _, _ := newAccessFixture(t)
	checkOut := time.Now()
	v := visits.add(domain.Visit{
		Department:  "Ventas",
		AccessAreas: []string{"Planta Baja"},
		Status:      domain.VisitCompleted,
		CheckInAt:   checkOut.Add(-time.Hour),
		CheckOutAt:  &checkOut,
	})

	for _, dept := range []string{"Ventas", "Reception", "Planta Baja"} {
		decision, err := svc.CheckAccess(context.Background(), v.ID, dept)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if decision.AccessGranted {
			t.Errorf("dept %q granted on a completed visit", dept)
		}
		if decision.Reason != domain.ReasonNotActive {
			t.Errorf("dept %q reason = %q, want %q", dept, decision.Reason, domain.ReasonNotActive)
		}
	}
}

func TestCheckAccessAppendsOneLogRowPerCall(t *testing.T) {
	svc, visits, logs, _ := newAccessFixture(t)
	v := seedActiveVisit(visits)

	// Repeated identical calls keep appending; decisions are not cached.
	for i := 1; i <= 5; i++ {
		if _, err := svc.CheckAccess(context.Background(), v.ID, "IT"); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
		if got := logs.countFor(v.ID); got != i {
			t.Fatalf("after %d calls log count = %d", i, got)
		}
	}
}

func TestCheckAccessMissingDepartmentFailsBeforeLookup(t *testing.T) {
	svc, visits, logs, _ := newAccessFixture(t)
	v := seedActiveVisit(visits)

	for _, dept := range []string{"", "   "} {
		_, err := svc.CheckAccess(context.Background(), v.ID, dept)
		if !errors.Is(err, service.ErrValidation) {
			t.Errorf("dept %q: err = %v, want ErrValidation", dept, err)
		}
	}
	if got := logs.countFor(v.ID); got != 0 {
		t.Errorf("validation failures wrote %d log rows, want 0", got)
	}
}

func TestCheckAccessUnknownVisitWritesNoLog(t *testing.T) {
	svc, _, logs, _ := newAccessFixture(t)

	_, err := svc.CheckAccess(context.Background(), 999, "Ventas")
	if !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if err.Error() != "Visit not found" {
		t.Errorf("message = %q, want %q", err.Error(), "Visit not found")
	}
	if got := logs.countFor(999); got != 0 {
		t.Errorf("missing visit wrote %d log rows, want 0", got)
	}
}

func TestCheckAccessSurvivesAuditWriteFailure(t *testing.T) {
	svc, visits, logs, _ := newAccessFixture(t)
	v := seedActiveVisit(visits)
	logs.appendErr = errors.New("disk full")

	decision, err := svc.CheckAccess(context.Background(), v.ID, "Ventas")
	if err != nil {
		t.Fatalf("audit failure leaked to caller: %v", err)
	}
	if !decision.AccessGranted {
		t.Error("decision should still be granted when the audit write fails")
	}
}

func TestCheckAccessPublishesOutcomeEvents(t *testing.T) {
	svc, visits, _, bus := newAccessFixture(t)
	v := seedActiveVisit(visits)

	if _, err := svc.CheckAccess(context.Background(), v.ID, "Ventas"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.CheckAccess(context.Background(), v.ID, "IT"); err != nil {
		t.Fatal(err)
	}

	if len(bus.subjects) != 2 || bus.subjects[0] != "access.granted" || bus.subjects[1] != "access.denied" {
		t.Errorf("published subjects = %v, want [access.granted access.denied]", bus.subjects)
	}
}

func TestListAccessLogsPagination(t *testing.T) {
	svc, visits, _, _ := newAccessFixture(t)
	v := seedActiveVisit(visits)

	for i := 0; i < 5; i++ {
		if _, err := svc.CheckAccess(context.Background(), v.ID, "IT"); err != nil {
			t.Fatal(err)
		}
	}

	entries, hasMore, err := svc.ListAccessLogs(context.Background(), v.ID, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 || !hasMore {
		t.Errorf("page 1: len=%d hasMore=%v, want 2 true", len(entries), hasMore)
	}

	entries, hasMore, err = svc.ListAccessLogs(context.Background(), v.ID, 3, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || hasMore {
		t.Errorf("page 3: len=%d hasMore=%v, want 1 false", len(entries), hasMore)
	}

	_, _, err = svc.ListAccessLogs(context.Background(), 999, 1, 2)
	if !errors.Is(err, service.ErrNotFound) {
		t.Errorf("unknown visit: err = %v, want ErrNotFound", err)
	}
}
