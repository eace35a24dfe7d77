package service_test

import (
	"context"
	"sync"
	"time"

	"github.com/entryline/visitdesk/internal/domain"
)

// ---------- Fakes ----------

type fakeVisitRepo struct {
	mu     sync.Mutex
	nextID int64
	visits map[int64]*domain.Visit
	getErr error
}

func newFakeVisitRepo() *fakeVisitRepo {
	return &fakeVisitRepo{nextID: 1, visits: make(map[int64]*domain.Visit)}
}

func (f *fakeVisitRepo) add(v domain.Visit) *domain.Visit {
	f.mu.Lock()
	defer f.mu.Unlock()
	v.ID = f.nextID
	f.nextID++
	stored := v
	f.visits[stored.ID] = &stored
	return &stored
}

func copyVisit(v *domain.Visit) *domain.Visit {
	if v == nil {
		return nil
	}
	out := *v
	if v.CheckOutAt != nil {
		t := *v.CheckOutAt
		out.CheckOutAt = &t
	}
	out.AccessAreas = append([]string(nil), v.AccessAreas...)
	return &out
}

func (f *fakeVisitRepo) GetByID(_ context.Context, id int64) (*domain.Visit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	return copyVisit(f.visits[id]), nil
}

func (f *fakeVisitRepo) GetByBadgeToken(_ context.Context, token string) (*domain.Visit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, v := range f.visits {
		if v.BadgeToken == token {
			return copyVisit(v), nil
		}
	}
	return nil, nil
}

func (f *fakeVisitRepo) List(_ context.Context, limit, offset int, status *domain.VisitStatus) ([]domain.Visit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Visit
	for _, v := range f.visits {
		if status != nil && v.Status != *status {
			continue
		}
		out = append(out, *copyVisit(v))
	}
	return out, nil
}

func (f *fakeVisitRepo) CheckOut(_ context.Context, id int64) (*domain.Visit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.visits[id]
	if !ok || v.Status != domain.VisitActive {
		return nil, nil
	}
	now := time.Now()
	v.Status = domain.VisitCompleted
	v.CheckOutAt = &now
	v.UpdatedAt = now
	return copyVisit(v), nil
}

func (f *fakeVisitRepo) SetStickerPrinted(_ context.Context, id int64, printed bool) (*domain.Visit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.visits[id]
	if !ok {
		return nil, nil
	}
	v.StickerPrinted = printed
	v.UpdatedAt = time.Now()
	return copyVisit(v), nil
}

type fakeAccessLogRepo struct {
	mu        sync.Mutex
	nextID    int64
	entries   []domain.AccessLogEntry
	appendErr error
}

func newFakeAccessLogRepo() *fakeAccessLogRepo {
	return &fakeAccessLogRepo{nextID: 1}
}

func (f *fakeAccessLogRepo) Append(_ context.Context, visitID int64, department string, granted bool, reason string) (*domain.AccessLogEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendErr != nil {
		return nil, f.appendErr
	}
	e := domain.AccessLogEntry{
		ID:            f.nextID,
		VisitID:       visitID,
		Department:    department,
		AccessTime:    time.Now(),
		AccessGranted: granted,
		Reason:        reason,
		CreatedAt:     time.Now(),
	}
	f.nextID++
	f.entries = append(f.entries, e)
	return &e, nil
}

func (f *fakeAccessLogRepo) ListByVisit(_ context.Context, visitID int64, limit, offset int) ([]domain.AccessLogEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []domain.AccessLogEntry
	// Newest first.
	for i := len(f.entries) - 1; i >= 0; i-- {
		if f.entries[i].VisitID == visitID {
			matched = append(matched, f.entries[i])
		}
	}
	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (f *fakeAccessLogRepo) countFor(visitID int64) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, e := range f.entries {
		if e.VisitID == visitID {
			n++
		}
	}
	return n
}

type fakeVisitorRepo struct {
	mu       sync.Mutex
	visitors map[int64]*domain.Visitor
}

func newFakeVisitorRepo() *fakeVisitorRepo {
	return &fakeVisitorRepo{visitors: make(map[int64]*domain.Visitor)}
}

func (f *fakeVisitorRepo) GetByID(_ context.Context, id int64) (*domain.Visitor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if v, ok := f.visitors[id]; ok {
		out := *v
		return &out, nil
	}
	return nil, nil
}

func (f *fakeVisitorRepo) GetByDocument(_ context.Context, doc string) (*domain.Visitor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, v := range f.visitors {
		if v.DocumentNumber == doc {
			out := *v
			return &out, nil
		}
	}
	return nil, nil
}

// fakeRegistrationRepo mirrors the transactional upsert semantics:
// new document numbers create visitors, known ones refresh photos only.
type fakeRegistrationRepo struct {
	mu            sync.Mutex
	nextVisitorID int64
	nextVisitID   int64
	visitors      map[string]*domain.Visitor // by document number
	visits        map[int64]*domain.Visit
	err           error
}

func newFakeRegistrationRepo() *fakeRegistrationRepo {
	return &fakeRegistrationRepo{
		nextVisitorID: 1,
		nextVisitID:   1,
		visitors:      make(map[string]*domain.Visitor),
		visits:        make(map[int64]*domain.Visit),
	}
}

func (f *fakeRegistrationRepo) RegisterVisit(_ context.Context, req *domain.RegisterVisitReq, badgeToken string) (*domain.Visitor, *domain.Visit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, nil, f.err
	}

	visitor, ok := f.visitors[req.DocumentNumber]
	if !ok {
		visitor = &domain.Visitor{
			ID:             f.nextVisitorID,
			DocumentNumber: req.DocumentNumber,
			FirstName:      req.FirstName,
			LastName:       req.LastName,
			Email:          req.Email,
			Phone:          req.Phone,
			Company:        req.Company,
			PhotoPath:      req.PhotoPath,
			IDPhotoPath:    req.IDPhotoPath,
			CreatedAt:      time.Now(),
			UpdatedAt:      time.Now(),
		}
		f.nextVisitorID++
		f.visitors[req.DocumentNumber] = visitor
	} else {
		visitor.PhotoPath = req.PhotoPath
		visitor.IDPhotoPath = req.IDPhotoPath
		visitor.UpdatedAt = time.Now()
	}

	visit := &domain.Visit{
		ID:          f.nextVisitID,
		VisitorID:   visitor.ID,
		HostName:    req.HostName,
		Department:  req.Department,
		Purpose:     req.Purpose,
		Status:      domain.VisitActive,
		AccessAreas: append([]string(nil), req.AccessAreas...),
		CheckInAt:   time.Now(),
		BadgeToken:  badgeToken,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	f.nextVisitID++
	f.visits[visit.ID] = visit

	visitorCopy := *visitor
	visitCopy := *visit
	return &visitorCopy, &visitCopy, nil
}

type fakePassStore struct {
	mu     sync.Mutex
	passes map[string]int64
	putErr error
}

func newFakePassStore() *fakePassStore {
	return &fakePassStore{passes: make(map[string]int64)}
}

func (f *fakePassStore) Put(_ context.Context, token string, visitID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return f.putErr
	}
	f.passes[token] = visitID
	return nil
}

func (f *fakePassStore) Resolve(_ context.Context, token string) (int64, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := f.passes[token]
	return id, ok, nil
}

func (f *fakePassStore) Revoke(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.passes, token)
	return nil
}

type fakeMailer struct {
	mu        sync.Mutex
	checkIns  []string
	checkOuts []string
}

func (f *fakeMailer) SendCheckInConfirmation(toEmail, _, _, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.checkIns = append(f.checkIns, toEmail)
	return nil
}

func (f *fakeMailer) SendCheckOutConfirmation(toEmail, _, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.checkOuts = append(f.checkOuts, toEmail)
	return nil
}

type fakePublisher struct {
	mu       sync.Mutex
	subjects []string
}

func (f *fakePublisher) Publish(_ context.Context, subject string, _ interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subjects = append(f.subjects, subject)
	return nil
}

func (f *fakePublisher) Close() error { return nil }

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: make(map[string]*domain.User)}
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[email]; ok {
		out := *u
		return &out, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) Create(_ context.Context, email, name, passwordHash, role string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := &domain.User{
		ID:           f.nextID,
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now(),
	}
	f.nextID++
	f.users[email] = u
	return u, nil
}
