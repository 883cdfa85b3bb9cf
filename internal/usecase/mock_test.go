//go:build !integration

package usecase_test

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"realestate-marketplace/internal/domain"
	"realestate-marketplace/internal/domain/model"
	"realestate-marketplace/internal/domain/ports/repository"
)

// memPlanRepo is a small in-memory implementation used by unit tests.
// It enforces payment-id uniqueness like the real store does.
type memPlanRepo struct {
	mu         sync.RWMutex
	store      map[string]*model.Plan // by plan ID
	InsertFunc func(ctx context.Context, p *model.Plan) error
	UpdateFunc func(ctx context.Context, p *model.Plan) error
}

func newMemPlanRepo() *memPlanRepo {
	return &memPlanRepo{store: make(map[string]*model.Plan)}
}

func (m *memPlanRepo) Insert(ctx context.Context, p *model.Plan) error {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, p)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.store {
		if existing.RazorpayPaymentID == p.RazorpayPaymentID {
			return domain.ErrDuplicateTransaction
		}
	}
	cp := *p
	m.store[p.ID] = &cp
	return nil
}

func (m *memPlanRepo) Update(ctx context.Context, p *model.Plan) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, p)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[p.ID]; !ok {
		return domain.ErrNotFound
	}
	for id, existing := range m.store {
		if id != p.ID && existing.RazorpayPaymentID == p.RazorpayPaymentID {
			return domain.ErrDuplicateTransaction
		}
	}
	cp := *p
	m.store[p.ID] = &cp
	return nil
}

func (m *memPlanRepo) FindByID(ctx context.Context, id string) (*model.Plan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memPlanRepo) FindByPaymentID(ctx context.Context, paymentID string) (*model.Plan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.store {
		if p.RazorpayPaymentID == paymentID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memPlanRepo) CountByPlanName(ctx context.Context) (map[string]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]int)
	for _, p := range m.store {
		out[p.PlanName]++
	}
	return out, nil
}

func (m *memPlanRepo) count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.store)
}

// memUserRepo is an in-memory account store keyed by user ID.
type memUserRepo struct {
	mu                     sync.RWMutex
	store                  map[string]*model.User
	UpdateEntitlementsFunc func(ctx context.Context, userID string, e model.Entitlements) error
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{store: make(map[string]*model.User)}
}

func (m *memUserRepo) Save(ctx context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.store {
		if existing.Email == u.Email && existing.ID != u.ID {
			return domain.ErrEmailTaken
		}
	}
	cp := *u
	m.store[u.ID] = &cp
	return nil
}

func (m *memUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.store {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memUserRepo) UpdateEntitlements(ctx context.Context, userID string, e model.Entitlements) error {
	if m.UpdateEntitlementsFunc != nil {
		return m.UpdateEntitlementsFunc(ctx, userID, e)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.store[userID]
	if !ok {
		return domain.ErrNotFound
	}
	u.PlanName = e.PlanName
	u.Listings = e.Listings
	u.PremiumBadging = e.PremiumBadging
	u.Shows = e.Shows
	u.CurrentPlanID = e.CurrentPlanID
	u.PlanExpiryDate = e.PlanExpiryDate
	return nil
}

func (m *memUserRepo) FindWithExpiredPlan(ctx context.Context, now time.Time, limit int) ([]*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*model.User{}
	for _, u := range m.store {
		if u.PlanExpiryDate != nil && u.PlanExpiryDate.Before(now) && u.Listings > 0 {
			cp := *u
			out = append(out, &cp)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (m *memUserRepo) CountUsers(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.store), nil
}

// memPropertyRepo is an in-memory listing store.
type memPropertyRepo struct {
	mu    sync.RWMutex
	store map[string]*model.Property
}

func newMemPropertyRepo() *memPropertyRepo {
	return &memPropertyRepo{store: make(map[string]*model.Property)}
}

func (m *memPropertyRepo) Save(ctx context.Context, p *model.Property) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.store[p.ID] = &cp
	return nil
}

func (m *memPropertyRepo) FindByID(ctx context.Context, id string) (*model.Property, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memPropertyRepo) List(ctx context.Context, f repository.PropertyFilter) ([]*model.Property, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*model.Property{}
	for _, p := range m.store {
		if f.City != "" && p.City != f.City {
			continue
		}
		if f.OwnerID != "" && p.OwnerID != f.OwnerID {
			continue
		}
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memPropertyRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.store, id)
	return nil
}

func (m *memPropertyRepo) CountActiveByOwner(ctx context.Context, ownerID string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, p := range m.store {
		if p.OwnerID == ownerID && p.Status == model.PropertyStatusActive {
			n++
		}
	}
	return n, nil
}

// passTxManager runs the callback inline; unit tests exercise the dual write
// without a real session.
type passTxManager struct {
	WithTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *passTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.WithTxFunc != nil {
		return m.WithTxFunc(ctx, fn)
	}
	return fn(ctx)
}

// mockGateway verifies signatures against a fixed expected value.
type mockGateway struct {
	CreateOrderFunc func(ctx context.Context, amount int64, currency, receipt string, notes map[string]string) (*model.PaymentOrder, error)
	ValidSignature  string
}

func (g *mockGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]string) (*model.PaymentOrder, error) {
	if g.CreateOrderFunc != nil {
		return g.CreateOrderFunc(ctx, amount, currency, receipt, notes)
	}
	return &model.PaymentOrder{ID: "order_test", Amount: amount, Currency: currency, Receipt: receipt, Status: "created"}, nil
}

func (g *mockGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return signature == g.ValidSignature
}

func (g *mockGateway) Name() string { return "mock" }

// mockLocker grants every lock unless told otherwise.
type mockLocker struct {
	mu     sync.Mutex
	held   map[string]string
	Reject bool
}

func newMockLocker() *mockLocker {
	return &mockLocker{held: make(map[string]string)}
}

func (l *mockLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.Reject {
		return "", domain.ErrLockNotAcquired
	}
	if _, taken := l.held[key]; taken {
		return "", domain.ErrLockNotAcquired
	}
	l.held[key] = "tok"
	return "tok", nil
}

func (l *mockLocker) Unlock(ctx context.Context, key, token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, key)
	return nil
}

// newTestLogger creates a silent zerolog.Logger for use in tests.
func newTestLogger() *zerolog.Logger {
	l := zerolog.New(io.Discard)
	return &l
}
