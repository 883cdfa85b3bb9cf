//go:build !integration

package web_test

import (
	"context"
	"io"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"realestate-marketplace/internal/domain"
	"realestate-marketplace/internal/domain/model"
	"realestate-marketplace/internal/domain/ports/repository"
	"realestate-marketplace/internal/infra/web"
	"realestate-marketplace/internal/usecase"
)

const testJWTSecret = "test-jwt-secret-0123456789abcdef"

// webTestEnv wires real use cases over in-memory stores behind a live router,
// so handler tests exercise the full request path.
type webTestEnv struct {
	server *httptest.Server
	auth   *web.AuthManager
	plans  *memPlanRepo
	users  *memUserRepo
}

func newWebTestEnv(t *testing.T) *webTestEnv {
	t.Helper()
	logger := newTestLogger()
	catalog := model.DefaultCatalog()

	plans := newMemPlanRepo()
	users := newMemUserRepo()
	props := newMemPropertyRepo()
	blog := newMemBlogRepo()
	quotes := newMemTestimonialRepo()
	gateway := &stubGateway{ValidSignature: "good-sig"}
	locker := &stubLocker{}
	tm := &passTxManager{}

	planUC := usecase.NewPlanLifecycleUseCase(plans, users, tm, gateway, locker, catalog, logger)
	userUC := usecase.NewUserUseCase(users, logger)
	propertyUC := usecase.NewPropertyUseCase(props, users, logger)
	blogUC := usecase.NewBlogUseCase(blog, users, logger)
	testimonialUC := usecase.NewTestimonialUseCase(quotes, logger)
	statsUC := usecase.NewStatsUseCase(users, plans, logger)

	auth := web.NewAuthManager(testJWTSecret, false, "", time.Hour)
	srv := web.NewServer(planUC, userUC, propertyUC, blogUC, testimonialUC, statsUC, catalog, auth, logger)

	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)

	return &webTestEnv{server: ts, auth: auth, plans: plans, users: users}
}

// seedUser stores an account and returns a bearer token for it.
func (e *webTestEnv) seedUser(t *testing.T, id, role string) string {
	t.Helper()
	u := &model.User{ID: id, Name: "Asha", Email: id + "@example.com", PasswordHash: "x", Role: role}
	if err := e.users.Save(context.Background(), u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	token, err := e.auth.Mint(httptest.NewRecorder(), id, role)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

// ---- in-memory stores ----

type memPlanRepo struct {
	mu    sync.RWMutex
	store map[string]*model.Plan
}

func newMemPlanRepo() *memPlanRepo { return &memPlanRepo{store: make(map[string]*model.Plan)} }

func (m *memPlanRepo) Insert(ctx context.Context, p *model.Plan) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.store {
		if e.RazorpayPaymentID == p.RazorpayPaymentID {
			return domain.ErrDuplicateTransaction
		}
	}
	cp := *p
	m.store[p.ID] = &cp
	return nil
}

func (m *memPlanRepo) Update(ctx context.Context, p *model.Plan) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[p.ID]; !ok {
		return domain.ErrNotFound
	}
	for id, e := range m.store {
		if id != p.ID && e.RazorpayPaymentID == p.RazorpayPaymentID {
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

type memUserRepo struct {
	mu    sync.RWMutex
	store map[string]*model.User
}

func newMemUserRepo() *memUserRepo { return &memUserRepo{store: make(map[string]*model.User)} }

func (m *memUserRepo) Save(ctx context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.store {
		if e.Email == u.Email && e.ID != u.ID {
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
	return nil, nil
}

func (m *memUserRepo) CountUsers(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.store), nil
}

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

type memBlogRepo struct {
	mu    sync.RWMutex
	store map[string]*model.BlogPost
}

func newMemBlogRepo() *memBlogRepo { return &memBlogRepo{store: make(map[string]*model.BlogPost)} }

func (m *memBlogRepo) Save(ctx context.Context, p *model.BlogPost) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.store[p.ID] = &cp
	return nil
}

func (m *memBlogRepo) FindByID(ctx context.Context, id string) (*model.BlogPost, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memBlogRepo) List(ctx context.Context, offset, limit int) ([]*model.BlogPost, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*model.BlogPost{}
	for _, p := range m.store {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memBlogRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.store, id)
	return nil
}

type memTestimonialRepo struct {
	mu    sync.RWMutex
	store map[string]*model.Testimonial
}

func newMemTestimonialRepo() *memTestimonialRepo {
	return &memTestimonialRepo{store: make(map[string]*model.Testimonial)}
}

func (m *memTestimonialRepo) Save(ctx context.Context, t *model.Testimonial) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *t
	m.store[t.ID] = &cp
	return nil
}

func (m *memTestimonialRepo) List(ctx context.Context, limit int) ([]*model.Testimonial, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*model.Testimonial{}
	for _, t := range m.store {
		cp := *t
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memTestimonialRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.store, id)
	return nil
}

// ---- stubs ----

type passTxManager struct{}

func (m *passTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type stubGateway struct{ ValidSignature string }

func (g *stubGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]string) (*model.PaymentOrder, error) {
	return &model.PaymentOrder{ID: "order_test", Amount: amount, Currency: currency, Receipt: receipt, Status: "created"}, nil
}

func (g *stubGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return signature == g.ValidSignature
}

func (g *stubGateway) Name() string { return "stub" }

type stubLocker struct{}

func (l *stubLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (string, error) {
	return "tok", nil
}

func (l *stubLocker) Unlock(ctx context.Context, key, token string) error { return nil }

func newTestLogger() *zerolog.Logger {
	l := zerolog.New(io.Discard)
	return &l
}
