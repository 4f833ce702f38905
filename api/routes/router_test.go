package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	authsvc "github.com/ninamwrites/bookstore-backend/internal/auth"
	cartsvc "github.com/ninamwrites/bookstore-backend/internal/cart"
	"github.com/ninamwrites/bookstore-backend/internal/catalog"
	dashboardsvc "github.com/ninamwrites/bookstore-backend/internal/dashboard"
	newslettersvc "github.com/ninamwrites/bookstore-backend/internal/newsletter"
	ordersvc "github.com/ninamwrites/bookstore-backend/internal/orders"
	testimonialsvc "github.com/ninamwrites/bookstore-backend/internal/testimonials"
	pkgauth "github.com/ninamwrites/bookstore-backend/pkg/auth"
	"github.com/ninamwrites/bookstore-backend/pkg/config"
	"github.com/ninamwrites/bookstore-backend/pkg/enums"
	"github.com/ninamwrites/bookstore-backend/pkg/pagination"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

type stubCatalog struct{}

func (stubCatalog) ListBooks(context.Context) ([]*catalog.BookDTO, error) {
	return []*catalog.BookDTO{}, nil
}
func (stubCatalog) GetBook(context.Context, uuid.UUID) (*catalog.BookDTO, error) {
	return &catalog.BookDTO{}, nil
}
func (stubCatalog) CreateBook(context.Context, catalog.CreateBookInput) (*catalog.BookDTO, error) {
	return &catalog.BookDTO{}, nil
}
func (stubCatalog) UpdateBook(context.Context, uuid.UUID, catalog.UpdateBookInput) (*catalog.BookDTO, error) {
	return &catalog.BookDTO{}, nil
}
func (stubCatalog) DeleteBook(context.Context, uuid.UUID) error { return nil }
func (stubCatalog) ListMerch(context.Context) (*catalog.MerchByCategory, error) {
	return &catalog.MerchByCategory{Clothing: []*catalog.MerchDTO{}, Accessories: []*catalog.MerchDTO{}}, nil
}
func (stubCatalog) CreateMerch(context.Context, catalog.CreateMerchInput) (*catalog.MerchDTO, error) {
	return &catalog.MerchDTO{}, nil
}
func (stubCatalog) UpdateMerch(context.Context, uuid.UUID, catalog.UpdateMerchInput) (*catalog.MerchDTO, error) {
	return &catalog.MerchDTO{}, nil
}
func (stubCatalog) DeleteMerch(context.Context, uuid.UUID) error { return nil }

type stubCart struct{}

func (stubCart) Get(context.Context, string) (*cartsvc.Summary, error) {
	return &cartsvc.Summary{Lines: []cartsvc.Line{}, Total: decimal.Zero, Empty: true}, nil
}
func (stubCart) Add(context.Context, string, uuid.UUID, int) (*cartsvc.MutationResult, error) {
	return &cartsvc.MutationResult{Total: decimal.Zero, Empty: false}, nil
}
func (stubCart) Update(context.Context, string, string, string) (*cartsvc.MutationResult, error) {
	return &cartsvc.MutationResult{}, nil
}
func (stubCart) Remove(context.Context, string, string) (*cartsvc.MutationResult, error) {
	return &cartsvc.MutationResult{}, nil
}
func (stubCart) Items(context.Context, string) (map[string]int, error) {
	return map[string]int{}, nil
}
func (stubCart) Clear(context.Context, string) error { return nil }

type stubAuth struct{}

func (stubAuth) Register(context.Context, authsvc.RegisterInput) (*authsvc.Session, error) {
	return &authsvc.Session{}, nil
}
func (stubAuth) Login(context.Context, authsvc.LoginInput) (*authsvc.Session, error) {
	return &authsvc.Session{}, nil
}
func (stubAuth) Logout(context.Context, string) error { return nil }
func (stubAuth) Refresh(context.Context, string, string) (*authsvc.RefreshResult, error) {
	return &authsvc.RefreshResult{}, nil
}

type stubOrders struct{}

func (stubOrders) Checkout(context.Context, uuid.UUID, string, ordersvc.CheckoutInput) (*ordersvc.OrderDTO, error) {
	return &ordersvc.OrderDTO{}, nil
}
func (stubOrders) ListMine(context.Context, uuid.UUID) ([]*ordersvc.OrderDTO, error) {
	return []*ordersvc.OrderDTO{}, nil
}
func (stubOrders) Get(context.Context, uuid.UUID) (*ordersvc.OrderDTO, error) {
	return &ordersvc.OrderDTO{}, nil
}
func (stubOrders) List(context.Context, pagination.Params) (*ordersvc.OrderPage, error) {
	return &ordersvc.OrderPage{Orders: []*ordersvc.OrderDTO{}}, nil
}
func (stubOrders) UpdateStatus(context.Context, uuid.UUID, string) (*ordersvc.OrderDTO, error) {
	return &ordersvc.OrderDTO{}, nil
}

type stubNewsletter struct{}

func (stubNewsletter) Subscribe(context.Context, string) (*newslettersvc.SubscribeResult, error) {
	return &newslettersvc.SubscribeResult{}, nil
}
func (stubNewsletter) List(context.Context) ([]newslettersvc.SubscriberDTO, error) {
	return []newslettersvc.SubscriberDTO{}, nil
}
func (stubNewsletter) Send(context.Context, string, string) (*newslettersvc.SendReport, error) {
	return &newslettersvc.SendReport{}, nil
}

type stubTestimonials struct{}

func (stubTestimonials) Submit(context.Context, uuid.UUID, string, testimonialsvc.SubmitInput) (*testimonialsvc.TestimonialDTO, error) {
	return &testimonialsvc.TestimonialDTO{}, nil
}
func (stubTestimonials) ListActive(context.Context) ([]*testimonialsvc.TestimonialDTO, error) {
	return []*testimonialsvc.TestimonialDTO{}, nil
}
func (stubTestimonials) ListAll(context.Context) ([]*testimonialsvc.TestimonialDTO, error) {
	return []*testimonialsvc.TestimonialDTO{}, nil
}
func (stubTestimonials) SetActive(context.Context, uuid.UUID, bool) (*testimonialsvc.TestimonialDTO, error) {
	return &testimonialsvc.TestimonialDTO{}, nil
}
func (stubTestimonials) Delete(context.Context, uuid.UUID) error { return nil }

type stubDashboard struct{}

func (stubDashboard) Overview(context.Context) (*dashboardsvc.Overview, error) {
	return &dashboardsvc.Overview{}, nil
}

type stubMailer struct{}

func (stubMailer) Send(context.Context, []string, string, string) error { return nil }

type stubSessionChecker struct{}

func (stubSessionChecker) HasSession(context.Context, string) (bool, error) { return true, nil }

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{Secret: "secret", Issuer: "issuer", ExpirationMinutes: 15},
		Cart: config.CartConfig{
			SessionTTL: time.Hour,
			CookieName: "bs_session",
		},
	}
}

func testRouter() http.Handler {
	return NewRouter(Deps{
		Config:       testConfig(),
		DB:           stubPinger{},
		Sessions:     stubSessionChecker{},
		Mailer:       stubMailer{},
		Auth:         stubAuth{},
		Catalog:      stubCatalog{},
		Cart:         stubCart{},
		Orders:       stubOrders{},
		Newsletter:   stubNewsletter{},
		Testimonials: stubTestimonials{},
		Dashboard:    stubDashboard{},
	})
}

func mintToken(t *testing.T, role enums.CustomerRole) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(testConfig().JWT, time.Now(), pkgauth.AccessTokenPayload{
		CustomerID: uuid.New(),
		Name:       "Test Customer",
		Role:       role,
		JTI:        uuid.NewString(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestPublicRoutesRespond(t *testing.T) {
	router := testRouter()

	for _, path := range []string{
		"/health/live",
		"/health/ready",
		"/api/v1/books",
		"/api/v1/merch",
		"/api/v1/testimonials",
		"/api/v1/cart",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 got %d", path, resp.Code)
		}
	}
}

func TestCartIssuesVisitorCookie(t *testing.T) {
	router := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	cookies := resp.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "bs_session" {
		t.Fatalf("expected bs_session cookie, got %+v", cookies)
	}
}

func TestCheckoutRequiresAuth(t *testing.T) {
	router := testRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(`{"shipping_address":"1 Main St"}`))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestCheckoutWithToken(t *testing.T) {
	router := testRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(`{"shipping_address":"1 Main St"}`))
	req.Header.Set("Authorization", "Bearer "+mintToken(t, enums.CustomerRoleCustomer))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestAdminRequiresStaffRole(t *testing.T) {
	router := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/dashboard", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/admin/v1/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, enums.CustomerRoleCustomer))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for customer role, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/admin/v1/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, enums.CustomerRoleStaff))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for staff, got %d", resp.Code)
	}
}
