package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ninamwrites/bookstore-backend/api/middleware"
	ordersvc "github.com/ninamwrites/bookstore-backend/internal/orders"
	"github.com/ninamwrites/bookstore-backend/pkg/pagination"
)

type stubOrderService struct {
	input *ordersvc.CheckoutInput
	order *ordersvc.OrderDTO
	err   error
}

func (s *stubOrderService) Checkout(_ context.Context, _ uuid.UUID, _ string, input ordersvc.CheckoutInput) (*ordersvc.OrderDTO, error) {
	s.input = &input
	return s.order, s.err
}

func (s *stubOrderService) ListMine(context.Context, uuid.UUID) ([]*ordersvc.OrderDTO, error) {
	return nil, s.err
}

func (s *stubOrderService) Get(context.Context, uuid.UUID) (*ordersvc.OrderDTO, error) {
	return s.order, s.err
}

func (s *stubOrderService) List(context.Context, pagination.Params) (*ordersvc.OrderPage, error) {
	return nil, s.err
}

func (s *stubOrderService) UpdateStatus(context.Context, uuid.UUID, string) (*ordersvc.OrderDTO, error) {
	return s.order, s.err
}

func checkoutRequestWith(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	ctx := middleware.WithCustomerID(req.Context(), uuid.NewString())
	ctx = middleware.WithSessionID(ctx, uuid.NewString())
	return req.WithContext(ctx)
}

func TestCheckoutForwardsOptionalFields(t *testing.T) {
	svc := &stubOrderService{order: &ordersvc.OrderDTO{
		ID:         uuid.New(),
		TotalPrice: decimal.RequireFromString("30.00"),
	}}
	handler := Checkout(svc, nil)

	req := checkoutRequestWith(`{
		"shipping_address": "12 Shelf Rd",
		"billing_address": "1 Ledger Ln",
		"notes": "leave at door"
	}`)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.input == nil {
		t.Fatal("expected Checkout to be called")
	}
	if svc.input.ShippingAddress != "12 Shelf Rd" {
		t.Fatalf("shipping = %q", svc.input.ShippingAddress)
	}
	if svc.input.BillingAddress != "1 Ledger Ln" {
		t.Fatalf("billing = %q", svc.input.BillingAddress)
	}
	if svc.input.Notes != "leave at door" {
		t.Fatalf("notes = %q", svc.input.Notes)
	}
}

func TestCheckoutOmittedOptionalFieldsDefaultEmpty(t *testing.T) {
	svc := &stubOrderService{order: &ordersvc.OrderDTO{ID: uuid.New()}}
	handler := Checkout(svc, nil)

	req := checkoutRequestWith(`{"shipping_address": "12 Shelf Rd"}`)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.input == nil {
		t.Fatal("expected Checkout to be called")
	}
	if svc.input.BillingAddress != "" || svc.input.Notes != "" {
		t.Fatalf("omitted fields should stay empty: %+v", svc.input)
	}
}

func TestCheckoutWithoutCustomer(t *testing.T) {
	svc := &stubOrderService{}
	handler := Checkout(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(`{"shipping_address":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}

	var body struct {
		Success bool `json:"success"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Success {
		t.Fatal("expected success=false")
	}
	if svc.input != nil {
		t.Fatal("Checkout should not run without a customer")
	}
}
