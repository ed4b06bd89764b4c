package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/lucabelezal/cardlimit-service/internal/api"
	"github.com/lucabelezal/cardlimit-service/internal/faqs"
	"github.com/lucabelezal/cardlimit-service/internal/limits"
	"github.com/lucabelezal/cardlimit-service/internal/models"
	"github.com/lucabelezal/cardlimit-service/internal/notify"
	"github.com/sirupsen/logrus"
)

// mockService implements LimitService for handler tests
type mockService struct {
	RegisterFunc       func(username, email, password string) (*models.User, error)
	LoginFunc          func(email, password string) (string, error)
	GetCardLimitFunc   func(ctx context.Context) (*models.CardLimit, error)
	PreviewLimitFunc   func(ctx context.Context, amount string) (int64, error)
	UpdateLimitFunc    func(ctx context.Context, amount string) (*models.CardLimit, error)
	RecordPurchaseFunc func(ctx context.Context, amount string) (*models.CardLimit, error)
}

func (m *mockService) Register(username, email, password string) (*models.User, error) {
	return m.RegisterFunc(username, email, password)
}

func (m *mockService) Login(email, password string) (string, error) {
	return m.LoginFunc(email, password)
}

func (m *mockService) GetCardLimit(ctx context.Context) (*models.CardLimit, error) {
	return m.GetCardLimitFunc(ctx)
}

func (m *mockService) PreviewLimit(ctx context.Context, amount string) (int64, error) {
	return m.PreviewLimitFunc(ctx, amount)
}

func (m *mockService) UpdateLimit(ctx context.Context, amount string) (*models.CardLimit, error) {
	return m.UpdateLimitFunc(ctx, amount)
}

func (m *mockService) RecordPurchase(ctx context.Context, amount string) (*models.CardLimit, error) {
	return m.RecordPurchaseFunc(ctx, amount)
}

func newTestHandler(svc LimitService) *Handler {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewHandler(svc, faqs.NewCatalog(), notify.NewCenter(log), log)
}

func newTestRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	r.HandleFunc("/api/faqs", h.ListFAQs).Methods("GET")
	r.HandleFunc("/api/faqs/categories", h.ListCategories).Methods("GET")
	r.HandleFunc("/api/faqs/{id}", h.GetFAQ).Methods("GET")
	r.HandleFunc("/api/faqs/{id}/helpful", h.VoteFAQ).Methods("POST")
	r.HandleFunc("/api/notifications", h.Notifications).Methods("GET")
	r.HandleFunc("/api/limit", h.GetLimit).Methods("GET")
	r.HandleFunc("/api/limit", h.UpdateLimit).Methods("PUT")
	r.HandleFunc("/api/limit/preview", h.PreviewLimit).Methods("POST")
	r.HandleFunc("/api/limit/purchases", h.RecordPurchase).Methods("POST")
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, api.Envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var env api.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope from %q: %v", rec.Body.String(), err)
	}
	return rec, env
}

func TestListFAQs_Envelope(t *testing.T) {
	h := newTestHandler(&mockService{})
	r := newTestRouter(h)

	rec, env := doJSON(t, r, "GET", "/api/faqs", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !env.Success {
		t.Error("success = false")
	}
	meta, ok := env.Meta.(map[string]interface{})
	if !ok {
		t.Fatalf("meta missing: %+v", env)
	}
	if meta["total"].(float64) < 1 {
		t.Error("meta.total < 1")
	}
}

func TestListFAQs_SearchFilter(t *testing.T) {
	h := newTestHandler(&mockService{})
	r := newTestRouter(h)

	_, env := doJSON(t, r, "GET", "/api/faqs?search=increase+my+card+limit", nil)
	data, ok := env.Data.([]interface{})
	if !ok {
		t.Fatalf("data is not a list: %+v", env.Data)
	}
	if len(data) != 1 {
		t.Fatalf("search returned %d results, want 1", len(data))
	}

	_, env = doJSON(t, r, "GET", "/api/faqs?search=xyzzy-nothing", nil)
	if env.Data != nil {
		if list, ok := env.Data.([]interface{}); ok && len(list) != 0 {
			t.Errorf("nonsense search returned %d results", len(list))
		}
	}
}

func TestGetFAQ_NotFound(t *testing.T) {
	h := newTestHandler(&mockService{})
	r := newTestRouter(h)

	rec, env := doJSON(t, r, "GET", "/api/faqs/faq-999", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if env.Success {
		t.Error("success = true on 404")
	}
	if env.Error == nil || env.Error.Code != "FAQ_NOT_FOUND" {
		t.Errorf("error = %+v, want FAQ_NOT_FOUND", env.Error)
	}
}

func TestGetFAQ_Found(t *testing.T) {
	h := newTestHandler(&mockService{})
	r := newTestRouter(h)

	rec, env := doJSON(t, r, "GET", "/api/faqs/faq-1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	data, ok := env.Data.(map[string]interface{})
	if !ok || data["id"] != "faq-1" {
		t.Errorf("data = %+v, want faq-1", env.Data)
	}
}

func TestListCategories_NotShadowedByIDRoute(t *testing.T) {
	h := newTestHandler(&mockService{})
	r := newTestRouter(h)

	rec, env := doJSON(t, r, "GET", "/api/faqs/categories", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	cats, ok := env.Data.([]interface{})
	if !ok || len(cats) == 0 {
		t.Errorf("data = %+v, want non-empty category list", env.Data)
	}
}

func TestVoteFAQ(t *testing.T) {
	h := newTestHandler(&mockService{})
	r := newTestRouter(h)

	_, before := doJSON(t, r, "GET", "/api/faqs/faq-2", nil)
	beforeCount := before.Data.(map[string]interface{})["helpful_count"].(float64)

	rec, after := doJSON(t, r, "POST", "/api/faqs/faq-2/helpful", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	afterCount := after.Data.(map[string]interface{})["helpful_count"].(float64)
	if afterCount != beforeCount+1 {
		t.Errorf("helpful_count = %v, want %v", afterCount, beforeCount+1)
	}
}

func TestUpdateLimit_ValidationError(t *testing.T) {
	svc := &mockService{
		UpdateLimitFunc: func(ctx context.Context, amount string) (*models.CardLimit, error) {
			return nil, limits.ErrBelowMinimum
		},
	}
	r := newTestRouter(newTestHandler(svc))

	rec, env := doJSON(t, r, "PUT", "/api/limit", map[string]string{"amount": "10.00"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if env.Error == nil || env.Error.Code != "INVALID_AMOUNT" {
		t.Errorf("error = %+v, want INVALID_AMOUNT", env.Error)
	}
	if env.Error != nil && env.Error.Message != limits.ErrBelowMinimum.Error() {
		t.Errorf("message = %q, want %q", env.Error.Message, limits.ErrBelowMinimum.Error())
	}
}

func TestUpdateLimit_Success(t *testing.T) {
	svc := &mockService{
		UpdateLimitFunc: func(ctx context.Context, amount string) (*models.CardLimit, error) {
			return &models.CardLimit{
				UserID:          1,
				CurrentLimit:    300000,
				UsedAmount:      50000,
				AvailableAmount: 250000,
				MinAllowedLimit: 50000,
				MaxAllowedLimit: 1000000,
			}, nil
		},
	}
	r := newTestRouter(newTestHandler(svc))

	rec, env := doJSON(t, r, "PUT", "/api/limit", map[string]string{"amount": "3000.00"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	data := env.Data.(map[string]interface{})
	if data["current_limit"].(float64) != 300000 {
		t.Errorf("current_limit = %v, want 300000", data["current_limit"])
	}
	if data["available_amount"].(float64) != 250000 {
		t.Errorf("available_amount = %v, want 250000", data["available_amount"])
	}
}

func TestGetLimit_InternalError(t *testing.T) {
	svc := &mockService{
		GetCardLimitFunc: func(ctx context.Context) (*models.CardLimit, error) {
			return nil, context.DeadlineExceeded
		},
	}
	r := newTestRouter(newTestHandler(svc))

	rec, env := doJSON(t, r, "GET", "/api/limit", nil)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if env.Error == nil || env.Error.Code != "INTERNAL" {
		t.Errorf("error = %+v, want INTERNAL", env.Error)
	}
}

func TestNotifications_ReflectsToastState(t *testing.T) {
	h := newTestHandler(&mockService{})
	r := newTestRouter(h)

	_, env := doJSON(t, r, "GET", "/api/notifications", nil)
	state := env.Data.(map[string]interface{})
	if state["visible"].(bool) {
		t.Error("toast visible before any Show")
	}

	h.toasts.Show("saved", models.ToastSuccess, notify.Options{})
	_, env = doJSON(t, r, "GET", "/api/notifications", nil)
	state = env.Data.(map[string]interface{})
	if !state["visible"].(bool) {
		t.Error("toast not visible after Show")
	}
}

func TestRegister_MissingFields(t *testing.T) {
	h := newTestHandler(&mockService{})
	r := newTestRouter(h)

	rec, env := doJSON(t, r, "POST", "/register", map[string]string{"email": "a@b.c"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if env.Error == nil || env.Error.Code != "INVALID_REQUEST" {
		t.Errorf("error = %+v, want INVALID_REQUEST", env.Error)
	}
}
