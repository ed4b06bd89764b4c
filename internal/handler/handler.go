package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/lucabelezal/cardlimit-service/internal/api"
	"github.com/lucabelezal/cardlimit-service/internal/faqs"
	"github.com/lucabelezal/cardlimit-service/internal/limits"
	"github.com/lucabelezal/cardlimit-service/internal/models"
	"github.com/lucabelezal/cardlimit-service/internal/notify"
	"github.com/lucabelezal/cardlimit-service/internal/service"
	"github.com/sirupsen/logrus"
)

// LimitService is the business surface the handlers call
type LimitService interface {
	Register(username, email, password string) (*models.User, error)
	Login(email, password string) (string, error)
	GetCardLimit(ctx context.Context) (*models.CardLimit, error)
	PreviewLimit(ctx context.Context, amount string) (int64, error)
	UpdateLimit(ctx context.Context, amount string) (*models.CardLimit, error)
	RecordPurchase(ctx context.Context, amount string) (*models.CardLimit, error)
}

type Handler struct {
	svc    LimitService
	faqs   *faqs.Catalog
	toasts *notify.Center
	log    *logrus.Logger
}

func NewHandler(svc LimitService, catalog *faqs.Catalog, toasts *notify.Center, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, faqs: catalog, toasts: toasts, log: log}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type amountRequest struct {
	Amount string `json:"amount"`
}

// Register handles user registration
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		api.WriteError(w, http.StatusBadRequest, "INVALID_REQUEST", "username, email and password are required")
		return
	}

	user, err := h.svc.Register(req.Username, req.Email, req.Password)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	api.WriteSuccess(w, http.StatusCreated, user)
}

// Login handles user authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	token, err := h.svc.Login(req.Email, req.Password)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	api.WriteSuccess(w, http.StatusOK, map[string]string{"token": token})
}

// ListFAQs returns the FAQ catalog, filtered and sorted by query params
func (h *Handler) ListFAQs(w http.ResponseWriter, r *http.Request) {
	opts := faqs.QueryOptions{
		Search:   r.URL.Query().Get("search"),
		Category: r.URL.Query().Get("category"),
		SortBy:   r.URL.Query().Get("sortBy"),
	}
	result := h.faqs.Search(opts)
	meta := map[string]interface{}{
		"total":    len(result),
		"search":   opts.Search,
		"category": opts.Category,
		"sortBy":   opts.SortBy,
	}
	api.WriteSuccessMeta(w, http.StatusOK, result, meta)
}

// ListCategories returns the distinct FAQ categories for the filter UI
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	api.WriteSuccess(w, http.StatusOK, h.faqs.Categories())
}

// GetFAQ returns a single FAQ by id
func (h *Handler) GetFAQ(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	faq, ok := h.faqs.Get(id)
	if !ok {
		api.WriteError(w, http.StatusNotFound, "FAQ_NOT_FOUND", "FAQ not found: "+id)
		return
	}
	api.WriteSuccess(w, http.StatusOK, faq)
}

// VoteFAQ marks a FAQ as helpful
func (h *Handler) VoteFAQ(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	faq, ok := h.faqs.Vote(id)
	if !ok {
		api.WriteError(w, http.StatusNotFound, "FAQ_NOT_FOUND", "FAQ not found: "+id)
		return
	}
	api.WriteSuccess(w, http.StatusOK, faq)
}

// Notifications returns the current toast state
func (h *Handler) Notifications(w http.ResponseWriter, r *http.Request) {
	api.WriteSuccess(w, http.StatusOK, h.toasts.State())
}

// GetLimit returns the authenticated user's card limit
func (h *Handler) GetLimit(w http.ResponseWriter, r *http.Request) {
	limit, err := h.svc.GetCardLimit(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	api.WriteSuccess(w, http.StatusOK, limit)
}

// UpdateLimit sets a new current limit
func (h *Handler) UpdateLimit(w http.ResponseWriter, r *http.Request) {
	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	limit, err := h.svc.UpdateLimit(r.Context(), req.Amount)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	api.WriteSuccess(w, http.StatusOK, limit)
}

// PreviewLimit validates a proposed limit without persisting it
func (h *Handler) PreviewLimit(w http.ResponseWriter, r *http.Request) {
	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	cents, err := h.svc.PreviewLimit(r.Context(), req.Amount)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	api.WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"valid":  true,
		"amount": cents,
	})
}

// RecordPurchase adds a simulated purchase
func (h *Handler) RecordPurchase(w http.ResponseWriter, r *http.Request) {
	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	limit, err := h.svc.RecordPurchase(r.Context(), req.Amount)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	api.WriteSuccess(w, http.StatusCreated, limit)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, limits.ErrNotANumber),
		errors.Is(err, limits.ErrBelowMinimum),
		errors.Is(err, limits.ErrAboveMaximum):
		api.WriteError(w, http.StatusBadRequest, "INVALID_AMOUNT", err.Error())
	case errors.Is(err, service.ErrPurchaseDeclined):
		api.WriteError(w, http.StatusBadRequest, "PURCHASE_DECLINED", err.Error())
	case errors.Is(err, service.ErrEmailTaken):
		api.WriteError(w, http.StatusConflict, "EMAIL_TAKEN", err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		api.WriteError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", err.Error())
	case errors.Is(err, service.ErrNoUser):
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", err.Error())
	default:
		h.log.Errorf("Unhandled error: %v", err)
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal server error")
	}
}
