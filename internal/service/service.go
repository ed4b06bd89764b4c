package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lucabelezal/cardlimit-service/internal/config"
	"github.com/lucabelezal/cardlimit-service/internal/limits"
	"github.com/lucabelezal/cardlimit-service/internal/middleware"
	"github.com/lucabelezal/cardlimit-service/internal/models"
	"github.com/lucabelezal/cardlimit-service/internal/notify"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNoUser             = errors.New("user ID not found in context")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrPurchaseDeclined   = errors.New("purchase exceeds available limit")
)

// Store is the persistence surface the service needs
type Store interface {
	CreateUser(user *models.User) error
	FindUserByEmail(email string) (*models.User, error)
	FindUserByID(id int64) (*models.User, error)
	CreateCardLimit(limit *models.CardLimit) error
	GetCardLimit(userID int64) (*models.CardLimit, error)
	UpdateCurrentLimit(userID, newLimit int64) (*models.CardLimit, error)
	AddPurchase(userID, amount int64) (*models.CardLimit, error)
	ResetUsage() (int64, error)
}

// Mailer sends limit-change notifications. May be nil when email is not
// configured.
type Mailer interface {
	SendLimitChangeNotification(to, username string, oldLimit, newLimit int64) error
}

// Service handles business logic
type Service struct {
	store  Store
	toasts *notify.Center
	mailer Mailer
	log    *logrus.Logger
	config *config.Config
}

// NewService initializes a new service
func NewService(store Store, toasts *notify.Center, mailer Mailer, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{store: store, toasts: toasts, mailer: mailer, log: log, config: cfg}
}

// Register creates a new user with hashed password and a default card
// limit
func (s *Service) Register(username, email, password string) (*models.User, error) {
	if _, err := s.store.FindUserByEmail(email); err == nil {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.store.CreateUser(user); err != nil {
		return nil, err
	}

	limit := &models.CardLimit{
		UserID:          user.ID,
		CurrentLimit:    s.config.DefaultLimit,
		UsedAmount:      0,
		MinAllowedLimit: s.config.MinAllowedLimit,
		MaxAllowedLimit: s.config.MaxAllowedLimit,
	}
	if err := s.store.CreateCardLimit(limit); err != nil {
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// Login authenticates a user and returns a JWT token
func (s *Service) Login(email, password string) (string, error) {
	user, err := s.store.FindUserByEmail(email)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", user.ID),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return tokenString, nil
}

// GetCardLimit returns the card limit of the authenticated user
func (s *Service) GetCardLimit(ctx context.Context) (*models.CardLimit, error) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return nil, ErrNoUser
	}
	return s.store.GetCardLimit(userID)
}

// PreviewLimit parses and validates a proposed limit without persisting
// it. Returns the parsed amount in minor units.
func (s *Service) PreviewLimit(ctx context.Context, amount string) (int64, error) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return 0, ErrNoUser
	}

	cents, err := limits.ParseAmount(amount)
	if err != nil {
		return 0, err
	}

	limit, err := s.store.GetCardLimit(userID)
	if err != nil {
		return 0, err
	}

	if err := limits.Validate(cents, bounds(limit)); err != nil {
		return 0, err
	}
	return cents, nil
}

// UpdateLimit validates and persists a new current limit, shows a toast
// and sends a notification email when configured
func (s *Service) UpdateLimit(ctx context.Context, amount string) (*models.CardLimit, error) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return nil, ErrNoUser
	}

	current, err := s.store.GetCardLimit(userID)
	if err != nil {
		return nil, err
	}

	cents, err := limits.ParseAmount(amount)
	if err == nil {
		err = limits.Validate(cents, bounds(current))
	}
	if err != nil {
		s.toasts.Show(err.Error(), models.ToastError, notify.Options{})
		return nil, err
	}

	updated, err := s.store.UpdateCurrentLimit(userID, cents)
	if err != nil {
		return nil, err
	}

	s.toasts.Show(
		fmt.Sprintf("Limit updated to %s", limits.FormatAmount(updated.CurrentLimit)),
		models.ToastSuccess, notify.Options{},
	)
	s.log.Infof("Limit updated for user %d: %d -> %d", userID, current.CurrentLimit, updated.CurrentLimit)

	if s.mailer != nil {
		go s.notifyLimitChange(userID, current.CurrentLimit, updated.CurrentLimit)
	}

	return updated, nil
}

// RecordPurchase adds a simulated purchase to the used amount. Declined
// when the purchase would exceed the available amount.
func (s *Service) RecordPurchase(ctx context.Context, amount string) (*models.CardLimit, error) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return nil, ErrNoUser
	}

	cents, err := limits.ParseAmount(amount)
	if err != nil {
		return nil, err
	}
	if cents <= 0 {
		return nil, limits.ErrNotANumber
	}

	current, err := s.store.GetCardLimit(userID)
	if err != nil {
		return nil, err
	}
	if cents > current.AvailableAmount {
		s.toasts.Show("Purchase declined: not enough available limit", models.ToastWarning, notify.Options{})
		return nil, ErrPurchaseDeclined
	}

	updated, err := s.store.AddPurchase(userID, cents)
	if err != nil {
		return nil, err
	}

	s.log.Infof("Purchase recorded for user %d: %d (available %d)", userID, cents, updated.AvailableAmount)
	return updated, nil
}

// ResetUsage zeroes every card's used amount. Invoked by the
// statement-cycle scheduler.
func (s *Service) ResetUsage() error {
	rows, err := s.store.ResetUsage()
	if err != nil {
		return err
	}
	s.log.Infof("Statement cycle reset: %d cards", rows)
	return nil
}

func (s *Service) notifyLimitChange(userID, oldLimit, newLimit int64) {
	user, err := s.store.FindUserByID(userID)
	if err != nil {
		s.log.Errorf("Failed to load user %d for notification: %v", userID, err)
		return
	}
	if err := s.mailer.SendLimitChangeNotification(user.Email, user.Username, oldLimit, newLimit); err != nil {
		s.log.Errorf("Failed to send limit change notification to %s: %v", user.Email, err)
	}
}

func bounds(limit *models.CardLimit) limits.Bounds {
	return limits.Bounds{
		UsedAmount:      limit.UsedAmount,
		MinAllowedLimit: limit.MinAllowedLimit,
		MaxAllowedLimit: limit.MaxAllowedLimit,
	}
}
