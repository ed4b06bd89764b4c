package repository

import (
	"database/sql"
	"fmt"

	"github.com/lucabelezal/cardlimit-service/internal/models"
)

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser creates a new user in the database
func (r *Repository) CreateUser(user *models.User) error {
	query := `
		INSERT INTO cards.users (username, email, password_hash, created_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRow(query, user.Username, user.Email, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindUserByEmail retrieves a user by email
func (r *Repository) FindUserByEmail(email string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, username, email, password_hash, created_at
		FROM cards.users
		WHERE email = $1`
	err := r.db.QueryRow(query, email).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// FindUserByID retrieves a user by id
func (r *Repository) FindUserByID(id int64) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, username, email, password_hash, created_at
		FROM cards.users
		WHERE id = $1`
	err := r.db.QueryRow(query, id).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// CreateCardLimit creates the card limit row for a new user
func (r *Repository) CreateCardLimit(limit *models.CardLimit) error {
	query := `
		INSERT INTO cards.card_limits (user_id, current_limit, used_amount, min_allowed_limit, max_allowed_limit, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING created_at, updated_at`
	err := r.db.QueryRow(query, limit.UserID, limit.CurrentLimit, limit.UsedAmount, limit.MinAllowedLimit, limit.MaxAllowedLimit).
		Scan(&limit.CreatedAt, &limit.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create card limit: %w", err)
	}
	limit.Recompute()
	return nil
}

// GetCardLimit retrieves the card limit for a user
func (r *Repository) GetCardLimit(userID int64) (*models.CardLimit, error) {
	limit := &models.CardLimit{}
	query := `
		SELECT user_id, current_limit, used_amount, min_allowed_limit, max_allowed_limit, created_at, updated_at
		FROM cards.card_limits
		WHERE user_id = $1`
	err := r.db.QueryRow(query, userID).
		Scan(&limit.UserID, &limit.CurrentLimit, &limit.UsedAmount, &limit.MinAllowedLimit, &limit.MaxAllowedLimit, &limit.CreatedAt, &limit.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("card limit not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get card limit: %w", err)
	}
	limit.Recompute()
	return limit, nil
}

// UpdateCurrentLimit sets a new current limit for the user
func (r *Repository) UpdateCurrentLimit(userID, newLimit int64) (*models.CardLimit, error) {
	limit := &models.CardLimit{}
	query := `
		UPDATE cards.card_limits
		SET current_limit = $2, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = $1
		RETURNING user_id, current_limit, used_amount, min_allowed_limit, max_allowed_limit, created_at, updated_at`
	err := r.db.QueryRow(query, userID, newLimit).
		Scan(&limit.UserID, &limit.CurrentLimit, &limit.UsedAmount, &limit.MinAllowedLimit, &limit.MaxAllowedLimit, &limit.CreatedAt, &limit.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("card limit not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update card limit: %w", err)
	}
	limit.Recompute()
	return limit, nil
}

// AddPurchase increases the used amount for the user
func (r *Repository) AddPurchase(userID, amount int64) (*models.CardLimit, error) {
	limit := &models.CardLimit{}
	query := `
		UPDATE cards.card_limits
		SET used_amount = used_amount + $2, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = $1
		RETURNING user_id, current_limit, used_amount, min_allowed_limit, max_allowed_limit, created_at, updated_at`
	err := r.db.QueryRow(query, userID, amount).
		Scan(&limit.UserID, &limit.CurrentLimit, &limit.UsedAmount, &limit.MinAllowedLimit, &limit.MaxAllowedLimit, &limit.CreatedAt, &limit.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("card limit not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to record purchase: %w", err)
	}
	limit.Recompute()
	return limit, nil
}

// ResetUsage zeroes the used amount for every card, returning the number
// of rows touched. Runs at the start of each statement cycle.
func (r *Repository) ResetUsage() (int64, error) {
	result, err := r.db.Exec(`UPDATE cards.card_limits SET used_amount = 0, updated_at = CURRENT_TIMESTAMP`)
	if err != nil {
		return 0, fmt.Errorf("failed to reset usage: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count reset rows: %w", err)
	}
	return rows, nil
}
