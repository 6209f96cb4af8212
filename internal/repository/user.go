package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"smartroute/internal/database"
)

// ErrUserNotFound is returned when a lookup matches no user.
var ErrUserNotFound = errors.New("user not found")

// ErrUsernameTaken is returned when a username already exists.
var ErrUsernameTaken = errors.New("username already taken")

// User is one account row. LastResetDate is nil until the first usage check
// touches the account.
type User struct {
	ID                   int64
	Username             string
	PasswordHash         []byte
	Tier                 string
	MonthlyRequestsCount int
	LastResetDate        *time.Time
	CreatedAt            time.Time
}

// LoginRecord is one authentication event.
type LoginRecord struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"-"`
	Token     string    `json:"-"`
	LoginAt   time.Time `json:"login_at"`
	IPAddress string    `json:"ip_address,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
}

// UserStore persists accounts and login history.
type UserStore struct {
	db *sql.DB
}

// NewUserStore creates the store on an open database handle.
func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

const userColumns = "id, username, password_hash, tier, monthly_requests_count, last_reset_date, created_at"

func scanUser(row *sql.Row) (*User, error) {
	var u User
	var lastReset sql.NullTime
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Tier, &u.MonthlyRequestsCount, &lastReset, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	if lastReset.Valid {
		u.LastResetDate = &lastReset.Time
	}
	return &u, nil
}

// GetByUsername fetches an account by its unique username.
func (s *UserStore) GetByUsername(ctx context.Context, username string) (*User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE username = ?", username)
	return scanUser(row)
}

// GetByID fetches an account by id.
func (s *UserStore) GetByID(ctx context.Context, id int64) (*User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = ?", id)
	return scanUser(row)
}

// Create inserts a new account and returns it with its id filled in. The
// insert and the read-back run in one transaction.
func (s *UserStore) Create(ctx context.Context, username string, passwordHash []byte, tier string) (*User, error) {
	var user *User
	err := database.Transaction(s.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			"INSERT INTO users (username, password_hash, tier, monthly_requests_count) VALUES (?, ?, ?, 0)",
			username, passwordHash, tier)
		if err != nil {
			if isUniqueViolation(err) {
				return ErrUsernameTaken
			}
			return fmt.Errorf("failed to create user: %w", err)
		}

		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read new user id: %w", err)
		}

		user, err = scanUser(tx.QueryRowContext(ctx,
			"SELECT "+userColumns+" FROM users WHERE id = ?", id))
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// HasAdmin reports whether any admin-tier account exists.
func (s *UserStore) HasAdmin(ctx context.Context) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM users WHERE tier = 'admin')").Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check for admin: %w", err)
	}
	return exists, nil
}

// isUniqueViolation matches SQLite's unique-constraint error text. The
// modernc driver does not expose typed errors for it.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// IncrementUsage bumps the monthly request counter by one.
func (s *UserStore) IncrementUsage(ctx context.Context, userID int64) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE users SET monthly_requests_count = monthly_requests_count + 1 WHERE id = ?", userID)
	if err != nil {
		return fmt.Errorf("failed to increment usage: %w", err)
	}
	return nil
}

// DecrementUsage undoes one increment, flooring at zero.
func (s *UserStore) DecrementUsage(ctx context.Context, userID int64) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE users SET monthly_requests_count = MAX(monthly_requests_count - 1, 0) WHERE id = ?", userID)
	if err != nil {
		return fmt.Errorf("failed to decrement usage: %w", err)
	}
	return nil
}

// ResetMonthlyCount zeroes the counter and stamps the reset date.
func (s *UserStore) ResetMonthlyCount(ctx context.Context, userID int64, resetAt time.Time) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE users SET monthly_requests_count = 0, last_reset_date = ? WHERE id = ?", resetAt, userID)
	if err != nil {
		return fmt.Errorf("failed to reset monthly count: %w", err)
	}
	return nil
}

// UpdateTier changes the account's plan and resets its counter.
func (s *UserStore) UpdateTier(ctx context.Context, userID int64, tier string, resetAt time.Time) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE users SET tier = ?, monthly_requests_count = 0, last_reset_date = ? WHERE id = ?",
		tier, resetAt, userID)
	if err != nil {
		return fmt.Errorf("failed to update tier: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check tier update: %w", err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// RecordLogin appends one login event.
func (s *UserStore) RecordLogin(ctx context.Context, userID int64, token, ipAddress, userAgent string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO login_history (user_id, token, ip_address, user_agent) VALUES (?, ?, ?, ?)",
		userID, token, ipAddress, userAgent)
	if err != nil {
		return fmt.Errorf("failed to record login: %w", err)
	}
	return nil
}

// ListLoginHistory returns the most recent login events for a user.
func (s *UserStore) ListLoginHistory(ctx context.Context, userID int64, limit int) ([]LoginRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, user_id, token, login_at, COALESCE(ip_address, ''), COALESCE(user_agent, '') "+
			"FROM login_history WHERE user_id = ? ORDER BY login_at DESC LIMIT ?", userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list login history: %w", err)
	}
	defer rows.Close()

	var records []LoginRecord
	for rows.Next() {
		var r LoginRecord
		if err := rows.Scan(&r.ID, &r.UserID, &r.Token, &r.LoginAt, &r.IPAddress, &r.UserAgent); err != nil {
			return nil, fmt.Errorf("failed to scan login record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
