// Package store provides database access methods for all Pixyo entities.
// Each store struct wraps a *sql.DB and exposes typed query methods.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"pixyo/internal/models"
)

const userColumns = `id, email, password_hash, display_name, metadata, totp_secret, totp_enabled, created_at, updated_at`

// UserStore handles all user-related database operations.
type UserStore struct {
	db *sql.DB
}

// NewUserStore creates a new UserStore with the given database connection.
func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	u := &models.User{}
	var rawMeta []byte
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.DisplayName, &rawMeta,
		&u.TOTPSecret, &u.TOTPEnabled, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(rawMeta) > 0 {
		meta := &models.UserMetadata{}
		if err := json.Unmarshal(rawMeta, meta); err != nil {
			return nil, fmt.Errorf("decode user metadata: %w", err)
		}
		u.Metadata = meta
	}
	return u, nil
}

// FindByEmail retrieves a user by their email address. Returns nil if not found.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx, `
		SELECT `+userColumns+` FROM users WHERE email = $1
	`, email))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return u, nil
}

// FindByID retrieves a user by their UUID. Returns nil if not found.
func (s *UserStore) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx, `
		SELECT `+userColumns+` FROM users WHERE id = $1
	`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return u, nil
}

// MetadataByID fetches just the metadata blob for a user. Returns nil for
// users without a metadata row, which callers treat as fully permissive.
// Satisfies middleware.MetadataLoader.
func (s *UserStore) MetadataByID(ctx context.Context, id uuid.UUID) (*models.UserMetadata, error) {
	var rawMeta []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT metadata FROM users WHERE id = $1
	`, id).Scan(&rawMeta)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load user metadata: %w", err)
	}
	if len(rawMeta) == 0 {
		return nil, nil
	}
	meta := &models.UserMetadata{}
	if err := json.Unmarshal(rawMeta, meta); err != nil {
		return nil, fmt.Errorf("decode user metadata: %w", err)
	}
	return meta, nil
}

// List returns all users ordered by creation date.
func (s *UserStore) List(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+userColumns+` FROM users ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// Create inserts a new user with a bcrypt-hashed password. Metadata may be
// nil for accounts without role or tool restrictions.
func (s *UserStore) Create(ctx context.Context, email, password, displayName string, meta *models.UserMetadata) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var rawMeta []byte
	if meta != nil {
		rawMeta, err = json.Marshal(meta)
		if err != nil {
			return nil, fmt.Errorf("encode user metadata: %w", err)
		}
	}

	u, err := scanUser(s.db.QueryRowContext(ctx, `
		INSERT INTO users (email, password_hash, display_name, metadata)
		VALUES ($1, $2, $3, $4)
		RETURNING `+userColumns+`
	`, email, string(hash), displayName, rawMeta))
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// UpdateMetadata replaces a user's metadata blob. Passing nil clears it,
// which restores the fully permissive default.
func (s *UserStore) UpdateMetadata(ctx context.Context, userID uuid.UUID, meta *models.UserMetadata) error {
	var rawMeta []byte
	if meta != nil {
		var err error
		rawMeta, err = json.Marshal(meta)
		if err != nil {
			return fmt.Errorf("encode user metadata: %w", err)
		}
	}
	_, err := s.db.ExecContext(ctx, `
		UPDATE users SET metadata = $1, updated_at = NOW() WHERE id = $2
	`, rawMeta, userID)
	if err != nil {
		return fmt.Errorf("update user metadata: %w", err)
	}
	return nil
}

// SetTOTPSecret saves the TOTP secret for a user (during 2FA setup).
func (s *UserStore) SetTOTPSecret(ctx context.Context, userID uuid.UUID, secret string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE users SET totp_secret = $1, updated_at = NOW() WHERE id = $2
	`, secret, userID)
	if err != nil {
		return fmt.Errorf("set totp secret: %w", err)
	}
	return nil
}

// EnableTOTP marks 2FA as active for a user (after successful code verification).
func (s *UserStore) EnableTOTP(ctx context.Context, userID uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE users SET totp_enabled = TRUE, updated_at = NOW() WHERE id = $1
	`, userID)
	if err != nil {
		return fmt.Errorf("enable totp: %w", err)
	}
	return nil
}

// ResetTOTP clears the TOTP secret and disables 2FA for a user.
// The user will be forced to set up 2FA again on their next login.
func (s *UserStore) ResetTOTP(ctx context.Context, userID uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE users SET totp_secret = NULL, totp_enabled = FALSE, updated_at = NOW() WHERE id = $1
	`, userID)
	if err != nil {
		return fmt.Errorf("reset totp: %w", err)
	}
	return nil
}

// Delete removes a user by ID.
func (s *UserStore) Delete(ctx context.Context, userID uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// CheckPassword verifies a plaintext password against the user's stored hash.
func (s *UserStore) CheckPassword(user *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}
