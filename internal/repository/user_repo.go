package repository

import (
	"database/sql"
	"fmt"

	"campuswordle/internal/database"
	"campuswordle/internal/models"
)

const userColumns = `id, username, COALESCE(full_name, ''), COALESCE(email, ''),
		COALESCE(password_hash, ''), COALESCE(phone_number, ''),
		COALESCE(oauth_provider, ''), COALESCE(oauth_subject, ''),
		last_device_info, created_at`

// UserRepository handles database operations for users
type UserRepository struct {
	db *database.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	var deviceInfo string
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.FullName,
		&user.Email,
		&user.PasswordHash,
		&user.PhoneNumber,
		&user.OAuthProvider,
		&user.OAuthSubject,
		&deviceInfo,
		&user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	user.DeviceInfo = models.DecodeDeviceInfo(deviceInfo)
	return user, nil
}

// CreateUser inserts a new user. Username must already be normalized to
// lowercase. Email and passwordHash may be empty for guest accounts.
func (r *UserRepository) CreateUser(username, email, passwordHash, phoneNumber string, deviceInfo []string) (*models.User, error) {
	query := `
		INSERT INTO users (username, email, password_hash, phone_number, last_device_info)
		VALUES (?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query,
		username, nullIfEmpty(email), nullIfEmpty(passwordHash), nullIfEmpty(phoneNumber),
		models.EncodeDeviceInfo(deviceInfo))
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return r.GetUserByID(id)
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(id int64) (*models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE id = ?"
	return scanUser(r.db.QueryRow(query, id))
}

// GetUserByUsername retrieves a user by normalized username
func (r *UserRepository) GetUserByUsername(username string) (*models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE username = ?"
	return scanUser(r.db.QueryRow(query, username))
}

// GetUserByEmail retrieves a user by email address
func (r *UserRepository) GetUserByEmail(email string) (*models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE email = ?"
	return scanUser(r.db.QueryRow(query, email))
}

// GetUserByUsernameOrEmail resolves a login identifier against both columns
func (r *UserRepository) GetUserByUsernameOrEmail(identifier string) (*models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE username = ? OR email = ?"
	return scanUser(r.db.QueryRow(query, identifier, identifier))
}

// GetUserByOAuth retrieves a user by OAuth provider and subject
func (r *UserRepository) GetUserByOAuth(provider, subject string) (*models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE oauth_provider = ? AND oauth_subject = ?"
	return scanUser(r.db.QueryRow(query, provider, subject))
}

// LinkOAuthProvider links an existing user to an OAuth provider
func (r *UserRepository) LinkOAuthProvider(userID int64, provider, subject string) error {
	query := `
		UPDATE users
		SET oauth_provider = ?, oauth_subject = ?
		WHERE id = ?
		AND (oauth_provider IS NULL OR oauth_provider = '')
	`
	result, err := r.db.Exec(query, provider, subject, userID)
	if err != nil {
		return fmt.Errorf("failed to link oauth provider: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read link result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("oauth provider already linked")
	}
	return nil
}

// GetAllUsers retrieves all users, newest first
func (r *UserRepository) GetAllUsers() ([]models.User, error) {
	query := "SELECT " + userColumns + " FROM users ORDER BY created_at DESC, id DESC"
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		var deviceInfo string
		if err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.FullName,
			&user.Email,
			&user.PasswordHash,
			&user.PhoneNumber,
			&user.OAuthProvider,
			&user.OAuthSubject,
			&deviceInfo,
			&user.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		user.DeviceInfo = models.DecodeDeviceInfo(deviceInfo)
		users = append(users, user)
	}
	return users, rows.Err()
}

// ClaimProfile attaches an email and display name to an account
func (r *UserRepository) ClaimProfile(userID int64, email, fullName string) error {
	query := "UPDATE users SET email = ?, full_name = ? WHERE id = ?"
	if _, err := r.db.Exec(query, email, fullName, userID); err != nil {
		return fmt.Errorf("failed to claim profile: %w", err)
	}
	return nil
}

// UpdatePhoneNumber sets a user's phone number
func (r *UserRepository) UpdatePhoneNumber(userID int64, phoneNumber string) error {
	query := "UPDATE users SET phone_number = ? WHERE id = ?"
	if _, err := r.db.Exec(query, phoneNumber, userID); err != nil {
		return fmt.Errorf("failed to update phone number: %w", err)
	}
	return nil
}

// CountUsers returns the total number of users
func (r *UserRepository) CountUsers() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

// DeleteUserCascade removes a user together with their attempts and stats
// in one transaction, so a crash cannot leave orphaned rows.
func (r *UserRepository) DeleteUserCascade(userID int64) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin delete transaction: %w", err)
	}
	defer tx.Rollback()

	if err := deleteUserRows(tx, userID); err != nil {
		return err
	}
	return tx.Commit()
}

// deleteUserRows takes any executor so it can run inside the cascade
// transaction or against the live handle.
func deleteUserRows(q database.DBTX, userID int64) error {
	if _, err := q.Exec("DELETE FROM attempts WHERE user_id = ?", userID); err != nil {
		return fmt.Errorf("failed to delete user attempts: %w", err)
	}
	if _, err := q.Exec("DELETE FROM game_stats WHERE user_id = ?", userID); err != nil {
		return fmt.Errorf("failed to delete user stats: %w", err)
	}
	if _, err := q.Exec("DELETE FROM users WHERE id = ?", userID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
