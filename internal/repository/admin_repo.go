package repository

import (
	"database/sql"
	"fmt"

	"campuswordle/internal/database"
	"campuswordle/internal/models"
)

// AdminRepository handles database operations for admin accounts
type AdminRepository struct {
	db *database.DB
}

// NewAdminRepository creates a new admin repository
func NewAdminRepository(db *database.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// CreateAdmin inserts a new admin account
func (r *AdminRepository) CreateAdmin(username, passwordHash string) (*models.Admin, error) {
	query := "INSERT INTO admins (username, password_hash) VALUES (?, ?)"
	id, err := r.db.ExecReturningID(query, username, passwordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}
	return r.GetAdminByID(id)
}

// GetAdminByID returns the admin with the given ID, or nil if not found
func (r *AdminRepository) GetAdminByID(id int64) (*models.Admin, error) {
	query := "SELECT id, username, password_hash, created_at FROM admins WHERE id = ?"
	return scanAdmin(r.db.QueryRow(query, id))
}

// GetAdminByUsername returns the admin with the given username, or nil if
// not found.
func (r *AdminRepository) GetAdminByUsername(username string) (*models.Admin, error) {
	query := "SELECT id, username, password_hash, created_at FROM admins WHERE username = ?"
	return scanAdmin(r.db.QueryRow(query, username))
}

// CountAdmins returns the number of admin accounts
func (r *AdminRepository) CountAdmins() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM admins").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count admins: %w", err)
	}
	return count, nil
}

func scanAdmin(row *sql.Row) (*models.Admin, error) {
	admin := &models.Admin{}
	err := row.Scan(&admin.ID, &admin.Username, &admin.PasswordHash, &admin.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan admin: %w", err)
	}
	return admin, nil
}
