package service

import (
	"errors"
	"fmt"
	"strings"

	"campuswordle/internal/models"
	"campuswordle/internal/repository"
	"campuswordle/internal/security"
	"campuswordle/internal/token"
	"campuswordle/internal/validation"
)

var (
	// ErrAdminExists indicates setup was attempted after an admin was made
	ErrAdminExists = errors.New("admin account already exists")
	// ErrWordTaken indicates a puzzle with the same word already exists
	ErrWordTaken = errors.New("a puzzle with this word already exists")
)

// AdminService handles the admin console: account setup, puzzle management
// and user management.
type AdminService struct {
	adminRepo   *repository.AdminRepository
	userRepo    *repository.UserRepository
	puzzleRepo  *repository.PuzzleRepository
	attemptRepo *repository.AttemptRepository
	tokens      *token.Manager
}

// NewAdminService creates a new admin service
func NewAdminService(adminRepo *repository.AdminRepository, userRepo *repository.UserRepository, puzzleRepo *repository.PuzzleRepository, attemptRepo *repository.AttemptRepository, tokens *token.Manager) *AdminService {
	return &AdminService{
		adminRepo:   adminRepo,
		userRepo:    userRepo,
		puzzleRepo:  puzzleRepo,
		attemptRepo: attemptRepo,
		tokens:      tokens,
	}
}

// AdminAuthResult pairs an admin with a freshly issued token
type AdminAuthResult struct {
	Admin *models.Admin `json:"admin"`
	Token string        `json:"token"`
}

// CreateAdmin performs first-time console setup. It is rejected once any
// admin account exists, so the endpoint is only open on a fresh install.
func (s *AdminService) CreateAdmin(username, password string) (*AdminAuthResult, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if err := validation.ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, err
	}

	count, err := s.adminRepo.CountAdmins()
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrAdminExists
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	admin, err := s.adminRepo.CreateAdmin(username, hash)
	if err != nil {
		return nil, err
	}
	return s.issue(admin)
}

// LoginAdmin authenticates an admin account
func (s *AdminService) LoginAdmin(username, password string) (*AdminAuthResult, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	admin, err := s.adminRepo.GetAdminByUsername(username)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, ErrInvalidCredentials
	}
	if !security.CheckPassword(password, admin.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return s.issue(admin)
}

// CreatePuzzle validates and stores a new word. Words are kept uppercase
// and must be unique regardless of the case they were entered in.
func (s *AdminService) CreatePuzzle(word, hint string, active bool) (*models.Puzzle, error) {
	word = strings.ToUpper(strings.TrimSpace(word))
	if err := validation.ValidateWord(word); err != nil {
		return nil, err
	}
	existing, err := s.puzzleRepo.GetPuzzleByWord(word)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrWordTaken
	}
	return s.puzzleRepo.CreatePuzzle(word, strings.TrimSpace(hint), active)
}

// ListPuzzles returns every puzzle, words included, newest first
func (s *AdminService) ListPuzzles() ([]models.Puzzle, error) {
	return s.puzzleRepo.GetAllPuzzles()
}

// TogglePuzzle flips a puzzle's active flag and returns the updated puzzle
func (s *AdminService) TogglePuzzle(puzzleID int64) (*models.Puzzle, error) {
	puzzle, err := s.puzzleRepo.GetPuzzleByID(puzzleID)
	if err != nil {
		return nil, err
	}
	if puzzle == nil {
		return nil, ErrPuzzleNotFound
	}
	if _, err := s.puzzleRepo.SetActive(puzzleID, !puzzle.Active); err != nil {
		return nil, err
	}
	return s.puzzleRepo.GetPuzzleByID(puzzleID)
}

// DeletePuzzle removes a puzzle and every attempt against it in one
// transaction.
func (s *AdminService) DeletePuzzle(puzzleID int64) error {
	puzzle, err := s.puzzleRepo.GetPuzzleByID(puzzleID)
	if err != nil {
		return err
	}
	if puzzle == nil {
		return ErrPuzzleNotFound
	}
	return s.puzzleRepo.DeletePuzzleCascade(puzzleID)
}

// ListUsers returns every registered user
func (s *AdminService) ListUsers() ([]models.User, error) {
	return s.userRepo.GetAllUsers()
}

// DeleteUser removes a user with their attempts and stats in one
// transaction.
func (s *AdminService) DeleteUser(userID int64) error {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	return s.userRepo.DeleteUserCascade(userID)
}

// Overview is the admin dashboard headline counters
type Overview struct {
	TotalUsers        int `json:"totalUsers"`
	TotalPuzzles      int `json:"totalPuzzles"`
	ActivePuzzles     int `json:"activePuzzles"`
	TotalAttempts     int `json:"totalAttempts"`
	CompletedAttempts int `json:"completedAttempts"`
}

// GetOverview collects the dashboard counters
func (s *AdminService) GetOverview() (*Overview, error) {
	users, err := s.userRepo.CountUsers()
	if err != nil {
		return nil, err
	}
	puzzles, err := s.puzzleRepo.CountPuzzles()
	if err != nil {
		return nil, err
	}
	active, err := s.puzzleRepo.CountActivePuzzles()
	if err != nil {
		return nil, err
	}
	attempts, err := s.attemptRepo.CountAttempts()
	if err != nil {
		return nil, err
	}
	completed, err := s.attemptRepo.CountCompletedAttempts()
	if err != nil {
		return nil, err
	}
	return &Overview{
		TotalUsers:        users,
		TotalPuzzles:      puzzles,
		ActivePuzzles:     active,
		TotalAttempts:     attempts,
		CompletedAttempts: completed,
	}, nil
}

func (s *AdminService) issue(admin *models.Admin) (*AdminAuthResult, error) {
	tokenString, err := s.tokens.IssueAdmin(admin.ID, admin.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &AdminAuthResult{Admin: admin, Token: tokenString}, nil
}
