package service

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"campuswordle/internal/guestname"
	"campuswordle/internal/models"
	"campuswordle/internal/repository"
	"campuswordle/internal/security"
	"campuswordle/internal/token"
	"campuswordle/internal/validation"
)

var (
	// ErrUsernameTaken indicates the username is already registered
	ErrUsernameTaken = errors.New("username is already taken")
	// ErrEmailTaken indicates the email belongs to another account
	ErrEmailTaken = errors.New("email is already registered")
	// ErrInvalidCredentials is the single message for any bad login, so a
	// caller cannot probe which usernames exist
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUserNotFound indicates an operation against a missing user
	ErrUserNotFound = errors.New("user not found")
)

const maxGuestNameRetries = 5

// AuthService handles registration, login and profile management
type AuthService struct {
	userRepo  *repository.UserRepository
	statsRepo *repository.StatsRepository
	tokens    *token.Manager
	email     *EmailService
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo *repository.UserRepository, statsRepo *repository.StatsRepository, tokens *token.Manager, email *EmailService) *AuthService {
	return &AuthService{userRepo: userRepo, statsRepo: statsRepo, tokens: tokens, email: email}
}

// AuthResult pairs a user with a freshly issued token
type AuthResult struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// Register creates a new account. Usernames are normalized to lowercase
// before the uniqueness check so "Alice" and "alice" are the same account.
func (s *AuthService) Register(username, email, password, phoneNumber string) (*AuthResult, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	email = strings.ToLower(strings.TrimSpace(email))

	if err := validation.ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, err
	}
	if err := validation.ValidatePhone(phoneNumber); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetUserByUsername(username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}
	existing, err = s.userRepo.GetUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user, err := s.userRepo.CreateUser(username, email, hash, phoneNumber, nil)
	if err != nil {
		return nil, err
	}
	s.initStats(user.ID)
	return s.issue(user)
}

// Login authenticates by username or email. All failure paths return the
// same error.
func (s *AuthService) Login(identifier, password string) (*AuthResult, error) {
	identifier = strings.ToLower(strings.TrimSpace(identifier))
	user, err := s.userRepo.GetUserByUsernameOrEmail(identifier)
	if err != nil {
		return nil, err
	}
	if user == nil || user.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if !security.CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return s.issue(user)
}

// EnsureGuest creates a passwordless account with a generated animal name
// and returns it with a token. Name collisions retry with a numeric suffix
// a few times before giving up.
func (s *AuthService) EnsureGuest(deviceInfo []string) (*AuthResult, error) {
	name := guestname.Generate()
	for i := 0; i < maxGuestNameRetries; i++ {
		candidate := name
		if i > 0 {
			candidate = guestname.WithSuffix(name)
		}
		existing, err := s.userRepo.GetUserByUsername(candidate)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			continue
		}
		user, err := s.userRepo.CreateUser(candidate, "", "", "", deviceInfo)
		if err != nil {
			return nil, err
		}
		s.initStats(user.ID)
		return s.issue(user)
	}
	return nil, fmt.Errorf("failed to find a free guest name after %d tries", maxGuestNameRetries)
}

// ClaimProfile attaches an email and display name to an account, typically
// upgrading a guest. The confirmation email is best-effort.
func (s *AuthService) ClaimProfile(userID int64, email, fullName string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	owner, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if owner != nil && owner.ID != userID {
		return nil, ErrEmailTaken
	}

	if err := s.userRepo.ClaimProfile(userID, email, strings.TrimSpace(fullName)); err != nil {
		return nil, err
	}
	updated, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if s.email != nil {
		if err := s.email.SendProfileClaimed(email, updated.Username); err != nil {
			log.Printf("Failed to send claim confirmation to %s: %v", email, err)
		}
	}
	return updated, nil
}

// UpdatePhoneNumber sets or clears the user's phone number
func (s *AuthService) UpdatePhoneNumber(userID int64, phoneNumber string) (*models.User, error) {
	phoneNumber = strings.TrimSpace(phoneNumber)
	if err := validation.ValidatePhone(phoneNumber); err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if err := s.userRepo.UpdatePhoneNumber(userID, phoneNumber); err != nil {
		return nil, err
	}
	return s.userRepo.GetUserByID(userID)
}

// OAuthLogin finds or creates the account for an external identity. An
// existing account with the same email gets the provider linked rather than
// a duplicate account.
func (s *AuthService) OAuthLogin(provider, subject, email, fullName string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetUserByOAuth(provider, subject)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return s.issue(user)
	}

	if email != "" {
		user, err = s.userRepo.GetUserByEmail(email)
		if err != nil {
			return nil, err
		}
		if user != nil {
			if err := s.userRepo.LinkOAuthProvider(user.ID, provider, subject); err != nil {
				return nil, err
			}
			return s.issue(user)
		}
	}

	username, err := s.oauthUsername(email)
	if err != nil {
		return nil, err
	}
	user, err = s.userRepo.CreateUser(username, email, "", "", nil)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.LinkOAuthProvider(user.ID, provider, subject); err != nil {
		return nil, err
	}
	if fullName != "" {
		if err := s.userRepo.ClaimProfile(user.ID, email, fullName); err != nil {
			log.Printf("Failed to store display name for user %d: %v", user.ID, err)
		}
	}
	s.initStats(user.ID)
	user, err = s.userRepo.GetUserByID(user.ID)
	if err != nil {
		return nil, err
	}
	return s.issue(user)
}

// GetUser returns the user with the given ID
func (s *AuthService) GetUser(userID int64) (*models.User, error) {
	return s.userRepo.GetUserByID(userID)
}

func (s *AuthService) issue(user *models.User) (*AuthResult, error) {
	tokenString, err := s.tokens.IssueUser(user.ID, user.Username, user.Email, user.PhoneNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &AuthResult{User: user, Token: tokenString}, nil
}

func (s *AuthService) initStats(userID int64) {
	if err := s.statsRepo.InitStats(userID); err != nil {
		log.Printf("Failed to initialize game stats for user %d: %v", userID, err)
	}
}

// oauthUsername derives a free username from an email local part, falling
// back to a guest-style name.
func (s *AuthService) oauthUsername(email string) (string, error) {
	base := ""
	if at := strings.Index(email, "@"); at > 0 {
		base = strings.ToLower(email[:at])
		if validation.ValidateUsername(base) != nil {
			base = ""
		}
	}
	if base == "" {
		base = guestname.Generate()
	}
	for i := 0; i < maxGuestNameRetries; i++ {
		candidate := base
		if i > 0 {
			candidate = guestname.WithSuffix(base)
		}
		existing, err := s.userRepo.GetUserByUsername(candidate)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("failed to find a free username for %s", email)
}
