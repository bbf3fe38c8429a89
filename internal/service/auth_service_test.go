package service

import (
	"errors"
	"testing"
	"time"

	"campuswordle/internal/token"
)

func newAuthService(t *testing.T, env *testEnv) *AuthService {
	t.Helper()
	tokens, err := token.NewManager("auth-service-test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	email, err := NewEmailService("", "", "", "")
	if err != nil {
		t.Fatalf("NewEmailService failed: %v", err)
	}
	return NewAuthService(env.users, env.stats, tokens, email)
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(t, env)

	result, err := auth.Register("Alice", "Alice@Example.edu", "secret-pass", "")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if result.User.Username != "alice" {
		t.Errorf("username = %s, want alice (lowercased)", result.User.Username)
	}
	if result.User.Email != "alice@example.edu" {
		t.Errorf("email = %s, want alice@example.edu (lowercased)", result.User.Email)
	}
	if result.Token == "" {
		t.Error("registration should issue a token")
	}
	if result.User.PasswordHash == "secret-pass" {
		t.Error("password must not be stored in plaintext")
	}

	// login by username
	login, err := auth.Login("alice", "secret-pass")
	if err != nil {
		t.Fatalf("Login by username failed: %v", err)
	}
	if login.User.ID != result.User.ID {
		t.Error("login returned a different user")
	}

	// login by email, mixed case
	if _, err := auth.Login("ALICE@example.edu", "secret-pass"); err != nil {
		t.Fatalf("Login by email failed: %v", err)
	}
}

func TestRegisterDuplicates(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(t, env)

	if _, err := auth.Register("alice", "alice@example.edu", "secret-pass", ""); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, err := auth.Register("ALICE", "other@example.edu", "secret-pass", "")
	if !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("duplicate username error = %v, want ErrUsernameTaken", err)
	}

	_, err = auth.Register("bob", "alice@example.edu", "secret-pass", "")
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("duplicate email error = %v, want ErrEmailTaken", err)
	}
}

func TestLoginFailuresAreUniform(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(t, env)

	auth.Register("alice", "alice@example.edu", "secret-pass", "")

	// wrong password and unknown user produce the same error
	_, wrongPass := auth.Login("alice", "not-the-password")
	_, noUser := auth.Login("mallory", "whatever")
	if !errors.Is(wrongPass, ErrInvalidCredentials) {
		t.Errorf("wrong password error = %v, want ErrInvalidCredentials", wrongPass)
	}
	if !errors.Is(noUser, ErrInvalidCredentials) {
		t.Errorf("unknown user error = %v, want ErrInvalidCredentials", noUser)
	}
	if wrongPass.Error() != noUser.Error() {
		t.Error("login failures should not reveal whether the account exists")
	}
}

func TestLoginRejectsGuestWithEmptyPassword(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(t, env)

	guest, err := auth.EnsureGuest(nil)
	if err != nil {
		t.Fatalf("EnsureGuest failed: %v", err)
	}

	_, err = auth.Login(guest.User.Username, "")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("guest password login error = %v, want ErrInvalidCredentials", err)
	}
}

func TestEnsureGuest(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(t, env)

	result, err := auth.EnsureGuest([]string{"ios", "17"})
	if err != nil {
		t.Fatalf("EnsureGuest failed: %v", err)
	}
	if result.Token == "" {
		t.Error("guest creation should issue a token")
	}
	if !result.User.IsGuest() {
		t.Error("new guest should report IsGuest")
	}

	stored, err := env.users.GetUserByID(result.User.ID)
	if err != nil {
		t.Fatalf("fetch guest failed: %v", err)
	}
	if len(stored.DeviceInfo) != 2 {
		t.Errorf("device info = %v, want 2 entries", stored.DeviceInfo)
	}
}

func TestClaimProfile(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(t, env)

	guest, err := auth.EnsureGuest(nil)
	if err != nil {
		t.Fatalf("EnsureGuest failed: %v", err)
	}

	claimed, err := auth.ClaimProfile(guest.User.ID, "Student@Example.edu", "Casey Jones")
	if err != nil {
		t.Fatalf("ClaimProfile failed: %v", err)
	}
	if claimed.Email != "student@example.edu" {
		t.Errorf("email = %s, want student@example.edu", claimed.Email)
	}
	if claimed.FullName != "Casey Jones" {
		t.Errorf("full name = %s, want Casey Jones", claimed.FullName)
	}
	if claimed.Username != guest.User.Username {
		t.Error("claiming should keep the guest username")
	}
}

func TestClaimProfileEmailConflict(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(t, env)

	auth.Register("alice", "taken@example.edu", "secret-pass", "")
	guest, _ := auth.EnsureGuest(nil)

	_, err := auth.ClaimProfile(guest.User.ID, "taken@example.edu", "")
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("claim with taken email error = %v, want ErrEmailTaken", err)
	}

	// re-claiming your own email is fine
	claimed, err := auth.ClaimProfile(guest.User.ID, "mine@example.edu", "")
	if err != nil {
		t.Fatalf("first claim failed: %v", err)
	}
	if _, err := auth.ClaimProfile(claimed.ID, "mine@example.edu", "New Name"); err != nil {
		t.Errorf("re-claiming own email failed: %v", err)
	}
}

func TestUpdatePhoneNumber(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(t, env)

	result, _ := auth.Register("alice", "alice@example.edu", "secret-pass", "")

	updated, err := auth.UpdatePhoneNumber(result.User.ID, "+1 216 555 0100")
	if err != nil {
		t.Fatalf("UpdatePhoneNumber failed: %v", err)
	}
	if updated.PhoneNumber != "+1 216 555 0100" {
		t.Errorf("phone = %s", updated.PhoneNumber)
	}

	cleared, err := auth.UpdatePhoneNumber(result.User.ID, "")
	if err != nil {
		t.Fatalf("clearing phone failed: %v", err)
	}
	if cleared.PhoneNumber != "" {
		t.Errorf("cleared phone = %s, want empty", cleared.PhoneNumber)
	}
}

func TestOAuthLogin(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(t, env)

	// first sign-in creates an account
	first, err := auth.OAuthLogin("google", "subject-123", "casey@example.edu", "Casey Jones")
	if err != nil {
		t.Fatalf("OAuthLogin failed: %v", err)
	}
	if first.User.Email != "casey@example.edu" {
		t.Errorf("email = %s", first.User.Email)
	}

	// same subject signs in again, no duplicate account
	second, err := auth.OAuthLogin("google", "subject-123", "casey@example.edu", "Casey Jones")
	if err != nil {
		t.Fatalf("repeat OAuthLogin failed: %v", err)
	}
	if second.User.ID != first.User.ID {
		t.Error("repeat sign-in should find the same account")
	}
}

func TestOAuthLoginLinksByEmail(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(t, env)

	registered, _ := auth.Register("alice", "alice@example.edu", "secret-pass", "")

	linked, err := auth.OAuthLogin("google", "subject-999", "alice@example.edu", "Alice")
	if err != nil {
		t.Fatalf("OAuthLogin failed: %v", err)
	}
	if linked.User.ID != registered.User.ID {
		t.Error("provider sign-in with a known email should link, not duplicate")
	}
}
