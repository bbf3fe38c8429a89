package token

import (
	"errors"
	"testing"
	"time"
)

const testSecret = "unit-test-secret-value"

func newTestManager(t *testing.T, ttl time.Duration) *Manager {
	t.Helper()
	m, err := NewManager(testSecret, ttl)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	return m
}

func TestNewManagerRejectsWeakSecret(t *testing.T) {
	if _, err := NewManager("short", time.Hour); err == nil {
		t.Error("short secret should be rejected")
	}
	if _, err := NewManager(testSecret, 0); err == nil {
		t.Error("zero ttl should be rejected")
	}
}

func TestIssueAndVerifyUser(t *testing.T) {
	m := newTestManager(t, time.Hour)

	signed, err := m.IssueUser(42, "alice", "alice@example.edu", "")
	if err != nil {
		t.Fatalf("IssueUser failed: %v", err)
	}

	claims, err := m.Verify(signed)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Username != "alice" {
		t.Errorf("Username = %s, want alice", claims.Username)
	}
	if claims.Role != RoleUser {
		t.Errorf("Role = %s, want %s", claims.Role, RoleUser)
	}
	if claims.ID == "" {
		t.Error("token should carry a unique ID")
	}
}

func TestVerifyRole(t *testing.T) {
	m := newTestManager(t, time.Hour)

	userToken, _ := m.IssueUser(1, "alice", "", "")
	adminToken, _ := m.IssueAdmin(1, "boss")

	if _, err := m.VerifyRole(userToken, RoleUser); err != nil {
		t.Errorf("user token failed user check: %v", err)
	}
	if _, err := m.VerifyRole(adminToken, RoleAdmin); err != nil {
		t.Errorf("admin token failed admin check: %v", err)
	}
	if _, err := m.VerifyRole(userToken, RoleAdmin); !errors.Is(err, ErrWrongRole) {
		t.Errorf("user token against admin check = %v, want ErrWrongRole", err)
	}
	if _, err := m.VerifyRole(adminToken, RoleUser); !errors.Is(err, ErrWrongRole) {
		t.Errorf("admin token against user check = %v, want ErrWrongRole", err)
	}
}

func TestVerifyRejectsTampered(t *testing.T) {
	m := newTestManager(t, time.Hour)

	signed, _ := m.IssueUser(1, "alice", "", "")
	tampered := signed[:len(signed)-2] + "xx"
	if _, err := m.Verify(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("tampered token error = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	m := newTestManager(t, time.Hour)
	other, err := NewManager("a-completely-different-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	signed, _ := m.IssueUser(1, "alice", "", "")
	if _, err := other.Verify(signed); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("cross-secret verify error = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	m := newTestManager(t, time.Millisecond)

	signed, _ := m.IssueUser(1, "alice", "", "")
	time.Sleep(5 * time.Millisecond)
	if _, err := m.Verify(signed); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expired token error = %v, want ErrInvalidToken", err)
	}
}

func TestTokenIDsAreUnique(t *testing.T) {
	m := newTestManager(t, time.Hour)

	first, _ := m.IssueUser(1, "alice", "", "")
	second, _ := m.IssueUser(1, "alice", "", "")
	if first == second {
		t.Error("two tokens for the same user should differ")
	}
}
