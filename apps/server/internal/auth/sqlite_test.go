package auth

import (
	"strings"
	"testing"
	"time"
)

func newMemoryManager(t *testing.T) *SQLiteManager {
	t.Helper()
	m, err := NewSQLiteManager(":memory:", time.Hour)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func TestSQLiteRegisterLoginRoundTrip(t *testing.T) {
	m := newMemoryManager(t)

	id, token, err := m.Register("nottingham", "hunter22")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if id == 0 || token == "" {
		t.Fatalf("register returned id=%d token=%q", id, token)
	}

	gotID, username, ok := m.ResolveSession(token)
	if !ok || gotID != id || username != "nottingham" {
		t.Fatalf("resolve: ok=%v id=%d username=%q", ok, gotID, username)
	}

	if _, _, err := m.Register("Nottingham", "another6"); err != ErrUsernameTaken {
		t.Fatalf("case-insensitive duplicate: got %v", err)
	}

	loginID, loginToken, err := m.Login("nottingham", "hunter22")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if loginID != id || loginToken == token {
		t.Fatalf("login must mint a fresh session for the same account")
	}
	if _, _, err := m.Login("nottingham", "wrong-pass"); err != ErrInvalidCredentials {
		t.Fatalf("wrong password: got %v", err)
	}
}

func TestSQLiteGuestLogin(t *testing.T) {
	m := newMemoryManager(t)

	idA, tokenA, err := m.GuestLogin()
	if err != nil {
		t.Fatalf("guest login A: %v", err)
	}
	idB, _, err := m.GuestLogin()
	if err != nil {
		t.Fatalf("guest login B: %v", err)
	}
	if idA == idB {
		t.Fatalf("guest accounts must be distinct, both got %d", idA)
	}

	_, username, ok := m.ResolveSession(tokenA)
	if !ok || !strings.HasPrefix(username, "guest_") {
		t.Fatalf("guest session resolve: ok=%v username=%q", ok, username)
	}

	if _, _, err := m.Login(username, "anything6"); err != ErrInvalidCredentials {
		t.Fatalf("guest has no password identity: got %v", err)
	}
}

func TestSQLiteLogoutRevokesSession(t *testing.T) {
	m := newMemoryManager(t)

	_, token, err := m.GuestLogin()
	if err != nil {
		t.Fatalf("guest login: %v", err)
	}
	m.Logout(token)
	if _, _, ok := m.ResolveSession(token); ok {
		t.Fatalf("revoked session still resolves")
	}
}
