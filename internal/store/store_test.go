package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return s
}

func TestEnsureUserIdempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.EnsureUser(ctx, 42, "Alice"); err != nil {
		t.Fatalf("ensure user: %v", err)
	}
	if err := s.EnsureUser(ctx, 42, "Bob"); err != nil {
		t.Fatalf("repeat ensure user: %v", err)
	}

	var u User
	if err := s.db.First(&u, "id = ?", int64(42)).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	if u.Name != "Alice" {
		t.Fatalf("name overwritten on repeat insert: %q", u.Name)
	}
	if u.Banned {
		t.Fatalf("new user should not be banned")
	}

	n, err := s.TotalUsers(ctx)
	if err != nil {
		t.Fatalf("total users: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 user, got %d", n)
	}
}

func TestIsBannedDefaultsAndUnknown(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	banned, err := s.IsBanned(ctx, 999)
	if err != nil {
		t.Fatalf("is banned (unknown): %v", err)
	}
	if banned {
		t.Fatalf("unknown user treated as banned")
	}

	if err := s.EnsureUser(ctx, 1, "U"); err != nil {
		t.Fatalf("ensure user: %v", err)
	}
	banned, err = s.IsBanned(ctx, 1)
	if err != nil {
		t.Fatalf("is banned: %v", err)
	}
	if banned {
		t.Fatalf("never-banned user reported banned")
	}
}

func TestSetBanRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.EnsureUser(ctx, 7, "U"); err != nil {
		t.Fatalf("ensure user: %v", err)
	}
	if err := s.SetBan(ctx, 7, true); err != nil {
		t.Fatalf("set ban: %v", err)
	}
	banned, _ := s.IsBanned(ctx, 7)
	if !banned {
		t.Fatalf("ban not applied")
	}
	if err := s.SetBan(ctx, 7, false); err != nil {
		t.Fatalf("unban: %v", err)
	}
	banned, _ = s.IsBanned(ctx, 7)
	if banned {
		t.Fatalf("ban round-trip left user banned")
	}

	// nonexistent id affects zero rows silently
	if err := s.SetBan(ctx, 12345, true); err != nil {
		t.Fatalf("set ban on unknown id should be silent: %v", err)
	}
}

func TestHistoryLimitAndOrder(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		role := RoleUser
		if i%2 == 1 {
			role = RoleModel
		}
		if err := s.SaveMessage(ctx, 5, role, fmt.Sprintf("msg-%d", i)); err != nil {
			t.Fatalf("save message %d: %v", i, err)
		}
	}

	msgs, err := s.History(ctx, 5, 8)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(msgs) != 8 {
		t.Fatalf("expected 8 messages, got %d", len(msgs))
	}
	// newest 8 of 12, reordered oldest-first: msg-4 .. msg-11
	for i, m := range msgs {
		want := fmt.Sprintf("msg-%d", i+4)
		if m.Content != want {
			t.Fatalf("history[%d] = %q, want %q", i, m.Content, want)
		}
	}
	if msgs[0].Role != RoleUser || msgs[1].Role != RoleModel {
		t.Fatalf("unexpected roles: %q %q", msgs[0].Role, msgs[1].Role)
	}
}

func TestHistoryUnknownUserEmpty(t *testing.T) {
	s := openTestStore(t)

	msgs, err := s.History(context.Background(), 404, 8)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(msgs) != 0 {
		t.Fatalf("expected empty history, got %d entries", len(msgs))
	}
}
