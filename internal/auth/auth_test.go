package auth

import "testing"

func TestIsAdmin(t *testing.T) {
	s := New([]int64{10, 20})

	if !s.IsAdmin(10) || !s.IsAdmin(20) {
		t.Fatalf("configured admins not recognized")
	}
	if s.IsAdmin(30) {
		t.Fatalf("unconfigured id recognized as admin")
	}

	empty := New(nil)
	if empty.IsAdmin(10) {
		t.Fatalf("empty allow-list should admit nobody")
	}
}
