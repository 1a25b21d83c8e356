package entity

import (
	"testing"
	"time"
)

func addr(street string, deleted bool) Address {
	return Address{Street: street, City: "Oslo", Country: "NO", IsDeleted: deleted}
}

func TestUser_ActiveAddresses_SkipsDeleted(t *testing.T) {
	u := &User{Addresses: []Address{
		addr("First 1", false),
		addr("Second 2", true),
		addr("Third 3", false),
	}}

	active := u.ActiveAddresses()
	if len(active) != 2 {
		t.Fatalf("ActiveAddresses() len = %d, want 2", len(active))
	}
	if active[0].Street != "First 1" || active[1].Street != "Third 3" {
		t.Errorf("ActiveAddresses() = [%s %s], want [First 1, Third 3]", active[0].Street, active[1].Street)
	}
}

func TestUser_StorageIndexOfActive(t *testing.T) {
	u := &User{Addresses: []Address{
		addr("a", true),
		addr("b", false),
		addr("c", true),
		addr("d", false),
		addr("e", false),
	}}

	cases := []struct {
		activeIdx int
		want      int
	}{
		{0, 1},
		{1, 3},
		{2, 4},
		{3, -1},
		{-1, -1},
	}
	for _, c := range cases {
		if got := u.StorageIndexOfActive(c.activeIdx); got != c.want {
			t.Errorf("StorageIndexOfActive(%d) = %d, want %d", c.activeIdx, got, c.want)
		}
	}
}

func TestUser_CanRefer(t *testing.T) {
	now := time.Now()
	cases := []struct {
		name string
		user User
		want bool
	}{
		{"active", User{Status: AccountStatus{IsActive: true}}, true},
		{"banned", User{Status: AccountStatus{IsActive: true, IsBanned: true}}, false},
		{"inactive", User{Status: AccountStatus{IsActive: false}}, false},
		{"deleted", User{Status: AccountStatus{IsActive: true}, DeletedAt: &now}, false},
	}
	for _, c := range cases {
		if got := c.user.CanRefer(); got != c.want {
			t.Errorf("%s: CanRefer() = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestSession_IsExpired(t *testing.T) {
	now := time.Now()
	s := Session{CreatedAt: now.Add(-SessionLifetime - time.Hour), ExpiresAt: now.Add(-time.Hour)}
	if !s.IsExpired(now) {
		t.Error("IsExpired() = false for session past expiry")
	}
	fresh := Session{CreatedAt: now, ExpiresAt: now.Add(SessionLifetime)}
	if fresh.IsExpired(now) {
		t.Error("IsExpired() = true for fresh session")
	}
}
