package entity

import (
	"testing"
	"time"
)

func TestReferralEntry_CanTransition(t *testing.T) {
	cases := []struct {
		from ReferralStatus
		to   ReferralStatus
		want bool
	}{
		{ReferralPending, ReferralVerified, true},
		{ReferralPending, ReferralCompleted, false},
		{ReferralVerified, ReferralCompleted, true},
		{ReferralVerified, ReferralPending, false},
		{ReferralCompleted, ReferralVerified, false},
		{ReferralCompleted, ReferralCompleted, false},
	}
	for _, c := range cases {
		e := ReferralEntry{Status: c.from}
		if got := e.CanTransition(c.to); got != c.want {
			t.Errorf("CanTransition(%s -> %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestReward_IsExpired(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	expired := Reward{ExpiresAt: &past}
	if !expired.IsExpired(now) {
		t.Error("IsExpired() = false for past expiry")
	}

	valid := Reward{ExpiresAt: &future}
	if valid.IsExpired(now) {
		t.Error("IsExpired() = true for future expiry")
	}

	noExpiry := Reward{}
	if noExpiry.IsExpired(now) {
		t.Error("IsExpired() = true for reward without expiry")
	}
}
