package entity

import (
	"testing"
)

func TestContactStatus_CanTransition(t *testing.T) {
	cases := []struct {
		from ContactStatus
		to   ContactStatus
		want bool
	}{
		{ContactPending, ContactInProgress, true},
		{ContactPending, ContactResolved, true},
		{ContactInProgress, ContactResolved, true},
		{ContactInProgress, ContactPending, false},
		{ContactResolved, ContactClosed, true},
		{ContactResolved, ContactInProgress, false},
		{ContactClosed, ContactResolved, false},
	}
	for _, c := range cases {
		if got := c.from.CanTransition(c.to); got != c.want {
			t.Errorf("CanTransition(%s -> %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}
