package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAcceptsOffers(t *testing.T) {
	active := []RequestStatus{StatusPublished, StatusMatched, StatusQuoted, StatusDirectSent}
	for _, s := range active {
		assert.True(t, s.AcceptsOffers(), "status %s should accept offers", s)
	}
	terminal := []RequestStatus{StatusClosed, StatusCancelled, StatusExpired, RequestStatus("draft")}
	for _, s := range terminal {
		assert.False(t, s.AcceptsOffers(), "status %s should reject offers", s)
	}
}

func TestNextAfterOffer(t *testing.T) {
	tests := []struct {
		from    RequestStatus
		want    RequestStatus
		changed bool
	}{
		{StatusPublished, StatusQuoted, true},
		{StatusMatched, StatusQuoted, true},
		{StatusDirectSent, StatusQuoted, true},
		{StatusQuoted, StatusQuoted, false}, // idempotent, never applied twice
		{StatusClosed, StatusClosed, false},
		{StatusCancelled, StatusCancelled, false},
	}
	for _, tt := range tests {
		got, changed := tt.from.NextAfterOffer()
		assert.Equal(t, tt.want, got, "from %s", tt.from)
		assert.Equal(t, tt.changed, changed, "from %s", tt.from)
	}
}

func TestNextAfterOffer_Monotonic(t *testing.T) {
	// repeated offers can never regress the status
	s := StatusPublished
	next, _ := s.NextAfterOffer()
	for i := 0; i < 3; i++ {
		again, changed := next.NextAfterOffer()
		assert.Equal(t, StatusQuoted, again)
		assert.False(t, changed)
	}
}
