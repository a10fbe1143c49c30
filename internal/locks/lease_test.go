package locks

import (
	"testing"
	"time"
)

func TestLeaseExpiry(t *testing.T) {
	acquired := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	lease := Lease{
		Key:        "shipment:abc",
		Holder:     "op-1",
		AcquiredAt: acquired,
		TTL:        2 * time.Minute,
	}

	wantExpiry := acquired.Add(2 * time.Minute)
	if !lease.ExpiresAt().Equal(wantExpiry) {
		t.Fatalf("ExpiresAt = %v, want %v", lease.ExpiresAt(), wantExpiry)
	}

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"before expiry", acquired.Add(time.Minute), false},
		{"at expiry", wantExpiry, false},
		{"after expiry", wantExpiry.Add(time.Second), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := lease.Expired(tt.now); got != tt.want {
				t.Fatalf("Expired(%v) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}
