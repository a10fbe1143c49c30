package locks

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrHeld is returned when another holder owns the lease.
var ErrHeld = errors.New("lease held by another operator")

// Lease is the advisory edit-ownership token for a record. It is
// optimistic: expiry is enforced at read time and by the store TTL, not
// by hard mutual exclusion, so it guards UI editing sessions rather than
// guaranteeing correctness against concurrent writers.
type Lease struct {
	Key        string        `json:"key"`
	Holder     string        `json:"holder"`
	AcquiredAt time.Time     `json:"acquired_at"`
	TTL        time.Duration `json:"ttl"`
}

// ExpiresAt returns the wall-clock expiry of the lease.
func (l Lease) ExpiresAt() time.Time {
	return l.AcquiredAt.Add(l.TTL)
}

// Expired reports whether the lease has lapsed at the given instant.
func (l Lease) Expired(now time.Time) bool {
	return now.After(l.ExpiresAt())
}

// LeaseStore keeps advisory leases in Redis with a fixed TTL.
type LeaseStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewLeaseStore builds a store with the configured lease duration.
func NewLeaseStore(client *redis.Client, ttl time.Duration) *LeaseStore {
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	return &LeaseStore{client: client, ttl: ttl}
}

// Acquire takes the lease for holder. Re-acquiring an own unexpired
// lease refreshes it; a live lease by someone else returns ErrHeld.
func (s *LeaseStore) Acquire(ctx context.Context, key, holder string) (*Lease, error) {
	lease := Lease{
		Key:        key,
		Holder:     holder,
		AcquiredAt: time.Now(),
		TTL:        s.ttl,
	}
	payload, err := json.Marshal(lease)
	if err != nil {
		return nil, err
	}

	ok, err := s.client.SetNX(ctx, leaseKey(key), payload, s.ttl).Result()
	if err != nil {
		return nil, err
	}
	if ok {
		return &lease, nil
	}

	current, err := s.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if current != nil && current.Holder != holder && !current.Expired(time.Now()) {
		return nil, ErrHeld
	}

	// Expired or own lease: take over.
	if err := s.client.Set(ctx, leaseKey(key), payload, s.ttl).Err(); err != nil {
		return nil, err
	}
	return &lease, nil
}

// Get returns the current lease, or nil when none is held.
func (s *LeaseStore) Get(ctx context.Context, key string) (*Lease, error) {
	payload, err := s.client.Get(ctx, leaseKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var lease Lease
	if err := json.Unmarshal(payload, &lease); err != nil {
		return nil, err
	}
	return &lease, nil
}

// Release drops the lease if holder still owns it. Releasing a lease
// held by someone else is a no-op rather than an error.
func (s *LeaseStore) Release(ctx context.Context, key, holder string) error {
	current, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if current == nil || current.Holder != holder {
		return nil
	}
	return s.client.Del(ctx, leaseKey(key)).Err()
}

func leaseKey(key string) string {
	return "lease:" + key
}
