package memory

import (
	"context"
	"sync"
	"time"
)

// Denylist is an in-process token denylist. Entries are dropped lazily once
// their token would have expired anyway.
type Denylist struct {
	mu      sync.Mutex
	now     func() time.Time
	revoked map[string]time.Time
}

// DenylistOption customises a Denylist.
type DenylistOption func(*Denylist)

// WithDenylistClock sets the time source used to judge expiry. It should be
// the clock the tokens were issued with.
func WithDenylistClock(now func() time.Time) DenylistOption {
	return func(d *Denylist) {
		if now != nil {
			d.now = now
		}
	}
}

// NewDenylist returns an empty denylist.
func NewDenylist(opts ...DenylistOption) *Denylist {
	d := &Denylist{now: time.Now, revoked: map[string]time.Time{}}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Revoke blocks tokenID until the given time.
func (d *Denylist) Revoke(_ context.Context, tokenID string, until time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if until.After(d.now()) {
		d.revoked[tokenID] = until
	}
	return nil
}

// IsRevoked reports whether tokenID is currently blocked.
func (d *Denylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	until, ok := d.revoked[tokenID]
	if !ok {
		return false, nil
	}
	if !until.After(d.now()) {
		delete(d.revoked, tokenID)
		return false, nil
	}
	return true, nil
}
