package auth

import (
	"sync"
	"time"
)

// Revoker remembers signed-out sessions until their token expires.
type Revoker interface {
	Revoke(id string, until time.Time) error
	IsRevoked(id string) bool
}

type MemoryRevoker struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewMemoryRevoker() *MemoryRevoker {
	return &MemoryRevoker{
		revoked: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (r *MemoryRevoker) Revoke(id string, until time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for revoked_id, expires_at := range r.revoked {
		if !expires_at.After(now) {
			delete(r.revoked, revoked_id)
		}
	}

	r.revoked[id] = until

	return nil
}

func (r *MemoryRevoker) IsRevoked(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	until, found := r.revoked[id]

	return found && until.After(r.now())
}

// Cache is the subset of config.CacheService the revoker needs.
type Cache interface {
	GetKey(key string, src interface{}) error
	SetKey(key string, value interface{}, expiration time.Duration) error
}

// CacheRevoker keeps revocations in the shared cache so every API instance
// sees them.
type CacheRevoker struct {
	cache Cache
}

func NewCacheRevoker(cache Cache) *CacheRevoker {
	return &CacheRevoker{cache: cache}
}

func revokedKey(id string) string {
	return "rebate:sessions:revoked:" + id
}

func (r *CacheRevoker) Revoke(id string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}

	return r.cache.SetKey(revokedKey(id), true, ttl)
}

func (r *CacheRevoker) IsRevoked(id string) bool {
	var revoked bool
	if err := r.cache.GetKey(revokedKey(id), &revoked); err != nil {
		return false
	}

	return revoked
}
