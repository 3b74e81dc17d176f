package memory

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// AccessCache holds resolved feature access maps per user so repeated
// status checks do not re-run the catalog join. Entries are short lived;
// payment verification invalidates the owner's entry explicitly.
type AccessCache struct {
	cache *cache.Cache
}

func NewAccessCache() *AccessCache {
	// Resolved maps expire after 2 minutes, purge sweep every 5 minutes
	c := cache.New(2*time.Minute, 5*time.Minute)
	return &AccessCache{
		cache: c,
	}
}

func (r *AccessCache) Save(userId uuid.UUID, accessMap map[string]string) {
	r.cache.Set(userId.String(), accessMap, cache.DefaultExpiration)
}

func (r *AccessCache) Get(userId uuid.UUID) (map[string]string, bool) {
	if x, found := r.cache.Get(userId.String()); found {
		return x.(map[string]string), true
	}
	return nil, false
}

func (r *AccessCache) Invalidate(userId uuid.UUID) {
	r.cache.Delete(userId.String())
}
