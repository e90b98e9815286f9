package catalog

import (
	"time"

	"coursebay/backend/models"

	gocache "github.com/patrickmn/go-cache"
)

const coursesKey = "courses"

// ResultCache holds the materialized course list for at most one TTL window.
// Every write path that touches course rows must call Invalidate after its
// write commits; staleness inside the TTL window is the only inconsistency
// the system tolerates.
type ResultCache struct {
	store *gocache.Cache
	ttl   time.Duration
}

func NewResultCache(ttl time.Duration) *ResultCache {
	return &ResultCache{
		store: gocache.New(ttl, ttl),
		ttl:   ttl,
	}
}

func (rc *ResultCache) Get() ([]models.Course, bool) {
	value, found := rc.store.Get(coursesKey)
	if !found {
		return nil, false
	}
	courses, ok := value.([]models.Course)
	return courses, ok
}

func (rc *ResultCache) Set(courses []models.Course) {
	rc.store.Set(coursesKey, courses, rc.ttl)
}

func (rc *ResultCache) Invalidate() {
	rc.store.Delete(coursesKey)
}
