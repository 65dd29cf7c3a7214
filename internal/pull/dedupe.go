package pull

import (
	"strconv"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// requestCache remembers accepted request ids per player for a limited time.
type requestCache struct {
	lru *expirable.LRU[string, time.Time]
}

func newRequestCache(size int, ttl time.Duration) *requestCache {
	return &requestCache{lru: expirable.NewLRU[string, time.Time](size, nil, ttl)}
}

func requestKey(playerID int64, requestID string) string {
	return strconv.FormatInt(playerID, 10) + ":" + requestID
}

// Seen reports whether the player already had a pull accepted under requestID.
func (c *requestCache) Seen(playerID int64, requestID string) bool {
	return c.lru.Contains(requestKey(playerID, requestID))
}

// Remember records an accepted pull.
func (c *requestCache) Remember(playerID int64, requestID string) {
	c.lru.Add(requestKey(playerID, requestID), time.Now())
}
