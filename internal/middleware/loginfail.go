package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// FailedLoginCache counts failed login attempts per client IP. Entries expire
// ten minutes after the last write, so a quiet IP is forgiven automatically.
type FailedLoginCache struct {
	cache *expirable.LRU[string, int]
	max   int
}

func NewFailedLoginCache() *FailedLoginCache {
	return &FailedLoginCache{
		cache: expirable.NewLRU[string, int](4096, nil, 10*time.Minute),
		max:   5,
	}
}

func (f *FailedLoginCache) Record(ip string) {
	n, _ := f.cache.Get(ip)
	f.cache.Add(ip, n+1)
}

func (f *FailedLoginCache) Reset(ip string) {
	f.cache.Remove(ip)
}

func (f *FailedLoginCache) Blocked(ip string) bool {
	n, _ := f.cache.Get(ip)
	return n >= f.max
}

// BlockFailedLogins rejects login attempts from IPs that have exceeded the
// failed-attempt budget. The login handler records and resets attempts.
func BlockFailedLogins(cache *FailedLoginCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cache.Blocked(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"status":  http.StatusTooManyRequests,
				"message": "Too many failed login attempts! Please try again after 10 minutes.",
			})
			return
		}
		c.Next()
	}
}
