package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

const responseMetaKey = "response_meta"

// ResponseMeta starts a per-request metadata map for the response envelope.
func ResponseMeta() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(responseMetaKey, map[string]interface{}{"started_at": time.Now().UTC()})
		c.Next()
	}
}

// SetMeta records one metadata value for the current response.
func SetMeta(c *gin.Context, key string, value interface{}) {
	meta(c)[key] = value
}

// SetCacheHit records whether the response body came from cache.
func SetCacheHit(c *gin.Context, hit bool) {
	SetMeta(c, "cache_hit", hit)
}

// Meta returns the metadata collected so far with the elapsed processing time.
func Meta(c *gin.Context) map[string]interface{} {
	m := meta(c)
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		if k == "started_at" {
			if started, ok := v.(time.Time); ok {
				out["processing_time_ms"] = time.Since(started).Milliseconds()
			}
			continue
		}
		out[k] = v
	}
	return out
}

func meta(c *gin.Context) map[string]interface{} {
	if value, exists := c.Get(responseMetaKey); exists {
		if typed, ok := value.(map[string]interface{}); ok {
			return typed
		}
	}
	m := map[string]interface{}{}
	c.Set(responseMetaKey, m)
	return m
}
