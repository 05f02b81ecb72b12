package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/enosgb/admarket-back/utils"

	"github.com/gin-gonic/gin"
)

type cachedResponse struct {
	Status int             `json:"status"`
	Body   json.RawMessage `json:"body"`
}

type bodyCapture struct {
	gin.ResponseWriter
	buf *bytes.Buffer
}

func (w *bodyCapture) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyCapture) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// CachePage caches whole GET responses under the shared ad-cache prefix,
// keyed by URL plus query string. Only 200s are stored; writes elsewhere
// clear the whole prefix via utils.InvalidateAdCache.
func CachePage(ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := utils.GetCache()
		if store == nil || c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := utils.AdCachePrefix + c.Request.URL.RequestURI()
		if raw, err := store.Get(c.Request.Context(), key); err == nil {
			var entry cachedResponse
			if json.Unmarshal([]byte(raw), &entry) == nil {
				c.Data(entry.Status, "application/json; charset=utf-8", entry.Body)
				c.Abort()
				return
			}
		}

		capture := &bodyCapture{ResponseWriter: c.Writer, buf: &bytes.Buffer{}}
		c.Writer = capture
		c.Next()

		if capture.Status() == http.StatusOK {
			entry, err := json.Marshal(cachedResponse{
				Status: capture.Status(),
				Body:   capture.buf.Bytes(),
			})
			if err != nil {
				return
			}
			if err := store.Set(c.Request.Context(), key, string(entry), ttl); err != nil {
				utils.LogError(err, "cache page store")
			}
		}
	}
}
