// Package validation provides input validation helpers for the API.
package validation

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// MaxRequestSize is the maximum request body size (64KB). Evaluation
// requests are tiny; anything bigger is malformed or hostile.
const MaxRequestSize = 64 << 10

// MaxIDLength bounds opaque identifiers accepted in requests.
const MaxIDLength = 128

// RequestSizeMiddleware limits request body size.
func RequestSizeMiddleware(maxSize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)
		c.Next()
	}
}

// SanitizeID trims whitespace, strips null bytes, and bounds the length of
// an opaque identifier.
func SanitizeID(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "\x00", "")
	if len(s) > MaxIDLength {
		s = s[:MaxIDLength]
	}
	return s
}
