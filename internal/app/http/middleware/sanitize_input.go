package middleware

import (
	"bytes"
	"encoding/json"
	"html"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
)

// SanitizeAndCleanInputMiddleware strips markup from every string in a JSON
// body, nested objects and arrays included.
func SanitizeAndCleanInputMiddleware() gin.HandlerFunc {
	policy := bluemonday.StrictPolicy()
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost &&
			c.Request.Method != http.MethodPut &&
			c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}

		buf, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid body"})
			return
		}
		var body interface{}
		dec := json.NewDecoder(bytes.NewReader(buf))
		dec.UseNumber()
		if err := dec.Decode(&body); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Malformed JSON"})
			return
		}

		newBody, err := json.Marshal(sanitizeValue(policy, body))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Malformed JSON"})
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(newBody))
		c.Request.ContentLength = int64(len(newBody))

		c.Next()
	}
}

func sanitizeValue(policy *bluemonday.Policy, v interface{}) interface{} {
	switch t := v.(type) {
	case string:
		return cleanString(policy, t)
	case map[string]interface{}:
		for k, inner := range t {
			t[k] = sanitizeValue(policy, inner)
		}
		return t
	case []interface{}:
		for i, inner := range t {
			t[i] = sanitizeValue(policy, inner)
		}
		return t
	default:
		return v
	}
}

// cleanString returns t as plain text with markup removed. Entities are
// decoded only when the decoded text would survive the policy unchanged, so
// encoded tags stay encoded.
func cleanString(policy *bluemonday.Policy, t string) string {
	clean := policy.Sanitize(t)
	plain := html.UnescapeString(clean)
	if html.UnescapeString(policy.Sanitize(plain)) != plain {
		return clean
	}
	return plain
}
