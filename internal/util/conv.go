package util

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// MustParseUint parses a decimal id, returning 0 when it is malformed.
func MustParseUint(s string) uint {
	id, _ := strconv.ParseUint(s, 10, 32)
	return uint(id)
}

// ParseIntDefault parses an optional query integer with a fallback.
func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// ParseUintParam reads a numeric path parameter. On a malformed value it
// writes the 400 response itself; callers just return on error.
func ParseUintParam(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		BadRequest(c, fmt.Sprintf("invalid %s: %q", name, raw))
		return 0, err
	}
	return uint(id), nil
}
