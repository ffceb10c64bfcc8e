package shared

import (
	"fmt"
	"strconv"
	"strings"

	"innkeep/shared/failure"
)

// BuildCacheKey joins key segments with the cache namespace separator.
func BuildCacheKey(parts ...string) string {
	return strings.Join(parts, ":")
}

// ConvertStringToInt64 parses a numeric identifier from a path or query
// parameter. A malformed value is a client error.
func ConvertStringToInt64(value string) (int64, error) {
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, failure.BadRequest(fmt.Errorf("invalid numeric identifier %q", value))
	}

	return parsed, nil
}
