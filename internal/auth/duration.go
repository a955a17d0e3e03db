package auth

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var compactDuration = regexp.MustCompile(`^\s*(\d+)\s*([smhdSMHD])\s*$`)

// ParseDuration parses the compact lifetime grammar used by the token
// settings: a positive integer followed by s, m, h or d ("15m", "7d").
func ParseDuration(v string) (time.Duration, error) {
	m := compactDuration.FindStringSubmatch(v)
	if m == nil {
		return 0, fmt.Errorf("invalid duration %q: want <n>[s|m|h|d]", v)
	}
	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", v, err)
	}

	var unit time.Duration
	switch strings.ToLower(m[2]) {
	case "s":
		unit = time.Second
	case "m":
		unit = time.Minute
	case "h":
		unit = time.Hour
	default:
		unit = 24 * time.Hour
	}
	if n == 0 {
		return 0, fmt.Errorf("invalid duration %q: must be positive", v)
	}
	if n > math.MaxInt64/int64(unit) {
		return 0, fmt.Errorf("invalid duration %q: out of range", v)
	}
	return time.Duration(n) * unit, nil
}
