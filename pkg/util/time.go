package util

import (
	"strconv"
	"strings"
	"time"
)

// ParseDuration parses durations accepting a "d" day suffix on top of
// the standard units, e.g. "7d", "30m", "1h30m".
// ParseDuration 在标准单位之外支持 "d" 天后缀
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "d") {
		days, err := strconv.ParseFloat(strings.TrimSuffix(s, "d"), 64)
		if err != nil {
			return 0, err
		}
		return time.Duration(days * 24 * float64(time.Hour)), nil
	}
	return time.ParseDuration(s)
}
