package feed

import (
	"strconv"
	"time"
)

const day = 24 * time.Hour

// FormatSince renders the coarsest whole unit elapsed between then and now:
// "3d", "5h", "12m" or "now".
func FormatSince(then, now time.Time) string {
	d := now.Sub(then)
	switch {
	case d >= day:
		return strconv.FormatInt(int64(d/day), 10) + "d"
	case d >= time.Hour:
		return strconv.FormatInt(int64(d/time.Hour), 10) + "h"
	case d >= time.Minute:
		return strconv.FormatInt(int64(d/time.Minute), 10) + "m"
	default:
		return "now"
	}
}
