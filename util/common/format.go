package common

import (
	"fmt"
	"time"
)

// FormatRelativeTime renders a post timestamp the way the site displays it:
// "たった今" within the hour, then hours, then days.
func FormatRelativeTime(t time.Time) string {
	diff := time.Since(t)
	hours := int(diff.Hours())
	if hours < 1 {
		return "たった今"
	}
	if hours < 24 {
		return fmt.Sprintf("%d時間前", hours)
	}
	return fmt.Sprintf("%d日前", hours/24)
}
