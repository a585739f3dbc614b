// ABOUTME: Time display helpers for session durations and dates.
// ABOUTME: Relative dates compare local midnights, not raw 24h windows.
package models

import (
	"fmt"
	"time"
)

// FormatDuration renders a second count as mm:ss, or h:mm:ss past an hour.
func FormatDuration(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// FormatSessionDate renders a session start timestamp relative to now:
// "Today", "Yesterday", or "N days ago". Both instants are truncated to
// their local midnight so a session at 23:59 yesterday is still
// "Yesterday" one minute later.
func FormatSessionDate(startTime int64, now time.Time) string {
	session := time.Unix(startTime, 0).In(now.Location())
	days := int(localMidnight(now).Sub(localMidnight(session)).Hours() / 24)
	switch days {
	case 0:
		return "Today"
	case 1:
		return "Yesterday"
	default:
		return fmt.Sprintf("%d days ago", days)
	}
}

func localMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
