package deploy

import (
	"fmt"
	"strings"
	"time"
)

// The backend emits naive ISO-8601 timestamps in UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseTimestamp reads a backend timestamp. Naive values are taken as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}

// FormatTimestamp renders s as a French short date-time in loc, followed by how long
// ago it was relative to now. Empty input renders "N/A"; unparsable input is shown raw.
func FormatTimestamp(s string, now time.Time, loc *time.Location) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	t, err := ParseTimestamp(s)
	if err != nil {
		return s
	}
	if loc == nil {
		loc = time.Local
	}
	return fmt.Sprintf("%s (%s)", t.In(loc).Format("02/01/2006 15:04:05"), Relative(t, now))
}

// Relative renders the elapsed time between t and now in French.
func Relative(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "à l'instant"
	case d < time.Hour:
		return fmt.Sprintf("il y a %d min", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("il y a %d h", int(d.Hours()))
	default:
		days := int(d.Hours() / 24)
		if days == 1 {
			return "il y a 1 jour"
		}
		return fmt.Sprintf("il y a %d jours", days)
	}
}
