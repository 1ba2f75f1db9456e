package repository

import (
	"fmt"
	"time"
)

// ParseTime parses a timestamp string in "2006-01-02 15:04:05", "2006-01-02"
// or RFC3339 format. SQLite hands back whichever form the writer used.
func ParseTime(str string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, str); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("failed to parse timestamp %q", str)
}
