package intent

import "time"

// timeNow is a package-level variable for testability. Tests can
// replace this to control time in assertions. Same pattern as the
// teacher's changes/time.go.
var timeNow = time.Now

// nowISO returns the current UTC time formatted as ISO-8601 ("Z" form),
// matching §3's created_at/updated_at format.
func nowISO() string {
	return timeNow().UTC().Format("2006-01-02T15:04:05Z07:00")
}
