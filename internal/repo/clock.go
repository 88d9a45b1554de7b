package repo

import "time"

// Timestamps are stored as RFC 3339 UTC text so that the two supported
// dialects share one schema and lexical order matches chronological order.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}
