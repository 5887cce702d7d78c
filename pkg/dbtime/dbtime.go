package dbtime

import "time"

// Timestamps are stored in UTC so comparisons behave the same regardless
// of the server's local zone.

func DBNow() time.Time {
	return DBTime(time.Now())
}

func DBTime(t time.Time) time.Time {
	return t.UTC()
}
