package util

import "time"

// NowUTC returns the current UTC time truncated to the microsecond precision Postgres
// timestamps keep, so values read back compare equal to the ones written.
func NowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
