package format

import "time"

// DurationToMillis converts a duration to the on-disk millisecond count.
// Negative durations encode as 0.
func DurationToMillis(d time.Duration) uint64 {
	if d < 0 {
		return 0
	}
	return uint64(d / time.Millisecond)
}

// MillisToDuration converts an on-disk millisecond count to a duration.
func MillisToDuration(ms uint64) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// TimeToUnixNano converts t to the on-disk timestamp. The zero time encodes as 0.
func TimeToUnixNano(t time.Time) uint64 {
	if t.IsZero() {
		return 0
	}
	ns := t.UnixNano()
	if ns < 0 {
		return 0
	}
	return uint64(ns)
}

// UnixNanoToTime converts an on-disk timestamp to time.Time. 0 decodes as the zero time.
func UnixNanoToTime(v uint64) time.Time {
	if v == 0 {
		return time.Time{}
	}
	return time.Unix(0, int64(v)).UTC()
}
