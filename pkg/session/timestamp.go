package session

import "strings"

// FormatTimestamp cuts the clock time out of an ISO-8601 timestamp: the text
// after the first 'T' up to the next '.'. No time zone conversion happens.
// Input without a 'T' yields "".
func FormatTimestamp(timestamp string) string {
	_, timePart, found := strings.Cut(timestamp, "T")
	if !found {
		return ""
	}
	clock, _, _ := strings.Cut(timePart, ".")
	return clock
}
