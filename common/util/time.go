package util

import "database/sql"

const (
	TimeLayoutDatetimeN = "2006-01-02 15:04:05.9"
	TimeLayoutDatetime  = "2006-01-02 15:04:05"
)

// SqlNullTimeToTimeFormat renders a nullable timestamp, empty when unset.
func SqlNullTimeToTimeFormat(t sql.NullTime) string {
	if !t.Valid {
		return ""
	}
	return t.Time.Format(TimeLayoutDatetime)
}
