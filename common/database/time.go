package database

import (
	"database/sql"
)

// SqlNullTime2TimeStamp returns unix milliseconds, or 0 for NULL.
func SqlNullTime2TimeStamp(t sql.NullTime) int64 {
	if t.Valid {
		return t.Time.UnixMilli()
	}
	return 0
}
