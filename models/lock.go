package models

import "time"

// Lock is a time-bounded exclusive ownership record keyed by schedule id.
// Expiry, not release, is the recovery path when a holder crashes.
type Lock struct {
	Key                   string        `json:"key" db:"key"`
	Owner                 string        `json:"owner" db:"owner"`
	LastModifiedTimestamp time.Time     `json:"last_modified_timestamp" db:"lock_timestamp"`
	Ttl                   time.Duration `json:"ttl" db:"ttl"`
}
