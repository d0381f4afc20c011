package entity

import "time"

// DeletionRecord is attached to soft-deleted rows. A nil record means the row is active.
type DeletionRecord struct {
	At time.Time
	By string
}

func NewDeletionRecord(at time.Time, by string) *DeletionRecord {
	return &DeletionRecord{At: at, By: by}
}
