package entity

import "time"

type Category struct {
	ID          string
	Name        string
	Description string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	CreatedBy   string
	UpdatedBy   string
	Deletion    *DeletionRecord
}

func (c Category) IsDeleted() bool {
	return c.Deletion != nil
}

type CategoryFilter struct {
	Filter  string
	Sorting string
	Skip    int
	Limit   int
}
