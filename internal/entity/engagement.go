package entity

import "time"

type Like struct {
	ID        string
	BlogID    string
	BlogTitle string
	UserID    string
	UserName  string
	UserEmail string
	LikedAt   time.Time
}

type Comment struct {
	ID           string
	BlogID       string
	BlogTitle    string
	BlogAuthorID string
	UserID       string
	UserName     string
	UserEmail    string
	Content      string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
	Deletion     *DeletionRecord
}

func (c Comment) IsDeleted() bool {
	return c.Deletion != nil
}

// CanBeManagedBy reports whether the user is the commenter or the blog's author.
func (c Comment) CanBeManagedBy(userID string) bool {
	if userID == "" {
		return false
	}
	return c.UserID == userID || c.BlogAuthorID == userID
}
