package domain

import "time"

// Review is a client's free-text opinion about the salon. UserName is filled from the author's account.
type Review struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UserID    int64     `json:"userId"`
	UserName  string    `json:"userName"`
}
