package domain

import "time"

type ServiceOffer struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Price           float64   `json:"price"`
	DurationMinutes int32     `json:"durationMinutes"`
	CreatedAt       time.Time `json:"createdAt"`
	Version         int32     `json:"-"`
}
