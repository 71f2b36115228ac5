package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending           BookingStatus = "PENDING"
	BookingStatusConfirmedByClient BookingStatus = "CONFIRMED_BY_CLIENT"
	BookingStatusApproved          BookingStatus = "APPROVED"
	BookingStatusCompleted         BookingStatus = "COMPLETED"
	BookingStatusCancelled         BookingStatus = "CANCELLED"
)

// Booking times are salon wall-clock timestamps without a zone.
type Booking struct {
	ID         int64         `json:"id"`
	StaffID    int64         `json:"staffId"`
	UserID     int64         `json:"userId"`
	StartTime  time.Time     `json:"startTime"`
	EndTime    time.Time     `json:"endTime"`
	Status     BookingStatus `json:"status"`
	TotalPrice float64       `json:"totalPrice"`
	ServiceIDs []int64       `json:"serviceIds"`
	CreatedAt  time.Time     `json:"createdAt"`
}

func (b *Booking) IsActive() bool {
	return b.Status != BookingStatusCancelled
}
