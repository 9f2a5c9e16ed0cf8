package models

import (
	"time"
)

type BookingStatus string
type PaymentStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"

	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

var BookingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusConfirmed,
	BookingStatusCompleted,
	BookingStatusCancelled,
}

func (s BookingStatus) IsValid() bool {
	for _, v := range BookingStatuses {
		if v == s {
			return true
		}
	}
	return false
}

type Booking struct {
	ID            uint64        `json:"id" bson:"_id" gorm:"primaryKey;autoIncrement"`
	VehicleID     uint64        `json:"vehicle_id" bson:"vehicle_id" gorm:"index;not null"`
	CustomerID    uint64        `json:"customer_id" bson:"customer_id" gorm:"index;not null"`
	StartDate     time.Time     `json:"start_date" bson:"start_date" gorm:"not null"`
	EndDate       time.Time     `json:"end_date" bson:"end_date" gorm:"not null"`
	Status        BookingStatus `json:"status" bson:"status" gorm:"type:varchar(16);not null;index"`
	TotalAmount   int64         `json:"total_amount" bson:"total_amount" gorm:"not null;check:total_amount >= 0"`
	PaymentStatus PaymentStatus `json:"payment_status" bson:"payment_status" gorm:"type:varchar(16);not null"`
	CreatedAt     time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at" bson:"updated_at"`
}
