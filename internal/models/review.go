package models

import (
	"time"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Review is written once by the booking's customer and never changed.
type Review struct {
	ID        uint64    `json:"id" bson:"_id" gorm:"primaryKey;autoIncrement"`
	BookingID uint64    `json:"booking_id" bson:"booking_id" gorm:"uniqueIndex;not null"`
	VehicleID uint64    `json:"vehicle_id" bson:"vehicle_id" gorm:"index;not null"`
	Rating    int       `json:"rating" bson:"rating" gorm:"not null;check:rating BETWEEN 1 AND 5"`
	Comment   *string   `json:"comment" bson:"comment"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
