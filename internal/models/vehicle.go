package models

import (
	"time"
)

type VehicleType string
type FuelType string

const (
	VehicleTypeCar  VehicleType = "car"
	VehicleTypeSUV  VehicleType = "suv"
	VehicleTypeBike VehicleType = "bike"

	FuelTypePetrol   FuelType = "petrol"
	FuelTypeDiesel   FuelType = "diesel"
	FuelTypeElectric FuelType = "electric"
)

var (
	VehicleTypes = []VehicleType{VehicleTypeCar, VehicleTypeSUV, VehicleTypeBike}
	FuelTypes    = []FuelType{FuelTypePetrol, FuelTypeDiesel, FuelTypeElectric}
)

func (t VehicleType) IsValid() bool {
	for _, v := range VehicleTypes {
		if v == t {
			return true
		}
	}
	return false
}

func (f FuelType) IsValid() bool {
	for _, v := range FuelTypes {
		if v == f {
			return true
		}
	}
	return false
}

// Vehicle is a listing owned by a provider. Price is per day in whole currency units.
type Vehicle struct {
	ID         uint64      `json:"id" bson:"_id" gorm:"primaryKey;autoIncrement"`
	ProviderID uint64      `json:"provider_id" bson:"provider_id" gorm:"index;not null"`
	Make       string      `json:"make" bson:"make" gorm:"size:64;not null"`
	Model      string      `json:"model" bson:"model" gorm:"size:64;not null"`
	Year       int         `json:"year" bson:"year" gorm:"not null"`
	Price      int64       `json:"price" bson:"price" gorm:"not null;check:price > 0"`
	City       string      `json:"city" bson:"city" gorm:"size:128;index"`
	Available  bool        `json:"available" bson:"available" gorm:"not null;index"`
	ImageURL   string      `json:"image_url" bson:"image_url"`
	Type       VehicleType `json:"type" bson:"type" gorm:"type:varchar(16);not null"`
	FuelType   FuelType    `json:"fuel_type" bson:"fuel_type" gorm:"type:varchar(16);not null"`
	CreatedAt  time.Time   `json:"created_at" bson:"created_at"`
}
