package models

import (
	"time"
)

type TransactionType string
type TransactionStatus string

const (
	TransactionTypeTopUp TransactionType = "topup"

	TransactionStatusCompleted TransactionStatus = "completed"
)

// Transaction is an append-only wallet ledger row.
type Transaction struct {
	ID           uint64            `json:"id" bson:"_id" gorm:"primaryKey;autoIncrement"`
	UserID       uint64            `json:"user_id" bson:"user_id" gorm:"index;not null"`
	Type         TransactionType   `json:"type" bson:"type" gorm:"type:varchar(16);not null"`
	Status       TransactionStatus `json:"status" bson:"status" gorm:"type:varchar(16);not null"`
	Amount       int64             `json:"amount" bson:"amount" gorm:"not null;check:amount > 0"`
	Currency     string            `json:"currency" bson:"currency" gorm:"size:8"`
	BalanceAfter int64             `json:"balance_after" bson:"balance_after" gorm:"not null"`
	Provider     string            `json:"provider" bson:"provider" gorm:"size:32"`
	Reference    string            `json:"reference" bson:"reference" gorm:"uniqueIndex;size:255;not null"`
	CreatedAt    time.Time         `json:"created_at" bson:"created_at"`
}
