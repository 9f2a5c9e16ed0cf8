package payment

import (
	"context"
	"errors"
	"fmt"
	"math"
)

var (
	ErrIntentNotFound = errors.New("payment intent not found")
	ErrNotConfirmed   = errors.New("payment not confirmed")
	ErrInvalidAmount  = errors.New("amount out of range")
)

// Provider is the payment capability the wallet relies on: create an intent for an amount,
// then confirm it. Amounts are whole currency units; providers convert to minor units.
type Provider interface {
	Name() string
	CreateIntent(ctx context.Context, request *IntentRequest) (*Intent, error)
	Confirm(ctx context.Context, intentID string) (*Confirmation, error)
}

// MetadataUserID is the metadata key that carries the paying user's id.
const MetadataUserID = "user_id"

type IntentRequest struct {
	Amount      int64             `json:"amount"`
	Currency    string            `json:"currency"`
	CustomerID  string            `json:"customer_id"`
	Description string            `json:"description"`
	Metadata    map[string]string `json:"metadata"`
}

type Intent struct {
	ID           string `json:"intent_id"`
	ClientSecret string `json:"client_secret"`
	Provider     string `json:"provider"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
	CreatedAt    int64  `json:"created_at"`
}

type Confirmation struct {
	IntentID    string `json:"intent_id"`
	Status      string `json:"status"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	ConfirmedAt int64  `json:"confirmed_at"`

	// CustomerID is the customer the intent was created for, read back from the provider.
	CustomerID string            `json:"customer_id,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// PaidBy reports whether the confirmed intent was created for customerID. An intent that
// carries no customer belongs to nobody.
func (c *Confirmation) PaidBy(customerID string) bool {
	return c.CustomerID != "" && c.CustomerID == customerID
}

func toMinorUnits(amount int64) (int64, error) {
	if amount <= 0 || amount > math.MaxInt64/100 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidAmount, amount)
	}
	return amount * 100, nil
}

// customerOf picks the customer id out of intent metadata written by the wallet.
func customerOf(metadata map[string]string) string {
	return metadata[MetadataUserID]
}

func fromMinorUnits(amount int64) int64 {
	return amount / 100
}
