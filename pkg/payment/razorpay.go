package payment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/razorpay/razorpay-go"
)

const ProviderRazorpay = "razorpay"

// RazorpayProvider maps intents onto Razorpay orders. The checkout runs on the client, so
// Confirm only reports success once the order is paid.
type RazorpayProvider struct {
	client *razorpay.Client
	keyID  string
}

func NewRazorpayProvider(keyID, keySecret string) *RazorpayProvider {
	return &RazorpayProvider{
		client: razorpay.NewClient(keyID, keySecret),
		keyID:  keyID,
	}
}

func (r *RazorpayProvider) Name() string {
	return ProviderRazorpay
}

func (r *RazorpayProvider) CreateIntent(ctx context.Context, request *IntentRequest) (*Intent, error) {
	minor, err := toMinorUnits(request.Amount)
	if err != nil {
		return nil, err
	}

	orderData := map[string]interface{}{
		"amount":   minor,
		"currency": strings.ToUpper(request.Currency),
		"receipt":  fmt.Sprintf("wallet_%s_%d", request.CustomerID, time.Now().UnixMilli()),
	}
	if len(request.Metadata) > 0 {
		orderData["notes"] = request.Metadata
	}

	order, err := r.client.Order.Create(orderData, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	id := stringField(order, "id")
	if id == "" {
		return nil, fmt.Errorf("failed to create order: missing order id")
	}

	return &Intent{
		ID:           id,
		ClientSecret: r.keyID,
		Provider:     ProviderRazorpay,
		Amount:       fromMinorUnits(int64Field(order, "amount")),
		Currency:     stringField(order, "currency"),
		Status:       stringField(order, "status"),
		CreatedAt:    int64Field(order, "created_at"),
	}, nil
}

func (r *RazorpayProvider) Confirm(ctx context.Context, intentID string) (*Confirmation, error) {
	order, err := r.client.Order.Fetch(intentID, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}

	status := stringField(order, "status")
	if status != "paid" {
		return nil, fmt.Errorf("%w: order %s is %s", ErrNotConfirmed, intentID, status)
	}

	notes := notesField(order)
	return &Confirmation{
		IntentID:    intentID,
		Status:      status,
		Amount:      fromMinorUnits(int64Field(order, "amount_paid")),
		Currency:    stringField(order, "currency"),
		ConfirmedAt: time.Now().Unix(),
		CustomerID:  customerOf(notes),
		Metadata:    notes,
	}, nil
}

func stringField(m map[string]interface{}, key string) string {
	s, _ := m[key].(string)
	return s
}

// notesField reads order notes. Razorpay returns an empty array rather than an object when
// an order has no notes.
func notesField(m map[string]interface{}) map[string]string {
	raw, ok := m["notes"].(map[string]interface{})
	if !ok {
		return nil
	}
	notes := make(map[string]string, len(raw))
	for key, value := range raw {
		if s, ok := value.(string); ok {
			notes[key] = s
		}
	}
	return notes
}

// int64Field reads a number that may have been decoded as float64 or int.
func int64Field(m map[string]interface{}, key string) int64 {
	switch v := m[key].(type) {
	case float64:
		return int64(v)
	case int:
		return int64(v)
	case int64:
		return v
	default:
		return 0
	}
}
