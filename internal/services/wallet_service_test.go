package services

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vehicle-rental/internal/models"
	"vehicle-rental/internal/repositories/interfaces"
	"vehicle-rental/internal/utils"
	"vehicle-rental/pkg/payment"
)

func TestTopUpCreditsWallet(t *testing.T) {
	f := newFixture(t)
	svc := NewWalletService(f.store, payment.NewMockProvider(), "", nopLogger())
	ctx := context.Background()

	result, err := svc.TopUp(ctx, f.customer.ID, 50)
	require.NoError(t, err)
	assert.EqualValues(t, 50, result.Balance)
	require.NotNil(t, result.Transaction)
	assert.Equal(t, models.TransactionTypeTopUp, result.Transaction.Type)
	assert.Equal(t, payment.ProviderMock, result.Transaction.Provider)
	assert.NotEmpty(t, result.Transaction.Reference)

	result, err = svc.TopUp(ctx, f.customer.ID, 25)
	require.NoError(t, err)
	assert.EqualValues(t, 75, result.Balance)

	balance, err := svc.Balance(ctx, f.customer.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 75, balance)

	txs, err := svc.Transactions(ctx, f.customer.ID)
	require.NoError(t, err)
	assert.Len(t, txs, 2)
}

func TestTopUpRejections(t *testing.T) {
	ctx := context.Background()

	t.Run("non-positive amount", func(t *testing.T) {
		f := newFixture(t)
		svc := NewWalletService(f.store, payment.NewMockProvider(), "", nopLogger())

		_, err := svc.TopUp(ctx, f.customer.ID, -5)
		assert.ErrorIs(t, err, ErrInvalidAmount)
		_, err = svc.TopUp(ctx, f.customer.ID, 0)
		assert.ErrorIs(t, err, ErrInvalidAmount)

		balance, err := svc.Balance(ctx, f.customer.ID)
		require.NoError(t, err)
		assert.Zero(t, balance)
	})

	t.Run("amount above the top-up limit", func(t *testing.T) {
		f := newFixture(t)
		svc := NewWalletService(f.store, payment.NewMockProvider(), "", nopLogger())

		_, err := svc.TopUp(ctx, f.customer.ID, math.MaxInt64)
		assert.ErrorIs(t, err, ErrInvalidAmount)
		_, err = svc.CreatePaymentIntent(ctx, f.customer.ID, utils.MaxTopUpAmount+1)
		assert.ErrorIs(t, err, ErrInvalidAmount)

		result, err := svc.TopUp(ctx, f.customer.ID, utils.MaxTopUpAmount)
		require.NoError(t, err)
		assert.EqualValues(t, utils.MaxTopUpAmount, result.Balance)
	})

	t.Run("credit past the balance range", func(t *testing.T) {
		f := newFixture(t)
		svc := NewWalletService(f.store, payment.NewMockProvider(), "", nopLogger())

		_, err := f.store.Users().AdjustWalletBalance(ctx, f.customer.ID, math.MaxInt64-5)
		require.NoError(t, err)

		_, err = svc.TopUp(ctx, f.customer.ID, 10)
		assert.ErrorIs(t, err, ErrInvalidAmount)

		balance, err := svc.Balance(ctx, f.customer.ID)
		require.NoError(t, err)
		assert.EqualValues(t, int64(math.MaxInt64-5), balance)

		txs, err := svc.Transactions(ctx, f.customer.ID)
		require.NoError(t, err)
		assert.Empty(t, txs)
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newFixture(t)
		svc := NewWalletService(f.store, payment.NewMockProvider(), "", nopLogger())

		_, err := svc.TopUp(ctx, 999, 10)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("provider declines", func(t *testing.T) {
		f := newFixture(t)
		svc := NewWalletService(f.store, failingPayments{}, "", nopLogger())

		_, err := svc.TopUp(ctx, f.customer.ID, 10)
		assert.ErrorIs(t, err, ErrPaymentFailed)

		balance, err := svc.Balance(ctx, f.customer.ID)
		require.NoError(t, err)
		assert.Zero(t, balance)

		txs, err := svc.Transactions(ctx, f.customer.ID)
		require.NoError(t, err)
		assert.Empty(t, txs)
	})
}

func TestTopUpWithIntent(t *testing.T) {
	f := newFixture(t)
	svc := NewWalletService(f.store, payment.NewMockProvider(), "usd", nopLogger())
	ctx := context.Background()

	intent, err := svc.CreatePaymentIntent(ctx, f.customer.ID, 40)
	require.NoError(t, err)
	assert.NotEmpty(t, intent.ClientSecret)
	assert.Equal(t, payment.ProviderMock, intent.Provider)
	assert.EqualValues(t, 40, intent.Amount)

	result, err := svc.TopUpWithIntent(ctx, f.customer.ID, 40, intent.IntentID)
	require.NoError(t, err)
	assert.EqualValues(t, 40, result.Balance)
	assert.Equal(t, intent.IntentID, result.Transaction.Reference)

	_, err = svc.TopUpWithIntent(ctx, f.customer.ID, 40, intent.IntentID)
	assert.ErrorIs(t, err, ErrDuplicatePayment)

	balance, err := svc.Balance(ctx, f.customer.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 40, balance)
}

func TestTopUpWithIntentMismatchAndUnknown(t *testing.T) {
	f := newFixture(t)
	svc := NewWalletService(f.store, payment.NewMockProvider(), "", nopLogger())
	ctx := context.Background()

	intent, err := svc.CreatePaymentIntent(ctx, f.customer.ID, 40)
	require.NoError(t, err)

	_, err = svc.TopUpWithIntent(ctx, f.customer.ID, 400, intent.IntentID)
	assert.ErrorIs(t, err, ErrPaymentFailed)

	_, err = svc.TopUpWithIntent(ctx, f.customer.ID, 40, "pi_never_created")
	assert.ErrorIs(t, err, ErrPaymentFailed)

	balance, err := svc.Balance(ctx, f.customer.ID)
	require.NoError(t, err)
	assert.Zero(t, balance)

	// an empty intent id charges directly
	result, err := svc.TopUpWithIntent(ctx, f.customer.ID, 15, "")
	require.NoError(t, err)
	assert.EqualValues(t, 15, result.Balance)
}

func TestTopUpWithIntentOfAnotherUser(t *testing.T) {
	f := newFixture(t)
	svc := NewWalletService(f.store, payment.NewMockProvider(), "", nopLogger())
	ctx := context.Background()

	intent, err := svc.CreatePaymentIntent(ctx, f.customer.ID, 500)
	require.NoError(t, err)

	_, err = svc.TopUpWithIntent(ctx, f.provider.ID, 500, intent.IntentID)
	assert.ErrorIs(t, err, ErrUnauthorized)

	balance, err := svc.Balance(ctx, f.provider.ID)
	require.NoError(t, err)
	assert.Zero(t, balance)

	_, err = f.store.Transactions().GetByReference(ctx, intent.IntentID)
	assert.ErrorIs(t, err, interfaces.ErrNotFound)

	// the payer can still redeem it
	result, err := svc.TopUpWithIntent(ctx, f.customer.ID, 500, intent.IntentID)
	require.NoError(t, err)
	assert.EqualValues(t, 500, result.Balance)
}
