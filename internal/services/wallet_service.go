package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"vehicle-rental/internal/models"
	"vehicle-rental/internal/repositories/interfaces"
	"vehicle-rental/internal/utils"
	"vehicle-rental/pkg/logger"
	"vehicle-rental/pkg/payment"
)

// WalletService credits user wallets through the payment provider. There is no debit.
type WalletService interface {
	CreatePaymentIntent(ctx context.Context, userID uint64, amount int64) (*PaymentIntentResponse, error)
	TopUp(ctx context.Context, userID uint64, amount int64) (*TopUpResult, error)
	TopUpWithIntent(ctx context.Context, userID uint64, amount int64, intentID string) (*TopUpResult, error)
	Balance(ctx context.Context, userID uint64) (int64, error)
	Transactions(ctx context.Context, userID uint64) ([]*models.Transaction, error)
}

type PaymentIntentResponse struct {
	ClientSecret string `json:"client_secret"`
	IntentID     string `json:"intent_id"`
	Provider     string `json:"provider"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

type TopUpResult struct {
	Balance     int64               `json:"balance"`
	Transaction *models.Transaction `json:"transaction"`
}

type walletService struct {
	store    interfaces.Store
	provider payment.Provider
	currency string
	logger   *logger.Logger
}

func NewWalletService(
	store interfaces.Store,
	provider payment.Provider,
	currency string,
	logger *logger.Logger,
) WalletService {
	if currency == "" {
		currency = strings.ToLower(utils.DefaultCurrency)
	}
	return &walletService{
		store:    store,
		provider: provider,
		currency: currency,
		logger:   logger,
	}
}

func (s *walletService) CreatePaymentIntent(ctx context.Context, userID uint64, amount int64) (*PaymentIntentResponse, error) {
	if err := s.checkTopUp(ctx, userID, amount); err != nil {
		return nil, err
	}

	intent, err := s.createIntent(ctx, userID, amount)
	if err != nil {
		return nil, err
	}

	s.logger.LogWalletEvent(userID, utils.EventPaymentIntentCreated, amount, intent.ID)

	return &PaymentIntentResponse{
		ClientSecret: intent.ClientSecret,
		IntentID:     intent.ID,
		Provider:     s.provider.Name(),
		Amount:       amount,
		Currency:     intent.Currency,
	}, nil
}

func (s *walletService) TopUp(ctx context.Context, userID uint64, amount int64) (*TopUpResult, error) {
	if err := s.checkTopUp(ctx, userID, amount); err != nil {
		return nil, err
	}

	intent, err := s.createIntent(ctx, userID, amount)
	if err != nil {
		return nil, err
	}

	return s.confirmAndCredit(ctx, userID, amount, intent.ID)
}

func (s *walletService) TopUpWithIntent(ctx context.Context, userID uint64, amount int64, intentID string) (*TopUpResult, error) {
	if intentID == "" {
		return s.TopUp(ctx, userID, amount)
	}

	if err := s.checkTopUp(ctx, userID, amount); err != nil {
		return nil, err
	}

	_, err := s.store.Transactions().GetByReference(ctx, intentID)
	switch {
	case err == nil:
		return nil, ErrDuplicatePayment
	case !errors.Is(err, interfaces.ErrNotFound):
		return nil, fmt.Errorf("failed to check payment reference: %w", err)
	}

	return s.confirmAndCredit(ctx, userID, amount, intentID)
}

func (s *walletService) Balance(ctx context.Context, userID uint64) (int64, error) {
	user, err := s.store.Users().GetByID(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to get user: %w", err)
	}
	return user.WalletBalance, nil
}

func (s *walletService) Transactions(ctx context.Context, userID uint64) ([]*models.Transaction, error) {
	if _, err := s.store.Users().GetByID(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	txs, err := s.store.Transactions().ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txs, nil
}

func (s *walletService) checkTopUp(ctx context.Context, userID uint64, amount int64) error {
	if amount <= 0 || amount > utils.MaxTopUpAmount {
		return ErrInvalidAmount
	}
	if _, err := s.store.Users().GetByID(ctx, userID); err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	return nil
}

func (s *walletService) createIntent(ctx context.Context, userID uint64, amount int64) (*payment.Intent, error) {
	intent, err := s.provider.CreateIntent(ctx, &payment.IntentRequest{
		Amount:      amount,
		Currency:    s.currency,
		CustomerID:  strconv.FormatUint(userID, 10),
		Description: "Wallet top-up",
		Metadata: map[string]string{
			payment.MetadataUserID: strconv.FormatUint(userID, 10),
			"purpose":              "wallet_topup",
		},
	})
	if err != nil {
		s.logger.WithError(err).WithUserID(userID).Warn("Payment intent creation failed")
		return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}
	return intent, nil
}

func (s *walletService) confirmAndCredit(ctx context.Context, userID uint64, amount int64, intentID string) (*TopUpResult, error) {
	confirmation, err := s.provider.Confirm(ctx, intentID)
	if err != nil {
		s.logger.WithError(err).WithUserID(userID).WithField("intent_id", intentID).Warn("Payment confirmation failed")
		return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}
	if !confirmation.PaidBy(strconv.FormatUint(userID, 10)) {
		s.logger.LogSecurityEvent("payment_intent_foreign", "high", map[string]interface{}{
			"user_id":     userID,
			"intent_id":   intentID,
			"intent_user": confirmation.CustomerID,
		})
		return nil, fmt.Errorf("%w: intent %s was not created for this user", ErrUnauthorized, intentID)
	}
	if confirmation.Amount != 0 && confirmation.Amount != amount {
		return nil, fmt.Errorf("%w: confirmed amount %d does not match %d", ErrPaymentFailed, confirmation.Amount, amount)
	}

	balance, err := s.store.Users().AdjustWalletBalance(ctx, userID, amount)
	if err != nil {
		if errors.Is(err, interfaces.ErrBalanceOverflow) {
			return nil, fmt.Errorf("%w: balance limit reached", ErrInvalidAmount)
		}
		return nil, fmt.Errorf("failed to credit wallet: %w", err)
	}

	tx := &models.Transaction{
		UserID:       userID,
		Type:         models.TransactionTypeTopUp,
		Status:       models.TransactionStatusCompleted,
		Amount:       amount,
		Currency:     s.currency,
		BalanceAfter: balance,
		Provider:     s.provider.Name(),
		Reference:    intentID,
	}
	if err := s.store.Transactions().Create(ctx, tx); err != nil {
		// The reference was claimed concurrently or the ledger write failed; take the credit back.
		if _, rerr := s.store.Users().AdjustWalletBalance(context.WithoutCancel(ctx), userID, -amount); rerr != nil {
			s.logger.WithError(rerr).WithUserID(userID).WithField("reference", intentID).Error("Failed to reverse wallet credit")
		}
		if errors.Is(err, interfaces.ErrDuplicate) {
			return nil, ErrDuplicatePayment
		}
		return nil, fmt.Errorf("failed to record transaction: %w", err)
	}

	s.logger.LogWalletEvent(userID, utils.EventWalletTopUp, amount, intentID)

	return &TopUpResult{
		Balance:     balance,
		Transaction: tx,
	}, nil
}
