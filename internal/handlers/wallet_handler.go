package handlers

import (
	"github.com/gin-gonic/gin"

	"vehicle-rental/internal/services"
	"vehicle-rental/internal/utils"
	"vehicle-rental/internal/validators"
	"vehicle-rental/pkg/logger"
)

type WalletHandler struct {
	walletService services.WalletService
	logger        *logger.Logger
}

func NewWalletHandler(walletService services.WalletService, logger *logger.Logger) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
		logger:        logger,
	}
}

func (h *WalletHandler) CreatePaymentIntent(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req validators.PaymentIntentRequest
	if !bindJSON(c, &req, validators.ValidatePaymentIntent) {
		return
	}

	intent, err := h.walletService.CreatePaymentIntent(c.Request.Context(), p.UserID, req.Amount)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "Payment intent created", intent)
}

// TopUp confirms payment_intent_id when given, otherwise charges the provider directly.
func (h *WalletHandler) TopUp(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req validators.WalletTopUpRequest
	if !bindJSON(c, &req, validators.ValidateWalletTopUp) {
		return
	}

	result, err := h.walletService.TopUpWithIntent(c.Request.Context(), p.UserID, req.Amount, req.PaymentIntentID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "Wallet topped up successfully", result)
}

func (h *WalletHandler) Balance(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	balance, err := h.walletService.Balance(c.Request.Context(), p.UserID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "Balance retrieved successfully", gin.H{"balance": balance})
}

func (h *WalletHandler) Transactions(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	txs, err := h.walletService.Transactions(c.Request.Context(), p.UserID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Transactions retrieved successfully", txs, &utils.Meta{Count: len(txs)})
}
