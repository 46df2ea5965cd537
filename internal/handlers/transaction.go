package handlers

import (
	"errors"
	"strconv"
	"time"

	"securebank/internal/models"
	"securebank/internal/services/fraud"
	"securebank/internal/services/transaction"
	"securebank/internal/services/user"
	"securebank/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// TransactionHandler exposes transfer creation and lookup endpoints. It
// owns request-shape validation and response projection only; every
// business rule lives in the transaction service.
type TransactionHandler struct {
	service transaction.Service
	users   user.Service
}

func NewTransactionHandler(service transaction.Service, users user.Service) *TransactionHandler {
	return &TransactionHandler{
		service: service,
		users:   users,
	}
}

// TransactionResponse is the external shape of a stored transaction.
type TransactionResponse struct {
	ID             uint      `json:"id"`
	SenderID       uint      `json:"sender_id"`
	SenderEmail    string    `json:"sender_email"`
	ReceiverID     uint      `json:"receiver_id"`
	ReceiverEmail  string    `json:"receiver_email"`
	Amount         float64   `json:"amount"`
	Timestamp      time.Time `json:"timestamp"`
	FraudRiskScore int       `json:"fraud_risk_score"`
	RiskLevel      string    `json:"risk_level"`
}

// Create handles POST /api/transactions.
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var input struct {
		SenderID   uint    `json:"sender_id"`
		ReceiverID uint    `json:"receiver_id"`
		Amount     float64 `json:"amount"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if input.SenderID == 0 || input.ReceiverID == 0 || input.Amount <= 0 {
		return response.BadRequest(c, "sender_id, receiver_id and a positive amount are required")
	}

	tx, err := h.service.Create(c.Context(), input.SenderID, input.ReceiverID, input.Amount)
	if err != nil {
		return h.serviceError(c, err)
	}

	return response.Created(c, h.project(tx))
}

// GetBySender handles GET /api/transactions/sender/:senderId.
func (h *TransactionHandler) GetBySender(c *fiber.Ctx) error {
	id, err := parseID(c, "senderId")
	if err != nil {
		return response.BadRequest(c, "invalid sender id")
	}

	txs, err := h.service.GetBySender(c.Context(), id)
	if err != nil {
		return h.serviceError(c, err)
	}
	return response.Success(c, h.projectAll(txs))
}

// GetByReceiver handles GET /api/transactions/receiver/:receiverId.
func (h *TransactionHandler) GetByReceiver(c *fiber.Ctx) error {
	id, err := parseID(c, "receiverId")
	if err != nil {
		return response.BadRequest(c, "invalid receiver id")
	}

	txs, err := h.service.GetByReceiver(c.Context(), id)
	if err != nil {
		return h.serviceError(c, err)
	}
	return response.Success(c, h.projectAll(txs))
}

// GetByID handles GET /api/transactions/:id.
func (h *TransactionHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "invalid transaction id")
	}

	tx, err := h.service.GetByID(c.Context(), id)
	if err != nil {
		return h.serviceError(c, err)
	}
	return response.Success(c, h.project(tx))
}

// GetAll handles GET /api/admin/transactions.
func (h *TransactionHandler) GetAll(c *fiber.Ctx) error {
	txs, err := h.service.GetAll(c.Context())
	if err != nil {
		return h.serviceError(c, err)
	}
	return response.Success(c, h.projectAll(txs))
}

// GetHighRisk handles GET /api/admin/transactions/high-risk.
func (h *TransactionHandler) GetHighRisk(c *fiber.Ctx) error {
	txs, err := h.service.GetHighRisk(c.Context())
	if err != nil {
		return h.serviceError(c, err)
	}
	return response.Success(c, h.projectAll(txs))
}

// CountBySender handles GET /api/transactions/sender/:senderId/count.
func (h *TransactionHandler) CountBySender(c *fiber.Ctx) error {
	id, err := parseID(c, "senderId")
	if err != nil {
		return response.BadRequest(c, "invalid sender id")
	}

	count, err := h.service.CountBySender(c.Context(), id)
	if err != nil {
		return h.serviceError(c, err)
	}
	return response.Success(c, fiber.Map{"sender_id": id, "count": count})
}

func (h *TransactionHandler) project(tx *models.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:             tx.ID,
		SenderID:       tx.SenderID,
		ReceiverID:     tx.ReceiverID,
		Amount:         tx.Amount,
		Timestamp:      tx.Timestamp,
		FraudRiskScore: tx.FraudRiskScore,
		RiskLevel:      fraud.RiskLevel(tx.FraudRiskScore),
	}
	if sender, err := h.users.GetByID(tx.SenderID); err == nil {
		resp.SenderEmail = sender.Email
	}
	if receiver, err := h.users.GetByID(tx.ReceiverID); err == nil {
		resp.ReceiverEmail = receiver.Email
	}
	return resp
}

func (h *TransactionHandler) projectAll(txs []models.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(txs))
	for i := range txs {
		out[i] = h.project(&txs[i])
	}
	return out
}

func (h *TransactionHandler) serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, transaction.ErrInvalidAmount),
		errors.Is(err, transaction.ErrSelfTransfer):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, transaction.ErrSenderNotFound),
		errors.Is(err, transaction.ErrReceiverNotFound),
		errors.Is(err, transaction.ErrTransactionNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, transaction.ErrStorageUnavailable):
		return response.ServiceUnavailable(c, "transaction storage unavailable")
	default:
		return response.InternalError(c, "transaction failed")
	}
}

func parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(param), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}
