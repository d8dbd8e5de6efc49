package transaction

import (
	"time"

	"github.com/google/uuid"
)

func NewFromCreateRequest(userID string, req CreateTransactionRequest) Transaction {
	return Transaction{
		ID:       uuid.NewString(),
		UserID:   userID,
		Amount:   req.Amount,
		Category: req.Category,
		Type:     req.Type,
		Date:     time.Now().UTC(),
	}
}
