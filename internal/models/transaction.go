package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts must serialize as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

type Transaction struct {
	ID             string            `json:"id"`
	SenderUserID   string            `json:"senderUserId"`
	ReceiverUserID string            `json:"receiverUserId"`
	Amount         decimal.Decimal   `json:"amount"`
	Description    string            `json:"description,omitempty"`
	Status         TransactionStatus `json:"status"`
	CreatedAt      time.Time         `json:"createdAt"`
}

type TransactionStatus string

const (
	StatusPending TransactionStatus = "PENDING"
	StatusSuccess TransactionStatus = "SUCCESS"
	StatusFailed  TransactionStatus = "FAILED"
)

func (s TransactionStatus) Valid() bool {
	switch s {
	case StatusPending, StatusSuccess, StatusFailed:
		return true
	}
	return false
}
