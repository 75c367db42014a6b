package models

import "time"

type User struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Address        string          `json:"address,omitempty"`
	BankingDetails *BankingDetails `json:"bankingDetails,omitempty"`
	ProfilePicture *string         `json:"profilePicture"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// BankingDetails is stored as a jsonb blob; the service never inspects it.
type BankingDetails struct {
	BankName      string `json:"bankName,omitempty"`
	AccountNumber string `json:"accountNumber,omitempty"`
	BranchCode    string `json:"branchCode,omitempty"`
}

// UserUpdate carries a partial update; nil fields are left untouched.
type UserUpdate struct {
	Name           *string
	Email          *string
	Address        *string
	BankingDetails *BankingDetails
}
