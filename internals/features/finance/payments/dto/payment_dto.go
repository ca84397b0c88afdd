package dto

import "github.com/google/uuid"

type CreateCashPaymentRequest struct {
	PersonID uuid.UUID `json:"person_id" validate:"required"`
	Amount   int64     `json:"amount" validate:"required,gt=0"`
	Month    string    `json:"month"`
	Note     string    `json:"note"`
}

type InitiateGatewayPaymentRequest struct {
	PersonID uuid.UUID `json:"person_id" validate:"required"`
	Amount   int64     `json:"amount" validate:"required,gt=0"`
	Month    string    `json:"month"`
	Note     string    `json:"note"`
}
