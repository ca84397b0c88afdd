package dto

import (
	"time"

	"madrasahku_backend/internals/features/tenancy/madrasas/model"
)

type CreateMadrasaRequest struct {
	Name    string `json:"name" validate:"required,min=3,max=150"`
	Address string `json:"address" validate:"omitempty,max=500"`
	Phone   string `json:"phone" validate:"omitempty,max=20"`
	Email   string `json:"email" validate:"omitempty,email"`
}

type UpdateMadrasaRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=3,max=150"`
	Address *string `json:"address" validate:"omitempty,max=500"`
	Phone   *string `json:"phone" validate:"omitempty,max=20"`
	Email   *string `json:"email" validate:"omitempty,email"`
}

type MadrasaResponse struct {
	MadrasaID  string    `json:"madrasa_id"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
	Address    *string   `json:"address,omitempty"`
	Phone      *string   `json:"phone,omitempty"`
	Email      *string   `json:"email,omitempty"`
	LogoURL    *string   `json:"logo_url,omitempty"`
	IsVerified bool      `json:"is_verified"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

func FromModel(m *model.MadrasaModel) MadrasaResponse {
	return MadrasaResponse{
		MadrasaID:  m.MadrasaID.String(),
		Name:       m.MadrasaName,
		Slug:       m.MadrasaSlug,
		Address:    m.MadrasaAddress,
		Phone:      m.MadrasaPhone,
		Email:      m.MadrasaEmail,
		LogoURL:    m.MadrasaLogoURL,
		IsVerified: m.MadrasaIsVerified,
		IsActive:   m.MadrasaIsActive,
		CreatedAt:  m.MadrasaCreatedAt,
	}
}

func FromModels(ms []model.MadrasaModel) []MadrasaResponse {
	out := make([]MadrasaResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromModel(&ms[i]))
	}
	return out
}
