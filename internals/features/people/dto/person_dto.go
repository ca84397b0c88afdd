package dto

import (
	"time"

	"github.com/google/uuid"

	"madrasahku_backend/internals/features/people/model"
	"madrasahku_backend/internals/helpers/secure"
)

type CreatePersonRequest struct {
	AccType      string `json:"acc_type" validate:"required"`
	FullName     string `json:"full_name" validate:"required,min=3,max=150"`
	GuardianName string `json:"guardian_name"`
	Gender       string `json:"gender"`
	BloodGroup   string `json:"blood_group"`
	Address      string `json:"address"`
	DateOfBirth  string `json:"date_of_birth"` // YYYY-MM-DD
	ClassName    string `json:"class_name"`
	Designation  string `json:"designation"`

	GuardianPhone string `json:"guardian_phone"`
	NationalID    string `json:"national_id"`
}

type UpdatePersonRequest struct {
	FullName     *string `json:"full_name" validate:"omitempty,min=3,max=150"`
	GuardianName *string `json:"guardian_name"`
	Gender       *string `json:"gender"`
	BloodGroup   *string `json:"blood_group"`
	Address      *string `json:"address"`
	DateOfBirth  *string `json:"date_of_birth"`
	ClassName    *string `json:"class_name"`
	Designation  *string `json:"designation"`

	GuardianPhone *string `json:"guardian_phone"`
	NationalID    *string `json:"national_id"`
}

// PersonResponse mirrors the model plus the decrypted protected fields.
// Decryption failures surface as empty strings, never an error.
type PersonResponse struct {
	PersonID  uuid.UUID  `json:"person_id"`
	MadrasaID uuid.UUID  `json:"madrasa_id"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`

	AccType      string     `json:"acc_type"`
	FullName     string     `json:"full_name"`
	GuardianName *string    `json:"guardian_name,omitempty"`
	Gender       *string    `json:"gender,omitempty"`
	BloodGroup   *string    `json:"blood_group,omitempty"`
	Address      *string    `json:"address,omitempty"`
	DateOfBirth  *time.Time `json:"date_of_birth,omitempty"`
	ClassName    *string    `json:"class_name,omitempty"`
	Designation  *string    `json:"designation,omitempty"`
	PhotoURL     *string    `json:"photo_url,omitempty"`

	GuardianPhone string `json:"guardian_phone,omitempty"`
	NationalID    string `json:"national_id,omitempty"`

	EnrolledAt time.Time `json:"enrolled_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// FromModel maps a row; withProtected controls whether the encrypted fields
// are decrypted into the response (staff and the person themself only).
func FromModel(p *model.PersonModel, withProtected bool) PersonResponse {
	resp := PersonResponse{
		PersonID:     p.PersonID,
		MadrasaID:    p.MadrasaID,
		UserID:       p.UserID,
		AccType:      p.AccType,
		FullName:     p.FullName,
		GuardianName: p.GuardianName,
		Gender:       p.Gender,
		BloodGroup:   p.BloodGroup,
		Address:      p.Address,
		DateOfBirth:  p.DateOfBirth,
		ClassName:    p.ClassName,
		Designation:  p.Designation,
		PhotoURL:     p.PhotoURL,
		EnrolledAt:   p.EnrolledAt,
		CreatedAt:    p.CreatedAt,
	}
	if withProtected {
		if p.GuardianPhoneEnc != nil {
			resp.GuardianPhone = secure.Decrypt(*p.GuardianPhoneEnc)
		}
		if p.NationalIDEnc != nil {
			resp.NationalID = secure.Decrypt(*p.NationalIDEnc)
		}
	}
	return resp
}

func FromModels(rows []model.PersonModel, withProtected bool) []PersonResponse {
	out := make([]PersonResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i], withProtected))
	}
	return out
}
