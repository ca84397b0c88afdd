package model

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"madrasahku_backend/internals/constants"
)

// Validator instance
var validate = validator.New()

// UserModel represents the users table. Email and phone are unique per
// madrasa, not globally: the same person can hold accounts at two schools.
type UserModel struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	MadrasaID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_users_madrasa_email,priority:1;uniqueIndex:idx_users_madrasa_phone,priority:1" json:"madrasa_id"`

	UserName string  `gorm:"size:50;not null" json:"user_name" validate:"required,min=3,max=50"`
	Email    *string `gorm:"size:255;uniqueIndex:idx_users_madrasa_email,priority:2" json:"email,omitempty" validate:"omitempty,email"`
	Phone    *string `gorm:"size:20;uniqueIndex:idx_users_madrasa_phone,priority:2" json:"phone,omitempty"`
	Password string  `gorm:"not null" json:"-" validate:"required,min=8"`
	AccType  string  `gorm:"type:varchar(20);not null;default:'student'" json:"acc_type"`
	GoogleID *string `gorm:"size:255" json:"google_id,omitempty"`

	IsActive  bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) SetDefaultValues() {
	if u.AccType == "" {
		u.AccType = constants.AccStudent
	}
}

func (u *UserModel) Validate() error {
	u.SetDefaultValues()
	if !constants.IsValidAccType(u.AccType) {
		return errors.New("acc_type must be one of: student, teacher, staff, admin, guest")
	}
	if u.Email == nil && u.Phone == nil {
		return errors.New("either email or phone is required")
	}
	return validate.Struct(u)
}
