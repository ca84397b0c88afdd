package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MadrasaModel represents the madrasas table, the tenant unit: every
// domain row hangs off one madrasa.
type MadrasaModel struct {
	MadrasaID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"madrasa_id"`

	MadrasaName    string  `gorm:"type:varchar(150);not null" json:"madrasa_name"`
	MadrasaSlug    string  `gorm:"type:varchar(100);uniqueIndex;not null" json:"madrasa_slug"`
	MadrasaAddress *string `gorm:"type:text" json:"madrasa_address,omitempty"`
	MadrasaPhone   *string `gorm:"type:varchar(20)" json:"madrasa_phone,omitempty"`
	MadrasaEmail   *string `gorm:"type:varchar(255)" json:"madrasa_email,omitempty"`
	MadrasaLogoURL *string `gorm:"type:text" json:"madrasa_logo_url,omitempty"`

	MadrasaIsVerified bool `gorm:"not null;default:false" json:"madrasa_is_verified"`
	MadrasaIsActive   bool `gorm:"not null;default:true" json:"madrasa_is_active"`

	MadrasaCreatedAt time.Time      `gorm:"autoCreateTime" json:"madrasa_created_at"`
	MadrasaUpdatedAt time.Time      `gorm:"autoUpdateTime" json:"madrasa_updated_at"`
	MadrasaDeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (MadrasaModel) TableName() string {
	return "madrasas"
}
