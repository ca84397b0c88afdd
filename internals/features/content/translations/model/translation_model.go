package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TranslationModel holds one UI/content string in all supported languages.
// A nil madrasa id marks a global entry shared by every tenant; a tenant
// entry with the same key overrides it.
type TranslationModel struct {
	TranslationID        uuid.UUID  `gorm:"column:translation_id;type:uuid;default:gen_random_uuid();primaryKey" json:"translation_id"`
	TranslationMadrasaID *uuid.UUID `gorm:"column:translation_madrasa_id;type:uuid;index;uniqueIndex:idx_translations_scope_key,priority:1" json:"madrasa_id,omitempty"`

	TranslationKey    string            `gorm:"column:translation_key;type:varchar(150);not null;uniqueIndex:idx_translations_scope_key,priority:2" json:"key"`
	TranslationValues datatypes.JSONMap `gorm:"column:translation_values;type:jsonb;not null" json:"values"`

	TranslationCreatedAt time.Time      `gorm:"column:translation_created_at;autoCreateTime" json:"created_at"`
	TranslationUpdatedAt time.Time      `gorm:"column:translation_updated_at;autoUpdateTime" json:"updated_at"`
	TranslationDeletedAt gorm.DeletedAt `gorm:"column:translation_deleted_at;index" json:"-"`
}

func (TranslationModel) TableName() string {
	return "translations"
}
