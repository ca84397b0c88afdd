package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type GalleryModel struct {
	GalleryID        uuid.UUID `gorm:"column:gallery_id;type:uuid;default:gen_random_uuid();primaryKey" json:"gallery_id"`
	GalleryMadrasaID uuid.UUID `gorm:"column:gallery_madrasa_id;type:uuid;not null;index" json:"madrasa_id"`

	GalleryCaption  datatypes.JSONMap `gorm:"column:gallery_caption;type:jsonb" json:"caption"`
	GalleryImageURL string            `gorm:"column:gallery_image_url;type:text;not null" json:"image_url"`
	GallerySort     int               `gorm:"column:gallery_sort;not null;default:0;index" json:"sort"`

	GalleryCreatedAt time.Time      `gorm:"column:gallery_created_at;autoCreateTime" json:"created_at"`
	GalleryUpdatedAt time.Time      `gorm:"column:gallery_updated_at;autoUpdateTime" json:"updated_at"`
	GalleryDeletedAt gorm.DeletedAt `gorm:"column:gallery_deleted_at;index" json:"-"`
}

func (GalleryModel) TableName() string {
	return "galleries"
}
