package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// NoticeModel is a dated announcement with multilingual title/body and an
// optional uploaded attachment.
type NoticeModel struct {
	NoticeID        uuid.UUID `gorm:"column:notice_id;type:uuid;default:gen_random_uuid();primaryKey" json:"notice_id"`
	NoticeMadrasaID uuid.UUID `gorm:"column:notice_madrasa_id;type:uuid;not null;index" json:"madrasa_id"`

	NoticeTitle datatypes.JSONMap `gorm:"column:notice_title;type:jsonb;not null" json:"title"`
	NoticeBody  datatypes.JSONMap `gorm:"column:notice_body;type:jsonb;not null" json:"body"`

	NoticeAttachmentURL *string `gorm:"column:notice_attachment_url;type:text" json:"attachment_url,omitempty"`

	NoticePublished bool      `gorm:"column:notice_published;not null;default:false;index" json:"published"`
	NoticePublishAt time.Time `gorm:"column:notice_publish_at;not null;index" json:"publish_at"`

	NoticeCreatedAt time.Time      `gorm:"column:notice_created_at;autoCreateTime" json:"created_at"`
	NoticeUpdatedAt time.Time      `gorm:"column:notice_updated_at;autoUpdateTime" json:"updated_at"`
	NoticeDeletedAt gorm.DeletedAt `gorm:"column:notice_deleted_at;index" json:"-"`
}

func (NoticeModel) TableName() string {
	return "notices"
}
