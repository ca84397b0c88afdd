package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ExamResultModel stores an uploaded result sheet (image or PDF) for a person.
type ExamResultModel struct {
	ResultID  uuid.UUID `gorm:"column:result_id;type:uuid;default:gen_random_uuid();primaryKey" json:"result_id"`
	MadrasaID uuid.UUID `gorm:"column:result_madrasa_id;type:uuid;not null;index" json:"madrasa_id"`
	PersonID  uuid.UUID `gorm:"column:result_person_id;type:uuid;not null;index" json:"person_id"`

	ExamName string `gorm:"column:result_exam_name;type:varchar(150);not null" json:"exam_name"`
	SheetURL string `gorm:"column:result_sheet_url;type:text;not null" json:"sheet_url"`

	CreatedAt time.Time      `gorm:"column:result_created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:result_updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:result_deleted_at;index" json:"-"`
}

func (ExamResultModel) TableName() string {
	return "exam_results"
}
