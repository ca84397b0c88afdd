package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PersonModel represents the people table: the administrative profile behind a
// registration (students, teachers, staff, guests/donors). A person may exist
// without a login user (e.g. a young student registered by the office).
//
// GuardianPhoneEnc and NationalIDEnc hold Fernet tokens, never plaintext.
type PersonModel struct {
	PersonID  uuid.UUID  `gorm:"column:person_id;type:uuid;default:gen_random_uuid();primaryKey" json:"person_id"`
	MadrasaID uuid.UUID  `gorm:"column:person_madrasa_id;type:uuid;not null;index" json:"madrasa_id"`
	UserID    *uuid.UUID `gorm:"column:person_user_id;type:uuid;index" json:"user_id,omitempty"`

	AccType      string  `gorm:"column:person_acc_type;type:varchar(20);not null;index" json:"acc_type"`
	FullName     string  `gorm:"column:person_full_name;type:varchar(150);not null" json:"full_name"`
	GuardianName *string `gorm:"column:person_guardian_name;type:varchar(150)" json:"guardian_name,omitempty"`
	Gender       *string `gorm:"column:person_gender;type:varchar(10)" json:"gender,omitempty"`
	BloodGroup   *string `gorm:"column:person_blood_group;type:varchar(5)" json:"blood_group,omitempty"`
	Address      *string `gorm:"column:person_address;type:text" json:"address,omitempty"`

	DateOfBirth *time.Time `gorm:"column:person_date_of_birth;type:date" json:"date_of_birth,omitempty"`

	// students
	ClassName *string `gorm:"column:person_class_name;type:varchar(50);index" json:"class_name,omitempty"`
	// teachers & staff
	Designation *string `gorm:"column:person_designation;type:varchar(100)" json:"designation,omitempty"`

	GuardianPhoneEnc *string `gorm:"column:person_guardian_phone_enc;type:text" json:"-"`
	NationalIDEnc    *string `gorm:"column:person_national_id_enc;type:text" json:"-"`

	PhotoURL *string `gorm:"column:person_photo_url;type:text" json:"photo_url,omitempty"`

	EnrolledAt time.Time      `gorm:"column:person_enrolled_at;type:date;not null" json:"enrolled_at"`
	CreatedAt  time.Time      `gorm:"column:person_created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"column:person_updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"column:person_deleted_at;index" json:"-"`
}

func (PersonModel) TableName() string {
	return "people"
}
