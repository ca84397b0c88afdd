package dto

// RegisterRequest carries the union of fields across account types; which
// ones are required depends on acc_type (see ValidateForAccType).
type RegisterRequest struct {
	MadrasaSlug string `json:"madrasa_slug" validate:"required"`
	UserName    string `json:"user_name" validate:"required,min=3,max=50"`
	Contact     string `json:"contact" validate:"required"` // email or phone, must be verified
	Password    string `json:"password" validate:"required,min=8"`
	AccType     string `json:"acc_type" validate:"required"`

	FullName string `json:"full_name" validate:"required,min=3,max=150"`

	// students
	GuardianName  string `json:"guardian_name"`
	ClassName     string `json:"class_name"`
	GuardianPhone string `json:"guardian_phone"`
	DateOfBirth   string `json:"date_of_birth"` // YYYY-MM-DD

	// teachers & staff
	Designation string `json:"designation"`

	// optional for everyone
	Gender     string `json:"gender"`
	BloodGroup string `json:"blood_group"`
	Address    string `json:"address"`
	NationalID string `json:"national_id"`
}

type LoginRequest struct {
	MadrasaSlug string `json:"madrasa_slug" validate:"required"`
	Identifier  string `json:"identifier" validate:"required"` // email or phone
	Password    string `json:"password" validate:"required"`
}

type GoogleLoginRequest struct {
	MadrasaSlug string `json:"madrasa_slug" validate:"required"`
	IDToken     string `json:"id_token" validate:"required"`
}

type ResetPasswordRequest struct {
	MadrasaSlug string `json:"madrasa_slug" validate:"required"`
	Contact     string `json:"contact" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}
