package constants

// Account types double as roles: what a user may do follows from what kind of
// account they registered as.
const (
	AccStudent = "student"
	AccTeacher = "teacher"
	AccStaff   = "staff"
	AccAdmin   = "admin"
	AccGuest   = "guest"
)

var (
	AllAccTypes = []string{
		AccStudent,
		AccTeacher,
		AccStaff,
		AccAdmin,
		AccGuest,
	}

	StaffAndAbove = []string{
		AccStaff,
		AccTeacher,
		AccAdmin,
	}

	AdminOnly = []string{
		AccAdmin,
	}
)

func IsValidAccType(t string) bool {
	for _, a := range AllAccTypes {
		if a == t {
			return true
		}
	}
	return false
}
