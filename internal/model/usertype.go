package model

// UserType classifies a user account. Stored as its raw integer code; only the
// three values below are ever persisted.
type UserType int

const (
	UserTypeCustomer UserType = 0
	UserTypeDriver   UserType = 1
	UserTypeAdmin    UserType = 2
)

// UserTypeFromCode resolves an integer type code to a UserType. The second
// return value is false for any code outside {0,1,2}; callers must treat that
// as a validation failure, never as a default.
func UserTypeFromCode(code int) (UserType, bool) {
	switch code {
	case 0:
		return UserTypeCustomer, true
	case 1:
		return UserTypeDriver, true
	case 2:
		return UserTypeAdmin, true
	}
	return 0, false
}

func (t UserType) String() string {
	switch t {
	case UserTypeCustomer:
		return "Customer"
	case UserTypeDriver:
		return "Driver"
	case UserTypeAdmin:
		return "Admin"
	}
	return "Unknown"
}
