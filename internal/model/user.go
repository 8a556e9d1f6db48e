package model

// User represents a platform account (customer, driver or admin) stored in the
// database. The Address reference is weak: the user points at an address by id
// but does not own its lifecycle, and soft-deleting a user leaves the address
// untouched.
type User struct {
	Base
	Name      string   `json:"name" gorm:"type:varchar(100);not null"`
	Phone     string   `json:"phone" gorm:"type:varchar(20)"`
	Email     string   `json:"email" gorm:"type:varchar(100);index;not null"`
	LicenseNo string   `json:"license_no" gorm:"type:varchar(50);not null"`
	UserType  UserType `json:"user_type" gorm:"type:int;index;not null"`
	AddressID *uint    `json:"address_id,omitempty" gorm:"index"`
	Address   *Address `json:"address,omitempty" gorm:"foreignKey:AddressID"`
}
