package model

// Address is a postal address owned independently of any user that references
// it.
type Address struct {
	Base
	Street string `json:"street" gorm:"type:varchar(100)"`
	City   string `json:"city" gorm:"type:varchar(50)"`
	State  string `json:"state" gorm:"type:varchar(50)"`
	Zip    string `json:"zip" gorm:"type:varchar(20)"`
}
