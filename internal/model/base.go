package model

import "time"

// Base holds the fields shared by every persisted record: the surrogate
// identity assigned by the database and the soft-delete marker. Entities embed
// it instead of redeclaring id/active themselves.
type Base struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Active    bool      `json:"active" gorm:"default:true;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
