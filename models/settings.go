package models

import "time"

// StoreSettings is a singleton row; updates merge field by field.
type StoreSettings struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	StoreName  string    `json:"storeName"`
	Phone      string    `json:"phone"`
	Address    string    `json:"address"`
	GSTNumber  string    `json:"gstNumber"`
	CODEnabled bool      `gorm:"default:true" json:"codEnabled"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
