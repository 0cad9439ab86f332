package entity

import "time"

// Preference is a durable key/value setting shared by every tenant
type Preference struct {
	Key       string    `gorm:"primaryKey;size:100" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for the Preference model
func (Preference) TableName() string {
	return "preferences"
}
