package models

import (
	"gorm.io/datatypes"
)

// HealthSnapshot stores a user's profile and tracker state as a single JSON
// blob. The blob is owned by the store package; nothing else reads or writes
// it. Older blobs may be missing newer fields, the store normalizes on load.
type HealthSnapshot struct {
	BaseModel
	UserID string         `gorm:"size:36;uniqueIndex" json:"userId"`
	Data   datatypes.JSON `gorm:"type:json" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
