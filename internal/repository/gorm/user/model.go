package usergorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel is the GORM persistence model for accounts.
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"size:100;not null"`
	Email        string    `gorm:"size:255;not null;uniqueIndex"`
	PasswordHash string    `gorm:"size:100;not null"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time
}

func (UserModel) TableName() string {
	return "users"
}

// BeforeCreate ensures a UUID is set before inserting a new record.
func (m *UserModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
