package lessongorm

import (
	"time"

	"gorm.io/gorm"
)

// LessonModel is the GORM persistence model for lessons.
// It maps directly to the "lessons" table in Postgres.
type LessonModel struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	Title     string    `gorm:"size:255;not null"`
	Body      string    `gorm:"type:text;not null"`
	Free      bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName overrides the default table name used by GORM.
func (LessonModel) TableName() string {
	return "lessons"
}
