package model

import (
	"time"

	"github.com/google/uuid"
)

type Note struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId          string    `gorm:"type:varchar(128);not null;index"`
	Url             string    `gorm:"type:text;not null"`
	HighlightedText string    `gorm:"type:text;not null"`
	Summary         string    `gorm:"type:text;not null"`
	CreatedAt       time.Time `gorm:"not null"`
}

func (Note) TableName() string {
	return "notes"
}
