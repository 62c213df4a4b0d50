package entity

import (
	"time"

	"github.com/google/uuid"
)

// Note links a source page URL, a highlighted excerpt and its summary.
// A note is owned by exactly one user and is never mutated after creation.
type Note struct {
	Id              uuid.UUID
	UserId          string
	Url             string
	HighlightedText string
	Summary         string
	CreatedAt       time.Time
}
