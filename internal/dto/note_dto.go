package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateNoteRequest struct {
	Url             string `json:"url" validate:"required"`
	HighlightedText string `json:"highlighted_text" validate:"required"`
	Summary         string `json:"summary" validate:"required"`
}

type CreateNoteResponse struct {
	Id uuid.UUID `json:"id"`
}

type NoteResponse struct {
	Id              uuid.UUID `json:"id"`
	UserId          string    `json:"user_id"`
	Url             string    `json:"url"`
	HighlightedText string    `json:"highlighted_text"`
	Summary         string    `json:"summary"`
	CreatedAt       time.Time `json:"created_at"`
}
