package contract

import (
	"context"

	"keepwise-be/internal/entity"

	"github.com/google/uuid"
)

// NoteRepository is the single storage contract for notes. The relational
// (GORM) and document (redis) implementations are interchangeable; the
// backend is picked by configuration at bootstrap.
type NoteRepository interface {
	Create(ctx context.Context, note *entity.Note) error

	// FindAllByUser returns the user's notes ordered newest first.
	FindAllByUser(ctx context.Context, userId string) ([]*entity.Note, error)

	// FindOne returns (nil, nil) when no note with that id is owned by userId.
	FindOne(ctx context.Context, userId string, id uuid.UUID) (*entity.Note, error)

	// Delete reports whether a note was actually removed. Deleting a missing
	// or foreign note is a no-op with deleted=false.
	Delete(ctx context.Context, userId string, id uuid.UUID) (bool, error)
}
