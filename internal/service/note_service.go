package service

import (
	"context"
	"time"

	"keepwise-be/internal/dto"
	"keepwise-be/internal/entity"
	"keepwise-be/internal/pkg/logger"
	"keepwise-be/internal/repository/contract"
	"keepwise-be/pkg/events"
	pktNats "keepwise-be/pkg/nats"

	"github.com/google/uuid"
)

type INoteService interface {
	Create(ctx context.Context, userId string, req *dto.CreateNoteRequest) (*dto.CreateNoteResponse, error)
	List(ctx context.Context, userId string) ([]*dto.NoteResponse, error)
	Show(ctx context.Context, userId string, id uuid.UUID) (*dto.NoteResponse, error)
	Delete(ctx context.Context, userId string, id uuid.UUID) error
}

// INoteFeed pushes note events to connected viewers. Implemented by the
// websocket hub; nil means no live feed is running.
type INoteFeed interface {
	Send(userId string, event string, data interface{})
}

type noteService struct {
	noteRepository contract.NoteRepository
	eventPublisher *pktNats.Publisher
	feed           INoteFeed
	logger         logger.ILogger
}

func NewNoteService(
	noteRepository contract.NoteRepository,
	eventPublisher *pktNats.Publisher,
	feed INoteFeed,
	log logger.ILogger,
) INoteService {
	return &noteService{
		noteRepository: noteRepository,
		eventPublisher: eventPublisher,
		feed:           feed,
		logger:         log,
	}
}

func (s *noteService) Create(ctx context.Context, userId string, req *dto.CreateNoteRequest) (*dto.CreateNoteResponse, error) {
	note := entity.Note{
		Id:              uuid.New(),
		UserId:          userId,
		Url:             req.Url,
		HighlightedText: req.HighlightedText,
		Summary:         req.Summary,
		CreatedAt:       time.Now(),
	}

	if err := s.noteRepository.Create(ctx, &note); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, "NOTE_CREATED", &note)
	if s.feed != nil {
		s.feed.Send(userId, "note_created", toNoteResponse(&note))
	}

	return &dto.CreateNoteResponse{Id: note.Id}, nil
}

func (s *noteService) List(ctx context.Context, userId string) ([]*dto.NoteResponse, error) {
	notes, err := s.noteRepository.FindAllByUser(ctx, userId)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.NoteResponse, len(notes))
	for i, note := range notes {
		res[i] = toNoteResponse(note)
	}
	return res, nil
}

func (s *noteService) Show(ctx context.Context, userId string, id uuid.UUID) (*dto.NoteResponse, error) {
	note, err := s.noteRepository.FindOne(ctx, userId, id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, entity.ErrNoteNotFound
	}
	return toNoteResponse(note), nil
}

func (s *noteService) Delete(ctx context.Context, userId string, id uuid.UUID) error {
	deleted, err := s.noteRepository.Delete(ctx, userId, id)
	if err != nil {
		return err
	}
	if !deleted {
		return entity.ErrNoteNotFound
	}

	s.publishEvent(ctx, "NOTE_DELETED", &entity.Note{Id: id, UserId: userId})
	if s.feed != nil {
		s.feed.Send(userId, "note_deleted", map[string]interface{}{"id": id})
	}

	return nil
}

// publishEvent emits to the NATS bus when one is connected. The bus is
// auxiliary, so failures are logged and never fail the originating request.
func (s *noteService) publishEvent(ctx context.Context, eventType string, note *entity.Note) {
	if s.eventPublisher == nil {
		return
	}

	evt := events.BaseEvent{
		Type: eventType,
		Data: map[string]interface{}{
			"note_id": note.Id,
			"user_id": note.UserId,
			"url":     note.Url,
		},
		OccurredAt: time.Now(),
	}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("NoteService", "Failed to publish event", map[string]interface{}{
			"event": eventType,
			"error": err.Error(),
		})
	}
}

func toNoteResponse(note *entity.Note) *dto.NoteResponse {
	return &dto.NoteResponse{
		Id:              note.Id,
		UserId:          note.UserId,
		Url:             note.Url,
		HighlightedText: note.HighlightedText,
		Summary:         note.Summary,
		CreatedAt:       note.CreatedAt,
	}
}
