package document

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"keepwise-be/internal/entity"
	"keepwise-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// NoteRepository is the document adapter. Each note is a JSON document under
// its own key; a per-user sorted set scored by creation time provides the
// newest-first ordering server-side, so both adapters behave identically.
type NoteRepository struct {
	rdb *redis.Client
}

func NewNoteRepository(rdb *redis.Client) contract.NoteRepository {
	return &NoteRepository{rdb: rdb}
}

type noteDocument struct {
	Id              uuid.UUID `json:"id"`
	UserId          string    `json:"user_id"`
	Url             string    `json:"url"`
	HighlightedText string    `json:"highlighted_text"`
	Summary         string    `json:"summary"`
	CreatedAt       time.Time `json:"created_at"`
}

func docKey(userId string, id uuid.UUID) string {
	return fmt.Sprintf("note:%s:%s", userId, id)
}

func indexKey(userId string) string {
	return fmt.Sprintf("notes:%s", userId)
}

func toDocument(n *entity.Note) *noteDocument {
	return &noteDocument{
		Id:              n.Id,
		UserId:          n.UserId,
		Url:             n.Url,
		HighlightedText: n.HighlightedText,
		Summary:         n.Summary,
		CreatedAt:       n.CreatedAt,
	}
}

func toEntity(d *noteDocument) *entity.Note {
	return &entity.Note{
		Id:              d.Id,
		UserId:          d.UserId,
		Url:             d.Url,
		HighlightedText: d.HighlightedText,
		Summary:         d.Summary,
		CreatedAt:       d.CreatedAt,
	}
}

func (r *NoteRepository) Create(ctx context.Context, note *entity.Note) error {
	data, err := json.Marshal(toDocument(note))
	if err != nil {
		return err
	}

	pipe := r.rdb.TxPipeline()
	pipe.Set(ctx, docKey(note.UserId, note.Id), data, 0)
	pipe.ZAdd(ctx, indexKey(note.UserId), redis.Z{
		Score:  float64(note.CreatedAt.UnixNano()),
		Member: note.Id.String(),
	})
	_, err = pipe.Exec(ctx)
	return err
}

func (r *NoteRepository) FindAllByUser(ctx context.Context, userId string) ([]*entity.Note, error) {
	ids, err := r.rdb.ZRevRange(ctx, indexKey(userId), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*entity.Note{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = fmt.Sprintf("note:%s:%s", userId, id)
	}

	values, err := r.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	notes := make([]*entity.Note, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			// Index entry whose document vanished; skip it.
			continue
		}
		var doc noteDocument
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			return nil, err
		}
		notes = append(notes, toEntity(&doc))
	}
	return notes, nil
}

func (r *NoteRepository) FindOne(ctx context.Context, userId string, id uuid.UUID) (*entity.Note, error) {
	raw, err := r.rdb.Get(ctx, docKey(userId, id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var doc noteDocument
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, err
	}
	return toEntity(&doc), nil
}

func (r *NoteRepository) Delete(ctx context.Context, userId string, id uuid.UUID) (bool, error) {
	// Index entry and document go in one transaction, mirroring Create, so a
	// partial failure never strands an orphaned document.
	pipe := r.rdb.TxPipeline()
	removed := pipe.ZRem(ctx, indexKey(userId), id.String())
	pipe.Del(ctx, docKey(userId, id))
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return removed.Val() > 0, nil
}
