package mapper

import (
	"keepwise-be/internal/entity"
	"keepwise-be/internal/model"
)

type NoteMapper struct{}

func NewNoteMapper() *NoteMapper {
	return &NoteMapper{}
}

func (m *NoteMapper) ToEntity(n *model.Note) *entity.Note {
	if n == nil {
		return nil
	}

	return &entity.Note{
		Id:              n.Id,
		UserId:          n.UserId,
		Url:             n.Url,
		HighlightedText: n.HighlightedText,
		Summary:         n.Summary,
		CreatedAt:       n.CreatedAt,
	}
}

func (m *NoteMapper) ToModel(n *entity.Note) *model.Note {
	if n == nil {
		return nil
	}

	return &model.Note{
		Id:              n.Id,
		UserId:          n.UserId,
		Url:             n.Url,
		HighlightedText: n.HighlightedText,
		Summary:         n.Summary,
		CreatedAt:       n.CreatedAt,
	}
}

func (m *NoteMapper) ToEntities(notes []*model.Note) []*entity.Note {
	entities := make([]*entity.Note, len(notes))
	for i, n := range notes {
		entities[i] = m.ToEntity(n)
	}
	return entities
}
