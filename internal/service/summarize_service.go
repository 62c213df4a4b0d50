package service

import (
	"context"

	"keepwise-be/internal/dto"
	"keepwise-be/pkg/summarizer"

	"github.com/gofiber/fiber/v2"
)

type ISummarizeService interface {
	Summarize(ctx context.Context, req *dto.SummarizeRequest) (*dto.SummarizeResponse, error)
}

// summarizeService is the server-side fallback for browsers without the
// on-device Summarizer API. A nil provider means the feature is not
// configured for this deployment.
type summarizeService struct {
	provider summarizer.Provider
}

func NewSummarizeService(provider summarizer.Provider) ISummarizeService {
	return &summarizeService{provider: provider}
}

func (s *summarizeService) Summarize(ctx context.Context, req *dto.SummarizeRequest) (*dto.SummarizeResponse, error) {
	if s.provider == nil {
		return nil, fiber.NewError(fiber.StatusServiceUnavailable, "Summarizer not configured")
	}

	summary, err := s.provider.Summarize(ctx, req.Text, summarizer.Options{
		Type:   req.Type,
		Length: req.Length,
		Format: req.Format,
	})
	if err != nil {
		return nil, err
	}

	return &dto.SummarizeResponse{Summary: summary}, nil
}
