package serverutils

import (
	"errors"
	"testing"

	"keepwise-be/internal/dto"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRequestValid(t *testing.T) {
	err := ValidateRequest(dto.CreateNoteRequest{
		Url:             "https://example.com",
		HighlightedText: "Lorem ipsum",
		Summary:         "A Latin filler text.",
	})
	assert.NoError(t, err)
}

func TestValidateRequestMissingFields(t *testing.T) {
	err := ValidateRequest(dto.CreateNoteRequest{Url: "https://example.com"})
	require.Error(t, err)

	var ferr *fiber.Error
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, fiber.StatusBadRequest, ferr.Code)
	assert.Equal(t, "Missing required fields: highlighted_text, summary", ferr.Message)
}

func TestValidateRequestAllMissing(t *testing.T) {
	err := ValidateRequest(dto.CreateNoteRequest{})
	require.Error(t, err)

	var ferr *fiber.Error
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, "Missing required fields: url, highlighted_text, summary", ferr.Message)
}
