package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"keepwise-be/internal/dto"
	"keepwise-be/internal/migrations"
	"keepwise-be/internal/pkg/logger"
	"keepwise-be/internal/pkg/serverutils"
	"keepwise-be/internal/repository/implementation"
	"keepwise-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const testSecret = "test-secret"

func newTestApp(t *testing.T, secret string) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, migrations.Run(db))

	log := logger.NewIsolatedLogger(filepath.Join(t.TempDir(), "test.log"))
	noteService := service.NewNoteService(implementation.NewNoteRepository(db), nil, nil, log)
	tokens := service.NewTokenService(secret, time.Minute)

	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware(log))
	api := app.Group("/api")
	NewNoteController(noteService).RegisterRoutes(api, serverutils.AuthMiddleware(tokens))

	return app
}

func signToken(t *testing.T, uid string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": uid,
		"email":   uid + "@example.com",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	return resp, decoded
}

func validNoteBody() map[string]string {
	return map[string]string{
		"url":              "https://example.com",
		"highlighted_text": "Lorem ipsum",
		"summary":          "A Latin filler text.",
	}
}

func TestNotesAPIAnonymousMode(t *testing.T) {
	app := newTestApp(t, "")

	resp, body := doRequest(t, app, "POST", "/api/notes", "", validNoteBody())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["id"])
	assert.Equal(t, "Note saved successfully", body["message"])

	resp, body = doRequest(t, app, "GET", "/api/notes", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	notes := body["notes"].([]interface{})
	require.Len(t, notes, 1)
	note := notes[0].(map[string]interface{})
	assert.Equal(t, "anonymous", note["user_id"])
	assert.Equal(t, "https://example.com", note["url"])
}

func TestNotesAPICreateValidation(t *testing.T) {
	app := newTestApp(t, "")

	for _, field := range []string{"url", "highlighted_text", "summary"} {
		t.Run("missing "+field, func(t *testing.T) {
			payload := validNoteBody()
			payload[field] = ""

			resp, body := doRequest(t, app, "POST", "/api/notes", "", payload)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Contains(t, body["error"], "Missing required fields")
			assert.Contains(t, body["error"], field)
		})
	}

	// Nothing may be persisted by rejected requests.
	resp, body := doRequest(t, app, "GET", "/api/notes", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, body["notes"])
}

func TestNotesAPIAuthRequired(t *testing.T) {
	app := newTestApp(t, testSecret)

	t.Run("no token", func(t *testing.T) {
		resp, body := doRequest(t, app, "GET", "/api/notes", "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Access token required", body["error"])
	})

	t.Run("invalid token", func(t *testing.T) {
		resp, body := doRequest(t, app, "GET", "/api/notes", "not-a-jwt", nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Equal(t, "Invalid or expired token", body["error"])
	})
}

func TestNotesAPIUserIsolation(t *testing.T) {
	app := newTestApp(t, testSecret)
	u1 := signToken(t, "u1")
	u2 := signToken(t, "u2")

	resp, body := doRequest(t, app, "POST", "/api/notes", u1, validNoteBody())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	noteId := body["id"].(string)

	t.Run("owner sees the note", func(t *testing.T) {
		resp, body := doRequest(t, app, "GET", "/api/notes", u1, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		notes := body["notes"].([]interface{})
		require.Len(t, notes, 1)
		note := notes[0].(map[string]interface{})
		assert.Equal(t, "https://example.com", note["url"])
		assert.Equal(t, "Lorem ipsum", note["highlighted_text"])
		assert.Equal(t, "A Latin filler text.", note["summary"])
	})

	t.Run("other user's list is empty", func(t *testing.T) {
		resp, body := doRequest(t, app, "GET", "/api/notes", u2, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Empty(t, body["notes"])
	})

	t.Run("other user cannot fetch the note", func(t *testing.T) {
		resp, body := doRequest(t, app, "GET", "/api/notes/"+noteId, u2, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "Note not found", body["error"])
	})

	t.Run("other user cannot delete the note", func(t *testing.T) {
		resp, _ := doRequest(t, app, "DELETE", "/api/notes/"+noteId, u2, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		// Still retrievable by its owner.
		resp, body := doRequest(t, app, "GET", "/api/notes/"+noteId, u1, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		note := body["note"].(map[string]interface{})
		assert.Equal(t, "u1", note["user_id"])
	})
}

func TestNotesAPIDeleteIdempotent(t *testing.T) {
	app := newTestApp(t, "")

	_, body := doRequest(t, app, "POST", "/api/notes", "", validNoteBody())
	noteId := body["id"].(string)

	resp, body := doRequest(t, app, "DELETE", "/api/notes/"+noteId, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Note deleted successfully", body["message"])

	resp, body = doRequest(t, app, "DELETE", "/api/notes/"+noteId, "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Note not found", body["error"])
}

func TestNotesAPIListNewestFirst(t *testing.T) {
	app := newTestApp(t, "")

	urls := []string{"https://example.com/1", "https://example.com/2", "https://example.com/3"}
	for _, url := range urls {
		payload := validNoteBody()
		payload["url"] = url
		resp, _ := doRequest(t, app, "POST", "/api/notes", "", payload)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		time.Sleep(5 * time.Millisecond)
	}

	resp, body := doRequest(t, app, "GET", "/api/notes", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	notes := body["notes"].([]interface{})
	require.Len(t, notes, 3)
	for i, url := range []string{urls[2], urls[1], urls[0]} {
		note := notes[i].(map[string]interface{})
		assert.Equal(t, url, note["url"])
	}
}

// failingNoteService simulates an unavailable note store.
type failingNoteService struct{}

func (failingNoteService) Create(ctx context.Context, userId string, req *dto.CreateNoteRequest) (*dto.CreateNoteResponse, error) {
	return nil, errors.New("store unavailable")
}

func (failingNoteService) List(ctx context.Context, userId string) ([]*dto.NoteResponse, error) {
	return nil, errors.New("store unavailable")
}

func (failingNoteService) Show(ctx context.Context, userId string, id uuid.UUID) (*dto.NoteResponse, error) {
	return nil, errors.New("store unavailable")
}

func (failingNoteService) Delete(ctx context.Context, userId string, id uuid.UUID) error {
	return errors.New("store unavailable")
}

func TestNotesAPIStoreFailureMessages(t *testing.T) {
	log := logger.NewIsolatedLogger(filepath.Join(t.TempDir(), "test.log"))
	tokens := service.NewTokenService("", time.Minute)

	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware(log))
	api := app.Group("/api")
	NewNoteController(failingNoteService{}).RegisterRoutes(api, serverutils.AuthMiddleware(tokens))

	noteId := uuid.NewString()
	tests := []struct {
		method  string
		path    string
		body    interface{}
		message string
	}{
		{"POST", "/api/notes", validNoteBody(), "Failed to save note"},
		{"GET", "/api/notes", nil, "Failed to fetch notes"},
		{"GET", "/api/notes/" + noteId, nil, "Failed to fetch note"},
		{"DELETE", "/api/notes/" + noteId, nil, "Failed to delete note"},
	}

	for _, tc := range tests {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			resp, body := doRequest(t, app, tc.method, tc.path, "", tc.body)
			assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
			assert.Equal(t, tc.message, body["error"])
		})
	}
}

func TestNotesAPIMalformedNoteId(t *testing.T) {
	app := newTestApp(t, "")

	resp, body := doRequest(t, app, "GET", "/api/notes/definitely-not-a-uuid", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Note not found", body["error"])
}
