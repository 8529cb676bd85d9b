package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/campushub/analytics-api/internal/application/usecases"
	"github.com/campushub/analytics-api/internal/domain/apperrors"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTrackerUseCase struct {
	err  error
	last usecases.TrackEventInput
}

func (s *stubTrackerUseCase) RecordEvent(_ context.Context, in usecases.TrackEventInput) (uuid.UUID, error) {
	s.last = in
	if s.err != nil {
		return uuid.Nil, s.err
	}
	return uuid.New(), nil
}

func newTrackApp(uc usecases.TrackerUseCase) *fiber.App {
	app := fiber.New()
	app.Post("/track", NewTrackHandler(uc).Track)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) (int, map[string]any) {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

func TestTrack_Success(t *testing.T) {
	stub := &stubTrackerUseCase{}
	app := newTrackApp(stub)

	status, body := postJSON(t, app, "/track", map[string]any{
		"action_type": "page_view",
		"session_id":  "sess-1",
		"page_url":    "/library",
	})

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["event_id"])
	assert.Equal(t, "page_view", stub.last.ActionType)
	assert.Equal(t, "sess-1", stub.last.SessionID)
	assert.False(t, stub.last.At.IsZero())
}

func TestTrack_InvalidBodyIs400(t *testing.T) {
	stub := &stubTrackerUseCase{}
	app := newTrackApp(stub)

	req := httptest.NewRequest("POST", "/track", bytes.NewReader([]byte("{nope")))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestTrack_MissingFieldIs400(t *testing.T) {
	stub := &stubTrackerUseCase{err: apperrors.InvalidArgument("action_type")}
	app := newTrackApp(stub)

	status, body := postJSON(t, app, "/track", map[string]any{
		"session_id": "sess-1",
	})

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])
}

func TestTrack_StorageFailureStillReturns200(t *testing.T) {
	stub := &stubTrackerUseCase{err: apperrors.Storage("insert behavior event", errors.New("connection refused"))}
	app := newTrackApp(stub)

	status, body := postJSON(t, app, "/track", map[string]any{
		"action_type": "click",
		"session_id":  "sess-1",
	})

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["success"])
}

func TestTrack_SearchFieldsArePassedThrough(t *testing.T) {
	stub := &stubTrackerUseCase{}
	app := newTrackApp(stub)

	status, _ := postJSON(t, app, "/track", map[string]any{
		"action_type":  "search",
		"session_id":   "sess-1",
		"query":        "cálculo",
		"search_type":  "courses",
		"result_count": 12,
	})

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "cálculo", stub.last.Query)
	assert.Equal(t, "courses", stub.last.SearchType)
	assert.Equal(t, 12, stub.last.ResultCount)
}
