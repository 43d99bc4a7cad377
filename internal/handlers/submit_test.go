package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

// setupSubmitServer builds a server with no database, redis, or arbiter
// wiring. Requests that are rejected before any I/O must still work here.
func setupSubmitServer() *GameServer {
	logger := logrus.New()
	logger.SetOutput(&strings.Builder{})
	return NewGameServer(logger, nil, "test_submissions")
}

func TestSubmitRejectsInvalidPayload(t *testing.T) {
	gs := setupSubmitServer()
	handler := SubmitAnswerHandler(gs)

	req := httptest.NewRequest(http.MethodPost, "/games/submit", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitRejectsInvalidRoundBeforeAnyIO(t *testing.T) {
	gs := setupSubmitServer()
	handler := SubmitAnswerHandler(gs)

	for _, body := range []string{
		`{"game_id":"5f0f9d3c-1111-4222-8333-444455556666","round_number":0,"answer":"bread"}`,
		`{"game_id":"5f0f9d3c-1111-4222-8333-444455556666","round_number":5,"answer":"bread"}`,
		`{"game_id":"5f0f9d3c-1111-4222-8333-444455556666","round_number":-2,"answer":"bread"}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/games/submit", strings.NewReader(body))
		rec := httptest.NewRecorder()

		// No database or judge is wired; reaching either would panic.
		handler(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code, "body: %s", body)
		assert.Contains(t, rec.Body.String(), "round")
	}
}
