package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkroberts01/virtual-interviews/pkg/model"
)

func candidateRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.POST("/interviews/:id/applications", h.Apply)
	r.POST("/applications/:id/video", h.SubmitVideo)
	return r
}

func seedInterview(t *testing.T, store *fakeStore, allowRetakes bool, maxAttempts int) model.Interview {
	t.Helper()
	iv, err := store.CreateInterview(context.Background(), uuid.New(), "Screen",
		model.NormalizeSettings([]string{"Tell me about yourself"}, allowRetakes, maxAttempts))
	require.NoError(t, err)
	return iv
}

func TestApply_CreatesPendingApplication(t *testing.T) {
	store := newFakeStore()
	h := newTestHandler(store)
	iv := seedInterview(t, store, false, 1)
	r := candidateRouter(h)

	w := doRequest(r, http.MethodPost, "/interviews/"+iv.ID.String()+"/applications",
		`{"candidate_email":"cand@example.com"}`)

	require.Equal(t, http.StatusCreated, w.Code)

	var env struct {
		Data model.Application `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, iv.ID, env.Data.InterviewID)
	assert.Equal(t, model.ApplicationStatusPending, env.Data.Status)
	assert.Nil(t, env.Data.VideoURL)
	assert.Zero(t, env.Data.Attempts)
}

func TestApply_UnknownInterview(t *testing.T) {
	store := newFakeStore()
	h := newTestHandler(store)
	r := candidateRouter(h)

	w := doRequest(r, http.MethodPost, "/interviews/"+uuid.NewString()+"/applications",
		`{"candidate_email":"cand@example.com"}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, store.apps)
}

func TestApply_RequiresEmail(t *testing.T) {
	store := newFakeStore()
	h := newTestHandler(store)
	iv := seedInterview(t, store, false, 1)
	r := candidateRouter(h)

	w := doRequest(r, http.MethodPost, "/interviews/"+iv.ID.String()+"/applications", `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, store.apps)
}

func TestSubmitVideo_FirstAttemptCompletes(t *testing.T) {
	store := newFakeStore()
	h := newTestHandler(store)
	iv := seedInterview(t, store, false, 1)
	app, err := store.CreateApplication(context.Background(), iv.ID, "cand@example.com")
	require.NoError(t, err)
	r := candidateRouter(h)

	w := doRequest(r, http.MethodPost, "/applications/"+app.ID.String()+"/video",
		`{"video_url":"https://videos.example.com/v/abc"}`)

	require.Equal(t, http.StatusOK, w.Code)

	var env struct {
		Data model.Application `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, model.ApplicationStatusCompleted, env.Data.Status)
	require.NotNil(t, env.Data.VideoURL)
	assert.Equal(t, "https://videos.example.com/v/abc", *env.Data.VideoURL)
	assert.Equal(t, 1, env.Data.Attempts)
}

func TestSubmitVideo_NoRetakesRejectsSecondAttempt(t *testing.T) {
	store := newFakeStore()
	h := newTestHandler(store)
	iv := seedInterview(t, store, false, 1)
	app, err := store.CreateApplication(context.Background(), iv.ID, "cand@example.com")
	require.NoError(t, err)
	r := candidateRouter(h)

	w := doRequest(r, http.MethodPost, "/applications/"+app.ID.String()+"/video",
		`{"video_url":"https://videos.example.com/v/one"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodPost, "/applications/"+app.ID.String()+"/video",
		`{"video_url":"https://videos.example.com/v/two"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "retakes are not allowed")
}

func TestSubmitVideo_RetakesUpToMaxAttempts(t *testing.T) {
	store := newFakeStore()
	h := newTestHandler(store)
	iv := seedInterview(t, store, true, 2)
	app, err := store.CreateApplication(context.Background(), iv.ID, "cand@example.com")
	require.NoError(t, err)
	r := candidateRouter(h)

	for i := 0; i < 2; i++ {
		w := doRequest(r, http.MethodPost, "/applications/"+app.ID.String()+"/video",
			`{"video_url":"https://videos.example.com/v/take"}`)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := doRequest(r, http.MethodPost, "/applications/"+app.ID.String()+"/video",
		`{"video_url":"https://videos.example.com/v/extra"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "maximum number of attempts")
}

func TestSubmitVideo_UnknownApplication(t *testing.T) {
	store := newFakeStore()
	h := newTestHandler(store)
	r := candidateRouter(h)

	w := doRequest(r, http.MethodPost, "/applications/"+uuid.NewString()+"/video",
		`{"video_url":"https://videos.example.com/v/abc"}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
