package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nkroberts01/virtual-interviews/internal/apperror"
	"github.com/nkroberts01/virtual-interviews/internal/auth"
	"github.com/nkroberts01/virtual-interviews/internal/session"
	"github.com/nkroberts01/virtual-interviews/pkg/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeStore implements UserStore, InterviewStore and ApplicationStore in
// memory with the same error taxonomy as the real repository.
type fakeStore struct {
	users      []model.User
	interviews []model.Interview
	apps       []model.Application

	createInterviewErr error
	getInterviewCalls  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{}
}

func (f *fakeStore) CreateUser(_ context.Context, email, passwordHash string) (model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return model.User{}, apperror.New(apperror.Validation, "email already registered")
		}
	}
	u := model.User{ID: uuid.New(), Email: email, PasswordHash: passwordHash, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	f.users = append(f.users, u)
	return u, nil
}

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, apperror.New(apperror.NotFound, "user not found")
}

func (f *fakeStore) GetUserByID(_ context.Context, id uuid.UUID) (model.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, apperror.New(apperror.NotFound, "user not found")
}

func (f *fakeStore) ConfirmUser(_ context.Context, id uuid.UUID) error {
	for i, u := range f.users {
		if u.ID == id {
			now := time.Now()
			f.users[i].ConfirmedAt = &now
			return nil
		}
	}
	return apperror.New(apperror.NotFound, "user not found")
}

func (f *fakeStore) CreateInterview(_ context.Context, creatorID uuid.UUID, title string, settings model.InterviewSettings) (model.Interview, error) {
	if f.createInterviewErr != nil {
		return model.Interview{}, f.createInterviewErr
	}
	iv := model.Interview{ID: uuid.New(), CreatorID: creatorID, Title: title, Settings: settings, CreatedAt: time.Now()}
	f.interviews = append(f.interviews, iv)
	return iv, nil
}

func (f *fakeStore) GetInterviewOwned(_ context.Context, id, creatorID uuid.UUID) (model.Interview, error) {
	f.getInterviewCalls++
	for _, iv := range f.interviews {
		if iv.ID == id && iv.CreatorID == creatorID {
			return iv, nil
		}
	}
	return model.Interview{}, apperror.New(apperror.NotFound, "interview not found")
}

func (f *fakeStore) GetInterview(_ context.Context, id uuid.UUID) (model.Interview, error) {
	for _, iv := range f.interviews {
		if iv.ID == id {
			return iv, nil
		}
	}
	return model.Interview{}, apperror.New(apperror.NotFound, "interview not found")
}

func (f *fakeStore) ListInterviewsByCreator(_ context.Context, creatorID uuid.UUID) ([]model.Interview, error) {
	out := make([]model.Interview, 0)
	for _, iv := range f.interviews {
		if iv.CreatorID == creatorID {
			out = append(out, iv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeStore) CreateApplication(_ context.Context, interviewID uuid.UUID, candidateEmail string) (model.Application, error) {
	app := model.Application{
		ID:             uuid.New(),
		InterviewID:    interviewID,
		CandidateEmail: candidateEmail,
		Status:         model.ApplicationStatusPending,
		CreatedAt:      time.Now(),
	}
	f.apps = append(f.apps, app)
	return app, nil
}

func (f *fakeStore) GetApplication(_ context.Context, id uuid.UUID) (model.Application, error) {
	for _, app := range f.apps {
		if app.ID == id {
			return app, nil
		}
	}
	return model.Application{}, apperror.New(apperror.NotFound, "application not found")
}

func (f *fakeStore) ListApplicationsByInterview(_ context.Context, interviewID uuid.UUID) ([]model.Application, error) {
	out := make([]model.Application, 0)
	for _, app := range f.apps {
		if app.InterviewID == interviewID {
			out = append(out, app)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeStore) AttachVideo(_ context.Context, id uuid.UUID, videoURL string) (model.Application, error) {
	for i, app := range f.apps {
		if app.ID == id {
			f.apps[i].VideoURL = &videoURL
			f.apps[i].Status = model.ApplicationStatusCompleted
			f.apps[i].Attempts++
			return f.apps[i], nil
		}
	}
	return model.Application{}, apperror.New(apperror.NotFound, "application not found")
}

func newTestHandler(store *fakeStore) *Handler {
	return &Handler{
		Logger:       zap.NewNop(),
		Users:        store,
		Interviews:   store,
		Applications: store,
		TokenMaker:   auth.NewJWTMaker("0123456789abcdef0123456789abcdef"),
		Sessions:     session.NewMemoryStore(),
		Hub:          session.NewHub(),
		AccessTTL:    time.Hour,
		ConfirmTTL:   time.Hour,
	}
}

// withClaims simulates the auth gate having verified a session.
func withClaims(userID uuid.UUID, email string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, _ := auth.NewUserClaims(userID, email, time.Hour)
		c.Set("claims", claims)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
