package user

import (
	"bitwise74/account-api/internal"
	"bitwise74/account-api/internal/model"
	"bitwise74/account-api/internal/service"
	"bitwise74/account-api/internal/store"
	"bitwise74/account-api/pkg/security"
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

type mockUserStore struct {
	findByEmailFunc func(ctx context.Context, email string) (*model.User, error)
	findByIDFunc    func(ctx context.Context, id string) (*model.User, error)
	createFunc      func(ctx context.Context, u *model.User) error
	saveFunc        func(ctx context.Context, u *model.User) error
	createCalls     int
	saveCalls       int
}

func (m *mockUserStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.findByEmailFunc == nil {
		return nil, store.ErrUserNotFound
	}
	return m.findByEmailFunc(ctx, email)
}

func (m *mockUserStore) FindByID(ctx context.Context, id string) (*model.User, error) {
	if m.findByIDFunc == nil {
		return nil, store.ErrUserNotFound
	}
	return m.findByIDFunc(ctx, id)
}

func (m *mockUserStore) Create(ctx context.Context, u *model.User) error {
	m.createCalls++
	if m.createFunc == nil {
		return nil
	}
	return m.createFunc(ctx, u)
}

func (m *mockUserStore) Save(ctx context.Context, u *model.User) error {
	m.saveCalls++
	if m.saveFunc == nil {
		return nil
	}
	return m.saveFunc(ctx, u)
}

type mockMailer struct {
	activationFunc func(to, name, code string) error
	resetFunc      func(to, name, code string) error
	lastCode       string
	sendCalls      int
}

func (m *mockMailer) SendActivationCode(to, name, code string) error {
	m.sendCalls++
	m.lastCode = code
	if m.activationFunc == nil {
		return nil
	}
	return m.activationFunc(to, name, code)
}

func (m *mockMailer) SendResetCode(to, name, code string) error {
	m.sendCalls++
	m.lastCode = code
	if m.resetFunc == nil {
		return nil
	}
	return m.resetFunc(to, name, code)
}

type mockAvatars struct {
	uploadFunc  func(ctx context.Context, data []byte) (string, string, error)
	deleteCalls int
}

func (m *mockAvatars) Upload(ctx context.Context, data []byte) (string, string, error) {
	if m.uploadFunc == nil {
		return "avatar-key", "https://cdn.example.com/avatar-key", nil
	}
	return m.uploadFunc(ctx, data)
}

func (m *mockAvatars) Delete(ctx context.Context, id string) error {
	m.deleteCalls++
	return nil
}

func newTestDeps(t *testing.T, users *mockUserStore, mailer *mockMailer) *internal.Deps {
	t.Helper()

	sessions, err := service.NewSessions(service.SessionConfig{
		AccessSecret:  []byte("access-secret"),
		RefreshSecret: []byte("refresh-secret"),
		AccessTTL:     5 * time.Minute,
		RefreshTTL:    24 * time.Hour,
	})
	if err != nil {
		t.Fatalf("NewSessions error: %v", err)
	}

	return &internal.Deps{
		Users:            users,
		Argon:            security.NewArgon(),
		Sessions:         sessions,
		Mailer:           mailer,
		Avatars:          &mockAvatars{},
		ActivationSecret: []byte("activation-secret"),
		MaxAvatarSize:    8 << 20,
	}
}

// newTestRouter registers handler under method+path with the requestID
// set like the real middleware chain would. seedUser mimics the auth
// middleware attaching the resolved record
func newTestRouter(method, path string, seedUser *model.User, handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Handle(method, path, func(c *gin.Context) {
		c.Set("requestID", "test")
		if seedUser != nil {
			c.Set("authedUser", seedUser)
		}
		handler(c)
	})

	return r
}

func performJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal body: %v", err)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}

	return body
}
