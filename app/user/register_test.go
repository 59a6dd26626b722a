package user

import (
	"bitwise74/account-api/internal/model"
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRegister_ReturnsActivationToken(t *testing.T) {
	users := &mockUserStore{}
	mailer := &mockMailer{}
	d := newTestDeps(t, users, mailer)

	r := newTestRouter(http.MethodPost, "/registration", nil, func(c *gin.Context) { UserRegister(c, d) })

	w := performJSON(t, r, http.MethodPost, "/registration", registerBody{
		Name:     "Ann",
		Email:    "ann@x.com",
		Password: "password123",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	token, _ := body["activationToken"].(string)
	if token == "" {
		t.Fatalf("expected an activation token in the response")
	}

	if mailer.sendCalls != 1 {
		t.Fatalf("expected the activation mail to be sent once, got %d", mailer.sendCalls)
	}
	if len(mailer.lastCode) != 4 {
		t.Fatalf("expected a 4-digit activation code, got %q", mailer.lastCode)
	}
	if users.createCalls != 0 {
		t.Fatalf("registration must not persist anything before activation")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	users := &mockUserStore{
		findByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: "u1", Email: email}, nil
		},
	}
	mailer := &mockMailer{}
	d := newTestDeps(t, users, mailer)

	r := newTestRouter(http.MethodPost, "/registration", nil, func(c *gin.Context) { UserRegister(c, d) })

	w := performJSON(t, r, http.MethodPost, "/registration", registerBody{
		Name:     "Ann",
		Email:    "taken@x.com",
		Password: "password123",
	})

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
	if mailer.sendCalls != 0 {
		t.Fatalf("no mail should go out for a duplicate email")
	}
}

func TestRegister_MailFailureFailsRequest(t *testing.T) {
	users := &mockUserStore{}
	mailer := &mockMailer{
		activationFunc: func(to, name, code string) error {
			return errors.New("smtp down")
		},
	}
	d := newTestDeps(t, users, mailer)

	r := newTestRouter(http.MethodPost, "/registration", nil, func(c *gin.Context) { UserRegister(c, d) })

	w := performJSON(t, r, http.MethodPost, "/registration", registerBody{
		Name:     "Ann",
		Email:    "ann@x.com",
		Password: "password123",
	})

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 when the mail can't be delivered, got %d", w.Code)
	}

	body := decodeBody(t, w)
	if _, ok := body["activationToken"]; ok {
		t.Fatalf("no token may be returned when the code never went out")
	}
}

func TestRegister_InvalidInput(t *testing.T) {
	cases := []struct {
		name string
		body registerBody
	}{
		{"missing name", registerBody{Email: "ann@x.com", Password: "password123"}},
		{"bad email", registerBody{Name: "Ann", Email: "not-an-email", Password: "password123"}},
		{"short password", registerBody{Name: "Ann", Email: "ann@x.com", Password: "short"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := newTestDeps(t, &mockUserStore{}, &mockMailer{})
			r := newTestRouter(http.MethodPost, "/registration", nil, func(c *gin.Context) { UserRegister(c, d) })

			w := performJSON(t, r, http.MethodPost, "/registration", tc.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
		})
	}
}
