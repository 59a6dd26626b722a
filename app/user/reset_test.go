package user

import (
	"bitwise74/account-api/internal/model"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func newResetFixture(t *testing.T, password string) (*mockUserStore, *mockMailer, *model.User, *gin.Engine, *gin.Engine) {
	t.Helper()

	users := &mockUserStore{}
	mailer := &mockMailer{}
	d := newTestDeps(t, users, mailer)

	hash, err := d.Argon.GenerateFromPassword(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	u := &model.User{
		ID:           "u1",
		Name:         "Ann",
		Email:        "ann@x.com",
		PasswordHash: hash,
		Role:         model.RoleUser,
		Verified:     true,
	}

	sendRouter := newTestRouter(http.MethodPost, "/send-password-update-code", u,
		func(c *gin.Context) { UserSendResetCode(c, d) })
	updateRouter := newTestRouter(http.MethodPost, "/update-password", u,
		func(c *gin.Context) { UserUpdatePassword(c, d) })

	return users, mailer, u, sendRouter, updateRouter
}

func TestSendResetCode(t *testing.T) {
	users, mailer, u, sendRouter, _ := newResetFixture(t, "password123")

	w := performJSON(t, sendRouter, http.MethodPost, "/send-password-update-code", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	if users.saveCalls != 1 {
		t.Fatalf("expected the code to be persisted")
	}
	if u.ResetCode == nil || u.ResetExpiry == nil {
		t.Fatalf("expected both reset fields to be set")
	}
	if len(*u.ResetCode) != 6 {
		t.Fatalf("expected a 6-digit code, got %q", *u.ResetCode)
	}
	if mailer.lastCode != *u.ResetCode {
		t.Fatalf("mailed code differs from the stored one")
	}

	until := time.Until(*u.ResetExpiry)
	if until < 9*time.Minute || until > 10*time.Minute {
		t.Fatalf("expected a ~10 minute expiry, got %v", until)
	}
}

func TestUpdatePassword_FullFlow(t *testing.T) {
	_, mailer, u, sendRouter, updateRouter := newResetFixture(t, "password123")

	if w := performJSON(t, sendRouter, http.MethodPost, "/send-password-update-code", nil); w.Code != http.StatusOK {
		t.Fatalf("failed to request a code: %d", w.Code)
	}

	oldHash := u.PasswordHash

	w := performJSON(t, updateRouter, http.MethodPost, "/update-password", updatePasswordBody{
		VerificationCode: mailer.lastCode,
		OldPassword:      "password123",
		NewPassword:      "newpassword456",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	if u.PasswordHash == oldHash {
		t.Fatalf("password hash should have changed")
	}
	if u.ResetCode != nil || u.ResetExpiry != nil {
		t.Fatalf("reset fields must be cleared after use")
	}

	// The consumed code can't be replayed
	w = performJSON(t, updateRouter, http.MethodPost, "/update-password", updatePasswordBody{
		VerificationCode: mailer.lastCode,
		OldPassword:      "newpassword456",
		NewPassword:      "anotherpass789",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 when reusing a consumed code, got %d", w.Code)
	}
}

func TestUpdatePassword_WrongOldPassword(t *testing.T) {
	users, mailer, _, sendRouter, updateRouter := newResetFixture(t, "password123")

	if w := performJSON(t, sendRouter, http.MethodPost, "/send-password-update-code", nil); w.Code != http.StatusOK {
		t.Fatalf("failed to request a code: %d", w.Code)
	}
	savesBefore := users.saveCalls

	w := performJSON(t, updateRouter, http.MethodPost, "/update-password", updatePasswordBody{
		VerificationCode: mailer.lastCode,
		OldPassword:      "wrong-password",
		NewPassword:      "newpassword456",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if users.saveCalls != savesBefore {
		t.Fatalf("nothing may be persisted on a failed proof")
	}
}

func TestUpdatePassword_ExpiredCode(t *testing.T) {
	_, _, u, _, updateRouter := newResetFixture(t, "password123")

	code := "654321"
	expiry := time.Now().Add(-time.Minute)
	u.ResetCode = &code
	u.ResetExpiry = &expiry

	w := performJSON(t, updateRouter, http.MethodPost, "/update-password", updatePasswordBody{
		VerificationCode: code,
		OldPassword:      "password123",
		NewPassword:      "newpassword456",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for an expired code, got %d", w.Code)
	}
}

func TestUpdatePassword_NoCodeRequested(t *testing.T) {
	_, _, _, _, updateRouter := newResetFixture(t, "password123")

	w := performJSON(t, updateRouter, http.MethodPost, "/update-password", updatePasswordBody{
		VerificationCode: "123456",
		OldPassword:      "password123",
		NewPassword:      "newpassword456",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 when no code was requested, got %d", w.Code)
	}
}
