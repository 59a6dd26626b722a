package internal

import (
	"bitwise74/account-api/internal/service"
	"bitwise74/account-api/internal/store"
	"bitwise74/account-api/pkg/security"
	"context"
)

// AvatarStore is the external image host the avatar flow talks to
type AvatarStore interface {
	Upload(ctx context.Context, data []byte) (id, url string, err error)
	Delete(ctx context.Context, id string) error
}

type Deps struct {
	Users    store.UserStore
	Argon    *security.ArgonHash
	Sessions *service.Sessions
	Mailer   service.Mailer
	Avatars  AvatarStore

	// ActivationSecret signs the pending-registration tokens. Separate
	// from the session secrets so the three trust boundaries stay
	// independent
	ActivationSecret []byte

	// MaxAvatarSize caps the decoded avatar payload in bytes
	MaxAvatarSize int64
}
