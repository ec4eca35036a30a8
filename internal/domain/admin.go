package domain

import "context"

// AdminRepository looks up organizers allowed to create events.
type AdminRepository interface {
	GetIDByEmail(ctx context.Context, email string) (int64, error)
}

// TokenVerifier verifies a bearer token and returns the authenticated email.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// TokenIssuer signs bearer tokens for an admin email.
type TokenIssuer interface {
	Issue(email string) (string, error)
}
