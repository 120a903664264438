// Package identity is the gateway's identity and token service: it issues
// bearer credentials on register/login and verifies them for the auth
// guard. The gateway core only depends on the Verifier capability, so the
// token scheme can change without touching pipeline logic.
package identity

import "context"

// Role is the authorization level carried by a verified credential.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Identity is the authenticated principal attached to a request context
// after the auth guard succeeds. UserID and Role are always set together.
type Identity struct {
	UserID string
	Role   Role
}

// Verifier validates a bearer credential and resolves the identity behind
// it. Implementations reject expired, malformed, or forged credentials.
type Verifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}
