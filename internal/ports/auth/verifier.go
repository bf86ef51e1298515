package auth

import "context"

// AuthVerifier verifica un bearer token y devuelve claims (incluye permisos) o error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
