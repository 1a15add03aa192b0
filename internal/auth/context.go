package auth

import (
	"context"

	"github.com/labstack/echo/v4"

	"hotelhub/internal/model"
)

const (
	claimsContextKey   = "token_claims"
	identityContextKey = "identity"
)

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying the authenticated user.
func WithIdentity(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, identityKey{}, user)
}

// IdentityFromContext returns the authenticated user attached to ctx.
func IdentityFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(identityKey{}).(*model.User)
	return user, ok && user != nil
}

// SetIdentity attaches the user to both the echo context and the request context.
func SetIdentity(c echo.Context, user *model.User) {
	c.Set(identityContextKey, user)
	req := c.Request()
	c.SetRequest(req.WithContext(WithIdentity(req.Context(), user)))
}

// Identity returns the user resolved by the gate for this request.
func Identity(c echo.Context) (*model.User, bool) {
	user, ok := c.Get(identityContextKey).(*model.User)
	return user, ok && user != nil
}

// TokenClaims returns the verified claims of the bearer token on this request.
func TokenClaims(c echo.Context) (*Claims, bool) {
	claims, ok := c.Get(claimsContextKey).(*Claims)
	return claims, ok && claims != nil
}
