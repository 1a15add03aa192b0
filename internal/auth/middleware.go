package auth

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"hotelhub/internal/errors"
	"hotelhub/internal/model"
)

// UserFinder resolves a token subject to a user record without its password hash.
type UserFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

// Gate authenticates bearer tokens and resolves them to users.
type Gate struct {
	jwtService *JWTService
	tokenStore TokenStoreInterface
	users      UserFinder
}

// NewGate creates the authorization gate.
func NewGate(jwtService *JWTService, tokenStore TokenStoreInterface, users UserFinder) *Gate {
	return &Gate{
		jwtService: jwtService,
		tokenStore: tokenStore,
		users:      users,
	}
}

// Authenticate extracts and verifies the bearer token, then attaches the
// resolved user to the request.
func (g *Gate) Authenticate() echo.MiddlewareFunc {
	verify := echojwt.WithConfig(echojwt.Config{
		ContextKey:  claimsContextKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return g.jwtService.VerifyToken(token)
		},
		ErrorHandler: tokenError,
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return verify(g.resolve(next))
	}
}

func (g *Gate) resolve(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := TokenClaims(c)
		if !ok {
			return errors.ErrInvalidToken
		}
		ctx := c.Request().Context()

		if g.tokenStore != nil {
			revoked, err := g.tokenStore.IsTokenRevoked(ctx, claims.ID)
			if err != nil {
				return fmt.Errorf("check token revocation: %w", err)
			}
			if revoked {
				return errors.ErrInvalidToken
			}
		}

		user, err := g.users.FindByID(ctx, claims.UserID)
		if err != nil {
			if stderrors.Is(err, gorm.ErrRecordNotFound) {
				return errors.ErrUnknownUser
			}
			return fmt.Errorf("resolve identity: %w", err)
		}

		SetIdentity(c, user)
		return next(c)
	}
}

// tokenError maps echo-jwt failures onto the authentication errors.
func tokenError(c echo.Context, err error) error {
	switch {
	case stderrors.Is(err, errors.ErrExpiredToken):
		return errors.ErrExpiredToken
	case stderrors.Is(err, errors.ErrInvalidToken):
		return errors.ErrInvalidToken
	}

	var parseErr *echojwt.TokenParsingError
	if stderrors.As(err, &parseErr) {
		return errors.ErrInvalidToken
	}
	return errors.ErrMissingToken
}

// RequireRoles allows the request through only when the resolved user holds
// one of the given roles.
func RequireRoles(roles ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := Identity(c)
			if !ok {
				return errors.ErrUnauthenticated
			}
			if !user.Role.In(roles...) {
				return errors.Forbidden(fmt.Sprintf("role %q is not authorized to access this resource", user.Role))
			}
			return next(c)
		}
	}
}
