package api

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/nitintomar713/sacmtb-surya/internal/domain/entities"
	"github.com/nitintomar713/sacmtb-surya/internal/usecase"
)

// the parsed token lives under "token"; the loaded user under "user".
const (
	tokenContextKey = "token"
	userContextKey  = "user"
)

// JWTMiddleware validates the bearer token (header or cookie) and stores the
// parsed claims on the context.
func JWTMiddleware(secret []byte) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey: secret,
		ContextKey: tokenContextKey,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(usecase.AuthClaims)
		},
		TokenLookup: "header:Authorization:Bearer ,cookie:token",
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid or missing token"})
		},
	})
}

// LoadUser resolves the authenticated user from the token claims. Blocked or
// deleted accounts are rejected here so every protected handler sees a live
// user.
func LoadUser(authUC *usecase.AuthUseCase) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get(tokenContextKey).(*jwt.Token)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid or missing token"})
			}
			claims, ok := token.Claims.(*usecase.AuthClaims)
			if !ok || claims.UserID == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid or missing token"})
			}

			user, err := authUC.Authenticate(c.Request().Context(), claims.UserID)
			if err != nil {
				return respondError(c, err)
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// AdminOnly requires the loaded user to be an admin.
func AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := currentUser(c)
		if user == nil || !user.IsAdmin {
			return c.JSON(http.StatusForbidden, echo.Map{"message": "admin access required"})
		}
		return next(c)
	}
}

func currentUser(c echo.Context) *entities.User {
	user, _ := c.Get(userContextKey).(*entities.User)
	return user
}
