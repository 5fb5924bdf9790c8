package authorization

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/cristalhq/jwt/v4"

	"github.com/AkashRanjanSaikia/Hotal-Booking-system/domain"
)

var ErrTokenExpired = errors.New("token has expired")

type claimsKey struct{}

// GetClaims verifies the token signature against SECRET_KEY and returns the
// embedded identity, rejecting expired tokens.
func GetClaims(tokenString string) (*domain.Claims, error) {
	verifier, err := jwt.NewVerifierHS(jwt.HS256, []byte(os.Getenv("SECRET_KEY")))
	if err != nil {
		return nil, err
	}

	token, err := jwt.Parse([]byte(tokenString), verifier)
	if err != nil {
		return nil, err
	}

	var claims domain.Claims
	if err := jwt.ParseClaims(token.Bytes(), verifier, &claims); err != nil {
		return nil, err
	}

	if !claims.ExpiresAt.IsZero() && time.Now().After(claims.ExpiresAt) {
		return nil, ErrTokenExpired
	}

	return &claims, nil
}

// ExtractToken pulls the credential from the token cookie, falling back to
// an Authorization bearer header.
func ExtractToken(req *http.Request) string {
	if cookie, err := req.Cookie("token"); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	bearer := req.Header.Get("Authorization")
	fields := strings.Fields(bearer)
	if len(fields) == 2 && fields[0] == "Bearer" {
		return fields[1]
	}
	return ""
}

func ContextWithClaims(ctx context.Context, claims *domain.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

func ClaimsFromContext(ctx context.Context) (*domain.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*domain.Claims)
	return claims, ok
}
