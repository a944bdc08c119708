package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dempa-dev/dempa/shared/domain"
	jwt_internal "github.com/dempa-dev/dempa/shared/jwt"
	"github.com/dempa-dev/dempa/shared/logger"
	"github.com/dempa-dev/dempa/shared/utils"
)

// Key to store the caller pubkey in the request context
type key int

const PubkeyKey key = 0

// Auth holds dependencies for authentication middleware
type Auth struct {
	jwtService jwt_internal.JwtService
}

func NewAuth(jwtService jwt_internal.JwtService) *Auth {
	return &Auth{jwtService: jwtService}
}

// NeedAuth returns middleware that requires a valid session token
func (a *Auth) NeedAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			pubkey, err := a.extractPubkey(r)
			if err != nil {
				switch err {
				case errNoToken:
					http.Error(w, "Please sign-in", http.StatusUnauthorized)
				case errInvalidClaims:
					logger.Log.Error("invalid jwt claims")
					http.Error(w, "Invalid token", http.StatusUnauthorized)
				default:
					utils.WriteErrorAndStatusCode(w, err)
				}
				return
			}

			ctx := context.WithValue(r.Context(), PubkeyKey, pubkey)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractPubkey extracts and validates the caller pubkey from the JWT token
func (a *Auth) extractPubkey(r *http.Request) (domain.Pubkey, error) {
	// Cookie first (browser clients), Authorization header second
	var tokenString string
	accessCookie, err := r.Cookie("accessToken")
	if err == nil {
		tokenString = accessCookie.Value
	} else if token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); found {
		tokenString = token
	}

	if tokenString == "" {
		return "", errNoToken
	}

	token, err := a.jwtService.DecodeToken(tokenString)
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errInvalidClaims
	}

	pubkey, ok := claims["pubkey"].(string)
	if !ok || pubkey == "" {
		return "", errInvalidClaims
	}

	return pubkey, nil
}

// Sentinel errors for extractPubkey
var (
	errNoToken       = errorString("no token")
	errInvalidClaims = errorString("invalid claims")
)

type errorString string

func (e errorString) Error() string { return string(e) }

// GetPubkeyFromContext retrieves the authenticated pubkey from the context
func GetPubkeyFromContext(r *http.Request) domain.Pubkey {
	pubkey, ok := r.Context().Value(PubkeyKey).(domain.Pubkey)
	if !ok {
		return ""
	}
	return pubkey
}
