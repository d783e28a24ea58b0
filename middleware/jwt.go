package middleware

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"p9e.in/inspectly/config"
	"p9e.in/inspectly/models"
)

var jwtKey = []byte(os.Getenv("JWT_SECRET"))

// Claims are the custom payload of a portal JWT. Role is a claim copy
// of the profile's role at issue time; the guard re-reads the profile
// so a demoted admin loses access without waiting out the token.
type Claims struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// unexported type prevents collisions in context
type ctxKey int

const (
	userClaimsKey ctxKey = iota
	profileKey
)

// GenerateToken creates a signed JWT valid for 24 h
func GenerateToken(userID, role, name string) (string, error) {
	claims := Claims{
		UserID: userID,
		Name:   name,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey)
}

// Authenticate parses a bearer token when present and stashes the
// Claims in ctx. It never rejects by itself: a missing or bad token
// just leaves the request anonymous for the guard to judge, so the
// unauthenticated verdict lives in exactly one place.
func Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		parts := strings.SplitN(auth, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			next.ServeHTTP(w, r)
			return
		}

		token, err := jwt.ParseWithClaims(parts[1], &Claims{}, func(t *jwt.Token) (interface{}, error) {
			return jwtKey, nil
		})
		if err != nil || !token.Valid {
			next.ServeHTTP(w, r)
			return
		}
		claims, ok := token.Claims.(*Claims)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), userClaimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetClaims pulls the *Claims out of the request context (or nil)
func GetClaims(r *http.Request) *Claims {
	if c, ok := r.Context().Value(userClaimsKey).(*Claims); ok {
		return c
	}
	return nil
}

// GetUserID returns the authenticated caller's id or "".
func GetUserID(r *http.Request) string {
	if c := GetClaims(r); c != nil {
		return c.UserID
	}
	return ""
}

// CurrentProfile returns the profile the guard loaded for this request,
// or loads it on demand for routes outside the guard.
func CurrentProfile(r *http.Request) *models.Profile {
	if p, ok := r.Context().Value(profileKey).(*models.Profile); ok {
		return p
	}
	c := GetClaims(r)
	if c == nil {
		return nil
	}
	var profile models.Profile
	if err := config.DB.First(&profile, "id = ?", c.UserID).Error; err != nil {
		return nil
	}
	return &profile
}

func withProfile(r *http.Request, p *models.Profile) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), profileKey, p))
}
