package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"storefront/m/domain"
)

// sessionCookie is the HTTP-only cookie carrying the session token.
const sessionCookie = "token"

// sessionTTL matches the original fixed 8-hour token validity.
const sessionTTL = 8 * time.Hour

type sessionClaims struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func (h *Handler) generateToken(userID int64, email string, role domain.Role) (string, error) {
	claims := sessionClaims{
		UserID: userID,
		Email:  email,
		Role:   string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.cfg.Secret))
}

// tokenFromRequest prefers the session cookie and falls back to a bearer header.
func tokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(sessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	header := r.Header.Get("Authorization")
	if header != "" && strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return strings.TrimSpace(header[len("Bearer "):])
	}
	return ""
}

func (h *Handler) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := tokenFromRequest(r)
		if tokenString == "" {
			respondError(w, http.StatusUnauthorized, "Authentication required. Please login.")
			return
		}
		token, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(token *jwt.Token) (interface{}, error) {
			if token.Method != jwt.SigningMethodHS256 {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(h.cfg.Secret), nil
		})
		if err != nil || !token.Valid {
			respondError(w, http.StatusUnauthorized, "Invalid or expired token. Please login again.")
			return
		}
		claims, ok := token.Claims.(*sessionClaims)
		if !ok {
			respondError(w, http.StatusUnauthorized, "Invalid or expired token. Please login again.")
			return
		}
		ctx := context.WithValue(r.Context(), ctxUserID, claims.UserID)
		ctx = context.WithValue(ctx, ctxEmail, claims.Email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionUserID(r *http.Request) int64 {
	id, _ := r.Context().Value(ctxUserID).(int64)
	return id
}

// requireAdmin gates admin-only mutations. The role is read back from the
// store rather than trusted from the token, so a demoted account loses
// access without waiting out its session.
func (h *Handler) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	var role domain.Role
	err := h.db.Get(&role, `SELECT role FROM users WHERE id = ?`, sessionUserID(r))
	if err != nil {
		respondError(w, http.StatusForbidden, "Permission denied")
		return false
	}
	switch role {
	case domain.RoleAdmin:
		return true
	case domain.RoleGeneral:
		respondError(w, http.StatusForbidden, "Permission denied")
		return false
	default:
		respondError(w, http.StatusForbidden, "Permission denied")
		return false
	}
}
