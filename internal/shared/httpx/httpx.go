package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/Olori-Ebi/Eyi-media/internal/shared/apperr"
	"github.com/Olori-Ebi/Eyi-media/internal/shared/jwt"
)

type HandlerFunc func(http.ResponseWriter, *http.Request) error

// Wrap adapts a handler-returning-error to http.Handler and maps the
// error taxonomy to status codes. Forbidden maps to 401, this app's
// convention, kept for client compatibility. Anything outside the
// taxonomy is a 500: logged in full, generic message out.
func Wrap(fn HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err == nil {
			return
		}
		switch apperr.KindOf(err) {
		case apperr.KindValidation:
			WriteJSON(w, map[string]string{"msg": err.Error()}, http.StatusBadRequest)
		case apperr.KindNotFound:
			WriteJSON(w, map[string]string{"msg": err.Error()}, http.StatusNotFound)
		case apperr.KindForbidden:
			WriteJSON(w, map[string]string{"msg": err.Error()}, http.StatusUnauthorized)
		default:
			log.Printf("[HTTP] %s %s: %v", r.Method, r.URL.Path, err)
			WriteJSON(w, map[string]string{"msg": "Server error"}, http.StatusInternalServerError)
		}
	})
}

func WriteJSON(w http.ResponseWriter, v any, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type ctxKey string

const userKey ctxKey = "user_id"

var ErrNoUser = errors.New("no user in context")

func BearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok := BearerToken(r)
		if tok == "" {
			WriteJSON(w, map[string]string{"msg": "Unauthorized"}, http.StatusUnauthorized)
			return
		}
		uid, err := jwt.Parse(tok)
		if err != nil || uid == "" {
			WriteJSON(w, map[string]string{"msg": "Unauthorized"}, http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), userKey, uid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithUser is used by tests to simulate an authenticated request.
func WithUser(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userKey, userID)
}

func UserFromCtx(r *http.Request) (string, error) {
	uid, _ := r.Context().Value(userKey).(string)
	if uid == "" {
		return "", ErrNoUser
	}
	return uid, nil
}
