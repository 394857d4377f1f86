package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

type contextKey string

const identityKey contextKey = "identity"

// Messages returned by RequireBearer. Clients only ever see these two.
const (
	MsgAccessDenied = "Access denied"
	MsgInvalidToken = "Invalid token"
)

// RequireBearer guards mutating routes.
//
// A request without an "Authorization: Bearer <token>" header is rejected
// with 401. A token that fails verification (bad signature, wrong algorithm,
// expired, malformed) is rejected with 403. Otherwise the decoded Identity is
// stored in the request context and the next handler runs.
//
// Verification is stateless: a token stays valid even if its user is later
// removed from the database.
func RequireBearer(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				writeAuthError(w, http.StatusUnauthorized, MsgAccessDenied)
				return
			}

			id, err := tokens.Validate(raw)
			if err != nil {
				writeAuthError(w, http.StatusForbidden, MsgInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext returns the identity stored by RequireBearer.
// ok is false on routes that are not guarded.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok && id.UserID != 0
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
// The scheme is matched case-insensitively.
func bearerToken(r *http.Request) (string, bool) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	return token, token != ""
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
