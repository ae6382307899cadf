package v1

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/DelsinneJordan/BigFlix/internal/request"
)

// Claims are the JWT claims issued to BigFlix users.
type Claims struct {
	Name        string   `json:"name,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
	jwt.RegisteredClaims
}

type actorKey struct{}

// WithActor returns a context carrying actor.
func WithActor(ctx context.Context, actor request.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFrom returns the authenticated caller.
func ActorFrom(ctx context.Context) (request.Actor, bool) {
	a, ok := ctx.Value(actorKey{}).(request.Actor)
	return a, ok
}

// SignToken issues an HS256 token for actor. A zero ttl means no expiry.
func SignToken(secret []byte, issuer string, actor request.Actor, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Name: actor.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  actor.UserID,
			Issuer:   issuer,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	for _, p := range actor.Permissions {
		claims.Permissions = append(claims.Permissions, string(p))
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// parseToken verifies a token and returns the caller it names.
func (s *Server) parseToken(raw string) (request.Actor, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if s.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.cfg.Issuer))
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return s.cfg.JWTSecret, nil
	}, opts...)
	if err != nil {
		return request.Actor{}, err
	}
	if claims.Subject == "" {
		return request.Actor{}, errors.New("token has no subject")
	}

	actor := request.Actor{UserID: claims.Subject, Name: claims.Name}
	for _, p := range claims.Permissions {
		actor.Permissions = append(actor.Permissions, request.Permission(p))
	}
	return actor, nil
}

// authenticate rejects requests without a valid bearer token.
func (s *Server) authenticate(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing bearer token")
			return
		}
		actor, err := s.parseToken(raw)
		if err != nil {
			s.log.Debug("rejected token", "path", r.URL.Path, "error", err)
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or expired token")
			return
		}
		next(w, r.WithContext(WithActor(r.Context(), actor)))
	}
}
