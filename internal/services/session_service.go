package services

import (
	"context"
	"errors"

	redis "github.com/redis/go-redis/v9"

	"messaging-backend/internal/model"
	jwtmw "messaging-backend/middleware/jwt"
)

const sessionKeyPrefix = "session:"

// SessionService turns a verified identity into an opaque bearer token and
// resolves tokens back to principals. The token's jti is mirrored into
// redis with the token's TTL; logout deletes the record, so a lingering
// token no longer resolves even though its signature is still valid.
type SessionService struct {
	tokens *jwtmw.TokenManager
	rdb    *redis.Client
}

func NewSessionService(tokens *jwtmw.TokenManager, rdb *redis.Client) *SessionService {
	return &SessionService{
		tokens: tokens,
		rdb:    rdb,
	}
}

// Open issues a token for the user and records the session.
func (s *SessionService) Open(ctx context.Context, user *model.User) (string, error) {
	token, jti, err := s.tokens.GenerateToken(user.Username, user.Role)
	if err != nil {
		return "", err
	}
	if err := s.rdb.Set(ctx, sessionKeyPrefix+jti, user.Username, s.tokens.Expiry()).Err(); err != nil {
		return "", storeErr(err)
	}
	return token, nil
}

// Resolve returns the principal behind a token, or ErrAuthentication when
// the token is invalid, expired, or its session was closed.
func (s *SessionService) Resolve(ctx context.Context, token string) (string, error) {
	claims, err := s.tokens.ParseToken(token)
	if err != nil {
		return "", ErrAuthentication
	}

	username, err := s.rdb.Get(ctx, sessionKeyPrefix+claims.ID).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrAuthentication
	}
	if err != nil {
		return "", storeErr(err)
	}
	if username != claims.Username {
		return "", ErrAuthentication
	}
	return username, nil
}

// Close revokes the token's session. Closing an unknown or already-closed
// session is a no-op.
func (s *SessionService) Close(ctx context.Context, token string) error {
	claims, err := s.tokens.ParseToken(token)
	if err != nil {
		return nil
	}
	if err := s.rdb.Del(ctx, sessionKeyPrefix+claims.ID).Err(); err != nil {
		return storeErr(err)
	}
	return nil
}
