package httpapi

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"strconv"
	"time"

	"github.com/Faizan-Faisal/umt-hackathon/internal/cache"
	"github.com/Faizan-Faisal/umt-hackathon/internal/errors"
)

const tokenPrefix = "token:"

// TokenStore issues and resolves opaque bearer tokens backed by the shared
// cache. Tokens carry no claims; the user id lives server side only.
type TokenStore struct {
	cache cache.Cache
	ttl   time.Duration
}

func NewTokenStore(c cache.Cache, ttl time.Duration) *TokenStore {
	return &TokenStore{cache: c, ttl: ttl}
}

// Issue generates a 256-bit token and binds it to the user for the store TTL.
func (t *TokenStore) Issue(ctx context.Context, userID uint) (string, error) {
	const size = 32

	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Internal("generating token", err)
	}
	token := base64.RawURLEncoding.EncodeToString(b)

	if err := t.cache.Set(ctx, tokenPrefix+token, strconv.FormatUint(uint64(userID), 10), t.ttl); err != nil {
		return "", errors.Internal("storing token", err)
	}
	return token, nil
}

func (t *TokenStore) Resolve(ctx context.Context, token string) (uint, error) {
	var raw string
	if err := t.cache.Get(ctx, tokenPrefix+token, &raw); err != nil {
		if err == cache.ErrNotFound {
			return 0, errors.Unauthorized("unknown token", nil)
		}
		return 0, errors.Internal("resolving token", err)
	}

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, errors.Internal("corrupt token binding", err)
	}
	return uint(id), nil
}

func (t *TokenStore) Revoke(ctx context.Context, token string) error {
	return t.cache.Delete(ctx, tokenPrefix+token)
}
