package repository

import (
	"context"
	"errors"
	"time"

	"stateless_auth/internal/domain/model"
	"stateless_auth/internal/logutil"

	"github.com/redis/go-redis/v9"
)

// cachedCredentialRepository caches the salt projection in redis. Salts never
// change after provisioning so a TTL cache cannot serve stale data; password
// hashes are never cached and always read from the inner store.
type cachedCredentialRepository struct {
	inner CredentialRepository
	rdb   *redis.Client
	ttl   time.Duration
}

func NewCachedCredentialRepository(inner CredentialRepository, rdb *redis.Client, ttl time.Duration) CredentialRepository {
	return &cachedCredentialRepository{inner: inner, rdb: rdb, ttl: ttl}
}

func saltCacheKey(username string) string {
	return "credential_salt:" + username
}

func (r *cachedCredentialRepository) Create(ctx context.Context, cred *model.Credential) error {
	if err := r.inner.Create(ctx, cred); err != nil {
		return err
	}
	r.cacheSalt(ctx, cred.Username, cred.Salt)
	return nil
}

func (r *cachedCredentialRepository) FindByUsername(ctx context.Context, username string) (*model.Credential, error) {
	return r.inner.FindByUsername(ctx, username)
}

func (r *cachedCredentialRepository) FindSaltByUsername(ctx context.Context, username string) (string, error) {
	salt, err := r.rdb.Get(ctx, saltCacheKey(username)).Result()
	if err == nil {
		return salt, nil
	}
	if !errors.Is(err, redis.Nil) {
		logger := logutil.FromContext(ctx)
		logger.Warn().Err(err).Msg("salt cache read failed, falling back to store")
	}

	salt, err = r.inner.FindSaltByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	r.cacheSalt(ctx, username, salt)
	return salt, nil
}

// cacheSalt is best effort; a cache failure never fails the request.
func (r *cachedCredentialRepository) cacheSalt(ctx context.Context, username, salt string) {
	if err := r.rdb.Set(ctx, saltCacheKey(username), salt, r.ttl).Err(); err != nil {
		logger := logutil.FromContext(ctx)
		logger.Warn().Err(err).Msg("salt cache write failed")
	}
}
