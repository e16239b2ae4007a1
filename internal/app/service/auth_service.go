package service

import (
	"context"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"

	"stateless_auth/internal/common"
	"stateless_auth/internal/common/security"
	"stateless_auth/internal/domain/model"
	"stateless_auth/internal/domain/repository"
	"stateless_auth/internal/logutil"

	"github.com/google/uuid"
)

// AuthService implements the salt/login exchange. Clients fetch the stored
// salt, hash the password locally and submit the hash; the server compares
// precomputed hashes and never sees the plaintext. Unknown usernames and
// mismatched hashes fail identically so responses cannot be used to
// enumerate accounts.
type AuthService struct {
	creds      repository.CredentialRepository
	codec      *security.TokenCodec
	saltLength int
}

func NewAuthService(creds repository.CredentialRepository, codec *security.TokenCodec, saltLength int) *AuthService {
	if saltLength <= 0 {
		saltLength = security.DefaultSaltLength
	}
	return &AuthService{creds: creds, codec: codec, saltLength: saltLength}
}

type SaltResponse struct {
	Salt string `json:"salt"`
}

type LoginRequest struct {
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

// GetSalt returns the stored salt for a username, or ErrNotFound.
func (s *AuthService) GetSalt(ctx context.Context, username string) (*SaltResponse, error) {
	if username == "" {
		return nil, common.ErrBadRequest
	}

	salt, err := s.creds.FindSaltByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up salt: %w", err)
	}
	return &SaltResponse{Salt: salt}, nil
}

// Login compares the client-computed hash against the stored one and issues
// a token carrying the account's stored role. A missing account and a wrong
// hash both return ErrNotFound.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if req.Username == "" || req.PasswordHash == "" {
		return nil, common.ErrBadRequest
	}

	cred, err := s.creds.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up credential: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(cred.PasswordHash), []byte(req.PasswordHash)) != 1 {
		logger := logutil.FromContext(ctx)
		logger.Debug().Str("username", req.Username).Msg("login rejected: hash mismatch")
		return nil, common.ErrNotFound
	}

	token, err := s.codec.Issue(cred.Username, cred.Role, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &LoginResponse{Token: token}, nil
}

// CreateAccount provisions a credential record: a fresh salt, the scrypt
// hash of the password under it, and the given role set. The salt is fixed
// for the account's lifetime.
func (s *AuthService) CreateAccount(ctx context.Context, username, password string, role model.Role) (*model.Credential, error) {
	if username == "" || password == "" {
		return nil, common.ErrBadRequest
	}
	if !role.Valid() {
		return nil, common.ErrBadRequest
	}

	salt, err := security.GenerateSalt(s.saltLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	hash, err := security.HashPassword(password, salt)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	cred := &model.Credential{
		ID:           uuid.NewString(),
		Username:     username,
		Salt:         base64.StdEncoding.EncodeToString(salt),
		PasswordHash: base64.StdEncoding.EncodeToString(hash),
		Role:         role,
	}
	if err := s.creds.Create(ctx, cred); err != nil {
		return nil, fmt.Errorf("failed to create credential: %w", err)
	}

	logger := logutil.FromContext(ctx)
	logger.Info().Str("username", username).Stringer("role", role).Msg("account provisioned")
	return cred, nil
}
