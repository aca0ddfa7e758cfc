// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shopgraph Contributors

package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/samber/oops"

	"github.com/shopgraph/shopgraph/internal/access"
)

// Service provides credential issuance and identity resolution.
type Service struct {
	users  UserRepository
	hasher PasswordHasher
	tokens *TokenIssuer
	logger *slog.Logger
}

// NewService creates a new Service.
func NewService(users UserRepository, hasher PasswordHasher, tokens *TokenIssuer) (*Service, error) {
	return NewServiceWithLogger(users, hasher, tokens, slog.Default())
}

// NewServiceWithLogger creates a new Service with an explicit logger.
func NewServiceWithLogger(users UserRepository, hasher PasswordHasher, tokens *TokenIssuer, logger *slog.Logger) (*Service, error) {
	if users == nil {
		return nil, oops.Errorf("users repository is required")
	}
	if hasher == nil {
		return nil, oops.Errorf("password hasher is required")
	}
	if tokens == nil {
		return nil, oops.Errorf("token issuer is required")
	}
	if logger == nil {
		return nil, oops.Errorf("logger is required")
	}
	return &Service{users: users, hasher: hasher, tokens: tokens, logger: logger}, nil
}

// dummyPasswordHash is used when a user doesn't exist to prevent timing
// attacks: verification still runs so response time stays consistent.
// This is NOT a real credential and will never match any password.
//
//nolint:gosec // G101: intentionally fake hash for timing attack prevention, not a credential.
const dummyPasswordHash = "$argon2id$v=19$m=65536,t=1,p=4$AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

// Signup registers a new customer account and issues a bearer token.
// Validation happens before any persistence side effect; the plaintext
// password is never stored.
func (s *Service) Signup(ctx context.Context, email, password string) (*User, string, error) {
	email = NormalizeEmail(email)
	if err := ValidateEmail(email); err != nil {
		return nil, "", err
	}
	if err := ValidatePassword(password); err != nil {
		return nil, "", err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, "", oops.Code("AUTH_SIGNUP_FAILED").
			With("operation", "hash password").
			Wrap(err)
	}

	user, err := NewUser(email, hash, access.RoleCustomer)
	if err != nil {
		return nil, "", err
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, "", oops.Code("AUTH_EMAIL_TAKEN").
				With("email", email).
				Wrap(ErrEmailTaken)
		}
		return nil, "", oops.Code("AUTH_SIGNUP_FAILED").
			With("operation", "create user").
			Wrap(err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", oops.Code("AUTH_SIGNUP_FAILED").
			With("operation", "issue token").
			Wrap(err)
	}

	s.logger.Info("user signed up", "user_id", user.ID.String())
	return user, token, nil
}

// Login authenticates a user and issues a bearer token.
// Uses constant-time operations to prevent timing-based account enumeration.
func (s *Service) Login(ctx context.Context, email, password string) (*User, string, error) {
	email = NormalizeEmail(email)

	user, lookupErr := s.users.GetByEmail(ctx, email)

	// Pick the hash to verify against: real, or the dummy one so unknown
	// emails cost the same as wrong passwords.
	targetHash := dummyPasswordHash
	userExists := false

	if lookupErr != nil {
		if !errors.Is(lookupErr, ErrNotFound) {
			return nil, "", oops.Code("AUTH_LOGIN_FAILED").
				With("operation", "get user by email").
				Wrap(lookupErr)
		}
	} else {
		targetHash = user.PasswordHash
		userExists = true
	}

	valid, verifyErr := s.hasher.Verify(password, targetHash)
	if verifyErr != nil {
		if !userExists {
			return nil, "", oops.Code("AUTH_INVALID_CREDENTIALS").Wrap(ErrInvalidCredentials)
		}
		return nil, "", oops.Code("AUTH_LOGIN_FAILED").
			With("operation", "verify password").
			Wrap(verifyErr)
	}

	if !userExists || !valid {
		if userExists {
			user.RecordFailure()
			_ = s.users.Update(ctx, user) //nolint:errcheck // Best effort
		}
		return nil, "", oops.Code("AUTH_INVALID_CREDENTIALS").Wrap(ErrInvalidCredentials)
	}

	// Check lockout AFTER password verification to maintain constant time.
	if user.IsLocked() {
		return nil, "", oops.Code("AUTH_ACCOUNT_LOCKED").
			With("locked_until", user.LockedUntil).
			Errorf("account is temporarily locked")
	}

	user.RecordSuccess()
	_ = s.users.Update(ctx, user) //nolint:errcheck // Best effort

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", oops.Code("AUTH_LOGIN_FAILED").
			With("operation", "issue token").
			Wrap(err)
	}

	s.logger.Info("user logged in", "user_id", user.ID.String())
	return user, token, nil
}

// Authenticate resolves an Authorization header value to an Identity.
//
// Failures are soft: a missing, malformed, tampered, or expired token, or
// a token whose subject no longer exists, yields the anonymous identity.
// Claims beyond the subject are never trusted; the live user record is
// re-fetched on every call.
func (s *Service) Authenticate(ctx context.Context, authorization string) Identity {
	raw, ok := StripScheme(authorization)
	if !ok {
		return Anonymous()
	}

	userID, err := s.tokens.Verify(raw)
	if err != nil {
		s.logger.Debug("token verification failed", "error", err)
		return Anonymous()
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Warn("user lookup failed during authentication",
				"user_id", userID.String(), "error", err)
		}
		return Anonymous()
	}

	return NewIdentity(user)
}

// GetUser fetches a user by the identity's subject. Used by the me query.
func (s *Service) GetUser(ctx context.Context, ident Identity) (*User, error) {
	if ident.IsAnonymous() {
		return nil, oops.Code("AUTH_ANONYMOUS").Wrap(ErrNotFound)
	}
	user, err := s.users.GetByID(ctx, ident.UserID)
	if err != nil {
		return nil, oops.Code("AUTH_GET_USER_FAILED").
			With("user_id", ident.UserID.String()).
			Wrap(err)
	}
	return user, nil
}
