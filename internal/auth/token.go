// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shopgraph Contributors

package auth

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// TokenScheme is the Authorization header scheme. Issued tokens carry
// this prefix so clients can place them in the header verbatim.
const TokenScheme = "Bearer"

// DefaultTokenTTL is the default lifetime of an issued token. Rotating
// the signing secret invalidates everything issued before the rotation.
const DefaultTokenTTL = 24 * time.Hour

// TokenIssuer signs and verifies bearer tokens. Tokens are HS256 JWTs
// whose only trusted claim is the subject (the user ID); everything else
// is re-fetched from the live user record on each request.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer creates a TokenIssuer with the process-wide secret.
// A zero ttl selects DefaultTokenTTL.
func NewTokenIssuer(secret string, ttl time.Duration) (*TokenIssuer, error) {
	if secret == "" {
		return nil, oops.Code("TOKEN_SECRET_MISSING").Errorf("signing secret cannot be empty")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenIssuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// Issue signs a token for the given user ID and returns it with the
// "Bearer " scheme prefix already applied.
func (t *TokenIssuer) Issue(userID ulid.ULID) (string, error) {
	if userID.Compare(ulid.ULID{}) == 0 {
		return "", oops.Code("TOKEN_INVALID_SUBJECT").Errorf("user ID cannot be zero")
	}

	now := t.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", oops.Code("TOKEN_SIGN_FAILED").Wrap(err)
	}

	return TokenScheme + " " + signed, nil
}

// Verify validates a raw token (without the scheme prefix) and returns
// the subject user ID. Malformed, tampered, wrong-secret, and expired
// tokens all fail verification.
func (t *TokenIssuer) Verify(raw string) (ulid.ULID, error) {
	claims := &jwt.RegisteredClaims{}

	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return ulid.ULID{}, oops.Code("TOKEN_INVALID").Wrap(err)
	}

	id, err := ulid.Parse(claims.Subject)
	if err != nil {
		return ulid.ULID{}, oops.Code("TOKEN_INVALID").
			With("subject", claims.Subject).
			Wrap(err)
	}
	return id, nil
}

// StripScheme removes the "Bearer " prefix from an Authorization header
// value. Returns the raw token and true when the scheme matched.
func StripScheme(header string) (string, bool) {
	if len(header) <= len(TokenScheme)+1 {
		return "", false
	}
	if !strings.EqualFold(header[:len(TokenScheme)], TokenScheme) || header[len(TokenScheme)] != ' ' {
		return "", false
	}
	raw := strings.TrimSpace(header[len(TokenScheme)+1:])
	return raw, raw != ""
}
