// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shopgraph Contributors

// Package mongodb implements auth repositories on top of MongoDB.
package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shopgraph/shopgraph/internal/auth"
)

// UsersCollection is the MongoDB collection holding user documents.
const UsersCollection = "users"

// userDocument is the persisted shape of auth.User. The _id is the ULID
// in its canonical string form; bearer tokens are never persisted.
type userDocument struct {
	ID             string     `bson:"_id"`
	Email          string     `bson:"email"`
	PasswordHash   string     `bson:"password_hash"`
	Role           string     `bson:"role"`
	FailedAttempts int        `bson:"failed_attempts"`
	LockedUntil    *time.Time `bson:"locked_until,omitempty"`
	CreatedAt      time.Time  `bson:"created_at"`
	UpdatedAt      time.Time  `bson:"updated_at"`
}

// UserRepository implements auth.UserRepository using MongoDB.
type UserRepository struct {
	col *mongo.Collection
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(UsersCollection)}
}

// EnsureIndexes creates the unique email index. Idempotent.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return oops.Code("USER_INDEX_FAILED").
			With("collection", UsersCollection).
			Wrap(err)
	}
	return nil
}

// Create stores a new user.
func (r *UserRepository) Create(ctx context.Context, user *auth.User) error {
	_, err := r.col.InsertOne(ctx, toDocument(user))
	if mongo.IsDuplicateKeyError(err) {
		return oops.Code("USER_EMAIL_TAKEN").
			With("email", user.Email).
			Wrap(auth.ErrEmailTaken)
	}
	if err != nil {
		return oops.Code("USER_CREATE_FAILED").
			With("operation", "insert user").
			With("email", user.Email).
			Wrap(err)
	}
	return nil
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id ulid.ULID) (*auth.User, error) {
	return r.findOne(ctx, bson.M{"_id": id.String()}, "get user by id")
}

// GetByEmail retrieves a user by normalized email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	return r.findOne(ctx, bson.M{"email": auth.NormalizeEmail(email)}, "get user by email")
}

// Update persists changes to an existing user.
func (r *UserRepository) Update(ctx context.Context, user *auth.User) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": user.ID.String()}, toDocument(user))
	if err != nil {
		return oops.Code("USER_UPDATE_FAILED").
			With("operation", "replace user").
			With("id", user.ID.String()).
			Wrap(err)
	}
	if res.MatchedCount == 0 {
		return oops.Code("USER_NOT_FOUND").
			With("id", user.ID.String()).
			Wrap(auth.ErrNotFound)
	}
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M, op string) (*auth.User, error) {
	var doc userDocument
	err := r.col.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, oops.Code("USER_NOT_FOUND").
			With("operation", op).
			Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("USER_GET_FAILED").
			With("operation", op).
			Wrap(err)
	}
	return fromDocument(&doc)
}

func toDocument(u *auth.User) *userDocument {
	return &userDocument{
		ID:             u.ID.String(),
		Email:          u.Email,
		PasswordHash:   u.PasswordHash,
		Role:           u.Role,
		FailedAttempts: u.FailedAttempts,
		LockedUntil:    u.LockedUntil,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func fromDocument(doc *userDocument) (*auth.User, error) {
	id, err := ulid.Parse(doc.ID)
	if err != nil {
		return nil, oops.Code("USER_CORRUPT_ID").
			With("id", doc.ID).
			Wrap(err)
	}
	return &auth.User{
		ID:             id,
		Email:          doc.Email,
		PasswordHash:   doc.PasswordHash,
		Role:           doc.Role,
		FailedAttempts: doc.FailedAttempts,
		LockedUntil:    doc.LockedUntil,
		CreatedAt:      doc.CreatedAt,
		UpdatedAt:      doc.UpdatedAt,
	}, nil
}
