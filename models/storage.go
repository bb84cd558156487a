package models

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserStore is the persistence surface the auth service needs. The
// mongo-backed implementation lives in data_access.
type UserStore interface {
	CreateUser(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	UpdateGoogleIdentity(ctx context.Context, id primitive.ObjectID, googleID, picture string) error
}
