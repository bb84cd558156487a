package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles a user account can carry. The set matches what the frontend
// sends; an empty role is allowed on signup.
const (
	RoleAdmin   = "Admin"
	RoleStudent = "Student"
	RoleVisitor = "Visitor"
)

// ValidRole reports whether role is empty or one of the known roles.
func ValidRole(role string) bool {
	switch role {
	case "", RoleAdmin, RoleStudent, RoleVisitor:
		return true
	}
	return false
}

type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password,omitempty" json:"-"`
	Role     string             `bson:"role,omitempty" json:"role,omitempty"`
	GoogleID string             `bson:"googleId,omitempty" json:"googleId,omitempty"`
	Picture  string             `bson:"picture,omitempty" json:"picture,omitempty"`
}

// Sanitized returns a copy safe to include in a response body. The
// password hash never leaves the service.
func (u *User) Sanitized() *User {
	out := *u
	out.Password = ""
	return &out
}
