package user

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User хранит только хэш пароля. Поле PasswordHash не сериализуется в JSON.
type User struct {
	ID           primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Username     string             `json:"username" bson:"username"`
	PasswordHash string             `json:"-" bson:"password"`
	IsAdmin      bool               `json:"isAdmin" bson:"isAdmin"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
}

const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin"

	MinUsernameLength = 3
	MinPasswordLength = 4
)

// Public возвращает копию без хэша пароля.
func (u *User) Public() *User {
	c := *u
	c.PasswordHash = ""
	return &c
}
