package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Account represents a registered player. Username is unique and
// case-sensitive; Balance is held in the minor currency unit and must never
// go negative. Version guards every balance write that competes with wager
// placement: the placement transaction only commits if the version it read
// is still current.
type Account struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Username     string             `bson:"username" json:"username"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	Role         string             `bson:"role" json:"role"`
	Balance      int64              `bson:"balance" json:"balance"`
	Version      int64              `bson:"version" json:"-"`
	Avatar       string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Account roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)
