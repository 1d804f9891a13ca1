package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WagerStatus is the lifecycle state of a wager. A wager starts PENDING and
// is flipped exactly once to WIN or LOSE by settlement; it is never flipped
// back.
type WagerStatus string

const (
	WagerPending WagerStatus = "PENDING"
	WagerWin     WagerStatus = "WIN"
	WagerLose    WagerStatus = "LOSE"
)

// Stake limits per number, in the minor currency unit.
const (
	MinStake int64 = 50
	MaxStake int64 = 100000
)

// Wager represents a single two-digit bet. PlacedAtMinutes is the
// minutes-since-local-midnight captured at placement time; settlement
// classifies the wager's session from this stored value, never from the
// settlement-time clock. BatchID groups all wagers created by one placement
// call.
type Wager struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	AccountID       primitive.ObjectID `bson:"accountId" json:"accountId"`
	Username        string             `bson:"username" json:"username"`
	Number          string             `bson:"number" json:"number"`
	Amount          int64              `bson:"amount" json:"amount"`
	Status          WagerStatus        `bson:"status" json:"status"`
	PlacedAtMinutes int                `bson:"placedAtMinutes" json:"placedAtMinutes"`
	BatchID         string             `bson:"batchId" json:"batchId"`
	WinAmount       int64              `bson:"winAmount,omitempty" json:"winAmount,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}
