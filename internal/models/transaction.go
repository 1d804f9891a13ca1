package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TransactionTopup is the only transaction type recorded today; the log is
// append-only and exists for audit.
const TransactionTopup = "TOPUP"

// Transaction is an immutable audit record of an administrative balance
// credit.
type Transaction struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Username  string             `bson:"username" json:"username"`
	Amount    int64              `bson:"amount" json:"amount"`
	Type      string             `bson:"type" json:"type"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
