package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BlockEntry represents a two-digit number that is currently not accepting
// wagers. Number is always exactly two digits ("00"-"99"); presence in the
// collection means blocked.
type BlockEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Number    string             `bson:"number" json:"number"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// BlockKind selects how a block request expands into two-digit numbers.
type BlockKind string

const (
	BlockDirect BlockKind = "direct" // the single zero-padded number
	BlockHead   BlockKind = "head"   // digit followed by 0-9
	BlockTail   BlockKind = "tail"   // 0-9 followed by digit
)
