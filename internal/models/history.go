package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HistoryPlaceholder marks a session result that has not been announced yet.
const HistoryPlaceholder = "--"

// HistoryRecord holds the announced results for one calendar day in the
// market's local timezone. Date is formatted as YYYY-MM-DD. Merging never
// replaces a real result with the placeholder.
type HistoryRecord struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Date      string             `bson:"date" json:"date"`
	Morning   string             `bson:"morning" json:"morning"`
	Evening   string             `bson:"evening" json:"evening"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
