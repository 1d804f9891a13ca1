package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SystemConfig represents a configuration setting stored in the database
type SystemConfig struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Key         string             `bson:"key" json:"key"`
	Value       interface{}        `bson:"value" json:"value"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Well-known config keys
const (
	ConfigKeyPayoutRate = "payout_rate"
	ConfigKeyDailyTip   = "daily_tip"
	ConfigKeyContact    = "contact"
)

// DefaultPayoutRate is the WIN multiplier used when no rate has been
// configured.
const DefaultPayoutRate int64 = 80

// Contact holds the operator's payment and contact details shown to players.
type Contact struct {
	KpayNo   string `bson:"kpayNo,omitempty" json:"kpayNo,omitempty"`
	KpayName string `bson:"kpayName,omitempty" json:"kpayName,omitempty"`
	WaveNo   string `bson:"waveNo,omitempty" json:"waveNo,omitempty"`
	WaveName string `bson:"waveName,omitempty" json:"waveName,omitempty"`
	TeleLink string `bson:"teleLink,omitempty" json:"teleLink,omitempty"`
}

// Settings is the assembled view of the configurable system values.
type Settings struct {
	PayoutRate int64   `json:"payoutRate"`
	DailyTip   string  `json:"dailyTip"`
	Contact    Contact `json:"contact"`
}
