package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Prize represents an item to be awarded. Eligibility is defined by a
// three-digit ticket-number range; Drawn flips to true once a winner
// has been recorded for it.
type Prize struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name       string             `bson:"name" json:"name"`
	RangeStart int                `bson:"rangeStart" json:"range_start"`
	RangeEnd   int                `bson:"rangeEnd" json:"range_end"`
	Drawn      bool               `bson:"drawn" json:"drawn"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}
