package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Winner binds one Prize to one Participant at the moment of a draw.
// ParticipantName, TicketNumber and PrizeName are denormalized for display
// so the winner history survives later edits to the referenced records.
type Winner struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	PrizeID         primitive.ObjectID `bson:"prizeId" json:"id_prize"`
	ParticipantID   primitive.ObjectID `bson:"participantId" json:"id_participant"`
	DrawDate        time.Time          `bson:"drawDate" json:"drawDate"`
	ParticipantName string             `bson:"participantName" json:"participant_name"`
	TicketNumber    string             `bson:"ticketNumber" json:"participant_number"`
	PrizeName       string             `bson:"prizeName" json:"prize_name"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}
