package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Participant represents a registered person. TicketNumber is a zero-padded
// three-digit string and may be empty until the participant claims one;
// Active means the participant can still win a prize.
type Participant struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name         string             `bson:"name" json:"name"`
	Cedula       string             `bson:"cedula" json:"cedula"`
	TicketNumber string             `bson:"ticketNumber,omitempty" json:"ticket_number,omitempty"`
	Active       bool               `bson:"active" json:"active"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
