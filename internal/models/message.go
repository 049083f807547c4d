package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message is one append-only chat message between a customer and staff
type Message struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	FromUserID primitive.ObjectID `bson:"fromUserId" json:"fromUserId"`
	ToUserID   primitive.ObjectID `bson:"toUserId" json:"toUserId"`
	Date       time.Time          `bson:"date" json:"date"`
	Text       string             `bson:"text" json:"text"`
}
