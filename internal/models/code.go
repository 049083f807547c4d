package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Code is the proof of a completed gift redemption. The document id IS the
// randomly generated token, so uniqueness rides on the primary key and the
// token doubles as the lookup capability handed to the customer.
type Code struct {
	Cid       string             `bson:"_id" json:"cid"`
	GiftID    primitive.ObjectID `bson:"giftId" json:"giftId"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
