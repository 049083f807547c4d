package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Transaction is one immutable line item of a sale: a product and a quantity.
// The unit price is not snapshotted; receipt totals are derived from the
// catalog price at read time.
type Transaction struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Quantity  int                `bson:"quantity" json:"quantity"`
}
