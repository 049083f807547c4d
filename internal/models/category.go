package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category groups products. Deleting a category removes its products as well.
type Category struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name string             `bson:"name" json:"name"`
}
