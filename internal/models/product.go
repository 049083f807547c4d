package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product represents a catalog item sold at the register
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Price       float64            `bson:"price" json:"price"`
	Description string             `bson:"description" json:"description"`
	CategoryID  primitive.ObjectID `bson:"categoryId" json:"categoryId"`
	Image       string             `bson:"image" json:"image"`
}
