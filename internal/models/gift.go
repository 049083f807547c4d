package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Gift offers a catalog product for redemption at a fixed point cost
type Gift struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	PointCost int                `bson:"pointCost" json:"pointCost"`
}

// GiftView is a gift joined with its product, as served to the client app
type GiftView struct {
	ID        primitive.ObjectID `json:"id"`
	PointCost int                `json:"pointCost"`
	Product   *Product           `json:"product"`
}
