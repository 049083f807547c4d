package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Facture is an immutable receipt: one user, one timestamp, and the line-item
// transactions created by a single pass at the register.
type Facture struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	UserID         primitive.ObjectID   `bson:"userId" json:"userId"`
	Date           time.Time            `bson:"date" json:"date"`
	TransactionIDs []primitive.ObjectID `bson:"transactionIds" json:"transactionIds"`
}

// FactureLine is a transaction resolved against the catalog for display
type FactureLine struct {
	ProductID    primitive.ObjectID `json:"productId"`
	ProductName  string             `json:"productName"`
	ProductPrice float64            `json:"productPrice"`
	Quantity     int                `json:"productQuantity"`
	ProductImage string             `json:"productImage"`
}

// FactureDetail is a facture with resolved line items and the derived total
type FactureDetail struct {
	FactureID primitive.ObjectID `json:"factureId"`
	UserID    primitive.ObjectID `json:"userId"`
	Date      time.Time          `json:"date"`
	Lines     []FactureLine      `json:"transactions"`
	Total     float64            `json:"total"`
}
