package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SaleItem is one staff-selected basket entry. A zero quantity means
// "unspecified" and is treated as 1.
type SaleItem struct {
	ProductID primitive.ObjectID `json:"productId"`
	Quantity  int                `json:"quantity"`
}

// RingUpResult is what the register shows after a completed sale
type RingUpResult struct {
	FactureID     primitive.ObjectID `json:"factureId"`
	Date          time.Time          `json:"date"`
	Lines         []FactureLine      `json:"transactions"`
	Total         float64            `json:"total"`
	PointsAwarded int                `json:"pointsAwarded"`
	NewBalance    int                `json:"newBalance"`
}
