package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

type Product struct {
	ID     string               `bson:"_id" json:"id"`
	Name   string               `bson:"name" json:"name"`
	Price  primitive.Decimal128 `bson:"price" json:"price"`
	Weight float64              `bson:"weight" json:"weight"`
	Rating float64              `bson:"rating,omitempty" json:"rating,omitempty"`
	Amount int64                `bson:"amount,omitempty" json:"amount,omitempty"`
}
