package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Experience представляет запись об опыте работы.
type Experience struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Company     string             `bson:"company" json:"company"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	StartDate   time.Time          `bson:"starting_date" json:"startingDate"`
	EndDate     time.Time          `bson:"ending_date" json:"endingDate"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}
