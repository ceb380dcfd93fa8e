package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Reference представляет рекомендацию от коллеги или руководителя.
type Reference struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Profile     string             `bson:"profile" json:"profile"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}
