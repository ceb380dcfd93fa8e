package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Типы записей в разделе сертификатов.
const (
	CertTypeCertification = "certification"
	CertTypeAward         = "award"
	CertTypeCourse        = "course"
)

// Certification представляет сертификат, награду или пройденный курс.
type Certification struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Year        string             `bson:"year" json:"year"`
	Type        string             `bson:"type" json:"type"`
	Highlight   bool               `bson:"highlight" json:"highlight"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Skills      []string           `bson:"skills,omitempty" json:"skills,omitempty"`
	Issuer      string             `bson:"issuer,omitempty" json:"issuer,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}
