package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/florienmf/portfolio-backend/internal/models"
)

// CreateCertification сохраняет сертификат, награду или курс.
func (s *Storage) CreateCertification(ctx context.Context, cert *models.Certification) (*models.Certification, error) {
	const op = "mongodb.CreateCertification"

	cert.ID = primitive.NewObjectID()
	if _, err := s.db.Collection(collCertifications).InsertOne(ctx, cert); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return cert, nil
}

// ListCertifications возвращает все сертификаты.
func (s *Storage) ListCertifications(ctx context.Context) ([]*models.Certification, error) {
	const op = "mongodb.ListCertifications"

	cur, err := s.db.Collection(collCertifications).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var result []*models.Certification
	if err = cur.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// FindCertificationByID возвращает сертификат по ID или ErrNotFound.
func (s *Storage) FindCertificationByID(ctx context.Context, id string) (*models.Certification, error) {
	const op = "mongodb.FindCertificationByID"

	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var cert models.Certification
	err = s.db.Collection(collCertifications).FindOne(ctx, bson.M{"_id": oid}).Decode(&cert)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cert, nil
}

// UpdateCertificationByID применяет частичное обновление и возвращает
// обновлённый сертификат или ErrNotFound.
func (s *Storage) UpdateCertificationByID(ctx context.Context, id string, patch bson.M) (*models.Certification, error) {
	const op = "mongodb.UpdateCertificationByID"

	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var cert models.Certification
	err = s.db.Collection(collCertifications).
		FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": patch}, opts).
		Decode(&cert)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cert, nil
}

// DeleteCertificationByID удаляет сертификат или возвращает ErrNotFound.
func (s *Storage) DeleteCertificationByID(ctx context.Context, id string) error {
	const op = "mongodb.DeleteCertificationByID"

	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := s.db.Collection(collCertifications).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
