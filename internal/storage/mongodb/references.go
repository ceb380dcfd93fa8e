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

// CreateReference сохраняет рекомендацию.
func (s *Storage) CreateReference(ctx context.Context, ref *models.Reference) (*models.Reference, error) {
	const op = "mongodb.CreateReference"

	ref.ID = primitive.NewObjectID()
	if _, err := s.db.Collection(collReferences).InsertOne(ctx, ref); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ref, nil
}

// ListReferences возвращает все рекомендации.
func (s *Storage) ListReferences(ctx context.Context) ([]*models.Reference, error) {
	const op = "mongodb.ListReferences"

	cur, err := s.db.Collection(collReferences).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var result []*models.Reference
	if err = cur.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// FindReferenceByID возвращает рекомендацию по ID или ErrNotFound.
func (s *Storage) FindReferenceByID(ctx context.Context, id string) (*models.Reference, error) {
	const op = "mongodb.FindReferenceByID"

	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var ref models.Reference
	err = s.db.Collection(collReferences).FindOne(ctx, bson.M{"_id": oid}).Decode(&ref)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &ref, nil
}

// UpdateReferenceByID применяет частичное обновление и возвращает
// обновлённую рекомендацию или ErrNotFound.
func (s *Storage) UpdateReferenceByID(ctx context.Context, id string, patch bson.M) (*models.Reference, error) {
	const op = "mongodb.UpdateReferenceByID"

	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var ref models.Reference
	err = s.db.Collection(collReferences).
		FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": patch}, opts).
		Decode(&ref)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &ref, nil
}

// DeleteReferenceByID удаляет рекомендацию или возвращает ErrNotFound.
func (s *Storage) DeleteReferenceByID(ctx context.Context, id string) error {
	const op = "mongodb.DeleteReferenceByID"

	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := s.db.Collection(collReferences).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
