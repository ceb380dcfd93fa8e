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

// CreateExperience сохраняет запись об опыте работы.
func (s *Storage) CreateExperience(ctx context.Context, exp *models.Experience) (*models.Experience, error) {
	const op = "mongodb.CreateExperience"

	exp.ID = primitive.NewObjectID()
	if _, err := s.db.Collection(collExperiences).InsertOne(ctx, exp); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return exp, nil
}

// ListExperiences возвращает все записи, отсортированные по дате начала
// работы в убывающем порядке.
func (s *Storage) ListExperiences(ctx context.Context) ([]*models.Experience, error) {
	const op = "mongodb.ListExperiences"

	opts := options.Find().SetSort(bson.D{{Key: "starting_date", Value: -1}})
	cur, err := s.db.Collection(collExperiences).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var result []*models.Experience
	if err = cur.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// FindExperienceByID возвращает запись по ID или ErrNotFound.
func (s *Storage) FindExperienceByID(ctx context.Context, id string) (*models.Experience, error) {
	const op = "mongodb.FindExperienceByID"

	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var exp models.Experience
	err = s.db.Collection(collExperiences).FindOne(ctx, bson.M{"_id": oid}).Decode(&exp)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &exp, nil
}

// UpdateExperienceByID применяет частичное обновление и возвращает
// обновлённую запись или ErrNotFound.
func (s *Storage) UpdateExperienceByID(ctx context.Context, id string, patch bson.M) (*models.Experience, error) {
	const op = "mongodb.UpdateExperienceByID"

	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var exp models.Experience
	err = s.db.Collection(collExperiences).
		FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": patch}, opts).
		Decode(&exp)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &exp, nil
}

// DeleteExperienceByID удаляет запись или возвращает ErrNotFound.
func (s *Storage) DeleteExperienceByID(ctx context.Context, id string) error {
	const op = "mongodb.DeleteExperienceByID"

	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := s.db.Collection(collExperiences).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
