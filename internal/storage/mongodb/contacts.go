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

// CreateContact сохраняет обращение из контактной формы.
func (s *Storage) CreateContact(ctx context.Context, contact *models.Contact) (*models.Contact, error) {
	const op = "mongodb.CreateContact"

	contact.ID = primitive.NewObjectID()
	if _, err := s.db.Collection(collContacts).InsertOne(ctx, contact); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return contact, nil
}

// ListContacts возвращает все обращения.
func (s *Storage) ListContacts(ctx context.Context) ([]*models.Contact, error) {
	const op = "mongodb.ListContacts"

	cur, err := s.db.Collection(collContacts).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var result []*models.Contact
	if err = cur.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// FindContactByID возвращает обращение по ID или ErrNotFound.
func (s *Storage) FindContactByID(ctx context.Context, id string) (*models.Contact, error) {
	const op = "mongodb.FindContactByID"

	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var contact models.Contact
	err = s.db.Collection(collContacts).FindOne(ctx, bson.M{"_id": oid}).Decode(&contact)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &contact, nil
}

// UpdateContactByID применяет частичное обновление и возвращает
// обновлённое обращение или ErrNotFound.
func (s *Storage) UpdateContactByID(ctx context.Context, id string, patch bson.M) (*models.Contact, error) {
	const op = "mongodb.UpdateContactByID"

	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var contact models.Contact
	err = s.db.Collection(collContacts).
		FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": patch}, opts).
		Decode(&contact)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &contact, nil
}

// DeleteContactByID удаляет обращение или возвращает ErrNotFound.
func (s *Storage) DeleteContactByID(ctx context.Context, id string) error {
	const op = "mongodb.DeleteContactByID"

	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := s.db.Collection(collContacts).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
