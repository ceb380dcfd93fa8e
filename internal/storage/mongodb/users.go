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

// CreateUser сохраняет нового пользователя и возвращает его ID.
//
// Нарушение уникальности email отдаётся вызывающему как есть (через %w):
// нормализатор ошибок распознаёт его по mongo.IsDuplicateKeyError.
func (s *Storage) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	const op = "mongodb.CreateUser"

	user.ID = primitive.NewObjectID()
	if _, err := s.db.Collection(collUsers).InsertOne(ctx, user); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// FindUserByID возвращает пользователя по его ID или ErrNotFound.
func (s *Storage) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	const op = "mongodb.FindUserByID"

	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var u models.User
	err = s.db.Collection(collUsers).FindOne(ctx, bson.M{"_id": oid}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &u, nil
}

// FindUserByEmail возвращает пользователя по email (включая хэш пароля)
// или ErrNotFound. Email хранится в нижнем регистре, нормализацию
// выполняет вызывающий.
func (s *Storage) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "mongodb.FindUserByEmail"

	var u models.User
	err := s.db.Collection(collUsers).FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &u, nil
}

// ListUsers возвращает всех пользователей.
func (s *Storage) ListUsers(ctx context.Context) ([]*models.User, error) {
	const op = "mongodb.ListUsers"

	cur, err := s.db.Collection(collUsers).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var result []*models.User
	if err = cur.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateUserByID применяет частичное обновление и возвращает обновлённого
// пользователя или ErrNotFound.
func (s *Storage) UpdateUserByID(ctx context.Context, id string, patch bson.M) (*models.User, error) {
	const op = "mongodb.UpdateUserByID"

	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var u models.User
	err = s.db.Collection(collUsers).
		FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": patch}, opts).
		Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &u, nil
}

// DeleteUserByID удаляет пользователя или возвращает ErrNotFound.
func (s *Storage) DeleteUserByID(ctx context.Context, id string) error {
	const op = "mongodb.DeleteUserByID"

	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := s.db.Collection(collUsers).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateUserPassword заменяет хэш пароля пользователя.
// Это единственный путь смены пароля, общий путь обновления профиля
// поля password не касается.
func (s *Storage) UpdateUserPassword(ctx context.Context, id, passwordHash string) error {
	const op = "mongodb.UpdateUserPassword"

	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := s.db.Collection(collUsers).
		UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"password": passwordHash}})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
