// Package mongodb реализует хранилище данных на основе MongoDB
// для портфолио-бэкенда. Предоставляет методы создания, чтения,
// обновления и удаления документов по коллекциям: пользователи,
// опыт работы, рекомендации, сертификаты и обращения.
package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/florienmf/portfolio-backend/internal/apperror"
)

// ErrNotFound возвращается, когда документ с указанным ID отсутствует в коллекции.
var ErrNotFound = errors.New("document not found")

// Имена коллекций хранилища.
const (
	collUsers          = "users"
	collExperiences    = "experiences"
	collReferences     = "references"
	collCertifications = "certifications"
	collContacts       = "contacts"
)

// Storage инкапсулирует соединение с MongoDB и реализует методы
// работы с коллекциями портфолио.
type Storage struct {
	client *mongo.Client
	db     *mongo.Database
}

// New создаёт подключение к MongoDB и проверяет его доступность.
func New(ctx context.Context, uri, database string) (*Storage, error) {
	const op = "mongodb.New"

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		client: client,
		db:     client.Database(database),
	}, nil
}

// EnsureIndexes создаёт необходимые индексы. Уникальность email
// пользователя обеспечивается на уровне хранилища, а не приложения.
func (s *Storage) EnsureIndexes(ctx context.Context) error {
	const op = "mongodb.EnsureIndexes"

	_, err := s.db.Collection(collUsers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close разрывает соединение с MongoDB.
func (s *Storage) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// objectID приводит строковый идентификатор из запроса к ObjectID.
// Некорректное значение превращается в CastError, чтобы нормализатор
// ошибок вернул клиенту 400 с именем поля и значением.
func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, &apperror.CastError{Path: "_id", Value: id}
	}
	return oid, nil
}
