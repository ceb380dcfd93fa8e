// Package models содержит доменные структуры портфолио-бэкенда:
// пользователей, опыт работы, рекомендации, сертификаты и обращения
// через контактную форму. Структуры используются в бизнес-логике
// и при работе с хранилищем MongoDB.
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Роли пользователей системы.
const (
	RoleUser      = "user"
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
)

// User представляет зарегистрированного пользователя системы.
//
// Поле PasswordHash никогда не сериализуется в JSON-ответ —
// наружу уходят только публичные поля профиля.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	Location     string             `bson:"location" json:"location"`
	Role         string             `bson:"role" json:"role"`
	Photo        string             `bson:"photo" json:"photo"`
	PasswordHash string             `bson:"password" json:"-"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
}
