package user_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/florienmf/portfolio-backend/internal/lib/password"
	"github.com/florienmf/portfolio-backend/internal/models"
	"github.com/florienmf/portfolio-backend/internal/services/user"
)

type RepoMock struct {
	mock.Mock
}

func (m *RepoMock) CreateUser(ctx context.Context, u *models.User) (*models.User, error) {
	args := m.Called(ctx, u)
	created, _ := args.Get(0).(*models.User)
	return created, args.Error(1)
}

func (m *RepoMock) ListUsers(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]*models.User)
	return users, args.Error(1)
}

func (m *RepoMock) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *RepoMock) UpdateUserByID(ctx context.Context, id string, patch bson.M) (*models.User, error) {
	args := m.Called(ctx, id, patch)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *RepoMock) DeleteUserByID(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *RepoMock) UpdateUserPassword(ctx context.Context, id, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func TestService_CreateDefaults(t *testing.T) {
	repo := new(RepoMock)
	repo.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Email == "new@example.com" &&
			u.Role == models.RoleUser &&
			u.Photo == "default.jpg" &&
			u.PasswordHash != "" &&
			u.PasswordHash != "password123" &&
			!u.CreatedAt.IsZero()
	})).Return(&models.User{ID: primitive.NewObjectID()}, nil).Once()

	svc := user.NewService(repo)

	_, err := svc.Create(context.Background(), &models.User{
		Name:  "New User",
		Email: " New@Example.COM ",
	}, "password123")
	assert.NoError(t, err)

	repo.AssertExpectations(t)
}

func TestService_CreateKeepsExplicitRole(t *testing.T) {
	repo := new(RepoMock)
	repo.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Role == models.RoleAdmin
	})).Return(&models.User{}, nil).Once()

	svc := user.NewService(repo)

	_, err := svc.Create(context.Background(), &models.User{
		Email: "admin@example.com",
		Role:  models.RoleAdmin,
	}, "password123")
	assert.NoError(t, err)

	repo.AssertExpectations(t)
}

func TestService_UpdateBuildsPatch(t *testing.T) {
	name := "New Name"
	email := " Mixed@Case.COM "

	repo := new(RepoMock)
	repo.On("UpdateUserByID", mock.Anything, "abc", bson.M{
		"name":  "New Name",
		"email": "mixed@case.com",
	}).Return(&models.User{}, nil).Once()

	svc := user.NewService(repo)

	_, err := svc.Update(context.Background(), "abc", user.UpdateInput{
		Name:  &name,
		Email: &email,
	})
	assert.NoError(t, err)

	repo.AssertExpectations(t)
}

func TestService_UpdateEmptyPatch(t *testing.T) {
	existing := &models.User{ID: primitive.NewObjectID()}

	repo := new(RepoMock)
	repo.On("FindUserByID", mock.Anything, "abc").Return(existing, nil).Once()

	svc := user.NewService(repo)

	got, err := svc.Update(context.Background(), "abc", user.UpdateInput{})
	assert.NoError(t, err)
	assert.Equal(t, existing, got)

	repo.AssertNotCalled(t, "UpdateUserByID")
	repo.AssertExpectations(t)
}

func TestService_UpdatePasswordStoresHash(t *testing.T) {
	repo := new(RepoMock)
	repo.On("UpdateUserPassword", mock.Anything, "abc", mock.MatchedBy(func(hash string) bool {
		return password.CompareHash(hash, "newpassword1") == nil
	})).Return(nil).Once()

	svc := user.NewService(repo)

	assert.NoError(t, svc.UpdatePassword(context.Background(), "abc", "newpassword1"))
	repo.AssertExpectations(t)
}
