package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hotelhub/internal/model"
)

// UserRepository defines persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	ListByRole(ctx context.Context, role model.Role) ([]model.User, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return storeErr(r.db.WithContext(ctx).Create(user).Error)
}

// Update saves profile and role changes. The password hash column is never rewritten here.
func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return storeErr(r.db.WithContext(ctx).Omit("password_hash", "created_at").Save(user).Error)
}

// FindByID loads a user without the password hash.
func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Omit("password_hash").Where("id = ?", id).First(&user).Error; err != nil {
		return nil, storeErr(err)
	}
	return &user, nil
}

// FindByEmail loads a user including the password hash, for credential checks.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", model.NormalizeEmail(email)).First(&user).Error; err != nil {
		return nil, storeErr(err)
	}
	return &user, nil
}

func (r *userRepository) ListByRole(ctx context.Context, role model.Role) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Omit("password_hash").
		Where("role = ?", role).
		Order("created_at DESC").
		Find(&users).Error; err != nil {
		return nil, storeErr(err)
	}
	return users, nil
}

func (r *userRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.User, error) {
	var users []model.User
	if len(ids) == 0 {
		return users, nil
	}
	if err := r.db.WithContext(ctx).Omit("password_hash").Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, storeErr(err)
	}
	return users, nil
}
