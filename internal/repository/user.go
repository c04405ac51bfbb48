package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/Biriato/ProyectoWeb/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int64) error
	Page(ctx context.Context, filter models.UserFilter, offset, limit int) ([]models.User, int64, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository instance.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find user by email %s: %w", email, translate(err))
	}
	return &user, nil
}

func (r *userRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find user by id %d: %w", id, translate(err))
	}
	return &user, nil
}

// Create inserts the user together with its empty list.
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(user).Error; err != nil {
			return err
		}
		list := &models.List{UserID: user.ID}
		if err := tx.Create(list).Error; err != nil {
			return err
		}
		user.List = list
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", translate(err))
	}
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(user).Error; err != nil {
		return fmt.Errorf("failed to update user id %d: %w", user.ID, translate(err))
	}
	return nil
}

// Delete removes the user; the list and its entries go with it.
func (r *userRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.User{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete user id %d: %w", id, translate(result.Error))
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("failed to delete user id %d: %w", id, ErrNotFound)
	}
	return nil
}

func (r *userRepository) Page(ctx context.Context, filter models.UserFilter, offset, limit int) ([]models.User, int64, error) {
	filtered := func(tx *gorm.DB) *gorm.DB {
		if filter.Name != "" {
			tx = tx.Where("LOWER(name) LIKE ? ESCAPE '\\'", containsPattern(filter.Name))
		}
		if filter.Email != "" {
			tx = tx.Where("LOWER(email) LIKE ? ESCAPE '\\'", containsPattern(filter.Email))
		}
		if filter.Role != "" {
			tx = tx.Where("role = ?", filter.Role)
		}
		return tx
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Scopes(filtered).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	var users []models.User
	err := r.db.WithContext(ctx).Scopes(filtered).
		Order("created_at DESC").Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern, for use with ESCAPE '\', that matches
// value literally anywhere in a lowercased column.
func containsPattern(value string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(value)) + "%"
}
