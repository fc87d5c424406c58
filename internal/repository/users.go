package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bus_logistics/internal/models"
)

type gormUsers struct{ db *gorm.DB }

func (s gormUsers) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Preload("Roles").First(&user, id).Error; err != nil {
		return nil, notFoundToNil(err)
	}
	return &user, nil
}

func (s gormUsers) FindByIDLocked(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Roles").
		First(&user, id).Error
	if err != nil {
		return nil, notFoundToNil(err)
	}
	return &user, nil
}

func (s gormUsers) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Preload("Roles").Where("username = ?", username).First(&user).Error; err != nil {
		return nil, notFoundToNil(err)
	}
	return &user, nil
}

func (s gormUsers) FindAll(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Preload("Roles").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s gormUsers) ExistsByID(ctx context.Context, id uint) (bool, error) {
	return s.exists(ctx, "id = ?", id)
}

func (s gormUsers) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return s.exists(ctx, "username = ?", username)
}

func (s gormUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return s.exists(ctx, "email = ?", email)
}

func (s gormUsers) ExistsByEmployeeID(ctx context.Context, employeeID string) (bool, error) {
	return s.exists(ctx, "employee_id = ?", employeeID)
}

func (s gormUsers) exists(ctx context.Context, query string, arg any) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where(query, arg).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s gormUsers) Create(ctx context.Context, user *models.User) error {
	return translateWrite(s.db.WithContext(ctx).Create(user).Error)
}

func (s gormUsers) Save(ctx context.Context, user *models.User) error {
	return translateWrite(s.db.WithContext(ctx).Save(user).Error)
}

func (s gormUsers) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&models.User{}, id).Error
}

type gormRoles struct{ db *gorm.DB }

func (s gormRoles) FindByName(ctx context.Context, name models.RoleName) (*models.Role, error) {
	var role models.Role
	if err := s.db.WithContext(ctx).Where("name = ?", name).First(&role).Error; err != nil {
		return nil, notFoundToNil(err)
	}
	return &role, nil
}

func (s gormRoles) Create(ctx context.Context, role *models.Role) error {
	return translateWrite(s.db.WithContext(ctx).Create(role).Error)
}
