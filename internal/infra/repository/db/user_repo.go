package db

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/shopcenter/internal/model"
	"gorm.io/gorm"
)

type IUserRepo interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id uint) (*model.User, error)
	GetAllUsers(ctx context.Context) ([]model.User, error)
	UpdateUserRole(ctx context.Context, id uint, role string) error
	UpdateUserStatus(ctx context.Context, id uint, status string) error
	UpsertDocument(ctx context.Context, doc *model.Document) error
}

type UserRepo struct {
	db *DbDao
}

func NewUserRepo(db *DbDao) IUserRepo {
	return &UserRepo{db: db}
}

func (s *UserRepo) CreateUser(ctx context.Context, user *model.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *UserRepo) GetUserByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).Preload("Documents").First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserRepo) GetAllUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := s.db.WithContext(ctx).Preload("Documents").Find(&users).Error
	return users, err
}

func (s *UserRepo) UpdateUserRole(ctx context.Context, id uint, role string) error {
	return s.db.WithContext(ctx).Model(&model.User{}).Where("user_id = ?", id).Update("role", role).Error
}

func (s *UserRepo) UpdateUserStatus(ctx context.Context, id uint, status string) error {
	return s.db.WithContext(ctx).Model(&model.User{}).Where("user_id = ?", id).Update("status", status).Error
}

// UpsertDocument 同名文件覆蓋 reference, 不同名新增
func (s *UserRepo) UpsertDocument(ctx context.Context, doc *model.Document) error {
	var existing model.Document
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND name = ?", doc.UserID, doc.Name).
		First(&existing).Error
	if err == nil {
		existing.Reference = doc.Reference
		return s.db.WithContext(ctx).Save(&existing).Error
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.db.WithContext(ctx).Create(doc).Error
	}
	return err
}
