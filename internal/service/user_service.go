package service

import (
	"context"
	"errors"
	"slices"

	"github.com/RoyceAzure/lab/shopcenter/internal/apperr"
	"github.com/RoyceAzure/lab/shopcenter/internal/constants"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shopcenter/internal/model"
	"gorm.io/gorm"
)

const statusDocumentsUploaded = "documents uploaded"

type IUserService interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	GetAllUsers(ctx context.Context) ([]model.User, error)
	UploadDocuments(ctx context.Context, userID uint, docs []model.Document) error
	TogglePremium(ctx context.Context, userID uint) (string, error)
}

type UserService struct {
	userRepo db.IUserRepo
}

func NewUserService(userRepo db.IUserRepo) IUserService {
	if userRepo == nil {
		panic("UserService dependency userRepo is nil")
	}
	return &UserService{
		userRepo: userRepo,
	}
}

func (u *UserService) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	if user.Role == "" {
		user.Role = constants.RoleUser
	}
	if err := u.userRepo.CreateUser(ctx, user); err != nil {
		return nil, apperr.Wrap(apperr.InternalCode, "error creating the user", err)
	}
	return user, nil
}

func (u *UserService) GetAllUsers(ctx context.Context) ([]model.User, error) {
	users, err := u.userRepo.GetAllUsers(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.InternalCode, "error retrieving users", err)
	}
	return users, nil
}

// UploadDocuments 寫入文件中繼資料, 同名文件覆蓋
func (u *UserService) UploadDocuments(ctx context.Context, userID uint, docs []model.Document) error {
	for _, doc := range docs {
		if !slices.Contains(constants.AllowedDocumentKeys, doc.Name) {
			return apperr.Newf(apperr.BadRequestCode, "document key '%s' is not allowed", doc.Name)
		}
	}

	user, err := u.getUser(ctx, userID)
	if err != nil {
		return err
	}

	for _, doc := range docs {
		doc.UserID = user.UserID
		if err := u.userRepo.UpsertDocument(ctx, &doc); err != nil {
			return apperr.Wrap(apperr.InternalCode, "error uploading documents", err)
		}
	}

	if err := u.userRepo.UpdateUserStatus(ctx, user.UserID, statusDocumentsUploaded); err != nil {
		return apperr.Wrap(apperr.InternalCode, "error uploading documents", err)
	}
	return nil
}

// TogglePremium user 升級成 premium, premium 降回 user
// 升級前必須備齊必要文件
func (u *UserService) TogglePremium(ctx context.Context, userID uint) (string, error) {
	user, err := u.getUser(ctx, userID)
	if err != nil {
		return "", err
	}

	var newRole string
	switch user.Role {
	case constants.RoleUser:
		if missing := missingDocuments(user); len(missing) > 0 {
			return "", apperr.New(apperr.BadRequestCode, "missing required documents to upgrade to premium")
		}
		newRole = constants.RolePremium
	case constants.RolePremium:
		newRole = constants.RoleUser
	default:
		return "", apperr.New(apperr.BadRequestCode, "only user and premium roles can be toggled")
	}

	if err := u.userRepo.UpdateUserRole(ctx, user.UserID, newRole); err != nil {
		return "", apperr.Wrap(apperr.InternalCode, "error updating the role", err)
	}
	return newRole, nil
}

func (u *UserService) getUser(ctx context.Context, userID uint) (*model.User, error) {
	user, err := u.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFoundCode, "user does not exist")
		}
		return nil, apperr.Wrap(apperr.InternalCode, "error retrieving the user", err)
	}
	return user, nil
}

func missingDocuments(user *model.User) []string {
	uploaded := make(map[string]bool, len(user.Documents))
	for _, doc := range user.Documents {
		uploaded[doc.Name] = true
	}

	var missing []string
	for _, name := range constants.RequiredDocuments {
		if !uploaded[name] {
			missing = append(missing, name)
		}
	}
	return missing
}
