package service

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/shopcenter/internal/apperr"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shopcenter/internal/model"
	"gorm.io/gorm"
)

type IProductService interface {
	CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error)
	GetProductByID(ctx context.Context, id uint) (*model.Product, error)
	GetAllProducts(ctx context.Context) ([]model.Product, error)
	UpdateProduct(ctx context.Context, product *model.Product) error
}

type ProductService struct {
	productRepo db.IProductRepo
}

func NewProductService(productRepo db.IProductRepo) IProductService {
	if productRepo == nil {
		panic("ProductService dependency productRepo is nil")
	}
	return &ProductService{
		productRepo: productRepo,
	}
}

func (s *ProductService) CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	if err := s.productRepo.CreateProduct(ctx, product); err != nil {
		return nil, apperr.Wrap(apperr.InternalCode, "error creating the product", err)
	}
	return product, nil
}

func (s *ProductService) GetProductByID(ctx context.Context, id uint) (*model.Product, error) {
	product, err := s.productRepo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFoundCode, "product does not exist")
		}
		return nil, apperr.Wrap(apperr.InternalCode, "error retrieving the product", err)
	}
	return product, nil
}

func (s *ProductService) GetAllProducts(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepo.GetAllProducts(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.InternalCode, "error retrieving products", err)
	}
	return products, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, product *model.Product) error {
	if err := s.productRepo.UpdateProduct(ctx, product); err != nil {
		return apperr.Wrap(apperr.InternalCode, "error updating the product", err)
	}
	return nil
}
