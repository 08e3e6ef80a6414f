package db

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/shopcenter/internal/model"
	"gorm.io/gorm"
)

// ErrInsufficientStock 條件式扣庫存沒扣到任何 row
var ErrInsufficientStock = errors.New("insufficient stock")

type IProductRepo interface {
	CreateProduct(ctx context.Context, product *model.Product) error
	GetProductByID(ctx context.Context, id uint) (*model.Product, error)
	GetAllProducts(ctx context.Context) ([]model.Product, error)
	UpdateProduct(ctx context.Context, product *model.Product) error
	ReduceStock(ctx context.Context, id uint, quantity uint) error
}

type ProductRepo struct {
	db *DbDao
}

func NewProductRepo(db *DbDao) IProductRepo {
	return &ProductRepo{db: db}
}

func (s *ProductRepo) CreateProduct(ctx context.Context, product *model.Product) error {
	return s.db.WithContext(ctx).Create(product).Error
}

func (s *ProductRepo) GetProductByID(ctx context.Context, id uint) (*model.Product, error) {
	var product model.Product
	err := s.db.WithContext(ctx).First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *ProductRepo) GetAllProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := s.db.WithContext(ctx).Find(&products).Error
	return products, err
}

// UpdateProduct 更新完整商品資料
func (s *ProductRepo) UpdateProduct(ctx context.Context, product *model.Product) error {
	return s.db.WithContext(ctx).Save(product).Error
}

// ReduceStock 條件式扣庫存, 結帳走這裡, stock 不會為負
// 庫存不足或商品不存在時回傳 ErrInsufficientStock
func (s *ProductRepo) ReduceStock(ctx context.Context, id uint, quantity uint) error {
	result := s.db.WithContext(ctx).Model(&model.Product{}).
		Where("product_id = ? AND stock >= ?", id, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInsufficientStock
	}
	return nil
}
