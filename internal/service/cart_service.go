package service

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/shopcenter/internal/apperr"
	"github.com/RoyceAzure/lab/shopcenter/internal/constants"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/shopcenter/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ICartService interface {
	CreateCart(ctx context.Context) (*model.Cart, error)
	GetCartById(ctx context.Context, cartID uuid.UUID) (*model.ResolvedCart, error)
	AddProductToCart(ctx context.Context, cartID uuid.UUID, productID uint, quantity int, actor model.Actor) (*model.Cart, error)
	DeleteProduct(ctx context.Context, cartID uuid.UUID, productID uint) error
	UpdateQuantity(ctx context.Context, cartID uuid.UUID, productID uint, quantity int) error
	UpdateCart(ctx context.Context, cartID uuid.UUID, items []model.CartItem) error
	ClearCart(ctx context.Context, cartID uuid.UUID) error
}

type CartService struct {
	cartRepo    redis_repo.ICartRepo
	productRepo db.IProductRepo
}

func NewCartService(cartRepo redis_repo.ICartRepo, productRepo db.IProductRepo) ICartService {
	if cartRepo == nil {
		panic("CartService dependency cartRepo is nil")
	}
	if productRepo == nil {
		panic("CartService dependency productRepo is nil")
	}
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

func (s *CartService) CreateCart(ctx context.Context) (*model.Cart, error) {
	cart, err := s.cartRepo.CreateCart(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.InternalCode, "error creating the cart", err)
	}
	return cart, nil
}

// GetCartById 回傳購物車並 join 完整商品資料
func (s *CartService) GetCartById(ctx context.Context, cartID uuid.UUID) (*model.ResolvedCart, error) {
	cart, err := s.cartRepo.GetCart(ctx, cartID)
	if err != nil {
		if errors.Is(err, redis_repo.ErrCartNotFound) {
			return nil, apperr.New(apperr.NotFoundCode, "cart does not exist")
		}
		return nil, apperr.Wrap(apperr.InternalCode, "error retrieving the cart", err)
	}

	resolved := model.ResolvedCart{
		CartID: cart.CartID,
		Items:  make([]model.ResolvedCartItem, 0, len(cart.Items)),
	}
	for _, item := range cart.Items {
		product, err := s.productRepo.GetProductByID(ctx, item.ProductID)
		if err != nil {
			return nil, apperr.Wrap(apperr.InternalCode, "error resolving cart products", err)
		}
		resolved.Items = append(resolved.Items, model.ResolvedCartItem{
			Product:  *product,
			Quantity: item.Quantity,
		})
	}
	return &resolved, nil
}

// AddProductToCart 商品已在購物車內累加數量, 否則附加到尾端
// premium 使用者不能加入自己上架的商品
// 購物車不存在時改建立新購物車, 回傳實際寫入的購物車
func (s *CartService) AddProductToCart(ctx context.Context, cartID uuid.UUID, productID uint, quantity int, actor model.Actor) (*model.Cart, error) {
	if quantity <= 0 {
		return nil, apperr.New(apperr.BadRequestCode, "quantity must be positive")
	}

	cart, err := s.cartRepo.GetCart(ctx, cartID)
	if err != nil {
		if !errors.Is(err, redis_repo.ErrCartNotFound) {
			return nil, apperr.Wrap(apperr.InternalCode, "error retrieving the cart", err)
		}
		cart, err = s.cartRepo.CreateCart(ctx)
		if err != nil {
			return nil, apperr.Wrap(apperr.InternalCode, "error creating the cart", err)
		}
	}

	product, err := s.productRepo.GetProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFoundCode, "product does not exist")
		}
		return nil, apperr.Wrap(apperr.InternalCode, "error retrieving the product", err)
	}

	if actor.Role == constants.RolePremium && product.Owner != nil && *product.Owner == actor.Email {
		return nil, apperr.New(apperr.ForbiddenCode, "you cannot add products you created")
	}

	if err := s.cartRepo.AddItem(ctx, cart.CartID, productID, quantity); err != nil {
		return nil, apperr.Wrap(apperr.InternalCode, "error adding the product to the cart", err)
	}

	cart, err = s.cartRepo.GetCart(ctx, cart.CartID)
	if err != nil {
		return nil, apperr.Wrap(apperr.InternalCode, "error retrieving the cart", err)
	}
	return cart, nil
}

// DeleteProduct 商品不在購物車內不視為錯誤
func (s *CartService) DeleteProduct(ctx context.Context, cartID uuid.UUID, productID uint) error {
	err := s.cartRepo.RemoveItem(ctx, cartID, productID)
	if err != nil {
		if errors.Is(err, redis_repo.ErrCartNotFound) {
			return apperr.New(apperr.NotFoundCode, "cart does not exist")
		}
		return apperr.Wrap(apperr.InternalCode, "error trying to delete the product from the cart", err)
	}
	return nil
}

func (s *CartService) UpdateQuantity(ctx context.Context, cartID uuid.UUID, productID uint, quantity int) error {
	if quantity <= 0 {
		return apperr.New(apperr.BadRequestCode, "quantity must be positive")
	}

	err := s.cartRepo.UpdateQuantity(ctx, cartID, productID, quantity)
	if err != nil {
		if errors.Is(err, redis_repo.ErrCartNotFound) {
			return apperr.New(apperr.NotFoundCode, "cart does not exist")
		}
		if errors.Is(err, redis_repo.ErrItemNotFound) {
			return apperr.New(apperr.NotFoundCode, "product is not in the cart")
		}
		return apperr.Wrap(apperr.InternalCode, "error trying to update the product quantity", err)
	}
	return nil
}

// UpdateCart 整份覆蓋購物車內容
func (s *CartService) UpdateCart(ctx context.Context, cartID uuid.UUID, items []model.CartItem) error {
	for _, item := range items {
		if item.Quantity <= 0 {
			return apperr.New(apperr.BadRequestCode, "quantity must be positive")
		}
	}

	err := s.cartRepo.ReplaceItems(ctx, cartID, items)
	if err != nil {
		if errors.Is(err, redis_repo.ErrCartNotFound) {
			return apperr.New(apperr.NotFoundCode, "cart does not exist")
		}
		return apperr.Wrap(apperr.InternalCode, "error trying to update the cart", err)
	}
	return nil
}

// ClearCart 清空購物車, 對空購物車重複呼叫不會失敗
func (s *CartService) ClearCart(ctx context.Context, cartID uuid.UUID) error {
	return s.UpdateCart(ctx, cartID, []model.CartItem{})
}
