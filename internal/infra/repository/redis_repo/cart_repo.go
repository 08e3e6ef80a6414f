package redis_repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/shopcenter/internal/model"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrCartNotFound 購物車不存在
var ErrCartNotFound = errors.New("cart not found")

// ErrItemNotFound 商品不在購物車內
var ErrItemNotFound = errors.New("item not found in cart")

const cartTTL = 24 * time.Hour

type ICartRepo interface {
	CreateCart(ctx context.Context) (*model.Cart, error)
	GetCart(ctx context.Context, cartID uuid.UUID) (*model.Cart, error)
	AddItem(ctx context.Context, cartID uuid.UUID, productID uint, quantity int) error
	RemoveItem(ctx context.Context, cartID uuid.UUID, productID uint) error
	UpdateQuantity(ctx context.Context, cartID uuid.UUID, productID uint, quantity int) error
	ReplaceItems(ctx context.Context, cartID uuid.UUID, items []model.CartItem) error
}

// CartRepo 購物車存在 redis, 以 JSON 序列化
// key: cart:<uuid>
type CartRepo struct {
	client *redis.Client
}

func NewCartRepo(client *redis.Client) ICartRepo {
	return &CartRepo{client: client}
}

func cartKey(cartID uuid.UUID) string {
	return fmt.Sprintf("cart:%s", cartID)
}

func (s *CartRepo) CreateCart(ctx context.Context) (*model.Cart, error) {
	cart := model.Cart{
		CartID: uuid.New(),
		Items:  []model.CartItem{},
	}
	if err := s.saveCart(ctx, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (s *CartRepo) GetCart(ctx context.Context, cartID uuid.UUID) (*model.Cart, error) {
	cartJSON, err := s.client.Get(ctx, cartKey(cartID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}

	var cart model.Cart
	if err := json.Unmarshal([]byte(cartJSON), &cart); err != nil {
		return nil, fmt.Errorf("unmarshal cart: %w", err)
	}
	return &cart, nil
}

// AddItem 商品已存在累加數量, 不存在則附加到尾端
func (s *CartRepo) AddItem(ctx context.Context, cartID uuid.UUID, productID uint, quantity int) error {
	cart, err := s.GetCart(ctx, cartID)
	if err != nil {
		return err
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		cart.Items = append(cart.Items, model.CartItem{ProductID: productID, Quantity: quantity})
	}

	return s.saveCart(ctx, cart)
}

// RemoveItem 商品不在購物車內不視為錯誤
func (s *CartRepo) RemoveItem(ctx context.Context, cartID uuid.UUID, productID uint) error {
	cart, err := s.GetCart(ctx, cartID)
	if err != nil {
		return err
	}

	items := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ProductID != productID {
			items = append(items, item)
		}
	}
	cart.Items = items

	return s.saveCart(ctx, cart)
}

func (s *CartRepo) UpdateQuantity(ctx context.Context, cartID uuid.UUID, productID uint, quantity int) error {
	cart, err := s.GetCart(ctx, cartID)
	if err != nil {
		return err
	}

	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity = quantity
			return s.saveCart(ctx, cart)
		}
	}
	return ErrItemNotFound
}

// ReplaceItems 整份覆蓋購物車內容, 傳空 slice 即清空
func (s *CartRepo) ReplaceItems(ctx context.Context, cartID uuid.UUID, items []model.CartItem) error {
	cart, err := s.GetCart(ctx, cartID)
	if err != nil {
		return err
	}
	if items == nil {
		items = []model.CartItem{}
	}
	cart.Items = items

	return s.saveCart(ctx, cart)
}

func (s *CartRepo) saveCart(ctx context.Context, cart *model.Cart) error {
	cartJSON, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	if err := s.client.Set(ctx, cartKey(cart.CartID), cartJSON, cartTTL).Err(); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}
