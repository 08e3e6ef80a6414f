package model

import (
	"github.com/google/uuid"
)

// Cart 存在 redis, 只保留商品參照與數量, 順序為加入順序
type Cart struct {
	CartID uuid.UUID  `json:"cart_id"`
	Items  []CartItem `json:"items"`
}

type CartItem struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// ResolvedCartItem 為 join 商品資料後的購物車項目
type ResolvedCartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// ResolvedCart 為 GetCartById 回傳的完整購物車
type ResolvedCart struct {
	CartID uuid.UUID          `json:"cart_id"`
	Items  []ResolvedCartItem `json:"items"`
}
