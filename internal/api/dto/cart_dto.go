package dto

import (
	"github.com/RoyceAzure/lab/shopcenter/internal/model"
)

type AddProductDTO struct {
	Quantity int `json:"quantity"`
}

type UpdateQuantityDTO struct {
	Quantity int `json:"quantity"`
}

type UpdateCartDTO struct {
	Products []CartItemDTO `json:"products"`
}

type CartItemDTO struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

func (d UpdateCartDTO) ToCartItems() []model.CartItem {
	items := make([]model.CartItem, 0, len(d.Products))
	for _, p := range d.Products {
		items = append(items, model.CartItem{
			ProductID: p.ProductID,
			Quantity:  p.Quantity,
		})
	}
	return items
}

// PurchaseResponseDTO 部分成交時回傳沒買到的清單與 ticket
type PurchaseResponseDTO struct {
	UnfulfilledItems []model.ResolvedCartItem `json:"unfulfilled_items,omitempty"`
	Ticket           *model.Ticket            `json:"ticket"`
}
