package dto

import (
	"github.com/shopspring/decimal"
)

type CreateProductDTO struct {
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Stock       uint            `json:"stock"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Owner       *string         `json:"owner,omitempty"`
}
