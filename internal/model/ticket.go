package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ticket 為購買憑證, 建立後不再修改
type Ticket struct {
	TicketID         uint            `gorm:"primaryKey" json:"ticket_id"`
	Code             string          `gorm:"not null;type:varchar(100);unique" json:"code"`
	PurchaseDatetime time.Time       `gorm:"not null" json:"purchase_datetime"`
	Amount           decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"amount"`
	Purchaser        string          `gorm:"not null;type:varchar(100)" json:"purchaser"`
	Items            []TicketItem    `gorm:"foreignKey:TicketID;constraint:OnDelete:CASCADE" json:"items"`
	BaseModel
}

type TicketItem struct {
	TicketID  uint            `gorm:"primaryKey" json:"ticket_id"`
	ProductID uint            `gorm:"primaryKey" json:"product_id"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"price"`
	BaseModel
}
