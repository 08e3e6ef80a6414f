package db

import (
	"github.com/RoyceAzure/lab/shopcenter/internal/model"
	"gorm.io/gorm"
)

type DbDao struct {
	*gorm.DB
}

func NewDbDao(conn *gorm.DB) *DbDao {
	return &DbDao{
		DB: conn,
	}
}

// InitMigrate 初始化 db schema
// 冪等性
func (d *DbDao) InitMigrate() error {
	return d.AutoMigrate(
		&model.User{},
		&model.Document{},
		&model.Product{},
		&model.Ticket{},
		&model.TicketItem{},
	)
}
