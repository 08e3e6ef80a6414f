package db

import (
	"context"

	"github.com/RoyceAzure/lab/shopcenter/internal/model"
)

type ITicketRepo interface {
	CreateTicket(ctx context.Context, ticket *model.Ticket) error
	GetTicketByCode(ctx context.Context, code string) (*model.Ticket, error)
}

// TicketRepo 只允許新增與查詢, ticket 建立後不再修改
type TicketRepo struct {
	db *DbDao
}

func NewTicketRepo(db *DbDao) ITicketRepo {
	return &TicketRepo{db: db}
}

func (s *TicketRepo) CreateTicket(ctx context.Context, ticket *model.Ticket) error {
	return s.db.WithContext(ctx).Create(ticket).Error
}

func (s *TicketRepo) GetTicketByCode(ctx context.Context, code string) (*model.Ticket, error) {
	var ticket model.Ticket
	err := s.db.WithContext(ctx).Preload("Items").Where("code = ?", code).First(&ticket).Error
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}
