package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/shopcenter/internal/apperr"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/event"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/shopcenter/internal/model"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type IPurchaseService interface {
	CompletePurchase(ctx context.Context, cartID uuid.UUID, actor model.Actor) (*PurchaseResult, error)
}

// PurchaseResult 結帳結果
// Partial 為 true 時 Unfulfilled 內是沒買到的商品, 購物車內容會被改寫成這份清單
type PurchaseResult struct {
	Ticket      *model.Ticket            `json:"ticket"`
	Unfulfilled []model.ResolvedCartItem `json:"unfulfilled_items"`
	Partial     bool                     `json:"-"`
}

// PurchaseService 結帳流程:
// 1. 取得購物車
// 2. 依序檢查每個項目的庫存, 買得到的當場扣庫存並從購物車移除
// 3. 有買到任何商品才開 ticket, 沒買到的寫回購物車
//
// 每個項目個別落庫, 不是單一交易. 中途失敗時已處理的項目維持已提交狀態,
// 要更強的一致性需要把整段包進跨庫交易, 目前部署沒有這個需求.
type PurchaseService struct {
	cartRepo    redis_repo.ICartRepo
	productRepo db.IProductRepo
	ticketRepo  db.ITicketRepo
	mailService IMailService
	producer    event.TicketProducer
	locker      *cartLocker
	logger      *zerolog.Logger
}

// NewPurchaseService 初始化結帳服務
// producer 可以為 nil, 表示不發送 kafka 事件
func NewPurchaseService(
	cartRepo redis_repo.ICartRepo,
	productRepo db.IProductRepo,
	ticketRepo db.ITicketRepo,
	mailService IMailService,
	producer event.TicketProducer,
	logger *zerolog.Logger,
) IPurchaseService {
	if cartRepo == nil {
		panic("PurchaseService dependency cartRepo is nil")
	}
	if productRepo == nil {
		panic("PurchaseService dependency productRepo is nil")
	}
	if ticketRepo == nil {
		panic("PurchaseService dependency ticketRepo is nil")
	}
	if mailService == nil {
		panic("PurchaseService dependency mailService is nil")
	}
	if logger == nil {
		panic("PurchaseService dependency logger is nil")
	}
	return &PurchaseService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		ticketRepo:  ticketRepo,
		mailService: mailService,
		producer:    producer,
		locker:      newCartLocker(),
		logger:      logger,
	}
}

func (s *PurchaseService) CompletePurchase(ctx context.Context, cartID uuid.UUID, actor model.Actor) (*PurchaseResult, error) {
	// 同一個購物車的結帳與其他結帳互斥, 避免同一份庫存快照被扣兩次
	unlock := s.locker.lock(cartID)
	defer unlock()

	cart, err := s.cartRepo.GetCart(ctx, cartID)
	if err != nil {
		if errors.Is(err, redis_repo.ErrCartNotFound) {
			return nil, apperr.New(apperr.NotFoundCode, "cart does not exist")
		}
		return nil, apperr.Wrap(apperr.InternalCode, "error retrieving the cart", err)
	}

	var fulfilled []model.ResolvedCartItem
	var unfulfilled []model.ResolvedCartItem

	for _, item := range cart.Items {
		product, err := s.productRepo.GetProductByID(ctx, item.ProductID)
		if err != nil {
			return nil, apperr.Wrap(apperr.InternalCode, "error completing the purchase", err)
		}

		if product.Stock >= uint(item.Quantity) {
			// 扣庫存帶庫存下限條件, 快照讀完後被別的結帳扣走也不會扣成負數
			if err := s.productRepo.ReduceStock(ctx, item.ProductID, uint(item.Quantity)); err != nil {
				if errors.Is(err, db.ErrInsufficientStock) {
					unfulfilled = append(unfulfilled, model.ResolvedCartItem{
						Product:  *product,
						Quantity: item.Quantity,
					})
					continue
				}
				return nil, apperr.Wrap(apperr.InternalCode, "error completing the purchase", err)
			}
			product.Stock -= uint(item.Quantity)
			if err := s.cartRepo.RemoveItem(ctx, cartID, item.ProductID); err != nil {
				return nil, apperr.Wrap(apperr.InternalCode, "error completing the purchase", err)
			}
			fulfilled = append(fulfilled, model.ResolvedCartItem{
				Product:  *product,
				Quantity: item.Quantity,
			})
		} else {
			unfulfilled = append(unfulfilled, model.ResolvedCartItem{
				Product:  *product,
				Quantity: item.Quantity,
			})
		}
	}

	if len(fulfilled) == 0 {
		return nil, apperr.New(apperr.ConflictCode, "a ticket was not generated as there are no products to purchase")
	}

	now := time.Now()
	ticket := &model.Ticket{
		Code:             generateTicketCode(cartID, now),
		PurchaseDatetime: now,
		Amount:           calculateTotalAmount(fulfilled),
		Purchaser:        actor.Purchaser(),
		Items:            make([]model.TicketItem, 0, len(fulfilled)),
	}
	for _, item := range fulfilled {
		ticket.Items = append(ticket.Items, model.TicketItem{
			ProductID: item.Product.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Product.Price,
		})
	}

	if err := s.ticketRepo.CreateTicket(ctx, ticket); err != nil {
		return nil, apperr.Wrap(apperr.InternalCode, "error completing the purchase", err)
	}

	if len(unfulfilled) > 0 {
		leftover := make([]model.CartItem, 0, len(unfulfilled))
		for _, item := range unfulfilled {
			leftover = append(leftover, model.CartItem{
				ProductID: item.Product.ProductID,
				Quantity:  item.Quantity,
			})
		}
		if err := s.cartRepo.ReplaceItems(ctx, cartID, leftover); err != nil {
			return nil, apperr.Wrap(apperr.InternalCode, "error completing the purchase", err)
		}
	}

	// ticket 已落庫, 通知失敗只記 log 不影響結果
	go s.dispatchNotifications(ticket)

	return &PurchaseResult{
		Ticket:      ticket,
		Unfulfilled: unfulfilled,
		Partial:     len(unfulfilled) > 0,
	}, nil
}

func (s *PurchaseService) dispatchNotifications(ticket *model.Ticket) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.mailService.SendReceipt(ctx, ticket); err != nil {
		s.logger.Error().
			Str("ticket_code", ticket.Code).
			Err(err).
			Msg("failed to send receipt mail")
	}

	if s.producer != nil {
		if err := s.producer.PublishTicketCreated(ctx, ticket); err != nil {
			s.logger.Error().
				Str("ticket_code", ticket.Code).
				Err(err).
				Msg("failed to publish ticket created event")
		}
	}
}

// generateTicketCode 由購物車 ID 與時間組出 ticket code
// 尾端帶 8 碼 hex 亂數, 同一個購物車在同一毫秒內重複結帳也不會撞碼
func generateTicketCode(cartID uuid.UUID, at time.Time) string {
	return fmt.Sprintf("TCK-%s-%d-%s", cartID.String()[:8], at.UnixMilli(), uuid.NewString()[:8])
}

func calculateTotalAmount(items []model.ResolvedCartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}
